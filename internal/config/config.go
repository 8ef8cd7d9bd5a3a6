package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
)

const envPrefix = "CATALOG"

type Config struct {
	HTTP    HTTPConfig    `mapstructure:"http"`
	Storage StorageConfig `mapstructure:"storage"`
	Mongo   MongoConfig   `mapstructure:"mongo"`
	Redis   RedisConfig   `mapstructure:"redis"`
	NATS    NATSConfig    `mapstructure:"nats"`
	MinIO   MinIOConfig   `mapstructure:"minio"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

type HTTPConfig struct {
	Port               string        `mapstructure:"port"`
	ReadTimeout        time.Duration `mapstructure:"read_timeout"`
	WriteTimeout       time.Duration `mapstructure:"write_timeout"`
	IdleTimeout        time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout    time.Duration `mapstructure:"shutdown_timeout"`
	CORSAllowedOrigins []string      `mapstructure:"cors_allowed_origins"`
	MaxBodyBytes       int64         `mapstructure:"max_body_bytes"`
	MaxImageBytes      int64         `mapstructure:"max_image_bytes"`
}

// StorageConfig selects the product store: "mongo" or "memory".
type StorageConfig struct {
	Driver string `mapstructure:"driver"`
}

type MongoConfig struct {
	URI            string        `mapstructure:"uri"`
	Username       string        `mapstructure:"username"`
	Password       string        `mapstructure:"password"`
	Database       string        `mapstructure:"database"`
	Collection     string        `mapstructure:"collection"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	MinPoolSize    uint64        `mapstructure:"min_pool_size"`
	MaxPoolSize    uint64        `mapstructure:"max_pool_size"`
}

// RedisConfig configures the product cache. An empty Address disables caching.
type RedisConfig struct {
	Address       string        `mapstructure:"address"`
	Password      string        `mapstructure:"password"`
	DB            int           `mapstructure:"db"`
	ProductTTL    time.Duration `mapstructure:"product_ttl"`
	CategoriesTTL time.Duration `mapstructure:"categories_ttl"`
}

// NATSConfig configures event publishing. An empty URL disables it.
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// MinIOConfig configures product image storage. An empty Endpoint disables uploads.
type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	PublicURL string `mapstructure:"public_url"`
}

type CatalogConfig struct {
	DefaultItemsPerPage int           `mapstructure:"default_items_per_page"`
	MaxItemsPerPage     int           `mapstructure:"max_items_per_page"`
	QueryTimeout        time.Duration `mapstructure:"query_timeout"`
	TimeZone            string        `mapstructure:"time_zone"`
	MaxImages           int           `mapstructure:"max_images"`
}

// AuthConfig protects write routes with HS256 bearer tokens when JWTSecret is set.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

type MetricsConfig struct {
	Port      string `mapstructure:"port"`
	Namespace string `mapstructure:"namespace"`
}

type TracingConfig struct {
	Endpoint    string  `mapstructure:"endpoint"`
	ServiceName string  `mapstructure:"service_name"`
	SampleRatio float64 `mapstructure:"sample_ratio"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.port", "8080")
	v.SetDefault("http.read_timeout", "10s")
	v.SetDefault("http.write_timeout", "15s")
	v.SetDefault("http.idle_timeout", "60s")
	v.SetDefault("http.shutdown_timeout", "10s")
	v.SetDefault("http.cors_allowed_origins", []string{"*"})
	v.SetDefault("http.max_body_bytes", 32<<20)
	v.SetDefault("http.max_image_bytes", 5<<20)

	v.SetDefault("storage.driver", "mongo")

	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.username", "")
	v.SetDefault("mongo.password", "")
	v.SetDefault("mongo.database", "catalog_db")
	v.SetDefault("mongo.collection", "products")
	v.SetDefault("mongo.connect_timeout", "10s")
	v.SetDefault("mongo.min_pool_size", 0)
	v.SetDefault("mongo.max_pool_size", 100)

	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.product_ttl", "1h")
	v.SetDefault("redis.categories_ttl", "5m")

	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("nats.connect_timeout", "5s")

	v.SetDefault("minio.endpoint", "")
	v.SetDefault("minio.access_key", "")
	v.SetDefault("minio.secret_key", "")
	v.SetDefault("minio.bucket", "product-images")
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("minio.public_url", "")

	v.SetDefault("catalog.default_items_per_page", 20)
	v.SetDefault("catalog.max_items_per_page", 100)
	v.SetDefault("catalog.query_timeout", "0s")
	v.SetDefault("catalog.time_zone", "UTC")
	v.SetDefault("catalog.max_images", 10)

	v.SetDefault("auth.jwt_secret", "")

	v.SetDefault("metrics.port", "9100")
	v.SetDefault("metrics.namespace", "catalog_service")

	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("tracing.service_name", "catalog-service")
	v.SetDefault("tracing.sample_ratio", 1.0)
}

// LoadConfig reads defaults, then the YAML file at path (a file, or a directory
// holding config.yaml; missing is fine), then CATALOG_* environment variables.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if fi, err := os.Stat(path); path != "" && err == nil {
		if fi.IsDir() {
			v.AddConfigPath(path)
			v.SetConfigName("config")
			v.SetConfigType("yaml")
		} else {
			v.SetConfigFile(path)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the service cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.HTTP.Port == "" {
		errs = append(errs, errors.New("http.port is required"))
	}
	switch c.Storage.Driver {
	case "mongo":
		if c.Mongo.URI == "" || c.Mongo.Database == "" || c.Mongo.Collection == "" {
			errs = append(errs, errors.New("mongo.uri, mongo.database and mongo.collection are required for the mongo driver"))
		}
	case "memory":
	default:
		errs = append(errs, fmt.Errorf("storage.driver must be mongo or memory, got %q", c.Storage.Driver))
	}
	if c.Catalog.DefaultItemsPerPage < 1 {
		errs = append(errs, fmt.Errorf("catalog.default_items_per_page must be positive, got %d", c.Catalog.DefaultItemsPerPage))
	}
	if c.Catalog.MaxItemsPerPage > 0 && c.Catalog.MaxItemsPerPage < c.Catalog.DefaultItemsPerPage {
		errs = append(errs, fmt.Errorf("catalog.max_items_per_page (%d) is below catalog.default_items_per_page (%d)",
			c.Catalog.MaxItemsPerPage, c.Catalog.DefaultItemsPerPage))
	}
	if c.Catalog.QueryTimeout < 0 {
		errs = append(errs, errors.New("catalog.query_timeout must not be negative"))
	}
	if c.Catalog.MaxImages < 0 {
		errs = append(errs, errors.New("catalog.max_images must not be negative"))
	}
	if _, err := time.LoadLocation(c.Catalog.TimeZone); err != nil {
		errs = append(errs, fmt.Errorf("catalog.time_zone: %w", err))
	}
	if c.HTTP.MaxImageBytes < 0 || c.HTTP.MaxBodyBytes < 0 {
		errs = append(errs, errors.New("http.max_body_bytes and http.max_image_bytes must not be negative"))
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("tracing.sample_ratio must be within [0, 1], got %v", c.Tracing.SampleRatio))
	}
	if c.MinIO.Endpoint != "" && c.MinIO.Bucket == "" {
		errs = append(errs, errors.New("minio.bucket is required when minio.endpoint is set"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Location returns the catalog time zone. Validate has already checked it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Catalog.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}
