package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, "mongo", cfg.Storage.Driver)
	assert.Equal(t, "products", cfg.Mongo.Collection)
	assert.Equal(t, 10*time.Second, cfg.Mongo.ConnectTimeout)
	assert.Equal(t, 20, cfg.Catalog.DefaultItemsPerPage)
	assert.Equal(t, 100, cfg.Catalog.MaxItemsPerPage)
	assert.Equal(t, time.Hour, cfg.Redis.ProductTTL)
	assert.Equal(t, []string{"*"}, cfg.HTTP.CORSAllowedOrigins)
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  port: "9090"
storage:
  driver: memory
catalog:
  default_items_per_page: 12
  max_items_per_page: 48
  query_timeout: 3s
  time_zone: Europe/Berlin
redis:
  address: ""
`), 0o600))

	t.Setenv("CATALOG_CATALOG_MAX_ITEMS_PER_PAGE", "60")
	t.Setenv("CATALOG_AUTH_JWT_SECRET", "s3cret")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTP.Port)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, 12, cfg.Catalog.DefaultItemsPerPage)
	assert.Equal(t, 60, cfg.Catalog.MaxItemsPerPage)
	assert.Equal(t, 3*time.Second, cfg.Catalog.QueryTimeout)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Empty(t, cfg.Redis.Address)
	assert.Equal(t, "Europe/Berlin", cfg.Location().String())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown driver", func(c *Config) { c.Storage.Driver = "sqlite" }},
		{"missing mongo uri", func(c *Config) { c.Mongo.URI = "" }},
		{"zero default page size", func(c *Config) { c.Catalog.DefaultItemsPerPage = 0 }},
		{"max below default", func(c *Config) { c.Catalog.MaxItemsPerPage = 5 }},
		{"negative timeout", func(c *Config) { c.Catalog.QueryTimeout = -time.Second }},
		{"bad time zone", func(c *Config) { c.Catalog.TimeZone = "Mars/Olympus" }},
		{"sample ratio", func(c *Config) { c.Tracing.SampleRatio = 1.5 }},
		{"minio without bucket", func(c *Config) { c.MinIO.Endpoint = "localhost:9000"; c.MinIO.Bucket = "" }},
		{"no port", func(c *Config) { c.HTTP.Port = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	memory := valid()
	memory.Storage.Driver = "memory"
	memory.Mongo.URI = ""
	assert.NoError(t, memory.Validate())
}
