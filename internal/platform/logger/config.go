package logger

import (
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Config controls level, encoding and destination of log output.
type Config struct {
	Level      string
	Format     string
	OutputFile string
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// ConfigFromEnv reads LOG_LEVEL, LOG_FORMAT and LOG_OUTPUT_FILE.
func ConfigFromEnv() *Config {
	return &Config{
		Level:      strings.ToLower(getEnv("LOG_LEVEL", "info")),
		Format:     strings.ToLower(getEnv("LOG_FORMAT", "json")),
		OutputFile: getEnv("LOG_OUTPUT_FILE", "stdout"),
	}
}

// ZapLevel converts Level to a zapcore.Level, falling back to info.
func (c *Config) ZapLevel() zapcore.Level {
	switch c.Level {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	case "panic":
		return zapcore.PanicLevel
	default:
		return zapcore.InfoLevel
	}
}

func (c *Config) console() bool {
	f := strings.ToLower(c.Format)
	return f == "console" || f == "text"
}

func (c *Config) toFile() bool {
	return c.OutputFile != "" && c.OutputFile != "stdout" && c.OutputFile != "stderr"
}
