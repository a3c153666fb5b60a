package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	Upload UploadConfig
	Batch  BatchConfig
	Log    LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// UploadConfig holds template upload limits.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// MaxBytes returns the upload cap in bytes.
func (u *UploadConfig) MaxBytes() int64 {
	return u.MaxFileSizeMB * 1024 * 1024
}

// BatchConfig holds batch run settings.
type BatchConfig struct {
	MaxRecords   int `mapstructure:"max_records"`
	YieldPauseMS int `mapstructure:"yield_pause_ms"`
}

// YieldPause returns the cooperative pause between records.
func (b *BatchConfig) YieldPause() time.Duration {
	return time.Duration(b.YieldPauseMS) * time.Millisecond
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the DGDOCS_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DGDOCS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 20)

	// Batch defaults
	v.SetDefault("batch.max_records", 200)
	v.SetDefault("batch.yield_pause_ms", 0)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":             "DGDOCS_SERVER_PORT",
		"server.read_timeout":     "DGDOCS_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "DGDOCS_SERVER_WRITE_TIMEOUT",
		"server.environment":      "DGDOCS_SERVER_ENVIRONMENT",
		"upload.max_file_size_mb": "DGDOCS_UPLOAD_MAX_FILE_SIZE_MB",
		"batch.max_records":       "DGDOCS_BATCH_MAX_RECORDS",
		"batch.yield_pause_ms":    "DGDOCS_BATCH_YIELD_PAUSE_MS",
		"log.level":               "DGDOCS_LOG_LEVEL",
		"log.format":              "DGDOCS_LOG_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}
	cfg.Server = ServerConfig{
		Port:         v.GetString("server.port"),
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}
	cfg.Batch = BatchConfig{
		MaxRecords:   v.GetInt("batch.max_records"),
		YieldPauseMS: v.GetInt("batch.yield_pause_ms"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	return cfg, nil
}
