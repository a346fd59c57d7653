// Path: internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"article-browser/internal/domain"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Proxy    ProxyConfig
	Log      LogConfig
}

// ServerConfig holds the API server settings.
type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// DatabaseConfig holds the document store connection settings.
type DatabaseConfig struct {
	URI                   string `mapstructure:"uri"`
	Name                  string `mapstructure:"name"`
	Collection            string `mapstructure:"collection"`
	CountCollection       string `mapstructure:"count_collection"`
	ConnectTimeoutSeconds int    `mapstructure:"connect_timeout_seconds"`
}

// ProxyConfig holds settings for the passthrough to the remote article API.
type ProxyConfig struct {
	BaseURL           string `mapstructure:"base_url"`
	TimeoutSeconds    int    `mapstructure:"timeout_seconds"`
	RequestsPerSecond int    `mapstructure:"requests_per_second"`
	BurstLimit        int    `mapstructure:"burst_limit"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// ConnectTimeout returns the connect timeout as a duration.
func (c DatabaseConfig) ConnectTimeout() time.Duration {
	return time.Duration(c.ConnectTimeoutSeconds) * time.Second
}

// Validate fails with domain.ErrConfiguration when the connection string is absent.
func (c DatabaseConfig) Validate() error {
	if strings.TrimSpace(c.URI) == "" {
		return fmt.Errorf("%w: DATABASE_URI (or MONGODB_URI) is not set", domain.ErrConfiguration)
	}
	return nil
}

// Timeout returns the outbound request timeout as a duration.
func (c ProxyConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Load loads the configuration from .env files, the config file and environment variables.
func Load() (*Config, error) {
	// .env.local wins over .env; neither is required.
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	return load(viper.New(), "./configs")
}

func load(v *viper.Viper, configPath string) (*Config, error) {
	// Set default values
	v.SetDefault("SERVER.PORT", "8080")
	v.SetDefault("DATABASE.URI", "")
	v.SetDefault("DATABASE.NAME", "")
	v.SetDefault("DATABASE.COLLECTION", "article_data")
	v.SetDefault("DATABASE.COUNT_COLLECTION", "articles")
	v.SetDefault("DATABASE.CONNECT_TIMEOUT_SECONDS", 10)
	v.SetDefault("PROXY.BASE_URL", "http://20.168.59.101:5000")
	v.SetDefault("PROXY.TIMEOUT_SECONDS", 15)
	v.SetDefault("PROXY.REQUESTS_PER_SECOND", 0)
	v.SetDefault("PROXY.BURST_LIMIT", 1)
	v.SetDefault("LOG.LEVEL", "info")
	v.SetDefault("LOG.DEVELOPMENT", false)

	// Load from config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err // Only return error if it's not a "file not found" error
		}
	}

	// Load from environment variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Names used by existing deployments.
	_ = v.BindEnv("DATABASE.URI", "DATABASE_URI", "MONGODB_URI")
	_ = v.BindEnv("DATABASE.NAME", "DATABASE_NAME", "MONGODB_DB")
	_ = v.BindEnv("PROXY.BASE_URL", "PROXY_BASE_URL", "NEXT_PUBLIC_API_URL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
