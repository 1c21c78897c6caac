package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"
)

// Storage backends
const (
	StorageBackendFile  = "file"
	StorageBackendMongo = "mongo"
)

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host             string `env:"SERVER_HOST" envDefault:"localhost"`
	Port             string `env:"SERVER_PORT" envDefault:"3013"`
	CORSAllowOrigins string `env:"CORS_ALLOW_ORIGINS" envDefault:"*"`
	WebSocketEnabled bool   `env:"WS_ENABLED" envDefault:"true"`
}

// Addr returns host:port for Listen.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

// StorageConfig selects and configures the document backend.
type StorageConfig struct {
	Backend        string `env:"STORAGE_BACKEND" envDefault:"file"`
	DataDir        string `env:"DATA_DIR" envDefault:"./data"`
	LegacyMocksDir string `env:"LEGACY_MOCKS_DIR"`

	MongoDBURI        string `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	MongoDBDatabase   string `env:"MONGODB_DATABASE" envDefault:"metadata_backoffice"`
	MongoDBCollection string `env:"MONGODB_COLLECTION" envDefault:"documents"`
}

// LoggingConfig configures the application logger.
type LoggingConfig struct {
	Backend string `env:"LOG_BACKEND" envDefault:"logrus"`
	Level   string `env:"LOG_LEVEL" envDefault:"info"`
	Format  string `env:"LOG_FORMAT" envDefault:"text"`
}

// Config holds all configuration for the backoffice module.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	Server  ServerConfig
	Storage StorageConfig
	Logging LoggingConfig
	Redis   RedisConfig
}

// LoadConfig loads configuration from environment variables and applies defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, errors.New("failed to load backoffice configuration from environment: " + err.Error())
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host:             "localhost",
			Port:             "3013",
			CORSAllowOrigins: "*",
			WebSocketEnabled: true,
		},
		Storage: StorageConfig{
			Backend:           StorageBackendFile,
			DataDir:           "./data",
			MongoDBURI:        "mongodb://localhost:27017",
			MongoDBDatabase:   "metadata_backoffice",
			MongoDBCollection: "documents",
		},
		Logging: LoggingConfig{
			Backend: "logrus",
			Level:   "info",
			Format:  "text",
		},
		Redis: DefaultRedisConfig(),
	}
}

// Validate normalizes the configuration and rejects unusable values.
func (c *Config) Validate() error {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	switch c.Storage.Backend {
	case StorageBackendFile:
		if c.Storage.DataDir == "" {
			return errors.New("DATA_DIR is required for the file storage backend")
		}
	case StorageBackendMongo:
		if c.Storage.MongoDBURI == "" {
			return errors.New("MONGODB_URI is required for the mongo storage backend")
		}
	default:
		return fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", StorageBackendFile, StorageBackendMongo, c.Storage.Backend)
	}

	if c.Storage.DataDir == "" {
		c.Storage.DataDir = "./data"
	}
	if c.Storage.LegacyMocksDir == "" {
		c.Storage.LegacyMocksDir = filepath.Join(c.Storage.DataDir, "mocks")
	}
	if c.Redis.Enabled && c.Redis.Host == "" {
		return errors.New("REDIS_HOST is required when REDIS_ENABLED is true")
	}
	if c.Redis.StreamName == "" {
		c.Redis.StreamName = "backoffice:changes"
	}
	return nil
}

// IsProduction reports whether error details must be hidden from API callers.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Environment)
	return env == "production" || env == "prod"
}
