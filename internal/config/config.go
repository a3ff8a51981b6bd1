package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

const (
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type Config struct {
	TelegramToken      string        `env:"TELEGRAM_TOKEN"`
	OwnerChatID        int64         `env:"OWNER_CHAT_ID"`
	SettingsBackend    string        `env:"SETTINGS_BACKEND" envDefault:"file"`
	SettingsPath       string        `env:"SETTINGS_PATH" envDefault:"data/settings.yaml"`
	PersistTimeout     time.Duration `env:"SETTINGS_PERSIST_TIMEOUT" envDefault:"3s"`
	RedisAddr          string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword      string        `env:"REDIS_PASSWORD"`
	RedisDB            int           `env:"REDIS_DB" envDefault:"0"`
	RedisCache         bool          `env:"REDIS_CACHE" envDefault:"false"`
	DBHost             string        `env:"DB_HOST" envDefault:"localhost"`
	DBPort             int           `env:"DB_PORT" envDefault:"5432"`
	DBUser             string        `env:"DB_USER"`
	DBPassword         string        `env:"DB_PASSWORD"`
	DBName             string        `env:"DB_NAME"`
	DBMaxOpenConns     int           `env:"DB_MAX_OPEN_CONNS" envDefault:"5"`
	DBMaxIdleConns     int           `env:"DB_MAX_IDLE_CONNS" envDefault:"2"`
	DBConnMaxLifetime  time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`
	DBConnMaxIdleTime  time.Duration `env:"DB_CONN_MAX_IDLE_TIME" envDefault:"2m"`
	DBConnectTimeout   time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"2m"`
	PresetsURL         string        `env:"PRESETS_URL"`
	PresetsToken       string        `env:"PRESETS_TOKEN"`
	HTTPRequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" envDefault:"10s"`
	ReportsDir         string        `env:"REPORTS_DIR" envDefault:"reports"`
	LogLevel           string        `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, name := range envFiles {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", name, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.SettingsBackend {
	case BackendFile:
		if c.SettingsPath == "" {
			return fmt.Errorf("SETTINGS_PATH is required for the file backend")
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis backend")
		}
	case BackendPostgres:
		if c.DBUser == "" || c.DBName == "" {
			return fmt.Errorf("DB_USER and DB_NAME are required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown SETTINGS_BACKEND %q", c.SettingsBackend)
	}

	if c.PersistTimeout <= 0 {
		return fmt.Errorf("SETTINGS_PERSIST_TIMEOUT must be positive")
	}
	return nil
}

// ValidateBot checks the fields only the Telegram bot needs.
func (c *Config) ValidateBot() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is required")
	}
	if c.OwnerChatID == 0 {
		return fmt.Errorf("OWNER_CHAT_ID is required")
	}
	return nil
}
