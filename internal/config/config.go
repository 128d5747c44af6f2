package config

import (
	"fmt"
	"time"

	"katalog/pkg/database"
	"katalog/pkg/logger"
	"katalog/pkg/rabbitmq"

	"github.com/spf13/viper"
)

// DriverMemory keeps products in process memory instead of a SQL database.
const DriverMemory = "memory"

// Config is the complete runtime configuration.
type Config struct {
	App      AppConfig
	Log      logger.Config
	Database database.Config
	RabbitMQ rabbitmq.Config
	// AutoMigrate creates the products table on startup.
	AutoMigrate bool
	// Seed inserts sample products into an empty catalog on startup.
	Seed bool
}

// AppConfig holds the HTTP server settings.
type AppConfig struct {
	Name            string
	Port            string
	ShutdownTimeout time.Duration
}

// EventsEnabled reports whether a broker URL was configured.
func (c *Config) EventsEnabled() bool {
	return c.RabbitMQ.URL != ""
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("APP_NAME", "katalog")
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", logger.FormatConsole)
	v.SetDefault("DB_DRIVER", database.DriverSQLite)
	v.SetDefault("DATABASE_DSN", "katalog.db")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("DB_SEED", false)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_QUEUE", rabbitmq.DefaultQueue)
	v.AutomaticEnv()

	shutdownTimeout, err := parseDuration(v, "SHUTDOWN_TIMEOUT")
	if err != nil {
		return nil, err
	}
	connMaxLifetime, err := parseDuration(v, "DB_CONN_MAX_LIFETIME")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:            v.GetString("APP_NAME"),
			Port:            v.GetString("APP_PORT"),
			ShutdownTimeout: shutdownTimeout,
		},
		Log: logger.Config{
			Level:   v.GetString("LOG_LEVEL"),
			Format:  v.GetString("LOG_FORMAT"),
			Service: v.GetString("APP_NAME"),
		},
		Database: database.Config{
			Driver:          v.GetString("DB_DRIVER"),
			DSN:             v.GetString("DATABASE_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		RabbitMQ: rabbitmq.Config{
			URL:   v.GetString("RABBITMQ_URL"),
			Queue: v.GetString("RABBITMQ_QUEUE"),
		},
		AutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),
		Seed:        v.GetBool("DB_SEED"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case database.DriverPostgres, database.DriverSQLite:
		if c.Database.DSN == "" {
			return fmt.Errorf("DATABASE_DSN is required for driver %s", c.Database.Driver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.App.Port == "" {
		return fmt.Errorf("APP_PORT is required")
	}
	return nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
