package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string  `mapstructure:"env"` // current application environment (local, dev, prod etc)
	TelegramAPIToken string  `mapstructure:"-"`   // Telegram API token loaded from environment
	Poll             Poll    `mapstructure:"poll"`
	DB               DB      `mapstructure:"database"`
	Redis            Redis   `mapstructure:"redis"`
	Session          Session `mapstructure:"session"`
}

// Poll controls the update-dispatch loop.
type Poll struct {
	Timeout    int           `mapstructure:"timeout"`     // long-poll timeout in seconds passed to getUpdates
	Interval   time.Duration `mapstructure:"interval"`    // pause between successful poll cycles
	RetryDelay time.Duration `mapstructure:"retry_delay"` // pause after a failed poll before retrying
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Redis configures the optional Redis-backed session store. When Addr is
// empty sessions are kept in process memory.
type Redis struct {
	Addr     string `mapstructure:"-"`
	Password string `mapstructure:"-"`
	DB       int    `mapstructure:"db"`
}

// Session controls quiz session retention.
type Session struct {
	TTL       time.Duration `mapstructure:"ttl"`        // idle session lifetime
	SweepSpec string        `mapstructure:"sweep_spec"` // cron spec for the in-memory sweep
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("poll.timeout", 30)
	v.SetDefault("poll.interval", "1s")
	v.SetDefault("poll.retry_delay", "1s")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("redis.db", 0)
	v.SetDefault("session.ttl", "24h")
	v.SetDefault("session.sweep_spec", "0 * * * *")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("redis_addr", "REDIS_ADDR")
	_ = v.BindEnv("redis_password", "REDIS_PASSWORD")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	cfg.DB.URL = v.GetString("database_url")
	if cfg.DB.URL == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	// Redis is optional; sessions fall back to process memory without it.
	cfg.Redis.Addr = v.GetString("redis_addr")
	cfg.Redis.Password = v.GetString("redis_password")

	return &cfg, nil
}
