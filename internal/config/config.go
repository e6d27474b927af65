package config

import (
	"fmt"
	"sync"

	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	// Backend selects the storage implementation: "sqlite" or "memory".
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
	LogMode bool   `mapstructure:"log_mode"`
}

type SessionConfig struct {
	TTLDays int `mapstructure:"ttl_days"`
}

type SecurityConfig struct {
	// PasswordScheme selects how account passwords are stored:
	// "pbkdf2" (salted hash) or "plain".
	PasswordScheme string `mapstructure:"password_scheme"`
}

type SeedConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Session  SessionConfig  `mapstructure:"session"`
	Security SecurityConfig `mapstructure:"security"`
	Seed     SeedConfig     `mapstructure:"seed"`
	Log      LogConfig      `mapstructure:"log"`
}

var (
	appConfig *Config
	once      sync.Once
)

// Load loads configuration from the given file path (e.g. "config.yaml").
// If path is empty, it defaults to "config.yaml" in the current working
// directory.
func Load(path string) (*Config, error) {
	var err error
	once.Do(func() {
		v := viper.New()

		if path == "" {
			v.SetConfigName("config")
			v.SetConfigType("yaml")
			v.AddConfigPath(".")
		} else {
			v.SetConfigFile(path)
		}

		v.SetDefault("database.backend", "sqlite")
		v.SetDefault("database.path", "data/catalog.db")
		v.SetDefault("session.ttl_days", 30)
		v.SetDefault("security.password_scheme", "pbkdf2")
		v.SetDefault("seed.enabled", true)
		v.SetDefault("log.level", "info")

		// environment overrides, e.g. CINE_DATABASE_PATH=/tmp/catalog.db
		v.SetEnvPrefix("CINE")
		v.AutomaticEnv()

		if err = v.ReadInConfig(); err != nil {
			err = fmt.Errorf("read config: %w", err)
			return
		}

		var c Config
		if err = v.Unmarshal(&c); err != nil {
			err = fmt.Errorf("unmarshal config: %w", err)
			return
		}

		appConfig = &c
	})

	if err != nil {
		return nil, err
	}
	return appConfig, nil
}

// Get returns the loaded global configuration.
// Call Load() once at application startup.
func Get() *Config {
	return appConfig
}
