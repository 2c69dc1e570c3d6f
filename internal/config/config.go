// Package config loads server configuration from a YAML file with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the top-level server configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Battle   BattleConfig   `mapstructure:"battle"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig configures the WebSocket listener.
type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	WriteBuffer     int           `mapstructure:"write_buffer"`
}

// DatabaseConfig configures the PostgreSQL battle store. An empty URL runs
// the server without persistence.
type DatabaseConfig struct {
	URL         string        `mapstructure:"url"`
	MaxConns    int32         `mapstructure:"max_conns"`
	ConnTimeout time.Duration `mapstructure:"conn_timeout"`
}

// BattleConfig carries the default battle parameters.
type BattleConfig struct {
	PointTarget     int  `mapstructure:"point_target"`
	OpeningHandSize int  `mapstructure:"opening_hand_size"`
	WithMulligan    bool `mapstructure:"with_mulligan"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from path, if present, applying defaults and
// EMBERFALL_* environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.write_buffer", 256)
	v.SetDefault("database.url", "")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.conn_timeout", 5*time.Second)
	v.SetDefault("battle.point_target", 25)
	v.SetDefault("battle.opening_hand_size", 5)
	v.SetDefault("battle.with_mulligan", true)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetEnvPrefix("EMBERFALL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Battle.PointTarget <= 0 {
		return nil, fmt.Errorf("battle.point_target must be positive, got %d", cfg.Battle.PointTarget)
	}
	if cfg.Battle.OpeningHandSize <= 0 {
		return nil, fmt.Errorf("battle.opening_hand_size must be positive, got %d", cfg.Battle.OpeningHandSize)
	}
	return &cfg, nil
}
