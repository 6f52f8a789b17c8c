// Package config loads server configuration from file, environment and
// defaults, in that priority order.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds everything the server needs at startup.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Game   GameConfig   `mapstructure:"game"`
}

// ServerConfig covers the HTTP/WebSocket surface and persistence.
type ServerConfig struct {
	Addr   string `mapstructure:"addr"`
	DBPath string `mapstructure:"db_path"`
}

// GameConfig covers run parameters.
type GameConfig struct {
	// Seed for the order spawner; 0 seeds from the wall clock.
	Seed int64 `mapstructure:"seed"`
	// PlayerName is written to the leaderboard at game end.
	PlayerName string `mapstructure:"player_name"`
}

// LoadConfig loads configuration with priority:
// 1. Environment variables (KM_ prefix, highest)
// 2. Config file (config.yaml)
// 3. Defaults (lowest)
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (doesn't error if missing)
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix("KM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file is optional - env vars and defaults suffice.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.DBPath == "" {
		cfg.Server.DBPath = "kitchen.db"
	}
	if cfg.Game.PlayerName == "" {
		cfg.Game.PlayerName = "店长"
	}
}

func validate(cfg *Config) error {
	if !strings.Contains(cfg.Server.Addr, ":") {
		return fmt.Errorf("server.addr %q must be host:port", cfg.Server.Addr)
	}
	if cfg.Game.Seed < 0 {
		return fmt.Errorf("game.seed must be non-negative, got %d", cfg.Game.Seed)
	}
	return nil
}
