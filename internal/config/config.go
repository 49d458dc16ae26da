// Package config loads the bot's process-wide configuration from a yaml
// file and KITSCHBOT_* environment overrides.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the process-wide configuration. The scheduler tick interval and
// recurrence walk bound are implementation constants, not configuration.
type Config struct {
	DiscordToken string `mapstructure:"discord_token"`
	Timezone     string `mapstructure:"timezone"`
	DatabaseURL  string `mapstructure:"database_url"`
	LogLevel     string `mapstructure:"log_level"`
}

// Load reads kitschbot.yaml from the working directory (if present) and
// applies environment overrides. A missing config file is fine; missing
// required values surface later (token resolution, timezone parse).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("kitschbot")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/kitschbot")

	setDefaults(v)

	v.SetEnvPrefix("KITSCHBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("timezone", "UTC")
	v.SetDefault("database_url", "sqlite://./kitschbot.db")
	v.SetDefault("log_level", "info")
}

// Location resolves the configured IANA timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
