// Package config loads the bot settings from an optional YAML file and the
// environment (including a .env file in the working directory).
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultPath is read when no config file is given; it may be absent
const DefaultPath = "discord-help.yaml"

// Config holds the bot settings
type Config struct {
	Token          string        `yaml:"token"`
	Prefix         string        `yaml:"prefix"`
	BotName        string        `yaml:"bot_name"`
	OwnerIDs       []string      `yaml:"owner_ids"`
	StatusInterval time.Duration `yaml:"status_interval"`
	MetricsAddr    string        `yaml:"metrics_addr"`
	LogLevel       string        `yaml:"log_level"`
	EmbedColor     int           `yaml:"embed_color"`
}

// Default returns the settings used when nothing overrides them
func Default() Config {
	return Config{
		Prefix:         "!",
		StatusInterval: 15 * time.Second,
		LogLevel:       "info",
		EmbedColor:     0x5865F2,
	}
}

// Load reads path (or DefaultPath when empty) and then applies environment
// overrides. An explicitly given path must exist.
func Load(path string) (*Config, error) {
	godotenv.Load()

	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	if _, err := os.Stat(path); err == nil {
		k := koanf.New(".")
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config from %q: %w", path, err)
		}
		if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "yaml"}); err != nil {
			return nil, fmt.Errorf("failed to parse config from %q: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config file %q: %w", path, err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("DISCORD_TOKEN"); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv("BOT_COMMAND_PREFIX"); v != "" {
		cfg.Prefix = v
	}
	if v := os.Getenv("BOT_NICKNAME"); v != "" {
		cfg.BotName = v
	}
	if v := os.Getenv("BOT_OWNER_IDS"); v != "" {
		cfg.OwnerIDs = nil
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				cfg.OwnerIDs = append(cfg.OwnerIDs, id)
			}
		}
	}
	if v := os.Getenv("BOT_STATUS_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid BOT_STATUS_INTERVAL %q: %w", v, err)
		}
		cfg.StatusInterval = d
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	return nil
}

// Validate checks the settings. The token is only needed to connect.
func (c *Config) Validate(requireToken bool) error {
	var errs []error
	if requireToken && c.Token == "" {
		errs = append(errs, errors.New("token is required (set DISCORD_TOKEN)"))
	}
	if strings.TrimSpace(c.Prefix) == "" {
		errs = append(errs, errors.New("prefix must not be empty"))
	}
	if c.StatusInterval <= 0 {
		errs = append(errs, fmt.Errorf("status_interval must be positive, got %s", c.StatusInterval))
	}
	if c.EmbedColor < 0 || c.EmbedColor > 0xFFFFFF {
		errs = append(errs, fmt.Errorf("embed_color out of range: %#x", c.EmbedColor))
	}
	return errors.Join(errs...)
}

// IsOwner reports whether userID is one of the configured owners
func (c *Config) IsOwner(userID string) bool {
	for _, id := range c.OwnerIDs {
		if id == userID {
			return true
		}
	}
	return false
}
