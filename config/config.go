// Package config loads server settings from a TOML file with
// environment overrides.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"github.com/joeshaw/envdecode"
	"github.com/sirupsen/logrus"
)

// Config holds all server configuration.
type Config struct {
	Listen         string `toml:"listen" env:"NINJAMAGIC_LISTEN"`
	DatabaseDSN    string `toml:"database_dsn" env:"NINJAMAGIC_DATABASE_DSN"`
	SessionSecret  string `toml:"session_secret" env:"NINJAMAGIC_SESSION_SECRET"`
	RandomSeed     int64  `toml:"random_seed" env:"NINJAMAGIC_RANDOM_SEED"`
	AllowLocalAuth bool   `toml:"allow_local_auth" env:"NINJAMAGIC_ALLOW_LOCAL_AUTH"`
	LogLevel       string `toml:"log_level" env:"NINJAMAGIC_LOG_LEVEL"`
	LogFormat      string `toml:"log_format" env:"NINJAMAGIC_LOG_FORMAT"`
}

// Default returns a runnable development configuration.
func Default() Config {
	return Config{
		Listen:        ":8000",
		DatabaseDSN:   "file:ninjamagic.db",
		SessionSecret: uuid.NewString(),
		LogLevel:      "warning",
		LogFormat:     "text",
	}
}

// Load reads path (when it exists) over defaults, then applies
// environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return cfg, fmt.Errorf("config: %w", err)
			}
		}
	}
	// envdecode errors only on malformed values; absent vars keep the
	// file's settings.
	if err := envdecode.Decode(&cfg); err != nil && err != envdecode.ErrNoTargetFieldsAreSet {
		return cfg, fmt.Errorf("config: environment: %w", err)
	}
	return cfg, nil
}

// Logger builds the process logger from the config.
func (c Config) Logger() *logrus.Logger {
	log := logrus.New()
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.WarnLevel
	}
	log.SetLevel(level)
	if c.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log
}
