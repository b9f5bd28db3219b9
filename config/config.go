// Package config loads txbook settings from an optional TOML file, a .env
// file and the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"

	defaultConfigPath = "~/.config/txbook/config.toml"
	defaultDBPath     = "textbooks.db"
	defaultKeyPrefix  = "tx_"
	defaultLogLevel   = "warn"
)

type Config struct {
	Backend      string
	DBPath       string
	RedisURL     string
	RedisTimeout time.Duration
	KeyPrefix    string
	Seed         bool
	LogLevel     string
}

func defaults() Config {
	return Config{
		Backend:      BackendSQLite,
		DBPath:       defaultDBPath,
		RedisTimeout: 3 * time.Second,
		KeyPrefix:    defaultKeyPrefix,
		Seed:         true,
		LogLevel:     defaultLogLevel,
	}
}

// Load builds the configuration. path names a TOML file; empty means the
// default location, which may be absent. A .env file in the working
// directory is loaded into the environment when present.
func Load(path string) (*Config, error) {
	// Missing .env is normal outside development.
	_ = godotenv.Load()

	cfg := defaults()
	if err := readFile(path, &cfg); err != nil {
		return nil, err
	}

	cfg.Backend = strings.ToLower(getEnv("TXBOOK_BACKEND", cfg.Backend))
	cfg.DBPath = getEnv("TXBOOK_DB_PATH", cfg.DBPath)
	cfg.RedisURL = getEnv("TXBOOK_REDIS_URL", cfg.RedisURL)
	cfg.KeyPrefix = getEnv("TXBOOK_KEY_PREFIX", cfg.KeyPrefix)
	cfg.LogLevel = getEnv("TXBOOK_LOG_LEVEL", cfg.LogLevel)
	cfg.Seed = getEnvAsBool("TXBOOK_SEED", cfg.Seed)
	cfg.RedisTimeout = getEnvAsDuration("TXBOOK_REDIS_TIMEOUT", cfg.RedisTimeout)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSQLite:
		if strings.TrimSpace(c.DBPath) == "" {
			return fmt.Errorf("TXBOOK_DB_PATH is required for the sqlite backend")
		}
	case BackendRedis:
		if strings.TrimSpace(c.RedisURL) == "" {
			return fmt.Errorf("TXBOOK_REDIS_URL is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown backend %q (want sqlite or redis)", c.Backend)
	}
	return nil
}

// SlogLevel maps LogLevel onto slog, defaulting to warn.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func readFile(path string, cfg *Config) error {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = defaultConfigPath
	}
	resolved, err := expandPath(path)
	if err != nil {
		return err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Backend      string  `toml:"backend"`
		DBPath       string  `toml:"db_path"`
		RedisURL     string  `toml:"redis_url"`
		RedisTimeout string  `toml:"redis_timeout"`
		KeyPrefix    *string `toml:"key_prefix"`
		Seed         *bool   `toml:"seed"`
		LogLevel     string  `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.Backend); v != "" {
		cfg.Backend = v
	}
	if v := strings.TrimSpace(raw.DBPath); v != "" {
		cfg.DBPath = v
	}
	if v := strings.TrimSpace(raw.RedisURL); v != "" {
		cfg.RedisURL = v
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = v
	}
	// An explicit empty prefix is allowed.
	if raw.KeyPrefix != nil {
		cfg.KeyPrefix = *raw.KeyPrefix
	}
	if raw.Seed != nil {
		cfg.Seed = *raw.Seed
	}
	if v := strings.TrimSpace(raw.RedisTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse config: redis_timeout: %w", err)
		}
		cfg.RedisTimeout = d
	}
	return nil
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}
