package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{"TXBOOK_BACKEND", "TXBOOK_DB_PATH", "TXBOOK_REDIS_URL", "TXBOOK_KEY_PREFIX", "TXBOOK_LOG_LEVEL", "TXBOOK_SEED", "TXBOOK_REDIS_TIMEOUT"} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Backend != BackendSQLite {
		t.Fatalf("Backend = %q, want %q", cfg.Backend, BackendSQLite)
	}
	if cfg.DBPath != defaultDBPath {
		t.Fatalf("DBPath = %q, want %q", cfg.DBPath, defaultDBPath)
	}
	if cfg.KeyPrefix != "tx_" {
		t.Fatalf("KeyPrefix = %q", cfg.KeyPrefix)
	}
	if !cfg.Seed {
		t.Fatalf("Seed should default to true")
	}
	if cfg.SlogLevel() != slog.LevelWarn {
		t.Fatalf("SlogLevel = %v", cfg.SlogLevel())
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "txbook.toml")
	body := "backend = \"redis\"\nredis_url = \"redis://localhost:6379/1\"\nredis_timeout = \"750ms\"\nkey_prefix = \"\"\nseed = false\nlog_level = \"debug\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Backend != BackendRedis || cfg.RedisURL != "redis://localhost:6379/1" {
		t.Fatalf("unexpected redis settings: %+v", cfg)
	}
	if cfg.RedisTimeout != 750*time.Millisecond {
		t.Fatalf("RedisTimeout = %v", cfg.RedisTimeout)
	}
	if cfg.KeyPrefix != "" || cfg.Seed {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Fatalf("SlogLevel = %v", cfg.SlogLevel())
	}

	t.Setenv("TXBOOK_BACKEND", "SQLite")
	t.Setenv("TXBOOK_DB_PATH", "/tmp/other.db")
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Backend != BackendSQLite || cfg.DBPath != "/tmp/other.db" {
		t.Fatalf("env did not override file: %+v", cfg)
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected error for missing explicit config")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"sqlite ok", Config{Backend: BackendSQLite, DBPath: "x.db"}, false},
		{"sqlite no path", Config{Backend: BackendSQLite}, true},
		{"redis no url", Config{Backend: BackendRedis}, true},
		{"redis ok", Config{Backend: BackendRedis, RedisURL: "redis://localhost:6379"}, false},
		{"unknown", Config{Backend: "mongo"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
