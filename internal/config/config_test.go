package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Port:          "8080",
		StoreBackend:  "memory",
		SQLiteDBPath:  "./data/shuttersync.db",
		SessionSecret: "secret",
		SessionTTL:    time.Hour,
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("default port = %q", cfg.Port)
	}
	if cfg.StoreBackend != "memory" {
		t.Fatalf("default backend = %q", cfg.StoreBackend)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Fatalf("default session TTL = %v", cfg.SessionTTL)
	}
	if cfg.FeedURL != "" {
		t.Fatalf("feed enabled by default: %q", cfg.FeedURL)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_BACKEND", "sqlite")
	t.Setenv("SESSION_TTL", "30m")

	cfg := Load()
	if cfg.Port != "9090" || cfg.StoreBackend != "sqlite" {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Fatalf("session TTL = %v", cfg.SessionTTL)
	}
}

func TestLoadIgnoresBadDuration(t *testing.T) {
	t.Setenv("SESSION_TTL", "soon")
	if cfg := Load(); cfg.SessionTTL != 24*time.Hour {
		t.Fatalf("bad duration not ignored: %v", cfg.SessionTTL)
	}
}

func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{"non-numeric port", func(c *Config) { c.Port = "abc" }, "invalid port"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "invalid port"},
		{"bad backend", func(c *Config) { c.StoreBackend = "redis" }, "store backend"},
		{"sqlite without path", func(c *Config) { c.StoreBackend = "sqlite"; c.SQLiteDBPath = " " }, "SQLITE_DB_PATH"},
		{"missing secret", func(c *Config) { c.SessionSecret = "" }, "SESSION_SECRET"},
		{"non-positive ttl", func(c *Config) { c.SessionTTL = 0 }, "TTL must be positive"},
	}
	for _, tc := range cases {
		cfg := validConfig()
		tc.mutate(cfg)
		err := cfg.Validate()
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !strings.Contains(err.Error(), tc.wantMsg) {
			t.Fatalf("%s: error %q missing %q", tc.name, err, tc.wantMsg)
		}
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := &Config{Port: "abc", StoreBackend: "redis", SessionTTL: -1}
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected error")
	}
	for _, want := range []string{"invalid port", "store backend", "SESSION_SECRET", "TTL"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q missing %q", err, want)
		}
	}
}
