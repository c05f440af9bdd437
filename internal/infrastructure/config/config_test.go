package config

import (
	"context"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Fatalf("unexpected default port: %s", cfg.Port)
	}
	if cfg.SessionTTL != 12*time.Hour {
		t.Fatalf("unexpected default session TTL: %s", cfg.SessionTTL)
	}
	if !cfg.SessionSliding {
		t.Fatalf("sliding sessions should default on")
	}
	if cfg.CookieName != "inv_session" {
		t.Fatalf("unexpected default cookie name: %s", cfg.CookieName)
	}
	if cfg.BcryptCost != 12 {
		t.Fatalf("unexpected default bcrypt cost: %d", cfg.BcryptCost)
	}
	if cfg.Mongo.Database != "inventory" {
		t.Fatalf("unexpected default database: %s", cfg.Mongo.Database)
	}
	if cfg.Redis.Addr != "" {
		t.Fatalf("redis should default to unset, got %s", cfg.Redis.Addr)
	}
}

func TestLoad_MissingMongoURI(t *testing.T) {
	// Required connection parameters missing must be a startup error.
	t.Setenv("MONGO_URI", "")

	if _, err := Load(context.Background()); err == nil {
		t.Fatalf("expected error for missing MONGO_URI")
	}
}

func TestLoad_InvalidBcryptCost(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("BCRYPT_COST", "99")

	if _, err := Load(context.Background()); err == nil {
		t.Fatalf("expected error for out-of-range bcrypt cost")
	}
}

func TestConfig_SecureCookies(t *testing.T) {
	cases := []struct {
		env    string
		secure bool
		want   bool
	}{
		{"development", false, false},
		{"development", true, true},
		{"production", false, true},
	}
	for _, tc := range cases {
		cfg := &Config{Env: tc.env, CookieSecure: tc.secure}
		if got := cfg.SecureCookies(); got != tc.want {
			t.Fatalf("SecureCookies(env=%s, override=%v) = %v, want %v", tc.env, tc.secure, got, tc.want)
		}
	}
}
