package goSession

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Session.Lifetime != 24*time.Hour {
		t.Fatalf("Lifetime = %v, want 24h", cfg.Session.Lifetime)
	}
	if cfg.Trust.MinScore != 3 {
		t.Fatalf("MinScore = %d, want 3", cfg.Trust.MinScore)
	}
	if cfg.Session.CookieName != "session" {
		t.Fatalf("CookieName = %q, want \"session\"", cfg.Session.CookieName)
	}
	if cfg.Session.Secure {
		t.Fatal("Secure should default to false")
	}
}

func TestNormalizeConfigClampsMinScore(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Trust.MinScore = 99
	if got := normalizeConfig(cfg).Trust.MinScore; got != TrustFactorCount {
		t.Fatalf("MinScore clamped to %d, want %d", got, TrustFactorCount)
	}

	cfg.Trust.MinScore = -4
	if got := normalizeConfig(cfg).Trust.MinScore; got != 0 {
		t.Fatalf("MinScore clamped to %d, want 0", got)
	}
}

func TestNormalizeConfigFillsEmptyFields(t *testing.T) {
	got := normalizeConfig(Config{})
	def := DefaultConfig()
	if got.Session.Directory != def.Session.Directory {
		t.Fatalf("Directory = %q, want %q", got.Session.Directory, def.Session.Directory)
	}
	if got.Session.Lifetime != def.Session.Lifetime {
		t.Fatalf("Lifetime = %v, want %v", got.Session.Lifetime, def.Session.Lifetime)
	}
	if got.Session.CookieName != def.Session.CookieName {
		t.Fatalf("CookieName = %q, want %q", got.Session.CookieName, def.Session.CookieName)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SESSION_DIR", "/var/lib/sessions")
	t.Setenv("SESSION_LIFE", "3600000")
	t.Setenv("SESSION_MIN_SCORE", "4")
	t.Setenv("SESSION_COOKIE", "sid")
	t.Setenv("APP_ENV", "production")

	cfg, err := LoadConfigFromEnv()
	if err != nil {
		t.Fatalf("LoadConfigFromEnv failed: %v", err)
	}
	if cfg.Session.Directory != "/var/lib/sessions" {
		t.Fatalf("Directory = %q", cfg.Session.Directory)
	}
	if cfg.Session.Lifetime != time.Hour {
		t.Fatalf("Lifetime = %v, want 1h", cfg.Session.Lifetime)
	}
	if cfg.Trust.MinScore != 4 {
		t.Fatalf("MinScore = %d, want 4", cfg.Trust.MinScore)
	}
	if cfg.Session.CookieName != "sid" {
		t.Fatalf("CookieName = %q, want \"sid\"", cfg.Session.CookieName)
	}
	if !cfg.Session.Secure {
		t.Fatal("production environment should enable Secure cookies")
	}
}

func TestLoadConfigFromEnvDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "staging")

	cfg, err := LoadConfigFromEnv()
	if err != nil {
		t.Fatalf("LoadConfigFromEnv failed: %v", err)
	}
	def := DefaultConfig()
	if cfg.Session.Lifetime != def.Session.Lifetime {
		t.Fatalf("Lifetime = %v, want %v", cfg.Session.Lifetime, def.Session.Lifetime)
	}
	if cfg.Trust.MinScore != def.Trust.MinScore {
		t.Fatalf("MinScore = %d, want %d", cfg.Trust.MinScore, def.Trust.MinScore)
	}
	if cfg.Session.Secure {
		t.Fatal("Secure should stay off outside production")
	}
}

func TestLoadConfigFromEnvRejectsBadLifetime(t *testing.T) {
	t.Setenv("SESSION_LIFE", "-5")

	if _, err := LoadConfigFromEnv(); err == nil {
		t.Fatal("expected error for negative SESSION_LIFE")
	}
}
