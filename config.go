package goSession

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config defines the engine's tunables. Instances are configured during
// initialization and treated as immutable afterwards.
type Config struct {
	Session SessionConfig
	Trust   TrustConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

// SessionConfig controls session persistence and the issued cookie.
type SessionConfig struct {
	// Directory is the root of the file-backed store's sharded trees.
	Directory string
	// Lifetime is the sliding session lifetime; every successful load
	// pushes the expiry out to now + Lifetime.
	Lifetime time.Duration
	// CookieName is the session cookie's name.
	CookieName string
	// Secure marks issued cookies Secure; set in production-like
	// environments.
	Secure bool
	// RedisPrefix namespaces keys when the store is Redis-backed.
	RedisPrefix string
}

// TrustConfig controls the hijack-resistance check.
type TrustConfig struct {
	// MinScore is the minimum number of the five metadata factors that
	// must match exactly for a request to continue. The default of 3
	// tolerates minor expected drift (dynamic IPs behind proxies) while
	// rejecting replays from a wildly different client context.
	MinScore int
}

// AuditConfig controls the async audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	// DropIfFull drops events under backpressure instead of blocking the
	// request path; drops are counted.
	DropIfFull bool
}

// MetricsConfig controls the engine's counter set.
type MetricsConfig struct {
	Enabled bool
}

// DefaultConfig returns the baseline configuration: 24h sliding lifetime,
// minimum trust score 3, cookie "session", file store under tmp/sessions.
func DefaultConfig() Config {
	return Config{
		Session: SessionConfig{
			Directory:   "tmp/sessions",
			Lifetime:    24 * time.Hour,
			CookieName:  "session",
			RedisPrefix: "gs",
		},
		Trust: TrustConfig{
			MinScore: 3,
		},
		Audit: AuditConfig{
			Enabled:    true,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

func normalizeConfig(cfg Config) Config {
	def := DefaultConfig()
	if cfg.Session.Directory == "" {
		cfg.Session.Directory = def.Session.Directory
	}
	if cfg.Session.Lifetime <= 0 {
		cfg.Session.Lifetime = def.Session.Lifetime
	}
	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = def.Session.CookieName
	}
	if cfg.Session.RedisPrefix == "" {
		cfg.Session.RedisPrefix = def.Session.RedisPrefix
	}
	if cfg.Trust.MinScore < 0 {
		cfg.Trust.MinScore = 0
	}
	if cfg.Trust.MinScore > TrustFactorCount {
		cfg.Trust.MinScore = TrustFactorCount
	}
	if cfg.Audit.BufferSize <= 0 {
		cfg.Audit.BufferSize = def.Audit.BufferSize
	}
	return cfg
}

// LoadConfigFromEnv builds a Config from the environment, reading an
// optional .env file first (missing .env is fine, e.g. in CI; real env vars
// win). Recognized variables:
//
//	SESSION_DIR        store root directory (default tmp/sessions)
//	SESSION_LIFE       session lifetime in milliseconds (default 86400000)
//	SESSION_MIN_SCORE  minimum trust score (default 3)
//	SESSION_COOKIE     session cookie name (default "session")
//	APP_ENV            "production" enables Secure cookies
func LoadConfigFromEnv() (Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	def := DefaultConfig()
	v.SetDefault("SESSION_DIR", def.Session.Directory)
	v.SetDefault("SESSION_LIFE", def.Session.Lifetime.Milliseconds())
	v.SetDefault("SESSION_MIN_SCORE", def.Trust.MinScore)
	v.SetDefault("SESSION_COOKIE", def.Session.CookieName)
	v.SetDefault("APP_ENV", "")

	life := v.GetInt64("SESSION_LIFE")
	if life <= 0 {
		return Config{}, fmt.Errorf("config: SESSION_LIFE must be a positive millisecond count, got %d", life)
	}

	cfg := def
	cfg.Session.Directory = v.GetString("SESSION_DIR")
	cfg.Session.Lifetime = time.Duration(life) * time.Millisecond
	cfg.Session.CookieName = v.GetString("SESSION_COOKIE")
	cfg.Session.Secure = v.GetString("APP_ENV") == "production"
	cfg.Trust.MinScore = v.GetInt("SESSION_MIN_SCORE")

	return normalizeConfig(cfg), nil
}
