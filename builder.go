package goSession

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MrEthical07/goSession/internal"
	"github.com/MrEthical07/goSession/session"
)

// Builder assembles an Engine. Zero value is usable via New; every With
// method returns the builder for chaining.
type Builder struct {
	config    Config
	store     session.Store
	redis     redis.UniversalClient
	users     UserProvider
	auditSink AuditSink
}

// New starts a builder preloaded with DefaultConfig.
func New() *Builder {
	return &Builder{config: DefaultConfig()}
}

// WithConfig replaces the builder's configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithStore installs an explicit session store, overriding both the Redis
// and the file-backed defaults.
func (b *Builder) WithStore(store session.Store) *Builder {
	b.store = store
	return b
}

// WithRedis backs sessions with Redis instead of the filesystem.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithUserProvider wires the lookup used by Engine.StartSessionFor.
func (b *Builder) WithUserProvider(users UserProvider) *Builder {
	b.users = users
	return b
}

// WithAuditSink sets the destination for audit events. Without one, enabled
// auditing discards events through a NoOpSink.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// Build normalizes the configuration, selects the store (explicit store,
// then Redis, then file-backed), verifies the token source, and returns a
// ready Engine.
func (b *Builder) Build() (*Engine, error) {
	cfg := normalizeConfig(b.config)

	// Fail fast if the platform's entropy source is unusable; a session
	// engine that cannot mint tokens has no business starting.
	if _, err := internal.NewToken(); err != nil {
		return nil, fmt.Errorf("%w: token source unusable: %v", ErrEngineNotReady, err)
	}

	store := b.store
	switch {
	case store != nil:
	case b.redis != nil:
		store = session.NewRedisStore(b.redis, cfg.Session.RedisPrefix, cfg.Session.Lifetime)
	default:
		store = session.NewFileStore(cfg.Session.Directory, cfg.Session.Lifetime)
	}

	return &Engine{
		config:  cfg,
		store:   store,
		users:   b.users,
		audit:   newAuditDispatcher(cfg.Audit, b.auditSink),
		metrics: NewMetrics(cfg.Metrics),
	}, nil
}
