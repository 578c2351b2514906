package goSession

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrEthical07/goSession/codec"
	"github.com/MrEthical07/goSession/internal"
	"github.com/MrEthical07/goSession/session"
)

// TrustFactorCount is the number of client metadata factors compared by the
// trust scorer: ip, user agent, accept-language, referer, fingerprint.
const TrustFactorCount = 5

// Engine is the session subsystem's public surface: it starts sessions,
// authenticates requests against stored session metadata, and destroys
// sessions singly or in bulk. Construct it through [Builder.Build]; methods
// are safe for concurrent use afterwards.
type Engine struct {
	config  Config
	store   session.Store
	users   UserProvider
	audit   *auditDispatcher
	metrics *Metrics
}

// Config returns the engine's normalized configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Close drains and stops the audit dispatcher.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	e.audit.Close()
}

// AuditDropped returns the number of audit events dropped under
// backpressure.
func (e *Engine) AuditDropped() uint64 {
	if e == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot returns a point-in-time copy of the engine's counters.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) ready() error {
	if e == nil || e.store == nil {
		return ErrEngineNotReady
	}
	return nil
}

// StartSession builds a session for user with a freshly generated token,
// captures the request metadata and timestamps, persists and indexes it, and
// returns it. A failed write surfaces [session.ErrStorageFailure] and leaves
// nothing visibly indexed.
func (e *Engine) StartSession(ctx context.Context, meta Metadata, user session.User) (*session.Session, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	if user.ID.IsZero() {
		return nil, fmt.Errorf("%w: session user has no id", session.ErrStorageFailure)
	}

	token, err := internal.NewToken()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", session.ErrStorageFailure, err)
	}

	meta = meta.withDefaults()
	now := codec.Now()
	sess := &session.Session{
		Token:          token,
		User:           user,
		IP:             meta.IP,
		UserAgent:      meta.UserAgent,
		AcceptLanguage: meta.AcceptLanguage,
		Referer:        meta.Referer,
		Fingerprint:    meta.Fingerprint,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := e.store.Save(ctx, sess); err != nil {
		e.metrics.Inc(MetricStorageFailure)
		e.emitSessionEvent(ctx, AuditSessionStarted, sess, 0, err)
		return nil, err
	}

	e.metrics.Inc(MetricSessionStarted)
	e.emitSessionEvent(ctx, AuditSessionStarted, sess, 0, nil)
	return sess, nil
}

// StartSessionFor resolves userID through the configured [UserProvider] and
// starts a session for the result.
func (e *Engine) StartSessionFor(ctx context.Context, meta Metadata, userID string) (*session.Session, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	if e.users == nil {
		return nil, fmt.Errorf("%w: no user provider configured", ErrEngineNotReady)
	}

	user, err := e.users.SessionUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return e.StartSession(ctx, meta, user)
}

// Authenticate validates the claimed session token against the live request
// metadata. The stored session must exist, be unexpired, and match the
// request on at least MinScore of the five trust factors; every failure mode
// up to that point presents identically as [ErrUnauthenticated]. When
// requiredPermission is non-empty the session's user must carry it or the
// call fails with [ErrForbidden]. On success the session has already been
// re-persisted with a refreshed expiry.
func (e *Engine) Authenticate(ctx context.Context, token string, meta Metadata, requiredPermission string) (*session.Session, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}

	meta = meta.withDefaults()

	if token == "" {
		e.metrics.Inc(MetricAuthMissingToken)
		e.emitAuthEvent(ctx, meta, nil, 0, ErrUnauthenticated)
		return nil, ErrUnauthenticated
	}

	sess, err := e.store.Get(ctx, token)
	if err != nil {
		if errors.Is(err, session.ErrSessionExpired) {
			e.metrics.Inc(MetricAuthRejected)
			e.emitAuthEvent(ctx, meta, nil, 0, ErrUnauthenticated)
			return nil, ErrUnauthenticated
		}
		e.metrics.Inc(MetricStorageFailure)
		return nil, err
	}
	e.metrics.Inc(MetricSessionRefreshed)

	score := e.Score(sess, meta)
	e.metrics.ObserveScore(score)
	if score < e.config.Trust.MinScore {
		e.metrics.Inc(MetricAuthLowScore)
		e.emitAuthEvent(ctx, meta, sess, score, ErrUnauthenticated)
		return nil, ErrUnauthenticated
	}

	if requiredPermission != "" && !sess.User.HasPermission(requiredPermission) {
		e.metrics.Inc(MetricAuthForbidden)
		e.emitAuthEvent(ctx, meta, sess, score, ErrForbidden)
		return nil, ErrForbidden
	}

	e.metrics.Inc(MetricAuthSuccess)
	e.emitAuthEvent(ctx, meta, sess, score, nil)
	return sess, nil
}

// Score counts how many of the five trust factors in meta exactly equal the
// values captured at session start. Maximum TrustFactorCount.
func (e *Engine) Score(sess *session.Session, meta Metadata) int {
	meta = meta.withDefaults()

	score := 0
	if sess.IP == meta.IP {
		score++
	}
	if sess.UserAgent == meta.UserAgent {
		score++
	}
	if sess.AcceptLanguage == meta.AcceptLanguage {
		score++
	}
	if sess.Referer == meta.Referer {
		score++
	}
	if sess.Fingerprint == meta.Fingerprint {
		score++
	}
	return score
}

// Destroy removes a single session: index entry first, then the record.
// A session that is already gone is not an error.
func (e *Engine) Destroy(ctx context.Context, sess *session.Session) error {
	if err := e.ready(); err != nil {
		return err
	}

	if err := e.store.Destroy(ctx, sess); err != nil {
		e.metrics.Inc(MetricStorageFailure)
		e.emitSessionEvent(ctx, AuditSessionDestroyed, sess, 0, err)
		return err
	}

	e.metrics.Inc(MetricSessionDestroyed)
	e.emitSessionEvent(ctx, AuditSessionDestroyed, sess, 0, nil)
	return nil
}

// DestroyAll revokes every session of the given user (hex id): password
// reset, email change or revert, and account deletion all force a global
// logout. Individual failures do not stop remaining deletions; the destroyed
// count and the joined failures are both reported.
func (e *Engine) DestroyAll(ctx context.Context, userID string) (int, error) {
	if err := e.ready(); err != nil {
		return 0, err
	}

	destroyed, err := e.store.DestroyAll(ctx, userID)

	e.metrics.Add(MetricSessionsRevoked, uint64(destroyed))
	e.metrics.Inc(MetricRevokeAll)
	if err != nil {
		e.metrics.Inc(MetricStorageFailure)
	}

	event := newAuditEvent(AuditSessionsRevoked)
	event.UserID = userID
	event.Revoked = destroyed
	event.Success = err == nil
	if err != nil {
		event.Error = err.Error()
	}
	e.audit.Emit(ctx, event)

	return destroyed, err
}

// ActiveTokens lists the tokens currently indexed for the given user.
func (e *Engine) ActiveTokens(ctx context.Context, userID string) ([]string, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	return e.store.UserTokens(ctx, userID)
}

func (e *Engine) emitSessionEvent(ctx context.Context, eventType string, sess *session.Session, score int, err error) {
	event := newAuditEvent(eventType)
	event.UserID = sess.User.ID.Hex()
	event.TokenPrefix = tokenPrefix(sess.Token)
	event.IP = sess.IP
	event.Score = score
	event.Success = err == nil
	if err != nil {
		event.Error = err.Error()
	}
	e.audit.Emit(ctx, event)
}

func (e *Engine) emitAuthEvent(ctx context.Context, meta Metadata, sess *session.Session, score int, err error) {
	event := newAuditEvent(AuditAuthenticated)
	event.IP = meta.IP
	event.Score = score
	event.Success = err == nil
	if sess != nil {
		event.UserID = sess.User.ID.Hex()
		event.TokenPrefix = tokenPrefix(sess.Token)
	}
	if err != nil {
		event.Error = err.Error()
	}
	e.audit.Emit(ctx, event)
}

func tokenPrefix(token string) string {
	if len(token) < 6 {
		return token
	}
	return token[:6]
}
