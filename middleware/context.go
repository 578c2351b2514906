package middleware

import (
	"context"

	"github.com/MrEthical07/goSession/session"
)

type contextKey struct{}

var sessionKey contextKey

func withSession(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// SessionFromContext returns the session attached by Guard, or nil when the
// request did not pass through an authenticated route.
func SessionFromContext(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(sessionKey).(*session.Session)
	return sess
}
