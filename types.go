package goSession

import (
	"context"

	"github.com/MrEthical07/goSession/session"
)

// Metadata is the client-presented request context consumed by trust
// scoring: captured once at session start, compared on every authenticated
// request. Empty fields are normalized to the "unknown" sentinel before
// storage and comparison, so two requests that both omit a header still
// match on that field.
type Metadata struct {
	IP             string
	UserAgent      string
	AcceptLanguage string
	Referer        string
	Fingerprint    string
}

func (m Metadata) withDefaults() Metadata {
	if m.IP == "" {
		m.IP = session.UnknownValue
	}
	if m.UserAgent == "" {
		m.UserAgent = session.UnknownValue
	}
	if m.AcceptLanguage == "" {
		m.AcceptLanguage = session.UnknownValue
	}
	if m.Referer == "" {
		m.Referer = session.UnknownValue
	}
	if m.Fingerprint == "" {
		m.Fingerprint = session.UnknownValue
	}
	return m
}

// UserProvider resolves the session-facing slice of a user record — id,
// roles, permissions — at session-start time. Implemented by the host
// application's user repository.
type UserProvider interface {
	SessionUser(ctx context.Context, userID string) (session.User, error)
}
