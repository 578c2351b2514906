package session

import (
	"context"
	"errors"
)

// ErrSessionExpired is returned when a session is absent, undecodable, or
// past its expiry. The three cases are deliberately indistinguishable: a
// corrupted or missing record must present to the end user exactly like an
// expired one.
var ErrSessionExpired = errors.New("session expired")

// ErrStorageFailure is returned when the underlying store cannot complete a
// write or delete.
var ErrStorageFailure = errors.New("session storage failure")

// Store is the persistence contract the Engine is built against. It is
// injected explicitly (no process-wide store handle) so tests can substitute
// a temp-directory FileStore or a miniredis-backed RedisStore.
type Store interface {
	// Save persists sess with a refreshed sliding expiry and registers its
	// token in the owning user's index. A failed save must not leave the
	// token visibly indexed.
	Save(ctx context.Context, sess *Session) error

	// Get loads the session for token, re-persisting it with a refreshed
	// expiry before returning (touch on access). Absent, corrupted, and
	// expired records fail with ErrSessionExpired; corrupted and expired
	// records are deleted as a side effect.
	Get(ctx context.Context, token string) (*Session, error)

	// Destroy removes the session's token from its user's index and deletes
	// the session record. A missing record is not an error.
	Destroy(ctx context.Context, sess *Session) error

	// UserTokens lists the tokens currently indexed for userID (hex form).
	// A user with no index yet yields an empty list, not an error.
	UserTokens(ctx context.Context, userID string) ([]string, error)

	// DestroyAll deletes every session indexed for userID and clears the
	// index, continuing past individual failures. It returns the number of
	// sessions destroyed and the joined per-token failures, if any.
	DestroyAll(ctx context.Context, userID string) (int, error)
}
