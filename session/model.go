package session

import (
	"time"

	"github.com/MrEthical07/goSession/codec"
)

// UnknownValue is recorded for any client metadata field the request did not
// present. Trust scoring compares these like any other value, so two requests
// that both omit a header still match on that field.
const UnknownValue = "unknown"

// User carries the slice of the principal the session subsystem needs: the
// immutable identifier plus the authorization attributes consumed by trust
// scoring and permission checks. It is not the full user record.
type User struct {
	ID          codec.ObjectID `msgpack:"_id"`
	Roles       *codec.Set     `msgpack:"roles"`
	Permissions *codec.Set     `msgpack:"permissions"`
}

// HasPermission reports whether the user carries the named permission.
func (u User) HasPermission(name string) bool {
	return u.Permissions.ContainsString(name)
}

// HasRole reports whether the user carries the named role.
func (u User) HasRole(name string) bool {
	return u.Roles.ContainsString(name)
}

// Is reports whether the user is the principal identified by ownerHex. Used
// by owner-or-permission policies built on top of Authenticate.
func (u User) Is(ownerHex string) bool {
	return !u.ID.IsZero() && u.ID.Hex() == ownerHex
}

// Session represents one authenticated client-device pairing. The token is
// both the unique identifier and the storage key; the client metadata fields
// are captured once at session start and compared against live requests by
// the trust scorer.
type Session struct {
	Token string `msgpack:"token"`
	User  User   `msgpack:"user"`

	IP             string `msgpack:"ip"`
	UserAgent      string `msgpack:"agent"`
	AcceptLanguage string `msgpack:"lang"`
	Referer        string `msgpack:"referer"`
	Fingerprint    string `msgpack:"fingerprint"`

	CreatedAt codec.DateTime `msgpack:"createdAt"`
	UpdatedAt codec.DateTime `msgpack:"updatedAt"`
	ExpiresAt codec.DateTime `msgpack:"expiresAt"`
}

// Expired reports whether the session's expiry has elapsed at now. A session
// is valid only while ExpiresAt is strictly in the future.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// touch refreshes the sliding expiry: every persist moves ExpiresAt to
// now + lifetime and stamps UpdatedAt.
func (s *Session) touch(now time.Time, lifetime time.Duration) {
	s.UpdatedAt = codec.NewDateTime(now)
	s.ExpiresAt = codec.NewDateTime(now.Add(lifetime))
}
