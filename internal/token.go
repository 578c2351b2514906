package internal

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const (
	tokenRawSize = 16

	// TokenHexLen is the length of a session token: 16 random bytes as hex.
	TokenHexLen = 32
	// UserIDHexLen is the length of a user identifier: 12 bytes as hex.
	UserIDHexLen = 24
)

// NewToken returns a fresh session token: 32 lowercase hex characters from
// 16 cryptographically random bytes. Tokens double as bearer credentials, so
// the entropy source is crypto/rand and a read failure is surfaced rather
// than papered over — callers treat it as fatal.
func NewToken() (string, error) {
	var raw [tokenRawSize]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return "", fmt.Errorf("token entropy: %v", err)
	}
	return hex.EncodeToString(raw[:]), nil
}

// ValidToken reports whether s has the exact shape of a session token.
// Tokens arrive from cookies and headers and are used to derive filesystem
// paths, so anything but 32 lowercase hex characters is rejected before it
// touches storage.
func ValidToken(s string) bool {
	return len(s) == TokenHexLen && isLowerHex(s)
}

// ValidUserID reports whether s has the exact shape of a user identifier in
// hex form.
func ValidUserID(s string) bool {
	return len(s) == UserIDHexLen && isLowerHex(s)
}

func isLowerHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
