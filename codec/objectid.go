package codec

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"time"
)

const objectIDHexLen = 24

// ObjectID is an opaque 12-byte identifier (extension tag 1). The wire form
// is the UTF-8 bytes of its 24-character lowercase hex representation, not
// the raw bytes.
type ObjectID [12]byte

// NewObjectID returns a fresh identifier: 4 bytes of big-endian Unix seconds
// followed by 8 random bytes.
func NewObjectID() (ObjectID, error) {
	var id ObjectID
	binary.BigEndian.PutUint32(id[:4], uint32(time.Now().Unix()))
	if _, err := rand.Read(id[4:]); err != nil {
		return ObjectID{}, fmt.Errorf("object id entropy: %v", err)
	}
	return id, nil
}

// ObjectIDFromHex parses the 24-character hex form of an identifier.
func ObjectIDFromHex(s string) (ObjectID, error) {
	var id ObjectID
	if len(s) != objectIDHexLen {
		return id, fmt.Errorf("%w: %d hex chars, want %d", ErrMalformedIdentifier, len(s), objectIDHexLen)
	}
	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return id, fmt.Errorf("%w: %v", ErrMalformedIdentifier, err)
	}
	return id, nil
}

// Hex returns the 24-character lowercase hex form.
func (id ObjectID) Hex() string {
	return hex.EncodeToString(id[:])
}

// IsZero reports whether the identifier is all zero bytes.
func (id ObjectID) IsZero() bool {
	return id == ObjectID{}
}

// MarshalMsgpack implements the tag-1 extension encoder.
func (id ObjectID) MarshalMsgpack() ([]byte, error) {
	return []byte(id.Hex()), nil
}

// UnmarshalMsgpack implements the tag-1 extension decoder.
func (id *ObjectID) UnmarshalMsgpack(data []byte) error {
	parsed, err := ObjectIDFromHex(string(data))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
