package codec

import (
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrMalformedSession is returned when a persisted record cannot be decoded.
var ErrMalformedSession = errors.New("malformed session record")

// ErrMalformedIdentifier is returned when an identifier extension payload is
// not valid hex of the expected length.
var ErrMalformedIdentifier = errors.New("malformed object identifier")

const (
	extDateTime int8 = 0
	extObjectID int8 = 1
	extSet      int8 = 2
)

func init() {
	msgpack.RegisterExt(extDateTime, (*DateTime)(nil))
	msgpack.RegisterExt(extObjectID, (*ObjectID)(nil))
	msgpack.RegisterExt(extSet, (*Set)(nil))
}

// Marshal encodes v into the session wire format.
func Marshal(v any) ([]byte, error) {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("codec: %v", err)
	}
	return data, nil
}

// Unmarshal decodes a persisted record into v. A corrupted or truncated
// buffer fails with [ErrMalformedSession]; an invalid identifier payload
// keeps its more specific [ErrMalformedIdentifier].
func Unmarshal(data []byte, v any) error {
	if err := msgpack.Unmarshal(data, v); err != nil {
		if errors.Is(err, ErrMalformedIdentifier) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrMalformedSession, err)
	}
	return nil
}
