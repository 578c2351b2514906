package codec

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"
)

// DateTime is a timestamp with millisecond wire granularity (extension tag 0).
// The payload is always exactly 8 bytes: a big-endian IEEE-754 float64 of
// milliseconds since the Unix epoch, the same layout on encode and decode.
type DateTime struct {
	time.Time
}

// NewDateTime truncates t to millisecond precision so that a value and its
// decoded round-trip compare equal.
func NewDateTime(t time.Time) DateTime {
	return DateTime{Time: time.UnixMilli(t.UnixMilli())}
}

// Now returns the current time at millisecond precision.
func Now() DateTime {
	return NewDateTime(time.Now())
}

// Equal reports whether both values name the same millisecond.
func (d DateTime) Equal(other DateTime) bool {
	return d.UnixMilli() == other.UnixMilli()
}

// MarshalMsgpack implements the tag-0 extension encoder.
func (d DateTime) MarshalMsgpack() ([]byte, error) {
	payload := make([]byte, 8)
	binary.BigEndian.PutUint64(payload, math.Float64bits(float64(d.UnixMilli())))
	return payload, nil
}

// UnmarshalMsgpack implements the tag-0 extension decoder.
func (d *DateTime) UnmarshalMsgpack(data []byte) error {
	if len(data) != 8 {
		return fmt.Errorf("%w: date payload is %d bytes, want 8", ErrMalformedSession, len(data))
	}

	millis := math.Float64frombits(binary.BigEndian.Uint64(data))
	d.Time = time.UnixMilli(int64(millis))
	return nil
}
