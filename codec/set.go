package codec

import (
	"reflect"

	"github.com/vmihailenco/msgpack/v5"
)

// Set is an ordered, deduplicating value collection (extension tag 2). The
// wire form is the recursive encoding of the element sequence in insertion
// order; decoding rebuilds the set and silently discards duplicates.
//
// Element equality is millisecond-granular for [DateTime], byte-for-byte for
// [ObjectID], and unordered for nested sets.
type Set struct {
	elems []any
}

// NewSet builds a set from the given elements, dropping duplicates.
func NewSet(elems ...any) *Set {
	s := &Set{}
	for _, v := range elems {
		s.Add(v)
	}
	return s
}

// NewStringSet builds a set of strings, dropping duplicates.
func NewStringSet(elems ...string) *Set {
	s := &Set{}
	for _, v := range elems {
		s.Add(v)
	}
	return s
}

// Add inserts v unless an equal element is already present.
func (s *Set) Add(v any) {
	v = normalizeElement(v)
	if s.Contains(v) {
		return
	}
	s.elems = append(s.elems, v)
}

// Contains reports whether an element equal to v is present.
func (s *Set) Contains(v any) bool {
	if s == nil {
		return false
	}
	v = normalizeElement(v)
	for _, e := range s.elems {
		if equalElements(e, v) {
			return true
		}
	}
	return false
}

// ContainsString reports whether the string v is present.
func (s *Set) ContainsString(v string) bool {
	return s.Contains(v)
}

// Len returns the number of elements.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.elems)
}

// Elements returns the elements in insertion order.
func (s *Set) Elements() []any {
	if s == nil {
		return nil
	}
	out := make([]any, len(s.elems))
	copy(out, s.elems)
	return out
}

// Strings returns the string elements in insertion order, skipping any
// non-string values.
func (s *Set) Strings() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.elems))
	for _, e := range s.elems {
		if str, ok := e.(string); ok {
			out = append(out, str)
		}
	}
	return out
}

// Equal reports whether both sets hold the same elements, ignoring order.
func (s *Set) Equal(other *Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	if s == nil || other == nil {
		return true
	}
	for _, e := range s.elems {
		if !other.Contains(e) {
			return false
		}
	}
	return true
}

// MarshalMsgpack implements the tag-2 extension encoder.
func (s Set) MarshalMsgpack() ([]byte, error) {
	elems := s.elems
	if elems == nil {
		elems = []any{}
	}
	return msgpack.Marshal(elems)
}

// UnmarshalMsgpack implements the tag-2 extension decoder.
func (s *Set) UnmarshalMsgpack(data []byte) error {
	var elems []any
	if err := msgpack.Unmarshal(data, &elems); err != nil {
		return err
	}

	s.elems = nil
	for _, v := range elems {
		s.Add(v)
	}
	return nil
}

// normalizeElement collapses the pointer and value forms the decoder can
// produce so equality checks see one canonical shape: DateTime and ObjectID
// by value, nested sets by pointer.
func normalizeElement(v any) any {
	switch vv := v.(type) {
	case *DateTime:
		if vv != nil {
			return *vv
		}
	case *ObjectID:
		if vv != nil {
			return *vv
		}
	case Set:
		return &vv
	}
	return v
}

func equalElements(a, b any) bool {
	switch av := a.(type) {
	case DateTime:
		bv, ok := b.(DateTime)
		return ok && av.Equal(bv)
	case ObjectID:
		bv, ok := b.(ObjectID)
		return ok && av == bv
	case *Set:
		bv, ok := b.(*Set)
		return ok && av.Equal(bv)
	}
	return reflect.DeepEqual(a, b)
}
