// Package codec provides the compact binary encoding used for persisted session
// state: MessagePack with three registered extension types.
//
// # Extension types
//
//   - tag 0 [DateTime]: 8 bytes, big-endian IEEE-754 float64 of milliseconds
//     since the Unix epoch.
//   - tag 1 [ObjectID]: the UTF-8 bytes of the 24-character lowercase hex form
//     of a 12-byte identifier.
//   - tag 2 [Set]: the recursive MessagePack encoding of the set's element
//     sequence, so sets of dates, identifiers, and nested sets round-trip.
//
// The registry is closed: these three tags are fixed and exhaustive for the
// session data model. Encode never emits a tag it cannot reconstruct, and
// Decode(Encode(x)) == x for every representable value (dates compared at
// millisecond granularity, sets as unordered value sets, identifiers
// byte-for-byte).
//
// # Architecture boundaries
//
// This package owns the wire format and nothing else. It does NOT read or
// write files, know about tokens, or interpret session semantics — those
// responsibilities belong to the session package.
package codec
