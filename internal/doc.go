// Package internal contains helpers that are intentionally private to
// goSession: secure token generation and the shape checks that gate every
// token or user id before it is turned into a storage path.
//
// # What this package must NOT do
//
//   - Export types that appear in the public goSession API.
//   - Be imported by any package outside the goSession module.
package internal
