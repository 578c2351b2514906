// Package goSession provides file-backed login session management with a
// compact binary on-disk format and fingerprint-based hijack resistance.
//
// A successful login produces a [session.Session] persisted under a sharded
// directory tree keyed by token and registered in the owning user's session
// index. Each authenticated request is validated by the [Engine]: the stored
// client metadata (ip, user agent, accept-language, referer, fingerprint) is
// compared against the live request and the session continues only when the
// match score clears the configured minimum — a stolen bare token replayed
// from a wildly different client context is rejected even though the token
// itself is valid.
//
// The package is designed for concurrent server workloads: Engine methods
// are safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// goSession is the public surface. It exposes [Engine], [Builder], [Config],
// the audit and metrics types, and sentinel errors. Persistence lives in the
// session package, the wire format in codec, and HTTP extraction in
// middleware. HTTP route handlers, validators, and user repositories are
// external collaborators that call in through StartSession, Authenticate,
// Destroy, and DestroyAll.
//
// # User-visible failure contract
//
// Expired, corrupted, absent, and low-trust-score sessions all surface as
// [ErrUnauthenticated]. Storage-layer distinctions are never exposed to the
// end user.
package goSession
