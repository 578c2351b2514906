// Package session provides session persistence: the [Session] model, the
// [Store] contract, and two implementations — the sharded file-tree
// [FileStore] and the Redis-backed [RedisStore].
//
// # On-disk layout
//
// FileStore keys session records purely by token: a 32-hex token maps to
// <root>/<tok[0:3]>/<tok[3:6]>/<tok[6:]>, giving 4096 buckets per directory
// level. Per-user token indexes live under
// <root>/index/<id[0:4]>/<id[4:8]>/<id[8:]>. Session files hold the codec
// encoding of a [Session]; index files hold the encoding of a token list.
//
// # Expiration
//
// Every successful Get is also a write: the record is re-persisted with a
// refreshed expiry (sliding expiration). Expired and undecodable records are
// deleted on sight and reported as [ErrSessionExpired] — indistinguishable
// from absence to the caller.
//
// # Architecture boundaries
//
// This package owns storage and the session/index lifecycle. It does NOT
// extract tokens from requests, compute trust scores, or enforce
// permissions — those responsibilities belong to the Engine.
package session
