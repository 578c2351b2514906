// Package middleware adapts the session engine to net/http: it extracts the
// token and client metadata from requests, guards handlers behind
// authentication (optionally a permission), and manages the session cookie.
package middleware
