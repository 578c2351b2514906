package middleware

import (
	"errors"
	"net"
	"net/http"
	"strings"

	goSession "github.com/MrEthical07/goSession"
)

// Guard wraps next so it only runs for requests carrying an authenticated
// session; when permission is non-empty the session's user must also hold
// it. The session is attached to the request context for
// [SessionFromContext]. Failures map to 401 (no or untrusted session), 403
// (missing permission), or 500 (storage trouble).
func Guard(engine *goSession.Engine, permission string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := TokenFromRequest(r, engine.Config().Session.CookieName)
		sess, err := engine.Authenticate(r.Context(), token, MetadataFromRequest(r), permission)
		if err != nil {
			switch {
			case errors.Is(err, goSession.ErrUnauthenticated):
				http.Error(w, "unauthorized", http.StatusUnauthorized)
			case errors.Is(err, goSession.ErrForbidden):
				http.Error(w, "forbidden", http.StatusForbidden)
			default:
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
			return
		}

		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), sess)))
	})
}

// GuardFunc is Guard for a plain handler func.
func GuardFunc(engine *goSession.Engine, permission string, next http.HandlerFunc) http.Handler {
	return Guard(engine, permission, next)
}

// TokenFromRequest extracts the session token: the named cookie wins, then
// an "Authorization: Bearer" header. Returns "" when neither is present.
func TokenFromRequest(r *http.Request, cookieName string) string {
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) > len(prefix) && strings.EqualFold(auth[:len(prefix)], prefix) {
		return strings.TrimSpace(auth[len(prefix):])
	}
	return ""
}

// MetadataFromRequest captures the request's trust factors. The client IP
// prefers the first X-Forwarded-For hop over RemoteAddr; the fingerprint
// comes from the X-Fingerprint header when the client supplies one.
func MetadataFromRequest(r *http.Request) goSession.Metadata {
	return goSession.Metadata{
		IP:             clientIP(r),
		UserAgent:      r.Header.Get("User-Agent"),
		AcceptLanguage: r.Header.Get("Accept-Language"),
		Referer:        r.Header.Get("Referer"),
		Fingerprint:    r.Header.Get("X-Fingerprint"),
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// SetSessionCookie issues the session cookie for sess using the engine's
// cookie settings: HttpOnly, SameSite=Lax, lifetime matching the store's,
// Secure when configured for production.
func SetSessionCookie(w http.ResponseWriter, engine *goSession.Engine, token string) {
	cfg := engine.Config().Session
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(cfg.Lifetime.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie on the client.
func ClearSessionCookie(w http.ResponseWriter, engine *goSession.Engine) {
	cfg := engine.Config().Session
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
