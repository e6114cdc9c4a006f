package auth

import (
	"net/http"
	"net/url"
	"strings"
	"time"
)

// BuildSessionCookie returns the Set-Cookie carrying a session id.
// Secure is only set on secure transports so the cookie keeps working in
// plain-HTTP local dev.
func BuildSessionCookie(sessionID string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(SessionLifetime / time.Second),
		Secure:   secure,
	}
}

// BuildClearCookie returns the Set-Cookie that deletes the session cookie
// client-side. A negative MaxAge serializes as Max-Age=0.
func BuildClearCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Secure:   secure,
	}
}

// ReadCookie extracts the first exact-name match from a raw Cookie header
// ("a=1; b=2"), URL-decoded. Malformed segments are skipped, never an
// error.
func ReadCookie(header, name string) (string, bool) {
	for _, part := range strings.Split(header, ";") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok || k != name {
			continue
		}
		if decoded, err := url.QueryUnescape(v); err == nil {
			return decoded, true
		}
		return v, true
	}
	return "", false
}

// SessionFromRequest returns the session id carried by the request, if any.
func SessionFromRequest(r *http.Request) (string, bool) {
	return ReadCookie(r.Header.Get("Cookie"), SessionCookie)
}

// IsSecureRequest reports whether the request arrived over a secure
// transport, directly or via a TLS-terminating edge proxy.
func IsSecureRequest(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
