package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

const (
	// SessionLifetime is the fixed validity window of every session.
	SessionLifetime = 14 * 24 * time.Hour

	// SessionCookie is the name of the cookie carrying the session id.
	SessionCookie = "tfa_session"
)

// NewSessionID returns a fresh session id: 32 bytes from a
// cryptographically strong source, hex-encoded. Session ids double as the
// cookie value and the sessions table primary key.
func NewSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("auth.NewSessionID: %w", err)
	}
	return hex.EncodeToString(b), nil
}
