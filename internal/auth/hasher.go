package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	digestAlg        = "pbkdf2_sha256"
	digestIterations = 210_000
	digestSaltLen    = 16
	digestKeyLen     = 32
)

// HashPassword derives a salted PBKDF2-SHA256 digest for safe storage.
// The result is self-describing: algorithm tag, iteration count, base64
// salt and base64 key joined by "$", so old digests stay verifiable if
// the parameters change.
func HashPassword(password string) (string, error) {
	salt := make([]byte, digestSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("auth.HashPassword: %w", err)
	}
	key := pbkdf2.Key([]byte(password), salt, digestIterations, digestKeyLen, sha256.New)
	return strings.Join([]string{
		digestAlg,
		strconv.Itoa(digestIterations),
		base64.StdEncoding.EncodeToString(salt),
		base64.StdEncoding.EncodeToString(key),
	}, "$"), nil
}

// VerifyPassword reports whether password matches a stored digest. A
// malformed or unrecognized digest verifies as false, never as an error,
// so a corrupt row can not be mistaken for a valid credential.
func VerifyPassword(password, digest string) bool {
	parts := strings.Split(digest, "$")
	if len(parts) != 4 || parts[0] != digestAlg {
		return false
	}
	iterations, err := strconv.Atoi(parts[1])
	if err != nil || iterations <= 0 {
		return false
	}
	salt, err := base64.StdEncoding.DecodeString(parts[2])
	if err != nil {
		return false
	}
	want, err := base64.StdEncoding.DecodeString(parts[3])
	if err != nil || len(want) == 0 {
		return false
	}
	got := pbkdf2.Key([]byte(password), salt, iterations, len(want), sha256.New)
	// Full-length constant-time compare; timing must not reveal where a
	// mismatch occurs.
	return subtle.ConstantTimeCompare(got, want) == 1
}
