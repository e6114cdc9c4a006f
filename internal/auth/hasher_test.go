package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{name: "regular password", password: "password123"},
		{name: "special chars", password: "p@ssw0rd!@#$%^&*()"},
		{name: "unicode", password: "pässwörd日本語"},
		{name: "long password", password: strings.Repeat("correct horse ", 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			digest, err := HashPassword(tt.password)
			require.NoError(t, err)
			require.NotEmpty(t, digest)

			assert.True(t, strings.HasPrefix(digest, "pbkdf2_sha256$"))
			assert.True(t, VerifyPassword(tt.password, digest))
			assert.False(t, VerifyPassword(tt.password+"x", digest))
		})
	}
}

func TestHashPassword_FreshSaltPerCall(t *testing.T) {
	first, err := HashPassword("password123")
	require.NoError(t, err)
	second, err := HashPassword("password123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, VerifyPassword("password123", first))
	assert.True(t, VerifyPassword("password123", second))
}

func TestVerifyPassword_MalformedDigests(t *testing.T) {
	valid, err := HashPassword("password123")
	require.NoError(t, err)
	parts := strings.Split(valid, "$")
	require.Len(t, parts, 4)

	tests := []struct {
		name   string
		digest string
	}{
		{name: "empty", digest: ""},
		{name: "plain text", digest: "password123"},
		{name: "unknown algorithm", digest: "bcrypt$" + parts[1] + "$" + parts[2] + "$" + parts[3]},
		{name: "missing field", digest: strings.Join(parts[:3], "$")},
		{name: "extra field", digest: valid + "$extra"},
		{name: "non-numeric iterations", digest: parts[0] + "$abc$" + parts[2] + "$" + parts[3]},
		{name: "zero iterations", digest: parts[0] + "$0$" + parts[2] + "$" + parts[3]},
		{name: "bad salt base64", digest: parts[0] + "$" + parts[1] + "$!!!$" + parts[3]},
		{name: "bad key base64", digest: parts[0] + "$" + parts[1] + "$" + parts[2] + "$!!!"},
		{name: "empty key", digest: parts[0] + "$" + parts[1] + "$" + parts[2] + "$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, VerifyPassword("password123", tt.digest))
		})
	}
}

func TestVerifyPassword_TamperedKey(t *testing.T) {
	digest, err := HashPassword("password123")
	require.NoError(t, err)

	// Flip the last character of the encoded key.
	tampered := digest[:len(digest)-1]
	if strings.HasSuffix(digest, "A") {
		tampered += "B"
	} else {
		tampered += "A"
	}
	assert.False(t, VerifyPassword("password123", tampered))
}
