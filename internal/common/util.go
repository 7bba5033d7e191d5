package common

import (
	"crypto/rand"
	"strings"
)

// GenerateRandByteArray returns size bytes read from crypto/rand.
// It panics if the system random source fails, which only happens when the
// platform is unusable.
func GenerateRandByteArray(size int) []byte {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

// WipeByteArray overwrites the contents of b with zeros. Nil is allowed.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
// Accounts are stored and looked up by the normalized form, so email
// matching is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
