package cryptox

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cheap parameters keep the suite fast; the format is identical
var testParams = Params{Time: 1, Memory: 1024, Threads: 1, SaltLen: 16, KeyLen: 32}

func TestHash_PHCFormat(t *testing.T) {
	h := NewArgon2idHasher(testParams)

	hash, err := h.Hash("pw123")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$"), hash)
	assert.Len(t, strings.Split(hash, "$"), 6)
	assert.NotContains(t, hash, "pw123")
}

func TestHash_SaltedEachTime(t *testing.T) {
	h := NewArgon2idHasher(testParams)

	a, err := h.Hash("same-password")
	require.NoError(t, err)
	b, err := h.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "two hashes of the same password must differ by salt")
}

func TestHash_EmptyPassword(t *testing.T) {
	h := NewArgon2idHasher(testParams)
	_, err := h.Hash("")
	require.ErrorIs(t, err, ErrEmptyPassword)
}

func TestVerify_MatchAndMismatch(t *testing.T) {
	h := NewArgon2idHasher(testParams)
	hash, err := h.Hash("pw123")
	require.NoError(t, err)

	ok, err := h.Verify("pw123", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerify_UsesParamsEmbeddedInHash(t *testing.T) {
	hash, err := NewArgon2idHasher(testParams).Hash("pw123")
	require.NoError(t, err)

	// a hasher configured differently still verifies older hashes
	other := NewArgon2idHasher(Params{Time: 2, Memory: 2048, Threads: 2, SaltLen: 8, KeyLen: 16})
	ok, err := other.Verify("pw123", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerify_InvalidHashes(t *testing.T) {
	h := NewArgon2idHasher(testParams)

	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"plain text", "not-a-hash"},
		{"bcrypt", "$2a$10$abcdefghijklmnopqrstuuvwxyzABCDEFGHIJKLMNOPQRSTUVWX"},
		{"bad version", "$argon2id$v=18$m=1024,t=1,p=1$c2FsdHNhbHQ$a2V5a2V5"},
		{"bad params", "$argon2id$v=19$m=x,t=1,p=1$c2FsdHNhbHQ$a2V5a2V5"},
		{"zero threads", "$argon2id$v=19$m=1024,t=1,p=0$c2FsdHNhbHQ$a2V5a2V5"},
		{"too many threads", "$argon2id$v=19$m=1024,t=1,p=300$c2FsdHNhbHQ$a2V5a2V5"},
		{"bad salt", "$argon2id$v=19$m=1024,t=1,p=1$!!!$a2V5a2V5"},
		{"empty key", "$argon2id$v=19$m=1024,t=1,p=1$c2FsdHNhbHQ$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := h.Verify("pw", tt.hash)
			assert.False(t, ok)
			assert.True(t, errors.Is(err, ErrInvalidHash), "got %v", err)
		})
	}
}
