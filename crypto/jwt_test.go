package crypto

import (
	"testing"
	"time"

	"api/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_RoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, err := m.Generate("user-42", time.Now())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, err := m.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-42", id)
}

func TestJWT_Expired(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, err := m.Generate("user-42", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, domain.ErrExpiredToken)
}

func TestJWT_WrongKey(t *testing.T) {
	m1 := NewJWTManager("key-one", time.Hour)
	m2 := NewJWTManager("key-two", time.Hour)

	token, err := m1.Generate("user-42", time.Now())
	require.NoError(t, err)

	_, err = m2.Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidTokenSignature)
}

func TestJWT_Garbage(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	_, err := m.Verify("not.a.token")
	assert.ErrorIs(t, err, domain.ErrCorruptedToken)
}

func TestArgon2id_HashAndCompare(t *testing.T) {
	h := NewArgon2idHasher(1, 16*1024, 32, 16, 1)

	hash, err := h.Hash("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	match, err := h.Compare(hash, "hunter22")
	require.NoError(t, err)
	assert.True(t, match)

	match, err = h.Compare(hash, "hunter23")
	require.NoError(t, err)
	assert.False(t, match)
}
