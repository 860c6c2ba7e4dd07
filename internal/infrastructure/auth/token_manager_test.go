package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	token, expiresAt, err := m.GenerateToken("user-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	uid, err := m.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", uid)
}

func TestTokenRejected(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	token, _, err := m.GenerateToken("user-1")
	require.NoError(t, err)

	_, err = NewTokenManager("other-secret", time.Hour).VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.VerifyToken("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenExpired(t *testing.T) {
	m := NewTokenManager("secret", time.Minute)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := m.GenerateToken("user-1")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerateRequiresUID(t *testing.T) {
	_, _, err := NewTokenManager("secret", time.Hour).GenerateToken("")
	assert.Error(t, err)
}
