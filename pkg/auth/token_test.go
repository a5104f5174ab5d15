package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour, nil)

	token, expires, err := m.Issue("user-1", "a@example.com", "worker")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.Equal(t, "worker", claims.Role)
}

func TestParseRejectsExpiredAndForeignTokens(t *testing.T) {
	m := NewTokenManager("test-secret", time.Minute, nil)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, err := m.Issue("user-1", "a@example.com", "worker")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Parse(old)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewTokenManager("other-secret", time.Hour, nil)
	foreign, _, err := other.Issue("user-1", "a@example.com", "admin")
	require.NoError(t, err)
	_, err = m.Parse(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsRS256WithoutKeySet(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour, nil)
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "x"})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.Parse(raw)
	assert.Error(t, err)
}

func TestIssueWithoutSecret(t *testing.T) {
	m := NewTokenManager("", time.Hour, nil)
	_, _, err := m.Issue("u", "e", "worker")
	assert.Error(t, err)
}
