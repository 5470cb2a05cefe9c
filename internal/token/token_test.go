package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestIssueVerifyRoundTrip(t *testing.T) {
	for roleNumber := 1; roleNumber <= 3; roleNumber++ {
		signed, err := Issue("doc-123", roleNumber, secret, DefaultTTL)
		require.NoError(t, err)
		require.NotEmpty(t, signed)

		access, err := Verify(signed, secret)
		require.NoError(t, err)
		assert.Equal(t, "doc-123", access.DocumentID)
		assert.Equal(t, roleNumber, access.RoleNumber)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	signed, err := Issue("doc-123", 1, secret, DefaultTTL)
	require.NoError(t, err)

	_, err = Verify(signed, "other-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyExpired(t *testing.T) {
	signed, err := Issue("doc-123", 1, secret, -time.Minute)
	require.NoError(t, err)

	_, err = Verify(signed, secret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyMalformed(t *testing.T) {
	for _, tokenString := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := Verify(tokenString, secret)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestVerifyTampered(t *testing.T) {
	signed, err := Issue("doc-123", 1, secret, DefaultTTL)
	require.NoError(t, err)

	tampered := signed[:len(signed)-2] + "xx"
	_, err = Verify(tampered, secret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
