package token_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book_reviews/internal/adapters/token"
)

func TestIssueVerify_RoundTrip(t *testing.T) {
	m := token.NewManager("test-secret", time.Hour)

	tok, err := m.Issue(42, "ana")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := m.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "ana", claims.Username)
}

func TestVerify_WrongSecret(t *testing.T) {
	tok, err := token.NewManager("secret-a", time.Hour).Issue(1, "ana")
	require.NoError(t, err)

	_, err = token.NewManager("secret-b", time.Hour).Verify(tok)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	m := token.NewManager("test-secret", -time.Minute)
	tok, err := m.Issue(1, "ana")
	require.NoError(t, err)

	_, err = m.Verify(tok)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	m := token.NewManager("test-secret", time.Hour)
	_, err := m.Verify("not.a.token")
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}
