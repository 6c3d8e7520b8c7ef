package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examforge/examforge/internal/auth"
)

func TestIssueAndParseRoundTrip(t *testing.T) {
	svc := auth.NewService("test-secret", time.Hour)

	tok, err := svc.IssueJWT("user-42")
	require.NoError(t, err)

	claims, err := svc.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.Sub)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	tok, err := auth.NewService("secret-a", time.Hour).IssueJWT("user-1")
	require.NoError(t, err)

	_, err = auth.NewService("secret-b", time.Hour).Parse(tok)
	assert.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	tok, err := auth.NewService("test-secret", -time.Minute).IssueJWT("user-1")
	require.NoError(t, err)

	_, err = auth.NewService("test-secret", time.Hour).Parse(tok)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := auth.NewService("test-secret", time.Hour).Parse("not-a-token")
	assert.Error(t, err)
}
