package jwtauth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vetclinic/internal/ports/auth"
)

func TestIssueVerify_Roundtrip(t *testing.T) {
	j := New("secret", time.Hour)

	tok, err := j.Issue(auth.Claims{
		Email:    "maria@example.com",
		Role:     auth.RoleClient,
		ClientID: "client-1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := j.Verify(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, "maria@example.com", claims.Email)
	assert.Equal(t, auth.RoleClient, claims.Role)
	assert.Equal(t, "client-1", claims.ClientID)
}

func TestIssue_RequiresEmail(t *testing.T) {
	j := New("secret", time.Hour)

	_, err := j.Issue(auth.Claims{Role: auth.RoleAdmin})
	assert.Error(t, err)
}

func TestVerify_Expired(t *testing.T) {
	j := New("secret", time.Hour)
	base := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	j.now = func() time.Time { return base }

	tok, err := j.Issue(auth.Claims{Email: "maria@example.com", Role: auth.RoleClient})
	require.NoError(t, err)

	// Aún vigente
	_, err = j.Verify(context.Background(), tok)
	require.NoError(t, err)

	// Pasada la expiración
	j.now = func() time.Time { return base.Add(2 * time.Hour) }
	_, err = j.Verify(context.Background(), tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer := New("secret-a", time.Hour)
	verifier := New("secret-b", time.Hour)

	tok, err := issuer.Issue(auth.Claims{Email: "maria@example.com", Role: auth.RoleClient})
	require.NoError(t, err)

	_, err = verifier.Verify(context.Background(), tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	j := New("secret", time.Hour)

	for _, tok := range []string{"", "abc", "a.b.c"} {
		_, err := j.Verify(context.Background(), tok)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}

func TestNew_DefaultTTL(t *testing.T) {
	j := New("secret", 0)
	assert.Equal(t, DefaultTTL, j.ttl)
}
