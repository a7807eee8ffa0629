package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentroll/internal/auth"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	ownerID := uuid.New()

	token, err := issuer.Issue(ownerID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, ownerID, got)
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", -time.Minute)

	token, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	got, err := issuer.Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
	assert.Equal(t, uuid.Nil, got)
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	other := auth.NewTokenIssuer("other-secret", time.Hour)

	token, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	got, err := other.Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
	assert.Equal(t, uuid.Nil, got)
}

func TestTokenIssuer_Garbage(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)

	_, err := issuer.Verify("not.a.token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
