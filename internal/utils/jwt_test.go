package utils

import (
	"testing"
	"time"

	"marketplace/internal/config"
	"marketplace/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIssuer() *TokenIssuer {
	return NewTokenIssuer(config.JWTConfig{
		Secret:     "test-secret",
		Issuer:     "marketplace-test",
		AccessTTL:  5 * time.Minute,
		RefreshTTL: 24 * time.Hour,
	})
}

func TestTokenIssuer_PairRoundTrip(t *testing.T) {
	issuer := newTestIssuer()

	pair, err := issuer.IssuePair(42)
	require.NoError(t, err)
	assert.NotEqual(t, pair.Access, pair.Refresh)

	access, err := issuer.Parse(pair.Access, models.TokenAccess)
	require.NoError(t, err)
	assert.Equal(t, uint(42), access.UserID)
	assert.Equal(t, "42", access.Subject)
	assert.NotEmpty(t, access.ID)

	refresh, err := issuer.Parse(pair.Refresh, models.TokenRefresh)
	require.NoError(t, err)
	assert.NotEqual(t, access.ID, refresh.ID)
	assert.InDelta(t, 24*time.Hour, issuer.Remaining(refresh), float64(time.Minute))
}

func TestTokenIssuer_RejectsWrongType(t *testing.T) {
	issuer := newTestIssuer()
	pair, err := issuer.IssuePair(1)
	require.NoError(t, err)

	_, err = issuer.Parse(pair.Refresh, models.TokenAccess)
	assert.ErrorIs(t, err, ErrUnexpectedTokenType)
	_, err = issuer.Parse(pair.Access, models.TokenRefresh)
	assert.ErrorIs(t, err, ErrUnexpectedTokenType)
}

func TestTokenIssuer_RejectsExpired(t *testing.T) {
	issuer := newTestIssuer()
	issuer.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, err := issuer.IssueAccess(1)
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Parse(token, models.TokenAccess)
	assert.Error(t, err)
}

func TestTokenIssuer_RejectsForeignSecretAndIssuer(t *testing.T) {
	issuer := newTestIssuer()
	other := NewTokenIssuer(config.JWTConfig{Secret: "other", Issuer: "marketplace-test", AccessTTL: time.Minute})
	token, err := other.IssueAccess(1)
	require.NoError(t, err)
	_, err = issuer.Parse(token, models.TokenAccess)
	assert.Error(t, err)

	wrongIssuer := NewTokenIssuer(config.JWTConfig{Secret: "test-secret", Issuer: "elsewhere", AccessTTL: time.Minute})
	token, err = wrongIssuer.IssueAccess(1)
	require.NoError(t, err)
	_, err = issuer.Parse(token, models.TokenAccess)
	assert.Error(t, err)

	_, err = issuer.Parse("not-a-token", models.TokenAccess)
	assert.Error(t, err)
}

func TestTokenIssuer_MissingSecret(t *testing.T) {
	issuer := NewTokenIssuer(config.JWTConfig{})
	_, err := issuer.IssuePair(1)
	assert.Error(t, err)
}
