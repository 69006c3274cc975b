package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInjectedURL(t *testing.T) {
	u, err := NewInjectedURL("https://gamma-api.polymarket.com/events?tag=nba&limit=50")
	require.NoError(t, err)

	assert.Equal(t, "/events", u.Path)
	assert.Equal(t, "nba", u.Params["tag"])
	assert.Equal(t, "50", u.Params["limit"])
	assert.NotEmpty(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())
}

func TestNewInjectedURLDeterministicID(t *testing.T) {
	first, err := NewInjectedURL("https://gamma-api.polymarket.com/events?tag=nba")
	require.NoError(t, err)
	second, err := NewInjectedURL("https://gamma-api.polymarket.com/events?tag=nba")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	other, err := NewInjectedURL("https://gamma-api.polymarket.com/events?tag=nfl")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestNewInjectedURLRejectsInvalid(t *testing.T) {
	for _, raw := range []string{"", "not-a-url", "/relative/path", "http://"} {
		_, err := NewInjectedURL(raw)
		assert.ErrorIs(t, err, ErrInvalidURL, "input: %q", raw)
	}
}
