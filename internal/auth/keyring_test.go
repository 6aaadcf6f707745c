package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestSession_RoundTrip(t *testing.T) {
	keyring.MockInit()

	s, err := LoadSession()
	require.NoError(t, err)
	assert.False(t, s.LoggedIn(), "no token yet")

	require.NoError(t, SetToken("tok"))
	s, err = LoadSession()
	require.NoError(t, err)
	assert.True(t, s.LoggedIn())
	assert.Equal(t, "tok", s.Token())

	require.NoError(t, DeleteToken())
	require.NoError(t, DeleteToken(), "deleting twice is fine")
	s, err = LoadSession()
	require.NoError(t, err)
	assert.False(t, s.LoggedIn())
}

func TestSession_Nil(t *testing.T) {
	var s *Session
	assert.False(t, s.LoggedIn())
	assert.Empty(t, s.Token())
}
