package authenticator_test

import (
	"testing"
	"time"

	"github.com/ripple-lab/backend/pkg/authenticator"
	"github.com/stretchr/testify/require"
)

func TestJWT(t *testing.T) {
	engine := authenticator.NewTokenEngine("secret")
	token, err := engine.Generate(time.Minute, "abc")
	require.Nil(t, err)

	var msg string
	err = engine.Verify(token, &msg)
	require.NoError(t, err)
	require.Equal(t, "abc", msg)
}

func TestJWTExpiration(t *testing.T) {
	engine := authenticator.NewTokenEngine("secret")
	token, err := engine.Generate(time.Nanosecond, "abc")
	require.Nil(t, err)

	var msg string
	err = engine.Verify(token, &msg)
	require.Error(t, err)
}

func TestJWTObjectClaims(t *testing.T) {
	type accessToken struct {
		ID   string `json:"id" mapstructure:"id"`
		Name string `json:"name" mapstructure:"name"`
	}

	engine := authenticator.NewTokenEngine("secret")
	token, err := engine.Generate(time.Minute, accessToken{ID: "user1", Name: "alice"})
	require.NoError(t, err)

	var parsed accessToken
	require.NoError(t, engine.Verify(token, &parsed))
	require.Equal(t, "user1", parsed.ID)
	require.Equal(t, "alice", parsed.Name)
}
