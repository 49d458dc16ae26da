package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestTokenManagement(t *testing.T) {
	keyring.MockInit()

	t.Run("Should prefer the configured token over the keychain", func(t *testing.T) {
		require.NoError(t, StoreToken("from-keychain"))
		t.Cleanup(func() { _ = DeleteToken() })

		token, err := ResolveToken(&Config{DiscordToken: "from-config"})
		require.NoError(t, err)
		assert.Equal(t, "from-config", token)
	})

	t.Run("Should fall back to the keychain", func(t *testing.T) {
		require.NoError(t, StoreToken("from-keychain"))
		t.Cleanup(func() { _ = DeleteToken() })

		token, err := ResolveToken(&Config{})
		require.NoError(t, err)
		assert.Equal(t, "from-keychain", token)
	})

	t.Run("Should error once the token is deleted", func(t *testing.T) {
		require.NoError(t, StoreToken("soon-gone"))
		require.NoError(t, DeleteToken())

		_, err := ResolveToken(&Config{})
		assert.Error(t, err)
	})
}
