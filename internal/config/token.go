package config

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "kitschbot"
	keyringUser    = "discord-token"
)

// ResolveToken returns the Discord bot token: the config/env value wins,
// then the OS keychain. Storing the token in the keychain keeps it out of
// config files on developer machines.
func ResolveToken(cfg *Config) (string, error) {
	if cfg.DiscordToken != "" {
		return cfg.DiscordToken, nil
	}

	token, err := keyring.Get(keyringService, keyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("no discord token configured: set discord_token or store one with StoreToken")
		}
		return "", fmt.Errorf("failed to read token from keychain: %w", err)
	}
	return token, nil
}

// StoreToken saves the bot token in the OS keychain.
func StoreToken(token string) error {
	if err := keyring.Set(keyringService, keyringUser, token); err != nil {
		return fmt.Errorf("failed to store token in keychain: %w", err)
	}
	return nil
}

// DeleteToken removes the bot token from the OS keychain.
func DeleteToken() error {
	return keyring.Delete(keyringService, keyringUser)
}
