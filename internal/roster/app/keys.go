package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/roster/pkg/cryptox"
	"github.com/aussiebroadwan/roster/pkg/jwtx"
)

// InitKeys loads the session signing key, generating and saving one on
// first start, and builds the KeyManager. An empty SigningKeyFile keeps the
// key in memory only, so every restart invalidates outstanding sessions.
func InitKeys(cfg Config, logger *slog.Logger) (*jwtx.KeyManager, error) {
	pemKey, err := cryptox.LoadOrGenerateEd25519Key(cfg.Keys.SigningKeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load signing key: %w", err)
	}

	km, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{
		PEM:      pemKey,
		Issuer:   cfg.Issuer,
		Audience: cfg.Audience,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize key manager: %w", err)
	}

	if cfg.Keys.SigningKeyFile == "" {
		logger.Warn("signing key is ephemeral, sessions will not survive a restart")
	}
	logger.Info("signing key loaded",
		slog.String("kid", km.Signer.KID()),
		slog.String("issuer", cfg.Issuer),
	)
	return km, nil
}
