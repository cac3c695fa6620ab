package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/roster/pkg/cryptox"
	"github.com/aussiebroadwan/roster/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestNewKeyManager(t *testing.T) {
	t.Run("requires issuer", func(t *testing.T) {
		_, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{})
		require.Error(t, err)
	})

	t.Run("ephemeral key", func(t *testing.T) {
		km, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{Issuer: exampleIssuer})
		require.NoError(t, err)
		require.True(t, km.IsReady())
		require.Len(t, km.KeySet.PublicJWKS().Keys, 1)
	})

	t.Run("kid is stable for the same key", func(t *testing.T) {
		pemKey, err := cryptox.GenerateEd25519Key()
		require.NoError(t, err)

		a, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{PEM: pemKey, Issuer: exampleIssuer})
		require.NoError(t, err)
		b, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{PEM: pemKey, Issuer: exampleIssuer})
		require.NoError(t, err)

		require.Equal(t, a.Signer.KID(), b.Signer.KID())
		require.Len(t, a.Signer.KID(), 16)

		// A token from one instance verifies on a restarted one.
		token, err := a.Signer.Sign(jwtx.NewSessionClaims(jwtx.Identity{Subject: "u"}, time.Minute,
			exampleIssuer, []string{"aud"}, time.Now()))
		require.NoError(t, err)
		_, err = b.Verifier.Verify(token)
		require.NoError(t, err)
	})

	t.Run("rejects bad pem", func(t *testing.T) {
		_, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{PEM: []byte("nope"), Issuer: exampleIssuer})
		require.Error(t, err)
	})
}
