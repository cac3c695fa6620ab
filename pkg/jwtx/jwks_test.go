package jwtx_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/aussiebroadwan/roster/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestPublicJWKS(t *testing.T) {
	signer, keys := newTestSigner(t, "kid-jwks")

	jwks := keys.PublicJWKS()
	require.Len(t, jwks.Keys, 1)

	k := jwks.Keys[0]
	require.Equal(t, "OKP", k.Kty)
	require.Equal(t, "Ed25519", k.Crv)
	require.Equal(t, "sig", k.Use)
	require.Equal(t, signer.Alg(), k.Alg)
	require.Equal(t, "kid-jwks", k.Kid)

	raw, err := json.Marshal(jwks)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"kty":"OKP"`)

	pemStr, err := k.PEM()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(pemStr, "-----BEGIN PUBLIC KEY-----"))
}

func TestKeySetRejectsUnsupportedKeys(t *testing.T) {
	keys := jwtx.NewKeySet()
	require.False(t, keys.IsReady())

	require.Error(t, keys.AddJWK(jwtx.JWK{Kty: "RSA", Kid: "r"}))
	require.Error(t, keys.AddJWK(jwtx.JWK{Kty: "OKP", Crv: "X25519", Kid: "x"}))
	require.Error(t, keys.AddJWK(jwtx.JWK{Kty: "OKP", Crv: "Ed25519", X: "c2hvcnQ", Kid: "s"}))

	_, err := keys.Get("r")
	require.ErrorIs(t, err, jwtx.ErrNoKey)
}

func TestPublicJWKSIsACopy(t *testing.T) {
	_, keys := newTestSigner(t, "kid-copy")

	snapshot := keys.PublicJWKS()
	snapshot.Keys[0].Kid = "mutated"

	require.Equal(t, "kid-copy", keys.PublicJWKS().Keys[0].Kid)
}
