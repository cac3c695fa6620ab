package jwtx

import (
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/roster/pkg/cryptox"
)

// KeyManager bundles the signer, verifier and published key set of one
// roster instance.
type KeyManager struct {
	Signer   Signer
	Verifier Verifier
	KeySet   *KeySet
}

// KeyManagerOptions configures NewKeyManager.
type KeyManagerOptions struct {
	// PEM is a PKCS8 Ed25519 private key. A fresh key is generated if empty,
	// which invalidates outstanding sessions on restart.
	PEM []byte

	Issuer   string
	Audience []string
}

// NewKeyManager wires a signer for opts.PEM into a KeySet and verifier. The
// kid is derived from the public key so it stays stable across restarts.
func NewKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, errors.New("jwtx: Issuer is required")
	}

	pemKey := opts.PEM
	if len(pemKey) == 0 {
		var err error
		if pemKey, err = cryptox.GenerateEd25519Key(); err != nil {
			return nil, err
		}
	}

	// Parse once to derive the kid from the public half.
	probe, err := newEdDSASigner("", pemKey)
	if err != nil {
		return nil, err
	}
	kid := KeyID(probe.pub)

	signer, err := NewSignerEdDSA(kid, pemKey)
	if err != nil {
		return nil, err
	}
	if err := signer.Validate(); err != nil {
		return nil, err
	}

	keys := NewKeySet()
	if err := keys.AddSigner(signer); err != nil {
		return nil, fmt.Errorf("jwtx: add signer to keyset: %w", err)
	}

	return &KeyManager{
		Signer:   signer,
		Verifier: NewCommonEdDSA(keys, opts.Issuer, opts.Audience),
		KeySet:   keys,
	}, nil
}

// KeyID is the first 16 chars of the public key's SHA-256 fingerprint.
func KeyID(pub ed25519.PublicKey) string {
	return cryptox.FingerprintToken(string(pub))[:16]
}

// IsReady reports whether a signing key is loaded.
func (km *KeyManager) IsReady() bool {
	return km.KeySet.IsReady()
}
