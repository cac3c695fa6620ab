package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrNoPepper is returned when hashing is attempted before a pepper file
// has been configured.
var ErrNoPepper = errors.New("cryptox: pepper path not configured")

var (
	pepperMu   sync.Mutex
	pepper     string
	pepperPath string
)

// SetPepperPath points the package at the pepper file. The file is created
// with a fresh random pepper on first use if it does not exist yet.
func SetPepperPath(path string) {
	pepperMu.Lock()
	defer pepperMu.Unlock()

	pepperPath = path
	pepper = ""
}

// LoadPepper reads (or creates) the pepper file now instead of on the first
// hash, so a bad path fails at startup.
func LoadPepper() error {
	_, err := currentPepper()
	return err
}

func currentPepper() (string, error) {
	pepperMu.Lock()
	defer pepperMu.Unlock()

	if pepper != "" {
		return pepper, nil
	}
	if pepperPath == "" {
		return "", ErrNoPepper
	}

	p, err := loadOrGenerateSecret(pepperPath, func() ([]byte, error) {
		buf := make([]byte, keyLength)
		if _, err := rand.Read(buf); err != nil {
			return nil, err
		}
		return []byte(base64.RawURLEncoding.EncodeToString(buf)), nil
	})
	if err != nil {
		return "", err
	}

	pepper = strings.TrimSpace(string(p))
	return pepper, nil
}

// loadOrGenerateSecret returns the contents of path, writing generate()'s
// output there with 0600 permissions when the file is missing.
func loadOrGenerateSecret(path string, generate func() ([]byte, error)) ([]byte, error) {
	path = filepath.Clean(path)

	data, err := os.ReadFile(path)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, err
	}

	data, err = generate()
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return nil, err
	}
	return data, nil
}
