// Package avatar stores uploaded avatar images and serves them under
// /avatars/. Two backends exist: a local directory and an S3 compatible
// bucket.
package avatar

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"io"
	"strings"
	"time"
)

// PathPrefix is the URL prefix of stored avatar paths.
const PathPrefix = "/avatars/"

// DefaultName is the placeholder image shown for users without an upload.
const DefaultName = "default.png"

var ErrNotFound = errors.New("avatar: not found")

//go:embed default.png
var defaultPNG []byte

// Info describes a stored object.
type Info struct {
	Size        int64
	ContentType string
	ModTime     time.Time
}

// Storage is an avatar backend. Names are flat file names without
// directory components.
type Storage interface {
	Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, name string) (io.ReadCloser, Info, error)

	// Delete removes name. A missing object is not an error.
	Delete(ctx context.Context, name string) error

	Ping(ctx context.Context) error
}

// PathOf returns the public path of a stored name.
func PathOf(name string) string { return PathPrefix + name }

// NameOf extracts the stored name from a public path. It reports false for
// foreign paths and for anything that could escape the avatar namespace.
func NameOf(path string) (string, bool) {
	name, ok := strings.CutPrefix(path, PathPrefix)
	if !ok || !validName(name) {
		return "", false
	}
	return name, true
}

func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && !strings.Contains(name, "..")
}

// Open fetches name, falling back to the built in placeholder for the
// default avatar when the backend has none.
func Open(ctx context.Context, s Storage, name string) (io.ReadCloser, Info, error) {
	rc, info, err := s.Get(ctx, name)
	if errors.Is(err, ErrNotFound) && name == DefaultName {
		return io.NopCloser(bytes.NewReader(defaultPNG)), Info{
			Size:        int64(len(defaultPNG)),
			ContentType: "image/png",
		}, nil
	}
	return rc, info, err
}
