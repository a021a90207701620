// Package readthrough keeps the last body fetched for a key on disk, so the
// feed can be reparsed without going back to the network.
package readthrough

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

func New(dir, prefix string) *ReadThrough {
	return &ReadThrough{dir: dir, prefix: prefix}
}

type ReadThrough struct {
	dir, prefix string
}

var ErrMiss = errors.New("cache miss")

// Get opens the cached body for key.
func (rt *ReadThrough) Get(key string) (io.ReadCloser, error) {
	hash, filename := rt.hashAndFilename(key)

	cache, err := os.Open(filename)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("cache miss for '%s': %w", hash, ErrMiss)
	} else if err != nil {
		return nil, fmt.Errorf("error opening cache file '%s' for read: %w", hash, err)
	}

	return cache, nil
}

// Set consumes and closes r, storing its contents under key, and returns a
// reader over the same contents. The previous entry is only replaced once r
// has been read completely.
func (rt *ReadThrough) Set(key string, r io.ReadCloser) (io.ReadCloser, error) {
	defer r.Close()
	hash, filename := rt.hashAndFilename(key)

	if err := os.MkdirAll(rt.dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating cache dir '%s': %w", rt.dir, err)
	}

	tmp, err := os.CreateTemp(rt.dir, rt.prefix+hash+".*")
	if err != nil {
		return nil, fmt.Errorf("error opening cache file '%s' for write: %w", hash, err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	var buf bytes.Buffer
	tee := io.TeeReader(r, tmp)
	if _, err := io.Copy(&buf, tee); err != nil {
		return nil, fmt.Errorf("error writing cache file '%s': %w", hash, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("error closing cache file '%s': %w", hash, err)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return nil, fmt.Errorf("error moving cache file '%s' into place: %w", hash, err)
	}

	return io.NopCloser(&buf), nil
}

func (rt *ReadThrough) hashAndFilename(key string) (string, string) {
	var hasher = sha256.New()
	hasher.Write([]byte(key))
	hash := hex.EncodeToString(hasher.Sum(nil))
	return hash, filepath.Join(rt.dir, rt.prefix+hash)
}
