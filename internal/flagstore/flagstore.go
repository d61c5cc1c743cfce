// Package flagstore persists small key/value flags across process
// restarts. Each key is one file under a state directory; the value is
// the file's contents. It backs the admin session flag and nothing else.
package flagstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrKeyNotFound is returned by Get when no value is stored under the key.
var ErrKeyNotFound = errors.New("flagstore: key not found")

type FileStore struct {
	dir string
}

// New returns a store rooted at dir, creating it if necessary.
func New(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("flagstore: create state dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// DefaultDir returns the per-user state directory for the given
// application name.
func DefaultDir(app string) (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("flagstore: resolve user config dir: %w", err)
	}
	return filepath.Join(base, app), nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key)
}

func (s *FileStore) Get(key string) (string, error) {
	if err := validKey(key); err != nil {
		return "", err
	}
	b, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("flagstore: read %s: %w", key, err)
	}
	return string(b), nil
}

func (s *FileStore) Set(key, value string) error {
	if err := validKey(key); err != nil {
		return err
	}
	if err := os.WriteFile(s.path(key), []byte(value), 0o600); err != nil {
		return fmt.Errorf("flagstore: write %s: %w", key, err)
	}
	return nil
}

// Delete removes the key. Deleting a key that was never set is not an error.
func (s *FileStore) Delete(key string) error {
	if err := validKey(key); err != nil {
		return err
	}
	err := os.Remove(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("flagstore: delete %s: %w", key, err)
	}
	return nil
}

func validKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("flagstore: invalid key %q", key)
	}
	return nil
}
