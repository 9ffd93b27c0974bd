package store

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("store: closed")
	// ErrCorrupt is returned when stored data cannot be decoded.
	ErrCorrupt = errors.New("store: corrupt data")
)

// Store is a string key/value store. Implementations are safe for
// concurrent use.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	// SetAll writes all values at once, so readers never see a partial update.
	SetAll(values map[string]string) error
	Delete(keys ...string) error
	Close() error
}

// Backend names a store implementation.
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendFile   Backend = "file"
	BackendBadger Backend = "badger"
	BackendSQLite Backend = "sqlite"
)

// Backends lists the accepted backend names.
func Backends() []Backend {
	return []Backend{BackendMemory, BackendFile, BackendBadger, BackendSQLite}
}

// ParseBackend parses a backend name.
func ParseBackend(s string) (Backend, error) {
	b := Backend(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Backends() {
		if b == known {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown store backend %q", s)
}

// Open opens the backend rooted at dir. The file and SQLite backends keep a
// single file inside dir; badger owns the whole directory.
func Open(backend Backend, dir string) (Store, error) {
	switch backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendFile:
		return NewFile(filepath.Join(dir, "position.msgpack"))
	case BackendBadger:
		return NewBadger(BadgerOptions{Dir: filepath.Join(dir, "badger")})
	case BackendSQLite:
		return NewSQLite(filepath.Join(dir, "position.db"))
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}
