package store

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// File keeps all values in one msgpack-encoded file. Every change rewrites
// the file through a temporary file and a rename.
type File struct {
	path   string
	mu     sync.RWMutex
	values map[string]string
	closed bool
}

// NewFile opens the store at path, creating its directory if needed. A
// missing file is an empty store.
func NewFile(path string) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	f := &File{path: path, values: make(map[string]string)}
	if err := f.load(); err != nil {
		return nil, err
	}
	return f, nil
}

// Path returns the file the store writes to.
func (f *File) Path() string {
	return f.path
}

func (f *File) Get(key string) (string, bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.closed {
		return "", false, ErrClosed
	}
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *File) Set(key, value string) error {
	return f.SetAll(map[string]string{key: value})
}

func (f *File) SetAll(values map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrClosed
	}

	next := maps.Clone(f.values)
	maps.Copy(next, values)
	if err := f.save(next); err != nil {
		return err
	}
	f.values = next
	return nil
}

func (f *File) Delete(keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrClosed
	}

	next := maps.Clone(f.values)
	for _, k := range keys {
		delete(next, k)
	}
	if err := f.save(next); err != nil {
		return err
	}
	f.values = next
	return nil
}

func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *File) load() error {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", f.path, err)
	}
	if len(data) == 0 {
		return nil
	}

	if err := msgpack.Unmarshal(data, &f.values); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorrupt, f.path, err)
	}
	if f.values == nil {
		f.values = make(map[string]string)
	}
	return nil
}

func (f *File) save(values map[string]string) error {
	data, err := msgpack.Marshal(values)
	if err != nil {
		return fmt.Errorf("encode values: %w", err)
	}
	return writeFile(f.path, data)
}

// writeFile writes to a temporary file first and renames it into place.
func writeFile(path string, data []byte) error {
	tempPath := path + ".tmp"

	file, err := os.Create(tempPath)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err == nil {
		err = file.Sync()
	}
	closeErr := file.Close()

	if err != nil {
		os.Remove(tempPath)
		return err
	}
	if closeErr != nil {
		os.Remove(tempPath)
		return closeErr
	}

	return os.Rename(tempPath, path)
}
