// Package storage persists the client's session tokens so that they survive
// process restarts, and builds the HTTP transport used to reach the API.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// KeyValue is a small persistent string map, the terminal counterpart of
// browser local storage.
type KeyValue interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key.
	Set(ctx context.Context, key, value string) error
	// Delete removes the given keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
}

// FileStore keeps all values in a single JSON object on disk.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store backed by the file at path. The file is
// created on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// load reads the whole file. A missing file is an empty store.
func (fs *FileStore) load() (map[string]string, error) {
	f, err := os.Open(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	defer f.Close()

	values := map[string]string{}
	if err := json.NewDecoder(f).Decode(&values); err != nil {
		return nil, fmt.Errorf("decode %s: %w", fs.path, err)
	}
	return values, nil
}

// save replaces the whole file with owner-only permissions since it holds
// bearer tokens. The new content is written to a temporary file in the same
// directory and renamed over the old one, so a crash never leaves a
// half-written file behind.
func (fs *FileStore) save(values map[string]string) (err error) {
	f, err := os.CreateTemp(filepath.Dir(fs.path), filepath.Base(fs.path)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()

	if err := f.Chmod(0600); err != nil {
		_ = f.Close()
		return err
	}
	if err := json.NewEncoder(f).Encode(values); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), fs.path)
}

func (fs *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	values, err := fs.load()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (fs *FileStore) Set(_ context.Context, key, value string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	values, err := fs.load()
	if err != nil {
		return err
	}
	values[key] = value
	return fs.save(values)
}

func (fs *FileStore) Delete(_ context.Context, keys ...string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	values, err := fs.load()
	if err != nil {
		return err
	}
	changed := false
	for _, k := range keys {
		if _, ok := values[k]; ok {
			delete(values, k)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return fs.save(values)
}

// MemoryStore is a process-local KeyValue.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Open returns the KeyValue backend named by kind: "file" (path is the
// session file), "redis" (redisURL) or "memory". The returned closer
// releases backend resources and is never nil.
func Open(ctx context.Context, kind, path, redisURL string) (KeyValue, func() error, error) {
	noop := func() error { return nil }
	switch kind {
	case "", "file":
		return NewFileStore(path), noop, nil
	case "memory":
		return NewMemoryStore(), noop, nil
	case "redis":
		client, err := DialRedis(ctx, redisURL)
		if err != nil {
			return nil, noop, err
		}
		return NewRedisStore(client), client.Close, nil
	}
	return nil, noop, fmt.Errorf("%w: %q", ErrUnknownBackend, kind)
}
