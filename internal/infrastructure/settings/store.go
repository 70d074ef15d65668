package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"
)

const (
	appName     = "chatlobby"
	storageFile = "storage.json"

	// UsernameKey is the key the display name is stored under.
	UsernameKey = "chatLobbyUsername"
)

// Store is a tiny durable key/value store backed by one JSON file. Values
// survive restarts of the process but are local to the machine and user.
type Store struct {
	path  string
	cache map[string]string
	mu    sync.RWMutex
}

// NewStore opens the store in dir. An empty dir selects the user's XDG
// config directory.
func NewStore(dir string) (*Store, error) {
	var path string
	if dir == "" {
		p, err := xdg.ConfigFile(filepath.Join(appName, storageFile))
		if err != nil {
			return nil, fmt.Errorf("failed to resolve storage path: %w", err)
		}
		path = p
	} else {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory: %w", err)
		}
		path = filepath.Join(dir, storageFile)
	}

	s := &Store{
		path:  path,
		cache: map[string]string{},
	}
	if err := s.load(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read storage file: %w", err)
	}

	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		// A corrupt file behaves like an empty one; the next write replaces it.
		return nil
	}
	s.cache = values

	return nil
}

func (s *Store) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.cache[key]
	return v, ok
}

// Set writes the whole store to disk before updating the in-memory copy, so
// a failed write leaves both untouched.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]string, len(s.cache)+1)
	for k, v := range s.cache {
		next[k] = v
	}
	next[key] = value

	data, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write storage file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace storage file: %w", err)
	}

	s.cache = next
	return nil
}

func (s *Store) LoadUsername() (string, bool) {
	v, ok := s.Get(UsernameKey)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (s *Store) SaveUsername(name string) error {
	return s.Set(UsernameKey, name)
}
