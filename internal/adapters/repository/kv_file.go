package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/campusboard/core/internal/domain/entities"
	"github.com/campusboard/core/internal/ports"
)

// unsafePathChars is stripped from user ids before they become file names.
// Dots are not allowed either, so a sanitized name can never contain "..".
var unsafePathChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// FileKVStoreImpl implements the KVStore interface on one JSON file per
// user. Writes go to a temp file first and are renamed into place so a
// crash mid-write never corrupts the stored map.
type FileKVStoreImpl struct {
	dir string
	mu  sync.Mutex
}

// NewFileKVStore creates a file-backed KV store rooted at dir.
func NewFileKVStore(dir string) (ports.KVStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileKVStoreImpl{dir: dir}, nil
}

func (s *FileKVStoreImpl) Get(_ context.Context, userID, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load(userID)
	if err != nil {
		return nil, err
	}
	value, ok := values[key]
	if !ok {
		return nil, entities.ErrKeyNotFound
	}
	return value, nil
}

func (s *FileKVStoreImpl) Set(_ context.Context, userID, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load(userID)
	if err != nil {
		return err
	}
	values[key] = json.RawMessage(value)
	return s.store(userID, values)
}

func (s *FileKVStoreImpl) Delete(_ context.Context, userID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load(userID)
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return s.store(userID, values)
}

// load reads the user's value map. A missing file is an empty map; a
// corrupt file is also an empty map, so one bad write never wedges the
// user's storage.
func (s *FileKVStoreImpl) load(userID string) (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path(userID))
	if os.IsNotExist(err) {
		return make(map[string]json.RawMessage), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read kv file: %w", err)
	}

	values := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &values); err != nil {
		return make(map[string]json.RawMessage), nil
	}
	return values, nil
}

func (s *FileKVStoreImpl) store(userID string, values map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode kv file: %w", err)
	}

	path := s.path(userID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write kv file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace kv file: %w", err)
	}
	return nil
}

func (s *FileKVStoreImpl) path(userID string) string {
	name := unsafePathChars.ReplaceAllString(userID, "_")
	if name == "" {
		name = "_anonymous"
	}
	return filepath.Join(s.dir, name+".json")
}
