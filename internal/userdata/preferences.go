package userdata

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/agentx-labs/create-lit-component/internal/options"
	"github.com/agentx-labs/create-lit-component/internal/platform"
	"go.yaml.in/yaml/v3"
)

// Store is a durable key/value record. Keys are command names and values are
// the sub-mapping of preferences stored for that command.
type Store interface {
	// Get returns the stored mapping for key, or an empty mapping when nothing
	// has been stored. A missing key is never an error.
	Get(key string) (map[string]any, error)
	// Set replaces the mapping for key and persists it before returning.
	Set(key string, value map[string]any) error
	// Delete removes key. Deleting a missing key is a no-op.
	Delete(key string) error
}

// Preferences are the last-used values offered as prompt defaults.
type Preferences struct {
	Scope    string `yaml:"scope,omitempty"`
	UseScope bool   `yaml:"useScope,omitempty"`
}

// LoadPreferences reads the preferences stored under command.
func LoadPreferences(store Store, command string) (Preferences, error) {
	raw, err := store.Get(command)
	if err != nil {
		return Preferences{}, fmt.Errorf("reading preferences: %w", err)
	}
	var p Preferences
	if s, ok := raw[options.Scope].(string); ok {
		p.Scope = s
	}
	if b, ok := raw[options.UseScope].(bool); ok {
		p.UseScope = b
	}
	return p, nil
}

// SavePreferences persists the scope choice of a resolved option set. Only the
// normalized scope and whether one was used are kept; nothing is written when
// opts carries no scope. It reports whether anything was written.
func SavePreferences(store Store, command string, opts options.Set) (bool, error) {
	scope := opts.Scope()
	if scope == "" {
		return false, nil
	}
	value := map[string]any{
		options.Scope:    scope,
		options.UseScope: true,
	}
	if err := store.Set(command, value); err != nil {
		return false, fmt.Errorf("saving preferences: %w", err)
	}
	return true, nil
}

// FileStore keeps every command's preferences in a single YAML document.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store backed by the file at path. The file and its
// directory are created on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// OpenDefaultStore returns a FileStore at the default preferences path.
func OpenDefaultStore() (*FileStore, error) {
	path, err := GetPreferencesPath()
	if err != nil {
		return nil, err
	}
	return NewFileStore(path), nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// Get implements Store.
func (s *FileStore) Get(key string) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	if v, ok := doc[key]; ok && v != nil {
		return v, nil
	}
	return map[string]any{}, nil
}

// Set implements Store.
func (s *FileStore) Set(key string, value map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	doc[key] = value
	return s.write(doc)
}

// Delete implements Store.
func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := doc[key]; !ok {
		return nil
	}
	delete(doc, key)
	return s.write(doc)
}

func (s *FileStore) read() (map[string]map[string]any, error) {
	doc := map[string]map[string]any{}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	if doc == nil {
		doc = map[string]map[string]any{}
	}
	return doc, nil
}

// write replaces the file atomically: temp file, fsync, rename.
func (s *FileStore) write(doc map[string]map[string]any) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding preferences: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, DirPermSecure); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".preferences-*.yaml")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err := platform.Chmod(tmpName, FilePermSecure); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	return nil
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]map[string]any
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]map[string]any{}}
}

// Get implements Store.
func (m *MemoryStore) Get(key string) (map[string]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := map[string]any{}
	for k, v := range m.data[key] {
		out[k] = v
	}
	return out, nil
}

// Set implements Store.
func (m *MemoryStore) Set(key string, value map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := make(map[string]any, len(value))
	for k, v := range value {
		cp[k] = v
	}
	m.data[key] = cp
	return nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}
