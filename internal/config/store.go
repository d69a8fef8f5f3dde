package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/MyCarrier-DevOps/go-pdfmerge/internal/natsort"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Store persists merge configurations in a single YAML file. The file is
// re-read on every call.
type Store struct {
	fs   afero.Fs
	path string
}

// NewStore creates a Store that keeps its data in path on fsys.
func NewStore(fsys afero.Fs, path string) *Store {
	return &Store{fs: fsys, path: path}
}

// Path returns the location of the store file.
func (s *Store) Path() string {
	return s.path
}

// NormalizeRoot turns root into the key used by the store: an absolute,
// cleaned path. "./root", "root/" and the absolute form are the same key.
func NormalizeRoot(root string) (string, error) {
	if root == "" {
		return "", errors.New("root directory is empty")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", root, err)
	}
	return filepath.Clean(abs), nil
}

// Get returns the merge configuration of root. The boolean is false when no
// configuration has been saved for it.
func (s *Store) Get(root string) ([]string, bool, error) {
	key, err := NormalizeRoot(root)
	if err != nil {
		return nil, false, err
	}
	f, err := s.load()
	if err != nil {
		return nil, false, err
	}
	order, ok := f.Configurations[key]
	if !ok || len(order) == 0 {
		return nil, false, nil
	}
	return append([]string(nil), order...), true, nil
}

// Set saves names as the merge configuration of root, replacing any
// previous one, and returns the normalized names that were stored.
func (s *Store) Set(root string, names []string) ([]string, error) {
	key, err := NormalizeRoot(root)
	if err != nil {
		return nil, err
	}
	order, err := NormalizeNames(names)
	if err != nil {
		return nil, err
	}
	f, err := s.load()
	if err != nil {
		return nil, err
	}
	f.Configurations[key] = order
	if err := s.save(f); err != nil {
		return nil, err
	}
	return order, nil
}

// Remove deletes the merge configuration of root. It reports whether one
// existed.
func (s *Store) Remove(root string) (bool, error) {
	key, err := NormalizeRoot(root)
	if err != nil {
		return false, err
	}
	f, err := s.load()
	if err != nil {
		return false, err
	}
	if _, ok := f.Configurations[key]; !ok {
		return false, nil
	}
	delete(f.Configurations, key)
	return true, s.save(f)
}

// List returns every saved configuration in natural order of root path.
func (s *Store) List() ([]MergeConfiguration, error) {
	f, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make([]MergeConfiguration, 0, len(f.Configurations))
	for r, order := range f.Configurations {
		out = append(out, MergeConfiguration{Root: r, Order: append([]string(nil), order...)})
	}
	natsort.SortFunc(out, func(c MergeConfiguration) string { return c.Root })
	return out, nil
}

// load reads the store file; a missing file is an empty store.
func (s *Store) load() (*File, error) {
	f, err := LoadFromFile(s.fs, s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &File{Configurations: map[string][]string{}}, nil
	}
	return f, err
}

// save replaces the store file atomically through a temporary file.
func (s *Store) save(f *File) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	tmp, err := afero.TempFile(s.fs, dir, ".configurations-*.tmp")
	if err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = s.fs.Remove(tmp.Name())
		return fmt.Errorf("writing config file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmp.Name())
		return fmt.Errorf("writing config file: %w", err)
	}
	if err := s.fs.Rename(tmp.Name(), s.path); err != nil {
		_ = s.fs.Remove(tmp.Name())
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
