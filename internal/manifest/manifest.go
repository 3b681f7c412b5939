// Package manifest records what zshsetup created so uninstall can remove
// exactly that and nothing else.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"

	"zshsetup/internal/system"
)

const version = 1

type Manifest struct {
	Version int      `toml:"version"`
	Repos   []string `toml:"repos"`
	Fonts   []string `toml:"fonts"`
	Targets []string `toml:"targets"`
}

func (m *Manifest) AddRepo(path string)   { m.Repos = addUnique(m.Repos, path) }
func (m *Manifest) AddFont(path string)   { m.Fonts = addUnique(m.Fonts, path) }
func (m *Manifest) AddTarget(path string) { m.Targets = addUnique(m.Targets, path) }

// Owns reports whether the target at path was written by zshsetup.
func (m Manifest) Owns(path string) bool {
	return slices.Contains(m.Targets, path)
}

// Empty reports whether nothing is recorded.
func (m Manifest) Empty() bool {
	return len(m.Repos) == 0 && len(m.Fonts) == 0 && len(m.Targets) == 0
}

func addUnique(list []string, path string) []string {
	if slices.Contains(list, path) {
		return list
	}
	list = append(list, path)
	sort.Strings(list)
	return list
}

type Store struct {
	FS   system.FileSystem
	Path string
}

func NewStore(fsys system.FileSystem, path string) *Store {
	return &Store{FS: fsys, Path: path}
}

// Load returns the recorded manifest, or an empty one if none exists.
func (s *Store) Load() (Manifest, error) {
	data, err := afero.ReadFile(s.FS, s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return Manifest{Version: version}, nil
	}
	if err != nil {
		return Manifest{}, fmt.Errorf("could not read manifest %s: %w", s.Path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("invalid manifest format in %s: %w", s.Path, err)
	}
	if m.Version > version {
		return Manifest{}, fmt.Errorf("manifest %s has version %d, this zshsetup understands %d", s.Path, m.Version, version)
	}
	m.Version = version
	return m, nil
}

// Save writes m through a temp file and rename.
func (s *Store) Save(m Manifest) error {
	m.Version = version
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(m); err != nil {
		return fmt.Errorf("could not encode manifest: %w", err)
	}

	dir := filepath.Dir(s.Path)
	if err := s.FS.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not create %s: %w", dir, err)
	}
	tmp, err := afero.TempFile(s.FS, dir, ".manifest-*")
	if err != nil {
		return fmt.Errorf("could not create temp manifest: %w", err)
	}
	tmpName := tmp.Name()
	_, err = tmp.Write(buf.Bytes())
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = s.FS.Rename(tmpName, s.Path)
	}
	if err != nil {
		_ = s.FS.Remove(tmpName)
		return fmt.Errorf("could not save manifest %s: %w", s.Path, err)
	}
	return nil
}

// Remove deletes the manifest. A missing manifest is not an error.
func (s *Store) Remove() error {
	err := s.FS.Remove(s.Path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("could not remove manifest %s: %w", s.Path, err)
	}
	return nil
}
