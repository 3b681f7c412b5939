package manifest

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const path = "/state/zshsetup/manifest.toml"

func TestStore(t *testing.T) {
	t.Run("missing manifest loads empty", func(t *testing.T) {
		s := NewStore(afero.NewMemMapFs(), path)

		m, err := s.Load()

		require.NoError(t, err)
		assert.True(t, m.Empty())
		assert.Equal(t, 1, m.Version)
	})

	t.Run("saved manifest loads back", func(t *testing.T) {
		// Arrange
		fs := afero.NewMemMapFs()
		s := NewStore(fs, path)
		var m Manifest
		m.AddRepo("/home/u/.oh-my-zsh")
		m.AddRepo("/home/u/.oh-my-zsh")
		m.AddFont("/fonts/MesloLGS NF Regular.ttf")
		m.AddTarget("/home/u/.zshrc")

		// Act
		require.NoError(t, s.Save(m))
		got, err := s.Load()

		// Assert
		require.NoError(t, err)
		assert.Equal(t, []string{"/home/u/.oh-my-zsh"}, got.Repos)
		assert.True(t, got.Owns("/home/u/.zshrc"))
		assert.False(t, got.Owns("/home/u/.bashrc"))
		entries, err := afero.ReadDir(fs, "/state/zshsetup")
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("newer versions are rejected", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, path, []byte("version = 9\n"), 0o644))

		_, err := NewStore(fs, path).Load()

		assert.Error(t, err)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, path, []byte("repos = [\n"), 0o644))

		_, err := NewStore(fs, path).Load()

		assert.Error(t, err)
	})

	t.Run("remove tolerates a missing manifest", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		s := NewStore(fs, path)
		require.NoError(t, s.Save(Manifest{}))

		require.NoError(t, s.Remove())
		require.NoError(t, s.Remove())

		exists, _ := afero.Exists(fs, path)
		assert.False(t, exists)
	})
}
