package fonts

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zshsetup/internal/config"
	"zshsetup/internal/system"
	"zshsetup/internal/system/systemtest"
)

type memFetcher struct {
	fs   afero.Fs
	urls []string
	err  error
}

func (m *memFetcher) Download(ctx context.Context, url, dest string, mode os.FileMode) error {
	if m.err != nil {
		return m.err
	}
	m.urls = append(m.urls, url)
	return afero.WriteFile(m.fs, dest, []byte("ttf"), mode)
}

func TestURL(t *testing.T) {
	assert.Equal(t,
		"https://github.com/romkatv/powerlevel10k-media/raw/master/MesloLGS%20NF%20Bold%20Italic.ttf",
		URL("Bold Italic"))
}

func TestDir(t *testing.T) {
	tests := []struct {
		name     string
		platform system.Platform
		paths    config.Paths
		want     string
	}{
		{"macos", system.Platform{Kind: system.MacOS}, config.Paths{Home: "/Users/u", Fonts: "/ignored"}, "/Users/u/Library/Fonts"},
		{"linux", system.Platform{Kind: system.Linux}, config.Paths{Home: "/home/u", Fonts: "/data/fonts"}, "/data/fonts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Dir(tt.platform, tt.paths))
		})
	}
}

func TestInstall(t *testing.T) {
	ctx := context.Background()

	t.Run("it should download every style and refresh the cache", func(t *testing.T) {
		// Arrange
		fs := afero.NewMemMapFs()
		ex := systemtest.NewRecorder("fc-cache")
		f := &memFetcher{fs: fs}
		inst := &Installer{Exec: ex, FS: fs, Fetcher: f, Dir: "/fonts", RefreshCache: true}

		// Act
		paths, err := inst.Install(ctx)

		// Assert
		require.NoError(t, err)
		assert.Len(t, paths, 4)
		assert.Len(t, f.urls, 4)
		assert.Contains(t, paths, "/fonts/MesloLGS NF Regular.ttf")
		assert.True(t, ex.Ran("fc-cache -f /fonts"))
	})

	t.Run("it should skip fonts that are present", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		for _, s := range Styles {
			require.NoError(t, afero.WriteFile(fs, filepath.Join("/fonts", FileName(s)), []byte("ttf"), 0o644))
		}
		ex := systemtest.NewRecorder("fc-cache")
		f := &memFetcher{fs: fs}
		inst := &Installer{Exec: ex, FS: fs, Fetcher: f, Dir: "/fonts", RefreshCache: true}

		paths, err := inst.Install(ctx)

		require.NoError(t, err)
		assert.Empty(t, paths)
		assert.Empty(t, f.urls)
		assert.Empty(t, ex.Commands)
	})

	t.Run("it should return download errors", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		inst := &Installer{Exec: systemtest.NewRecorder(), FS: fs, Fetcher: &memFetcher{fs: fs, err: errors.New("offline")}, Dir: "/fonts"}

		paths, err := inst.Install(ctx)

		assert.Error(t, err)
		assert.Empty(t, paths)
	})

	t.Run("missing fc-cache only warns", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		ex := systemtest.NewRecorder()
		inst := &Installer{Exec: ex, FS: fs, Fetcher: &memFetcher{fs: fs}, Dir: "/fonts", RefreshCache: true}

		paths, err := inst.Install(ctx)

		require.NoError(t, err)
		assert.Len(t, paths, 4)
		assert.Empty(t, ex.Commands)
	})
}
