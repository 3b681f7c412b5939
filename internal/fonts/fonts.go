// Package fonts installs the MesloLGS NF fonts Powerlevel10k expects.
package fonts

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"zshsetup/internal/config"
	"zshsetup/internal/constants"
	"zshsetup/internal/fetch"
	"zshsetup/internal/logging"
	"zshsetup/internal/system"
)

var Styles = []string{"Regular", "Bold", "Italic", "Bold Italic"}

// FileName is the on-disk name of a MesloLGS NF style.
func FileName(style string) string {
	return "MesloLGS NF " + style + ".ttf"
}

// URL is where a style is downloaded from.
func URL(style string) string {
	return constants.URLs.FontBaseURL + strings.ReplaceAll(FileName(style), " ", "%20")
}

// Dir returns the per-user font directory for the platform.
func Dir(p system.Platform, paths config.Paths) string {
	if p.Kind == system.MacOS {
		return filepath.Join(paths.Home, "Library", "Fonts")
	}
	return paths.Fonts
}

type Installer struct {
	Exec    system.Executor
	FS      system.FileSystem
	Fetcher fetch.Fetcher
	Dir     string
	// RefreshCache runs fc-cache after new fonts land. Linux only.
	RefreshCache bool
}

func NewInstaller(e system.Executor, fs system.FileSystem, f fetch.Fetcher, p system.Platform, paths config.Paths) *Installer {
	return &Installer{
		Exec:         e,
		FS:           fs,
		Fetcher:      f,
		Dir:          Dir(p, paths),
		RefreshCache: p.Kind == system.Linux,
	}
}

// Install downloads every missing style and returns the paths it
// downloaded. Fonts already present are left alone and not returned.
func (i *Installer) Install(ctx context.Context) ([]string, error) {
	logger := logging.GetLogger("fonts")

	var downloaded []string
	for _, style := range Styles {
		dest := filepath.Join(i.Dir, FileName(style))

		ok, err := afero.Exists(i.FS, dest)
		if err != nil {
			return nil, fmt.Errorf("could not stat %s: %w", dest, err)
		}
		if ok {
			logger.Debug().Str("font", dest).Msg("already installed")
			continue
		}
		if err := i.Fetcher.Download(ctx, URL(style), dest, 0o644); err != nil {
			return downloaded, err
		}
		downloaded = append(downloaded, dest)
	}

	if len(downloaded) > 0 && i.RefreshCache {
		if _, err := i.Exec.LookPath("fc-cache"); err != nil {
			logger.Warn().Msg("fc-cache not found, font cache not refreshed")
		} else if err := i.Exec.Run(exec.CommandContext(ctx, "fc-cache", "-f", i.Dir)); err != nil {
			return downloaded, fmt.Errorf("could not refresh font cache: %w", err)
		}
	}
	logger.Info().Int("downloaded", len(downloaded)).Str("dir", i.Dir).Msg("fonts ready")
	return downloaded, nil
}
