package pkgmgr

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"

	"zshsetup/internal/constants"
	"zshsetup/internal/failure"
	"zshsetup/internal/fetch"
	"zshsetup/internal/logging"
	"zshsetup/internal/system"
)

const (
	AppleSiliconPrefix = "/opt/homebrew"
	IntelPrefix        = "/usr/local"
	LinuxbrewPrefix    = "/home/linuxbrew/.linuxbrew"
)

// Homebrew installs formulae and casks. Prefix is where a fresh install
// lands; existing installs under any known prefix are reused.
type Homebrew struct {
	Exec    system.Executor
	FS      system.FileSystem
	Fetcher fetch.Fetcher
	Prefix  string
	// ScriptDir is the parent of the per-run directory the install script is
	// downloaded into. Empty means os.TempDir.
	ScriptDir string

	bin string
}

func NewHomebrew(e system.Executor, fs system.FileSystem, f fetch.Fetcher, prefix string) *Homebrew {
	return &Homebrew{Exec: e, FS: fs, Fetcher: f, Prefix: prefix}
}

func (h *Homebrew) Name() string { return "brew" }

// Locate returns the brew binary if one is installed.
func (h *Homebrew) Locate() (string, bool) {
	if h.bin != "" {
		return h.bin, true
	}
	candidates := []string{filepath.Join(h.Prefix, "bin", "brew")}
	for _, prefix := range []string{AppleSiliconPrefix, IntelPrefix, LinuxbrewPrefix} {
		if prefix != h.Prefix {
			candidates = append(candidates, filepath.Join(prefix, "bin", "brew"))
		}
	}
	for _, c := range candidates {
		if _, err := h.Exec.LookPath(c); err == nil {
			h.bin = c
			return c, true
		}
	}
	if p, err := h.Exec.LookPath("brew"); err == nil {
		h.bin = p
		return p, true
	}
	return "", false
}

func (h *Homebrew) EnsurePresent(ctx context.Context) error {
	logger := logging.GetLogger("pkgmgr")

	if bin, ok := h.Locate(); ok {
		logger.Debug().Str("brew", bin).Msg("homebrew found")
		return nil
	}

	logger.Info().Str("prefix", h.Prefix).Msg("installing homebrew")
	script, cleanup, err := fetch.Script(ctx, h.Fetcher, h.FS, h.ScriptDir, constants.URLs.HomebrewInstall, "homebrew-install.sh")
	if err != nil {
		return failure.New(failure.MissingDependency, "", err)
	}
	defer cleanup()

	cmd := exec.CommandContext(ctx, "/bin/bash", script)
	cmd.Env = append(os.Environ(), "NONINTERACTIVE=1")
	if err := h.Exec.Run(cmd); err != nil {
		return failure.Newf(failure.MissingDependency, "", "homebrew install script failed: %w", err)
	}

	// The installer does not touch PATH for this process.
	h.bin = filepath.Join(h.Prefix, "bin", "brew")
	return nil
}

func (h *Homebrew) Install(ctx context.Context, pkg Package) (bool, error) {
	logger := logging.GetLogger("pkgmgr")

	if onPath(h.Exec, pkg) {
		logger.Debug().Str("package", pkg.Name).Msg("command already on PATH")
		return false, nil
	}

	bin, ok := h.Locate()
	if !ok {
		return false, missing("brew")
	}

	kind := "--formula"
	if pkg.Cask {
		kind = "--cask"
	}
	if query(ctx, h.Exec, bin, "list", kind, pkg.Name) {
		logger.Debug().Str("package", pkg.Name).Msg("already installed")
		return false, nil
	}

	args := []string{"install", pkg.Name}
	if pkg.Cask {
		args = []string{"install", "--cask", pkg.Name}
	}
	if err := run(ctx, h.Exec, bin, args...); err != nil {
		return false, err
	}
	logInstalled(h.Name(), pkg)
	return true, nil
}
