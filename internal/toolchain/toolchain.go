// Package toolchain installs the language runtimes and the macOS extras, and
// switches the login shell.
package toolchain

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"zshsetup/internal/catalog"
	"zshsetup/internal/config"
	"zshsetup/internal/constants"
	"zshsetup/internal/fetch"
	"zshsetup/internal/logging"
	"zshsetup/internal/pkgmgr"
	"zshsetup/internal/system"
)

// FallbackPython is tried on Homebrew when the pinned formula fails.
const FallbackPython = "3.10"

type Service struct {
	Exec    system.Executor
	FS      system.FileSystem
	Fetcher fetch.Fetcher
	Manager pkgmgr.Manager
	Config  config.Config
	// LoginShell is the user's current $SHELL.
	LoginShell string
	// ScriptDir is the parent of the per-run directory installer scripts are
	// downloaded into. Empty means os.TempDir.
	ScriptDir string
}

// Python installs the pinned Python version and returns the package that
// ended up installed.
func (s *Service) Python(ctx context.Context, cat catalog.Catalog) (string, error) {
	logger := logging.GetLogger("toolchain")

	if s.Manager.Name() == "brew" {
		formula := s.Config.PythonFormula()
		_, err := s.Manager.Install(ctx, pkgmgr.Package{Name: formula})
		if err == nil {
			return formula, nil
		}
		logger.Warn().Err(err).Str("formula", formula).Msg("falling back to python@" + FallbackPython)

		fallback := "python@" + FallbackPython
		if _, err := s.Manager.Install(ctx, pkgmgr.Package{Name: fallback}); err != nil {
			return "", fmt.Errorf("could not install %s or %s: %w", formula, fallback, err)
		}
		return fallback, nil
	}

	tool, ok := cat.Lookup("python")
	if !ok {
		return "", fmt.Errorf("python is not in the catalog")
	}
	name, ok := tool.PackageFor(s.Manager.Name())
	if !ok {
		return "", fmt.Errorf("no python package for %s", s.Manager.Name())
	}
	if _, err := s.Manager.Install(ctx, pkgmgr.Package{Name: name, Command: tool.Command}); err != nil {
		return "", err
	}
	return name, nil
}

// NvmPresent reports whether nvm is already installed in NVM_DIR.
func (s *Service) NvmPresent() bool {
	ok, _ := afero.Exists(s.FS, filepath.Join(s.Config.Paths.NvmDir, "nvm.sh"))
	return ok
}

// Node installs nvm when missing, then the configured Node version as the
// default alias.
func (s *Service) Node(ctx context.Context) error {
	logger := logging.GetLogger("toolchain")
	nvmDir := s.Config.Paths.NvmDir
	env := append(os.Environ(), "NVM_DIR="+nvmDir, "PROFILE=/dev/null", "NODE_VERSION="+s.Config.NodeVersion)

	if s.NvmPresent() {
		logger.Debug().Str("dir", nvmDir).Msg("nvm already installed")
	} else {
		if err := s.FS.MkdirAll(nvmDir, 0o755); err != nil {
			return fmt.Errorf("could not create %s: %w", nvmDir, err)
		}
		url := fmt.Sprintf(constants.URLs.NvmInstallFmt, s.Config.NvmVersion)
		script, cleanup, err := fetch.Script(ctx, s.Fetcher, s.FS, s.ScriptDir, url, "nvm-install.sh")
		if err != nil {
			return err
		}
		defer cleanup()
		cmd := exec.CommandContext(ctx, "bash", script)
		cmd.Env = env
		if err := s.Exec.Run(cmd); err != nil {
			return fmt.Errorf("nvm install script failed: %w", err)
		}
		logger.Info().Str("version", s.Config.NvmVersion).Msg("nvm installed")
	}

	cmd := exec.CommandContext(ctx, "bash", "-c",
		`. "$NVM_DIR/nvm.sh" && nvm install "$NODE_VERSION" && nvm alias default "$NODE_VERSION"`)
	cmd.Env = env
	if err := s.Exec.Run(cmd); err != nil {
		return fmt.Errorf("could not install node %s: %w", s.Config.NodeVersion, err)
	}
	return nil
}

// XcodeTools starts the command-line tools installer unless they are
// already present. It reports whether the installer was started.
func (s *Service) XcodeTools(ctx context.Context) (bool, error) {
	logger := logging.GetLogger("toolchain")

	if _, err := s.Exec.Output(exec.CommandContext(ctx, "xcode-select", "-p")); err == nil {
		logger.Debug().Msg("xcode command line tools already installed")
		return false, nil
	}
	if err := s.Exec.Run(exec.CommandContext(ctx, "xcode-select", "--install")); err != nil {
		return false, fmt.Errorf("could not start the xcode command line tools installer: %w", err)
	}
	logger.Warn().Msg("finish the xcode command line tools dialog, then run zshsetup again if homebrew fails")
	return true, nil
}

// DefaultShell switches the login shell to zsh. It reports whether chsh ran.
func (s *Service) DefaultShell(ctx context.Context) (bool, error) {
	logger := logging.GetLogger("toolchain")

	if filepath.Base(s.LoginShell) == "zsh" {
		logger.Debug().Str("shell", s.LoginShell).Msg("login shell is already zsh")
		return false, nil
	}

	zsh, err := s.registeredZsh()
	if err != nil {
		return false, err
	}
	if err := s.Exec.Run(exec.CommandContext(ctx, "chsh", "-s", zsh)); err != nil {
		return false, fmt.Errorf("chsh -s %s failed: %w", zsh, err)
	}
	logger.Info().Str("shell", zsh).Msg("login shell changed, log out and back in to use it")
	return true, nil
}

// registeredZsh picks a zsh binary that /etc/shells allows chsh to use.
func (s *Service) registeredZsh() (string, error) {
	data, err := afero.ReadFile(s.FS, "/etc/shells")
	if err != nil {
		return "", fmt.Errorf("could not read /etc/shells: %w", err)
	}
	allowed := map[string]bool{}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			allowed[line] = true
		}
	}

	var candidates []string
	if p, err := s.Exec.LookPath("zsh"); err == nil {
		candidates = append(candidates, p)
	}
	candidates = append(candidates, "/bin/zsh", "/usr/bin/zsh")
	for _, c := range candidates {
		if allowed[c] {
			return c, nil
		}
	}
	return "", fmt.Errorf("no zsh listed in /etc/shells")
}
