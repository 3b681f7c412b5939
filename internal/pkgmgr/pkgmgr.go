// Package pkgmgr wraps the native package managers behind one interface.
package pkgmgr

import (
	"context"
	"fmt"
	"os/exec"

	"zshsetup/internal/failure"
	"zshsetup/internal/logging"
	"zshsetup/internal/system"
)

// Package is one installable unit. Command, when set, is looked up on PATH
// first so tools installed by other means are not reinstalled.
type Package struct {
	Name    string
	Command string
	Cask    bool
}

// Manager is the capability every package manager adapter provides.
type Manager interface {
	// Name is the catalog key of the manager (brew, apt, dnf, ...).
	Name() string
	// EnsurePresent makes the manager usable, installing it if possible.
	EnsurePresent(ctx context.Context) error
	// Install is a no-op when pkg is already installed.
	Install(ctx context.Context, pkg Package) (installed bool, err error)
}

// onPath reports whether pkg's command is already available.
func onPath(e system.Executor, pkg Package) bool {
	if pkg.Command == "" {
		return false
	}
	_, err := e.LookPath(pkg.Command)
	return err == nil
}

func run(ctx context.Context, e system.Executor, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	if err := e.Run(cmd); err != nil {
		return fmt.Errorf("%s %v failed: %w", name, args, err)
	}
	return nil
}

func query(ctx context.Context, e system.Executor, name string, args ...string) bool {
	_, err := e.Output(exec.CommandContext(ctx, name, args...))
	return err == nil
}

func missing(binary string) error {
	return failure.Newf(failure.MissingDependency, "", "%s not found on PATH", binary)
}

func logInstalled(manager string, pkg Package) {
	logger := logging.GetLogger("pkgmgr")
	logger.Info().Str("manager", manager).Str("package", pkg.Name).Msg("installed")
}
