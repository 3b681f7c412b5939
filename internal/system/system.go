package system

import (
	"os/exec"

	"github.com/spf13/afero"
)

// Executor defines a common interface for running external commands.
// Run and CombinedOutput may change the machine; Output and LookPath are
// read-only queries.
type Executor interface {
	Run(cmd *exec.Cmd) error
	CombinedOutput(cmd *exec.Cmd) ([]byte, error)
	Output(cmd *exec.Cmd) ([]byte, error)
	LookPath(file string) (string, error)
	IsRoot() bool
	CanSudo() bool
}

// FileSystem is the filesystem capability every component writes through.
type FileSystem = afero.Fs

// LiveFileSystem returns the real operating-system filesystem.
func LiveFileSystem() FileSystem {
	return afero.NewOsFs()
}

// DryRunFileSystem layers an in-memory overlay on top of a read-only view
// of base, so writes are visible to later reads but never reach disk.
func DryRunFileSystem(base FileSystem) FileSystem {
	return afero.NewCopyOnWriteFs(afero.NewReadOnlyFs(base), afero.NewMemMapFs())
}
