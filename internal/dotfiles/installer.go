// Package dotfiles installs managed files idempotently, keeping a single
// backup of whatever the user had before the first install.
package dotfiles

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"zshsetup/internal/failure"
	"zshsetup/internal/logging"
	"zshsetup/internal/system"
)

// Target is a managed destination file and the content it should hold.
type Target struct {
	Name    string
	Path    string
	Content []byte
	Mode    os.FileMode
}

// Outcome is what Install, Plan or Restore did (or would do) to a target.
type Outcome int

const (
	Created Outcome = iota
	Unchanged
	BackedUp
	Replaced
	Restored
	Removed
	Absent
	Kept
)

var outcomeNames = map[Outcome]string{
	Created:   "created",
	Unchanged: "unchanged",
	BackedUp:  "backed up",
	Replaced:  "replaced",
	Restored:  "restored",
	Removed:   "removed",
	Absent:    "absent",
	Kept:      "kept",
}

func (o Outcome) String() string {
	return outcomeNames[o]
}

// Observed is what is on disk for a target before anything is changed.
type Observed struct {
	DestExists   bool
	DestMatches  bool
	BackupExists bool
}

// Decide is the pure install decision for an observed state.
func Decide(o Observed, backupEnabled bool) Outcome {
	switch {
	case !o.DestExists:
		return Created
	case o.DestMatches:
		return Unchanged
	case o.BackupExists || !backupEnabled:
		return Replaced
	default:
		return BackedUp
	}
}

// Installer converges targets on the embedded content, keeping a single
// backup of what was there before.
type Installer struct {
	FS      system.FileSystem
	Suffix  string
	Backups bool
}

// NewInstaller keeps backups named <target><suffix> when backups is set.
func NewInstaller(fsys system.FileSystem, suffix string, backups bool) *Installer {
	return &Installer{
		FS:      fsys,
		Suffix:  suffix,
		Backups: backups,
	}
}

// BackupPath is where the original content of t is kept.
func (i *Installer) BackupPath(t Target) string {
	return t.Path + i.Suffix
}

// Observe reads the current state of t without changing anything.
func (i *Installer) Observe(t Target) (Observed, error) {
	var o Observed

	current, err := afero.ReadFile(i.FS, t.Path)
	switch {
	case err == nil:
		o.DestExists = true
		o.DestMatches = bytes.Equal(current, t.Content)
	case errors.Is(err, fs.ErrNotExist):
	default:
		return Observed{}, fmt.Errorf("could not read %s: %w", t.Path, err)
	}

	o.BackupExists, err = afero.Exists(i.FS, i.BackupPath(t))
	if err != nil {
		return Observed{}, fmt.Errorf("could not check backup of %s: %w", t.Path, err)
	}
	return o, nil
}

// Plan reports what Install would do for t.
func (i *Installer) Plan(t Target) (Outcome, error) {
	o, err := i.Observe(t)
	if err != nil {
		return 0, failure.New(failure.Filesystem, "", err)
	}
	return Decide(o, i.Backups), nil
}

// Install brings t's destination to the desired content. Every error is a
// filesystem failure.
func (i *Installer) Install(t Target) (Outcome, error) {
	logger := logging.GetLogger("dotfiles")

	outcome, err := i.Plan(t)
	if err != nil {
		return 0, err
	}

	switch outcome {
	case Unchanged:
		logger.Debug().Str("path", t.Path).Msg("already up to date")
		return outcome, nil
	case BackedUp:
		backup := i.BackupPath(t)
		if err := i.copyFile(t.Path, backup); err != nil {
			return 0, failure.Newf(failure.Filesystem, "", "could not back up %s: %w", t.Path, err)
		}
		logger.Info().Str("path", t.Path).Str("backup", backup).Msg("backed up existing file")
	}

	if err := i.write(t.Path, t.Content, i.modeFor(t)); err != nil {
		return 0, failure.Newf(failure.Filesystem, "", "could not write %s: %w", t.Path, err)
	}
	logger.Info().Str("path", t.Path).Str("outcome", outcome.String()).Msg("installed")
	return outcome, nil
}

// modeFor keeps the mode of an existing destination.
func (i *Installer) modeFor(t Target) os.FileMode {
	if info, err := i.FS.Stat(t.Path); err == nil {
		return info.Mode().Perm()
	}
	if t.Mode == 0 {
		return 0o644
	}
	return t.Mode
}

func (i *Installer) copyFile(src, dst string) error {
	info, err := i.FS.Stat(src)
	if err != nil {
		return err
	}
	data, err := afero.ReadFile(i.FS, src)
	if err != nil {
		return err
	}
	return i.write(dst, data, info.Mode().Perm())
}

// write replaces path through a temp file in the same directory.
func (i *Installer) write(path string, data []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	if err := i.FS.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := afero.TempFile(i.FS, dir, "."+filepath.Base(path)+".zshsetup-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	_, err = tmp.Write(data)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = i.FS.Chmod(tmpName, mode)
	}
	if err == nil {
		err = i.FS.Rename(tmpName, path)
	}
	if err != nil {
		_ = i.FS.Remove(tmpName)
	}
	return err
}
