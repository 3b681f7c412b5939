package dotfiles

import (
	"bytes"
	"errors"
	"io/fs"

	"github.com/spf13/afero"

	"zshsetup/internal/failure"
	"zshsetup/internal/logging"
)

// Restore undoes Install for t. Without a backup the destination is removed
// only when owned is true or it still holds the managed content; anything
// else is Kept.
func (i *Installer) Restore(t Target, owned bool) (Outcome, error) {
	logger := logging.GetLogger("dotfiles")
	backup := i.BackupPath(t)

	hasBackup, err := afero.Exists(i.FS, backup)
	if err != nil {
		return 0, failure.Newf(failure.Filesystem, "", "could not check backup of %s: %w", t.Path, err)
	}
	if hasBackup {
		if err := i.copyFile(backup, t.Path); err != nil {
			return 0, failure.Newf(failure.Filesystem, "", "could not restore %s: %w", t.Path, err)
		}
		if err := i.FS.Remove(backup); err != nil {
			return 0, failure.Newf(failure.Filesystem, "", "could not remove backup %s: %w", backup, err)
		}
		logger.Info().Str("path", t.Path).Msg("restored from backup")
		return Restored, nil
	}

	current, err := afero.ReadFile(i.FS, t.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return Absent, nil
	}
	if err != nil {
		return 0, failure.Newf(failure.Filesystem, "", "could not read %s: %w", t.Path, err)
	}

	if !owned && !bytes.Equal(current, t.Content) {
		logger.Warn().Str("path", t.Path).Msg("not created by zshsetup and has no backup, leaving it in place")
		return Kept, nil
	}
	if err := i.FS.Remove(t.Path); err != nil {
		return 0, failure.Newf(failure.Filesystem, "", "could not remove %s: %w", t.Path, err)
	}
	logger.Info().Str("path", t.Path).Msg("removed")
	return Removed, nil
}
