package app

import (
	"context"
	"errors"
	"io/fs"

	"zshsetup/internal/confirm"
	"zshsetup/internal/constants"
	"zshsetup/internal/dotfiles"
	"zshsetup/internal/failure"
	"zshsetup/internal/logging"
	"zshsetup/internal/manifest"
	"zshsetup/internal/report"
	"zshsetup/internal/utils"
)

// Uninstaller reverses an install. Packages are never removed.
type Uninstaller struct {
	deps    Deps
	confirm confirm.Confirmer
	report  *report.Report
}

func NewUninstaller(d Deps, c confirm.Confirmer) *Uninstaller {
	return &Uninstaller{
		deps:    d,
		confirm: c,
		report:  &report.Report{Title: "zshsetup uninstall"},
	}
}

// Run asks for confirmation and then restores targets and removes recorded
// artifacts. Declining is not an error.
func (u *Uninstaller) Run(ctx context.Context) (*report.Report, error) {
	logger := logging.GetLogger("uninstall")

	ok, err := u.confirm.Confirm(ctx, confirm.Question{
		Title:  constants.Prompt.UninstallTitle,
		Detail: constants.Prompt.UninstallDetail,
	})
	if err != nil {
		return u.fail(failure.At("confirm", failure.Unknown, err))
	}
	if !ok {
		logger.Info().Msg("uninstall cancelled")
		u.report.Add("confirm", "uninstall", report.Skipped, "cancelled")
		return u.report, nil
	}

	cfg := u.deps.Config
	store := manifest.NewStore(u.deps.FS, cfg.Paths.Manifest)
	m, err := store.Load()
	if err != nil {
		return u.fail(failure.New(failure.Filesystem, "manifest", err))
	}

	inst := dotfiles.NewInstaller(u.deps.FS, cfg.BackupSuffix, cfg.BackupExisting)
	for _, t := range Targets(cfg) {
		outcome, err := inst.Restore(t, m.Owns(t.Path))
		if err != nil {
			return u.fail(failure.At(t.Name, failure.Filesystem, err))
		}
		item := utils.TildePath(t.Path, cfg.Paths.Home)
		switch outcome {
		case dotfiles.Absent:
			u.report.Add("files", item, report.Unchanged, "not present")
		case dotfiles.Kept:
			u.report.Add("files", item, report.Warn, "not managed by zshsetup, left in place")
		default:
			u.report.Add("files", item, report.OK, outcome.String())
		}
	}

	for _, dir := range m.Repos {
		if err := u.deps.FS.RemoveAll(dir); err != nil {
			return u.fail(failure.Newf(failure.Filesystem, "repos", "could not remove %s: %w", dir, err))
		}
		u.report.Add("repos", utils.TildePath(dir, cfg.Paths.Home), report.OK, "removed")
	}

	for _, font := range m.Fonts {
		err := u.deps.FS.Remove(font)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return u.fail(failure.Newf(failure.Filesystem, "fonts", "could not remove %s: %w", font, err))
		}
		u.report.Add("fonts", utils.TildePath(font, cfg.Paths.Home), report.OK, "removed")
	}

	if err := store.Remove(); err != nil {
		return u.fail(failure.New(failure.Filesystem, "manifest", err))
	}

	logger.Info().Msg("uninstall finished")
	return u.report, nil
}

func (u *Uninstaller) fail(err error) (*report.Report, error) {
	logger := logging.GetLogger("uninstall")
	logger.Error().Err(err).Str("step", failure.StepOf(err)).Msg("uninstall failed")
	u.report.Err = err
	return u.report, err
}
