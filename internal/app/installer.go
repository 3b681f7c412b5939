package app

import (
	"context"
	"fmt"

	"zshsetup/internal/catalog"
	"zshsetup/internal/dotfiles"
	"zshsetup/internal/failure"
	"zshsetup/internal/fonts"
	"zshsetup/internal/gitrepo"
	"zshsetup/internal/logging"
	"zshsetup/internal/manifest"
	"zshsetup/internal/pkgmgr"
	"zshsetup/internal/report"
	"zshsetup/internal/state"
	"zshsetup/internal/system"
	"zshsetup/internal/toolchain"
	"zshsetup/internal/types"
	"zshsetup/internal/utils"
)

// Installer drives one install run through its phases.
type Installer struct {
	deps     Deps
	machine  *state.Machine[types.Phase]
	report   *report.Report
	platform system.Platform
	manager  pkgmgr.Manager
	store    *manifest.Store
	manifest manifest.Manifest
	// loaded is set once the manifest has been read and may be saved.
	loaded bool
}

func NewInstaller(d Deps) *Installer {
	return &Installer{
		deps:    d,
		machine: state.New(types.FailedPhase, types.InstallOrder...),
		report:  &report.Report{Title: "zshsetup install", DryRun: d.DryRun},
		store:   manifest.NewStore(d.FS, d.Config.Paths.Manifest),
	}
}

// Phase returns the phase the run has reached.
func (i *Installer) Phase() types.Phase {
	return i.machine.Current()
}

type step struct {
	phase types.Phase
	run   func(context.Context) error
}

// Run executes every phase in order and stops at the first fatal failure.
// The report is returned in both cases.
func (i *Installer) Run(ctx context.Context) (*report.Report, error) {
	logger := logging.GetLogger("install")

	steps := []step{
		{types.ProbeDonePhase, i.probe},
		{types.ManagerReadyPhase, i.prepareManager},
		{types.ToolsInstalledPhase, i.installTools},
		{types.FilesInstalledPhase, i.installFiles},
		{types.DonePhase, func(context.Context) error { return nil }},
	}

	for _, s := range steps {
		err := ctx.Err()
		if err == nil {
			logger.Debug().Str("phase", s.phase.String()).Msg("starting phase")
			err = s.run(ctx)
		}
		if err != nil {
			i.machine.Fail()
			i.persist()
			err = failure.At(s.phase.String(), failure.Command, err)
			i.report.Err = err
			logger.Error().Err(err).Str("step", failure.StepOf(err)).Msg("install failed")
			return i.report, err
		}
		if err := i.machine.Advance(s.phase); err != nil {
			return i.report, err
		}
	}

	logger.Info().Msg("install finished")
	return i.report, nil
}

func (i *Installer) probe(ctx context.Context) error {
	i.platform = i.deps.Probe.Detect()
	i.report.Platform = i.platform.String()
	if i.platform.Kind == system.Unsupported {
		return failure.Newf(failure.UnsupportedPlatform, "probe", "this platform is not supported")
	}
	return nil
}

func (i *Installer) toolchain() *toolchain.Service {
	return &toolchain.Service{
		Exec:       i.deps.Exec,
		FS:         i.deps.FS,
		Fetcher:    i.deps.Fetcher,
		Manager:    i.manager,
		Config:     i.deps.Config,
		LoginShell: i.deps.LoginShell,
	}
}

func (i *Installer) prepareManager(ctx context.Context) error {
	cfg := i.deps.Config

	if i.platform.Kind == system.MacOS {
		if cfg.InstallXcodeTools {
			started, err := i.toolchain().XcodeTools(ctx)
			i.optional("xcode", "command line tools", err, changed(started, "installer started"))
		} else {
			i.report.Add("xcode", "command line tools", report.Skipped, "disabled")
		}
	}

	m, err := i.deps.selectManager(i.platform)
	if err != nil {
		return err
	}
	if err := m.EnsurePresent(ctx); err != nil {
		return failure.At(m.Name(), failure.MissingDependency, err)
	}
	i.manager = m
	i.report.Manager = m.Name()
	return nil
}

func (i *Installer) installTools(ctx context.Context) error {
	cfg := i.deps.Config
	cat := i.deps.Catalog

	m, err := i.store.Load()
	if err != nil {
		return failure.New(failure.Filesystem, "manifest", err)
	}
	i.manifest = m
	i.loaded = true

	for _, t := range cat.Group(catalog.Base) {
		if err := i.installTool(ctx, t); err != nil {
			return err
		}
	}

	tc := i.toolchain()
	if cfg.InstallPython {
		name, err := tc.Python(ctx, cat)
		i.optional("python", "python "+cfg.PythonVersion, err, name)
	} else {
		i.report.Add("python", "python", report.Skipped, "disabled")
	}

	if cfg.InstallNode {
		err := tc.Node(ctx)
		i.optional("node", "nvm + node "+cfg.NodeVersion, err, "default alias set")
	} else {
		i.report.Add("node", "nvm + node", report.Skipped, "disabled")
	}

	if cfg.InstallDevTools {
		for _, t := range cat.Group(catalog.Dev) {
			if err := i.installTool(ctx, t); err != nil {
				return err
			}
		}
	} else {
		i.report.Add("dev tools", "bundle", report.Skipped, "disabled")
	}

	if i.platform.Kind == system.MacOS {
		if cfg.InstallITerm2 {
			for _, t := range cat.Group(catalog.App) {
				if err := i.installTool(ctx, t); err != nil {
					return err
				}
			}
		} else {
			i.report.Add("apps", "iterm2", report.Skipped, "disabled")
		}
	}

	if err := i.cloneRepos(ctx); err != nil {
		return err
	}

	if cfg.InstallFonts {
		inst := fonts.NewInstaller(i.deps.Exec, i.deps.FS, i.deps.Fetcher, i.platform, cfg.Paths)
		downloaded, err := inst.Install(ctx)
		for _, f := range downloaded {
			i.manifest.AddFont(f)
		}
		i.optional("fonts", "MesloLGS NF", err, fmt.Sprintf("%d downloaded", len(downloaded)))
	} else {
		i.report.Add("fonts", "MesloLGS NF", report.Skipped, "disabled")
	}

	if cfg.SetDefaultShell {
		switched, err := tc.DefaultShell(ctx)
		i.optional("shell", "login shell", err, changed(switched, "switched to zsh"))
	} else {
		i.report.Add("shell", "login shell", report.Skipped, "disabled")
	}

	if err := i.store.Save(i.manifest); err != nil {
		return failure.New(failure.Filesystem, "manifest", err)
	}
	return nil
}

// installTool installs one catalog tool. Only required tools can fail the run.
func (i *Installer) installTool(ctx context.Context, t catalog.Tool) error {
	step := string(t.Group)
	name, ok := t.PackageFor(i.manager.Name())
	if !ok {
		if t.Required {
			return failure.Newf(failure.MissingDependency, t.Name, "no %s package provides %s", i.manager.Name(), t.Name)
		}
		i.warn(step, t.Name, fmt.Sprintf("no package for %s", i.manager.Name()), nil)
		return nil
	}

	installed, err := i.manager.Install(ctx, pkgmgr.Package{Name: name, Command: t.Command, Cask: t.Cask})
	if err != nil {
		if t.Required {
			return failure.New(failure.Command, t.Name, err)
		}
		i.warn(step, t.Name, "install failed", err)
		return nil
	}
	i.optional(step, t.Name, nil, changed(installed, "installed "+name))
	return nil
}

func (i *Installer) cloneRepos(ctx context.Context) error {
	svc := gitrepo.NewService(i.deps.Exec, i.deps.FS)
	home := i.deps.Config.Paths.Home

	for _, r := range Repos(i.deps.Config) {
		cloned, err := svc.Clone(ctx, r)
		if err != nil {
			return failure.New(failure.Command, r.Name, err)
		}
		if cloned {
			i.manifest.AddRepo(r.Dest)
		}
		i.optional("repos", r.Name, nil, changed(cloned, "cloned to "+utils.TildePath(r.Dest, home)))
	}
	return nil
}

func (i *Installer) installFiles(ctx context.Context) error {
	cfg := i.deps.Config
	inst := dotfiles.NewInstaller(i.deps.FS, cfg.BackupSuffix, cfg.BackupExisting)

	for _, t := range Targets(cfg) {
		outcome, err := inst.Install(t)
		if err != nil {
			return failure.At(t.Name, failure.Filesystem, err)
		}
		if outcome == dotfiles.Created {
			i.manifest.AddTarget(t.Path)
		}

		item := utils.TildePath(t.Path, cfg.Paths.Home)
		switch outcome {
		case dotfiles.Unchanged:
			i.report.Add("files", item, report.Unchanged, "up to date")
		case dotfiles.BackedUp:
			i.report.Add("files", item, report.OK, "backed up to "+utils.TildePath(inst.BackupPath(t), cfg.Paths.Home))
		default:
			i.report.Add("files", item, report.OK, outcome.String())
		}
	}

	if err := i.store.Save(i.manifest); err != nil {
		return failure.New(failure.Filesystem, "manifest", err)
	}
	return nil
}

// persist saves what a failed run created before it stopped.
func (i *Installer) persist() {
	if !i.loaded {
		return
	}
	if err := i.store.Save(i.manifest); err != nil {
		logger := logging.GetLogger("install")
		logger.Warn().Err(err).Str("path", i.store.Path).Msg("could not save manifest")
	}
}

// optional records the result of a best-effort action. A non-nil err is a
// warning; detail is empty when nothing needed doing.
func (i *Installer) optional(step, item string, err error, detail string) {
	if err != nil {
		i.warn(step, item, "failed", err)
		return
	}
	if detail == "" {
		i.report.Add(step, item, report.Unchanged, "already present")
		return
	}
	i.report.Add(step, item, report.OK, detail)
}

func (i *Installer) warn(step, item, msg string, err error) {
	logger := logging.GetLogger("install")
	logger.Warn().Err(failure.New(failure.OptionalInstall, step, err)).Str("item", item).Msg(msg)

	detail := msg
	if err != nil {
		detail = fmt.Sprintf("%s: %v", msg, err)
	}
	i.report.Add(step, item, report.Warn, detail)
}

func changed(did bool, detail string) string {
	if did {
		return detail
	}
	return ""
}
