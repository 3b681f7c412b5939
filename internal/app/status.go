package app

import (
	"fmt"

	"zshsetup/internal/dotfiles"
	"zshsetup/internal/gitrepo"
	"zshsetup/internal/manifest"
	"zshsetup/internal/report"
	"zshsetup/internal/system"
	"zshsetup/internal/utils"
)

var planDescriptions = map[dotfiles.Outcome]string{
	dotfiles.Created:   "would create",
	dotfiles.Unchanged: "up to date",
	dotfiles.BackedUp:  "would back up",
	dotfiles.Replaced:  "would replace",
}

// Status describes what an install would do without changing anything.
func Status(d Deps) (*report.Report, error) {
	r := &report.Report{Title: "zshsetup status", Preview: true}
	cfg := d.Config
	home := cfg.Paths.Home

	platform := d.Probe.Detect()
	r.Platform = platform.String()
	if platform.Kind == system.Unsupported {
		r.Add("probe", "platform", report.Failed, "unsupported")
		return r, nil
	}

	if m, err := d.selectManager(platform); err != nil {
		r.Add("package manager", "select", report.Warn, err.Error())
	} else {
		r.Manager = m.Name()
	}

	if cfg.File != "" {
		r.Add("config", utils.TildePath(cfg.File, home), report.OK, "loaded")
	}

	inst := dotfiles.NewInstaller(d.FS, cfg.BackupSuffix, cfg.BackupExisting)
	for _, t := range Targets(cfg) {
		outcome, err := inst.Plan(t)
		if err != nil {
			return r, err
		}
		status := report.OK
		if outcome == dotfiles.Unchanged {
			status = report.Unchanged
		}
		detail := planDescriptions[outcome]
		if has, _ := existsBackup(inst, t); has {
			detail += ", backup present"
		}
		r.Add("files", utils.TildePath(t.Path, home), status, detail)
	}

	repos := gitrepo.NewService(d.Exec, d.FS)
	for _, repo := range Repos(cfg) {
		present, err := repos.Present(repo)
		if err != nil {
			return r, err
		}
		if present {
			r.Add("repos", repo.Name, report.Unchanged, "present")
		} else {
			r.Add("repos", repo.Name, report.OK, "would clone")
		}
	}

	m, err := manifest.NewStore(d.FS, cfg.Paths.Manifest).Load()
	if err != nil {
		r.Add("manifest", utils.TildePath(cfg.Paths.Manifest, home), report.Warn, err.Error())
		return r, nil
	}
	if m.Empty() {
		r.Add("manifest", utils.TildePath(cfg.Paths.Manifest, home), report.Skipped, "nothing recorded")
	} else {
		r.Add("manifest", utils.TildePath(cfg.Paths.Manifest, home), report.OK,
			fmt.Sprintf("%d repos, %d fonts, %d files", len(m.Repos), len(m.Fonts), len(m.Targets)))
	}
	return r, nil
}

func existsBackup(inst *dotfiles.Installer, t dotfiles.Target) (bool, error) {
	o, err := inst.Observe(t)
	if err != nil {
		return false, err
	}
	return o.BackupExists, nil
}
