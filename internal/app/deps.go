// Package app runs the install, uninstall and status flows.
package app

import (
	"path/filepath"

	"zshsetup/internal/assets"
	"zshsetup/internal/catalog"
	"zshsetup/internal/config"
	"zshsetup/internal/constants"
	"zshsetup/internal/dotfiles"
	"zshsetup/internal/fetch"
	"zshsetup/internal/gitrepo"
	"zshsetup/internal/pkgmgr"
	"zshsetup/internal/system"
)

// Prober detects the host platform.
type Prober interface {
	Detect() system.Platform
}

// ManagerSelector picks the package manager for a platform.
type ManagerSelector func(system.Platform, system.Executor, system.FileSystem, fetch.Fetcher) (pkgmgr.Manager, error)

// Deps are the capabilities a run works through.
type Deps struct {
	Config  config.Config
	Catalog catalog.Catalog
	Exec    system.Executor
	FS      system.FileSystem
	Fetcher fetch.Fetcher
	Probe   Prober
	// SelectManager defaults to pkgmgr.Select.
	SelectManager ManagerSelector
	// LoginShell is the user's $SHELL at startup.
	LoginShell string
	DryRun     bool
}

func (d Deps) selectManager(p system.Platform) (pkgmgr.Manager, error) {
	if d.SelectManager != nil {
		return d.SelectManager(p, d.Exec, d.FS, d.Fetcher)
	}
	return pkgmgr.Select(p, d.Exec, d.FS, d.Fetcher)
}

// Targets are the dotfiles zshsetup manages.
func Targets(cfg config.Config) []dotfiles.Target {
	return []dotfiles.Target{
		{Name: "zshrc", Path: cfg.Paths.Zshrc, Content: assets.Zshrc, Mode: 0o644},
		{Name: "p10k", Path: cfg.Paths.P10k, Content: assets.P10k, Mode: 0o644},
	}
}

// Repos are the framework, theme and plugins cloned into the shell setup.
func Repos(cfg config.Config) []gitrepo.Repo {
	custom := cfg.Paths.ZshCustom
	return []gitrepo.Repo{
		{Name: "oh-my-zsh", URL: constants.URLs.OhMyZsh, Dest: cfg.Paths.OhMyZsh},
		{Name: "powerlevel10k", URL: constants.URLs.Powerlevel10k, Dest: filepath.Join(custom, "themes", "powerlevel10k")},
		{Name: "zsh-autosuggestions", URL: constants.URLs.Autosuggestions, Dest: filepath.Join(custom, "plugins", "zsh-autosuggestions")},
		{Name: "zsh-syntax-highlighting", URL: constants.URLs.Highlighting, Dest: filepath.Join(custom, "plugins", "zsh-syntax-highlighting")},
	}
}
