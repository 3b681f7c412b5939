package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"zshsetup/internal/app"
	"zshsetup/internal/catalog"
	"zshsetup/internal/config"
	"zshsetup/internal/constants"
	"zshsetup/internal/fetch"
	"zshsetup/internal/logging"
	"zshsetup/internal/report"
	"zshsetup/internal/system"
)

func newRootCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "zshsetup",
		Short:         constants.App.Title,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(c.stdout)
	cmd.SetErr(c.stderr)

	flags := cmd.PersistentFlags()
	flags.CountVarP(&c.verbosity, "verbose", "v", "increase log verbosity (-v debug, -vv trace)")
	flags.StringVar(&c.configPath, "config", "", "config file (TOML or YAML), overrides "+config.FileEnvVar)
	flags.StringVar(&c.logFile, "log-file", "", "log file path (default "+logging.DefaultLogFile()+")")

	cmd.AddCommand(
		newInstallCmd(c),
		newUninstallCmd(c),
		newStatusCmd(c),
		newVersionCmd(c),
	)
	return cmd
}

func newInstallCmd(c *cli) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install zsh, the prompt theme, plugins, tools and dotfiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withDeps(dryRun, func(d app.Deps) error {
				r, err := app.NewInstaller(d).Run(cmd.Context())
				return c.render(r, err)
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would change without touching the system")
	return cmd
}

func newUninstallCmd(c *cli) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Restore backed up dotfiles and remove what install added",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withDeps(false, func(d app.Deps) error {
				r, err := app.NewUninstaller(d, c.confirmer(yes)).Run(cmd.Context())
				return c.render(r, err)
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newStatusCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show what install would change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withDeps(false, func(d app.Deps) error {
				r, err := app.Status(d)
				return c.render(r, err)
			})
		},
	}
}

func newVersionCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(c.stdout, "zshsetup %s\n", constants.Version)
		},
	}
}

// withDeps sets up logging and configuration and hands the live (or dry-run)
// capabilities to fn.
func (c *cli) withDeps(dryRun bool, fn func(app.Deps) error) error {
	closer, err := logging.Setup(logging.Options{
		Verbosity: c.verbosity,
		Console:   c.stderr,
		LogFile:   c.logFile,
	})
	if err != nil {
		return err
	}
	defer closer.Close()

	logger := logging.GetLogger("main")
	logger.Debug().Str("version", constants.Version).Bool("dry_run", dryRun).Msg("booting")

	cfg, err := config.Load(config.Options{Path: c.configPath})
	if err != nil {
		return err
	}
	cat, err := catalog.Default()
	if err != nil {
		return err
	}

	fs := system.LiveFileSystem()
	var exec system.Executor = &system.LiveExecutor{}
	var fetcher fetch.Fetcher = fetch.New(fs)
	if dryRun {
		fs = system.DryRunFileSystem(fs)
		exec = &system.DryRunExecutor{Inner: exec}
		fetcher = fetch.DryRun{}
	}

	return fn(app.Deps{
		Config:     cfg,
		Catalog:    cat,
		Exec:       exec,
		FS:         fs,
		Fetcher:    fetcher,
		Probe:      system.Probe{},
		LoginShell: os.Getenv("SHELL"),
		DryRun:     dryRun,
	})
}

// render prints the report and passes the run error through.
func (c *cli) render(r *report.Report, err error) error {
	if r != nil {
		if rerr := r.Render(c.stdout); rerr != nil && err == nil {
			err = rerr
		}
	}
	return err
}
