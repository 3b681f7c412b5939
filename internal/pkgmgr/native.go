package pkgmgr

import (
	"context"

	"zshsetup/internal/failure"
	"zshsetup/internal/logging"
	"zshsetup/internal/system"
)

// Native drives a Linux distribution's package manager through sudo.
type Native struct {
	Exec system.Executor
	// Privilege is consulted once by EnsurePresent. Nil means SudoChecker.
	Privilege system.PrivilegeChecker

	name    string
	binary  string
	check   func(pkg string) []string
	install func(pkg string) []string
	refresh []string

	refreshed bool
}

func NewApt(e system.Executor) *Native {
	return &Native{
		Exec:    e,
		name:    "apt",
		binary:  "apt-get",
		check:   func(p string) []string { return []string{"dpkg", "-s", p} },
		install: func(p string) []string { return []string{"apt-get", "install", "-y", p} },
		refresh: []string{"apt-get", "update"},
	}
}

func NewDnf(e system.Executor) *Native {
	return &Native{
		Exec:    e,
		name:    "dnf",
		binary:  "dnf",
		check:   rpmQuery,
		install: func(p string) []string { return []string{"dnf", "install", "-y", p} },
	}
}

func NewYum(e system.Executor) *Native {
	return &Native{
		Exec:    e,
		name:    "yum",
		binary:  "yum",
		check:   rpmQuery,
		install: func(p string) []string { return []string{"yum", "install", "-y", p} },
	}
}

func NewPacman(e system.Executor) *Native {
	return &Native{
		Exec:    e,
		name:    "pacman",
		binary:  "pacman",
		check:   func(p string) []string { return []string{"pacman", "-Qi", p} },
		install: func(p string) []string { return []string{"pacman", "-S", "--noconfirm", "--needed", p} },
	}
}

func NewZypper(e system.Executor) *Native {
	return &Native{
		Exec:    e,
		name:    "zypper",
		binary:  "zypper",
		check:   rpmQuery,
		install: func(p string) []string { return []string{"zypper", "--non-interactive", "install", p} },
	}
}

func rpmQuery(p string) []string {
	return []string{"rpm", "-q", p}
}

func (n *Native) Name() string   { return n.name }
func (n *Native) Binary() string { return n.binary }

func (n *Native) EnsurePresent(ctx context.Context) error {
	if _, err := n.Exec.LookPath(n.binary); err != nil {
		return missing(n.binary)
	}
	checker := n.Privilege
	if checker == nil {
		checker = system.SudoChecker{Exec: n.Exec}
	}
	if err := checker.Check(); err != nil {
		return failure.New(failure.MissingDependency, "", err)
	}
	return nil
}

func (n *Native) Install(ctx context.Context, pkg Package) (bool, error) {
	logger := logging.GetLogger("pkgmgr")

	if onPath(n.Exec, pkg) {
		logger.Debug().Str("package", pkg.Name).Msg("command already on PATH")
		return false, nil
	}
	check := n.check(pkg.Name)
	if query(ctx, n.Exec, check[0], check[1:]...) {
		logger.Debug().Str("package", pkg.Name).Msg("already installed")
		return false, nil
	}

	if n.refresh != nil && !n.refreshed {
		name, args := system.Elevated(n.Exec, n.refresh[0], n.refresh[1:]...)
		if err := run(ctx, n.Exec, name, args...); err != nil {
			return false, err
		}
		n.refreshed = true
	}

	install := n.install(pkg.Name)
	name, args := system.Elevated(n.Exec, install[0], install[1:]...)
	if err := run(ctx, n.Exec, name, args...); err != nil {
		return false, err
	}
	logInstalled(n.name, pkg)
	return true, nil
}
