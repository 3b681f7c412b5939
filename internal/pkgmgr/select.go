package pkgmgr

import (
	"fmt"

	"zshsetup/internal/failure"
	"zshsetup/internal/fetch"
	"zshsetup/internal/system"
)

type candidate struct {
	binary string
	build  func(system.Executor) *Native
}

var (
	apt    = candidate{"apt-get", NewApt}
	dnf    = candidate{"dnf", NewDnf}
	yum    = candidate{"yum", NewYum}
	pacman = candidate{"pacman", NewPacman}
	zypper = candidate{"zypper", NewZypper}
)

var familyPreference = map[system.Family][]candidate{
	system.Debian: {apt},
	system.RedHat: {dnf, yum},
	system.Arch:   {pacman},
	system.SUSE:   {zypper},
}

var globalOrder = []candidate{apt, dnf, yum, pacman, zypper}

// Select picks the adapter for p. On Linux the first preferred manager
// found on PATH wins.
func Select(p system.Platform, e system.Executor, fs system.FileSystem, f fetch.Fetcher) (Manager, error) {
	switch p.Kind {
	case system.MacOS:
		prefix := IntelPrefix
		if p.AppleSilicon() {
			prefix = AppleSiliconPrefix
		}
		return NewHomebrew(e, fs, f, prefix), nil
	case system.Linux:
		order, ok := familyPreference[p.Family]
		if !ok {
			order = globalOrder
		}
		for _, c := range order {
			if _, err := e.LookPath(c.binary); err == nil {
				return c.build(e), nil
			}
		}
		return nil, failure.Newf(failure.MissingDependency, "", "no supported package manager found for %s", p)
	default:
		return nil, failure.New(failure.UnsupportedPlatform, "", fmt.Errorf("%s is not supported", p))
	}
}
