package system

import (
	"bufio"
	"bytes"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/afero"
)

// Kind is the operating-system family the installer has a handler for.
type Kind int

const (
	Unsupported Kind = iota
	MacOS
	Linux
)

func (k Kind) String() string {
	switch k {
	case MacOS:
		return "macos"
	case Linux:
		return "linux"
	default:
		return "unsupported"
	}
}

// Family groups Linux distributions that share a package manager.
type Family int

const (
	UnknownFamily Family = iota
	Debian
	RedHat
	Arch
	SUSE
)

func (f Family) String() string {
	switch f {
	case Debian:
		return "debian"
	case RedHat:
		return "redhat"
	case Arch:
		return "arch"
	case SUSE:
		return "suse"
	default:
		return "unknown"
	}
}

// Platform is the probe result. Arch is the GOARCH spelling.
type Platform struct {
	Kind   Kind
	Arch   string
	Distro string
	Family Family
}

// AppleSilicon reports a macOS host on arm64.
func (p Platform) AppleSilicon() bool {
	return p.Kind == MacOS && p.Arch == "arm64"
}

func (p Platform) String() string {
	switch p.Kind {
	case MacOS:
		if p.AppleSilicon() {
			return "macos (apple silicon)"
		}
		return "macos (intel)"
	case Linux:
		distro := p.Distro
		if distro == "" {
			distro = "unknown distro"
		}
		return fmt.Sprintf("linux (%s, %s family)", distro, p.Family)
	default:
		return "unsupported"
	}
}

const osReleasePath = "/etc/os-release"

// releaseMarkers are checked in order when os-release is missing or names
// a distribution we do not recognise.
var releaseMarkers = []struct {
	path   string
	family Family
}{
	{"/etc/debian_version", Debian},
	{"/etc/redhat-release", RedHat},
	{"/etc/fedora-release", RedHat},
	{"/etc/arch-release", Arch},
	{"/etc/SuSE-release", SUSE},
}

var familyIDs = map[string]Family{
	"debian":              Debian,
	"ubuntu":              Debian,
	"raspbian":            Debian,
	"linuxmint":           Debian,
	"pop":                 Debian,
	"elementary":          Debian,
	"kali":                Debian,
	"fedora":              RedHat,
	"rhel":                RedHat,
	"centos":              RedHat,
	"rocky":               RedHat,
	"almalinux":           RedHat,
	"amzn":                RedHat,
	"ol":                  RedHat,
	"arch":                Arch,
	"archarm":             Arch,
	"manjaro":             Arch,
	"endeavouros":         Arch,
	"garuda":              Arch,
	"opensuse":            SUSE,
	"opensuse-leap":       SUSE,
	"opensuse-tumbleweed": SUSE,
	"sles":                SUSE,
	"suse":                SUSE,
}

// Probe reads static platform identifiers. GOOS and GOARCH default to the
// running binary's values; FS defaults to the real filesystem.
type Probe struct {
	GOOS   string
	GOARCH string
	FS     afero.Fs
}

// Detect never fails: anything it cannot classify is Unsupported.
func (p Probe) Detect() Platform {
	goos, goarch := p.GOOS, p.GOARCH
	if goos == "" {
		goos = runtime.GOOS
	}
	if goarch == "" {
		goarch = runtime.GOARCH
	}
	fs := p.FS
	if fs == nil {
		fs = afero.NewOsFs()
	}

	switch goos {
	case "darwin":
		return Platform{Kind: MacOS, Arch: goarch, Distro: "macos"}
	case "linux":
		info := Platform{Kind: Linux, Arch: goarch}
		info.Distro, info.Family = linuxDistro(fs)
		return info
	default:
		return Platform{Kind: Unsupported, Arch: goarch}
	}
}

func linuxDistro(fs afero.Fs) (string, Family) {
	id, like := readOSRelease(fs)
	if f, ok := familyIDs[id]; ok {
		return id, f
	}
	for _, l := range like {
		if f, ok := familyIDs[l]; ok {
			return id, f
		}
	}
	for _, m := range releaseMarkers {
		if ok, _ := afero.Exists(fs, m.path); ok {
			return id, m.family
		}
	}
	return id, UnknownFamily
}

func readOSRelease(fs afero.Fs) (id string, like []string) {
	data, err := afero.ReadFile(fs, osReleasePath)
	if err != nil {
		return "", nil
	}

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		// ID=arch OR ID="arch"
		val = strings.ToLower(strings.Trim(strings.TrimSpace(val), `"'`))
		switch key {
		case "ID":
			id = val
		case "ID_LIKE":
			like = strings.Fields(val)
		}
	}
	return id, like
}
