// Package config builds the immutable run configuration from built-in
// defaults, an optional TOML or YAML file and the environment.
package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Config is read once at startup and passed by value afterwards.
type Config struct {
	PythonVersion string `koanf:"python_version"`
	NodeVersion   string `koanf:"node_version"`
	NvmVersion    string `koanf:"nvm_version"`

	InstallDevTools   bool `koanf:"install_dev_tools"`
	InstallITerm2     bool `koanf:"install_iterm2"`
	InstallXcodeTools bool `koanf:"install_xcode_tools"`
	InstallFonts      bool `koanf:"install_fonts"`
	InstallPython     bool `koanf:"install_python"`
	InstallNode       bool `koanf:"install_node"`
	SetDefaultShell   bool `koanf:"set_default_shell"`

	BackupExisting bool   `koanf:"backup_existing"`
	BackupSuffix   string `koanf:"backup_suffix"`

	// File is the configuration file that was loaded, if any.
	File  string `koanf:"-"`
	Paths Paths  `koanf:"-"`
}

// Paths are derived from the home directory when the configuration loads.
type Paths struct {
	Home      string
	OhMyZsh   string
	ZshCustom string
	NvmDir    string
	Zshrc     string
	P10k      string
	StateDir  string
	Manifest  string
	// Fonts is the per-user font directory on Linux. macOS always uses
	// Library/Fonts under Home.
	Fonts string
}

var pythonVersionPattern = regexp.MustCompile(`^\d+\.\d+$`)

// Validate checks the values that cannot be fixed up silently.
func (c Config) Validate() error {
	if !pythonVersionPattern.MatchString(c.PythonVersion) {
		return fmt.Errorf("python_version %q must look like MAJOR.MINOR", c.PythonVersion)
	}
	if strings.TrimSpace(c.NodeVersion) == "" {
		return fmt.Errorf("node_version must not be empty")
	}
	if strings.TrimSpace(c.NvmVersion) == "" {
		return fmt.Errorf("nvm_version must not be empty")
	}
	if c.BackupSuffix == "" {
		return fmt.Errorf("backup_suffix must not be empty")
	}
	if strings.ContainsRune(c.BackupSuffix, filepath.Separator) || strings.ContainsRune(c.BackupSuffix, '/') {
		return fmt.Errorf("backup_suffix %q must not contain a path separator", c.BackupSuffix)
	}
	return nil
}

// PythonFormula is the Homebrew formula for the pinned Python version.
func (c Config) PythonFormula() string {
	return "python@" + c.PythonVersion
}
