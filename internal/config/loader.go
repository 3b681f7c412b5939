package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"zshsetup/internal/constants"
	"zshsetup/internal/failure"
)

// FileEnvVar names the environment variable holding an explicit config path.
const FileEnvVar = "ZSHSETUP_CONFIG"

// DefaultBackupSuffix is appended to a managed file to name its backup.
const DefaultBackupSuffix = ".pre-zshsetup-backup"

// envKeys maps every recognized environment variable to its file key.
var envKeys = map[string]string{
	"PYTHON_VERSION":      "python_version",
	"NODE_VERSION":        "node_version",
	"NVM_VERSION":         "nvm_version",
	"INSTALL_DEV_TOOLS":   "install_dev_tools",
	"INSTALL_ITERM2":      "install_iterm2",
	"INSTALL_XCODE_TOOLS": "install_xcode_tools",
	"INSTALL_FONTS":       "install_fonts",
	"INSTALL_PYTHON":      "install_python",
	"INSTALL_NODE":        "install_node",
	"SET_DEFAULT_SHELL":   "set_default_shell",
	"BACKUP_EXISTING":     "backup_existing",
	"BACKUP_SUFFIX":       "backup_suffix",
}

var searchNames = []string{"config.toml", "config.yaml", "config.yml"}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"python_version":      "3.12",
		"node_version":        "lts/*",
		"nvm_version":         "v0.40.1",
		"install_dev_tools":   true,
		"install_iterm2":      true,
		"install_xcode_tools": true,
		"install_fonts":       true,
		"install_python":      true,
		"install_node":        true,
		"set_default_shell":   true,
		"backup_existing":     true,
		"backup_suffix":       DefaultBackupSuffix,
	}
}

// Options steers Load. Empty fields fall back to the environment.
type Options struct {
	// Path is an explicit config file, typically from --config.
	Path string
	// Home overrides the user's home directory.
	Home string
	// NoSearch disables the XDG config file search.
	NoSearch bool
}

// Load layers defaults, the config file and the environment, then
// validates the result. Every error is classified as a configuration failure.
func Load(opts Options) (Config, error) {
	cfg, err := load(opts)
	if err != nil {
		return Config{}, failure.New(failure.Config, "config", err)
	}
	return cfg, nil
}

func load(opts Options) (Config, error) {
	k := koanf.New(".")

	// 1. Built-in defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	path, err := configPath(opts)
	if err != nil {
		return Config{}, err
	}
	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return Config{}, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return Config{}, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	}

	// 3. Environment
	// An exported but empty variable counts as unset.
	err = k.Load(env.Provider("", ".", func(s string) string {
		if os.Getenv(s) == "" {
			return ""
		}
		return envKeys[s]
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook:       boolWordHookFunc(),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	cfg.File = path

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	paths, err := resolvePaths(opts.Home)
	if err != nil {
		return Config{}, err
	}
	cfg.Paths = paths

	return cfg, nil
}

func configPath(opts Options) (string, error) {
	explicit := opts.Path
	if explicit == "" {
		explicit = os.Getenv(FileEnvVar)
	}
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file %s: %w", explicit, err)
		}
		return explicit, nil
	}
	if opts.NoSearch {
		return "", nil
	}
	for _, name := range searchNames {
		if found, err := xdg.SearchConfigFile(filepath.Join(constants.App.DirName, name)); err == nil {
			return found, nil
		}
	}
	return "", nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	default:
		return nil, fmt.Errorf("config file %s: unsupported extension, use .toml or .yaml", path)
	}
}

var boolWords = map[string]bool{
	"yes": true,
	"no":  false,
	"on":  true,
	"off": false,
}

// boolWordHookFunc accepts yes/no/on/off in addition to what strconv.ParseBool
// understands, and rejects anything else instead of decoding it as false.
func boolWordHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t.Kind() != reflect.Bool {
			return data, nil
		}
		s := strings.ToLower(strings.TrimSpace(data.(string)))
		if b, ok := boolWords[s]; ok {
			return b, nil
		}
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("invalid boolean %q", data)
		}
		return b, nil
	}
}

func resolvePaths(home string) (Paths, error) {
	if home == "" {
		var err error
		home, err = os.UserHomeDir()
		if err != nil {
			return Paths{}, fmt.Errorf("could not determine home directory: %w", err)
		}
	}
	if !filepath.IsAbs(home) {
		return Paths{}, errors.New("home directory must be an absolute path")
	}

	ohMyZsh := envPath("ZSH", filepath.Join(home, ".oh-my-zsh"))
	stateDir := filepath.Join(xdg.StateHome, constants.App.DirName)

	return Paths{
		Home:      home,
		OhMyZsh:   ohMyZsh,
		ZshCustom: envPath("ZSH_CUSTOM", filepath.Join(ohMyZsh, "custom")),
		NvmDir:    envPath("NVM_DIR", filepath.Join(home, ".nvm")),
		Zshrc:     filepath.Join(home, ".zshrc"),
		P10k:      filepath.Join(home, ".p10k.zsh"),
		StateDir:  stateDir,
		Manifest:  filepath.Join(stateDir, "manifest.toml"),
		Fonts:     filepath.Join(xdg.DataHome, "fonts"),
	}, nil
}

func envPath(name, fallback string) string {
	if v := os.Getenv(name); v != "" && filepath.IsAbs(v) {
		return v
	}
	return fallback
}
