// Package catalog describes the tools zshsetup installs and the package
// that provides each of them under every supported package manager.
package catalog

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"zshsetup/internal/assets"
)

type Group string

const (
	Base   Group = "base"
	Dev    Group = "dev"
	Python Group = "python"
	App    Group = "app"
)

type Tool struct {
	Name     string            `toml:"name"`
	Command  string            `toml:"command"`
	Group    Group             `toml:"group"`
	Required bool              `toml:"required"`
	Cask     bool              `toml:"cask"`
	Packages map[string]string `toml:"packages"`
}

// PackageFor returns the package name for manager, if the tool has one.
func (t Tool) PackageFor(manager string) (string, bool) {
	name, ok := t.Packages[manager]
	return name, ok && name != ""
}

type Catalog struct {
	Tools []Tool `toml:"tools"`
}

// Default decodes the embedded catalog.
func Default() (Catalog, error) {
	return Parse(assets.Catalog)
}

// Parse decodes a catalog and checks that every tool is usable.
func Parse(data []byte) (Catalog, error) {
	var c Catalog
	if err := toml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("invalid catalog format: %w", err)
	}

	seen := make(map[string]bool, len(c.Tools))
	for i, t := range c.Tools {
		if t.Name == "" {
			return Catalog{}, fmt.Errorf("catalog tool %d has no name", i)
		}
		if seen[t.Name] {
			return Catalog{}, fmt.Errorf("catalog tool %q is listed twice", t.Name)
		}
		seen[t.Name] = true
		switch t.Group {
		case Base, Dev, Python, App:
		default:
			return Catalog{}, fmt.Errorf("catalog tool %q has unknown group %q", t.Name, t.Group)
		}
	}
	return c, nil
}

// Group returns the tools of group g in catalog order.
func (c Catalog) Group(g Group) []Tool {
	var tools []Tool
	for _, t := range c.Tools {
		if t.Group == g {
			tools = append(tools, t)
		}
	}
	return tools
}

// Lookup finds a tool by name.
func (c Catalog) Lookup(name string) (Tool, bool) {
	for _, t := range c.Tools {
		if t.Name == name {
			return t, true
		}
	}
	return Tool{}, false
}
