package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	t.Run("base tools are required and in order", func(t *testing.T) {
		base := c.Group(Base)

		require.Len(t, base, 3)
		assert.Equal(t, "zsh", base[0].Name)
		assert.Equal(t, "git", base[1].Name)
		assert.Equal(t, "curl", base[2].Name)
		for _, tool := range base {
			assert.True(t, tool.Required, tool.Name)
		}
	})

	t.Run("dev bundle", func(t *testing.T) {
		var names []string
		for _, tool := range c.Group(Dev) {
			names = append(names, tool.Name)
			assert.False(t, tool.Required, tool.Name)
		}

		assert.Equal(t, []string{"fzf", "ripgrep", "fd", "autojump", "eza", "bat", "thefuck", "lazygit"}, names)
	})

	t.Run("debian names differ from the command", func(t *testing.T) {
		fd, ok := c.Lookup("fd")
		require.True(t, ok)

		pkg, ok := fd.PackageFor("apt")

		assert.True(t, ok)
		assert.Equal(t, "fd-find", pkg)
	})

	t.Run("missing package is reported", func(t *testing.T) {
		lazygit, ok := c.Lookup("lazygit")
		require.True(t, ok)

		_, ok = lazygit.PackageFor("apt")

		assert.False(t, ok)
	})

	t.Run("iterm2 is a cask", func(t *testing.T) {
		iterm, ok := c.Lookup("iterm2")

		require.True(t, ok)
		assert.True(t, iterm.Cask)
		assert.Equal(t, App, iterm.Group)
	})
}

func TestParseRejectsBadCatalogs(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", "[[tools]\nname = 1"},
		{"missing name", "[[tools]]\ngroup = \"dev\"\n"},
		{"duplicate", "[[tools]]\nname = \"a\"\ngroup = \"dev\"\n[[tools]]\nname = \"a\"\ngroup = \"dev\"\n"},
		{"unknown group", "[[tools]]\nname = \"a\"\ngroup = \"games\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))

			assert.Error(t, err)
		})
	}
}
