package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zshsetup/internal/failure"
)

func init() {
	pterm.DisableStyling()
}

func TestRender(t *testing.T) {
	t.Run("successful run", func(t *testing.T) {
		// Arrange
		r := &Report{Title: "zshsetup install", Platform: "macos (arm64)", Manager: "brew"}
		r.Add("tools", "fzf", OK, "installed")
		r.Add("tools", "lazygit", Warn, "no package for apt")
		r.Add("files", "~/.zshrc", Unchanged, "up to date")
		var buf bytes.Buffer

		// Act
		err := r.Render(&buf)

		// Assert
		require.NoError(t, err)
		out := buf.String()
		assert.Contains(t, out, "zshsetup install")
		assert.Contains(t, out, "package manager: brew")
		assert.Contains(t, out, "fzf")
		assert.Contains(t, out, "no package for apt")
		assert.Contains(t, out, "1 changed, 1 unchanged, 0 skipped, 1 warnings")
	})

	t.Run("failed run names the step", func(t *testing.T) {
		r := &Report{Title: "zshsetup install", Err: failure.New(failure.Filesystem, "files", errors.New("disk full"))}
		var buf bytes.Buffer

		require.NoError(t, r.Render(&buf))

		assert.Contains(t, buf.String(), `failed at step "files"`)
	})

	t.Run("dry run is flagged", func(t *testing.T) {
		r := &Report{Title: "zshsetup install", DryRun: true}
		var buf bytes.Buffer

		require.NoError(t, r.Render(&buf))

		assert.Contains(t, buf.String(), "dry run")
	})
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "ok", OK.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "unknown", Status(42).String())
}
