// Package layout fits rendered content into the terminal the prompt runs in.
package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"zshsetup/internal/styles"
)

// Frame renders content inside styles.AppStyle. A zero width or height
// means the terminal size is not known yet and that dimension is not
// constrained. Content taller than the terminal keeps its first lines.
func Frame(content string, width, height int) string {
	if width > 0 {
		availableWidth := width - styles.AppStyle.GetHorizontalPadding()
		if availableWidth <= 0 {
			return ""
		}
		content = lipgloss.NewStyle().Width(availableWidth).Render(content)
	}

	if height > 0 {
		availableHeight := height - styles.AppStyle.GetVerticalPadding()
		if availableHeight <= 0 {
			return ""
		}
		if lipgloss.Height(content) > availableHeight {
			lines := strings.Split(content, "\n")
			content = strings.Join(lines[:availableHeight], "\n")
		}
	}

	return styles.AppStyle.Render(content)
}
