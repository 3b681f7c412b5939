package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZshrc(t *testing.T) {
	zshrc := string(Zshrc)

	for _, want := range []string{
		"p10k-instant-prompt",
		`export ZSH="${ZSH:-$HOME/.oh-my-zsh}"`,
		`ZSH_THEME="powerlevel10k/powerlevel10k"`,
		"zsh-autosuggestions",
		"zsh-syntax-highlighting",
		"autojump",
		"NVM_DIR",
		"FZF_DEFAULT_COMMAND",
		"fdfind",
		"rgg()",
		"alias ff=",
		"mygit()",
		"MYGIT_PROJECTS_DIR",
		"MYGIT_EDITOR",
		"alias lg='lazygit'",
		"thefuck --alias",
		"~/.p10k.zsh",
	} {
		assert.Contains(t, zshrc, want)
	}
}

func TestZshrcLeavesEditorConfigAlone(t *testing.T) {
	assert.NotContains(t, string(Zshrc), ".vimrc")
	assert.NotContains(t, string(Zshrc), "nvim/init")
}

func TestEmbeddedFilesPresent(t *testing.T) {
	assert.Contains(t, string(P10k), "POWERLEVEL9K_LEFT_PROMPT_ELEMENTS")
	assert.Contains(t, string(Catalog), "[[tools]]")
}
