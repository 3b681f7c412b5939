package confirm

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"zshsetup/internal/constants"
	"zshsetup/internal/layout"
	"zshsetup/internal/styles"
	"zshsetup/internal/types"
	"zshsetup/internal/utils"
)

type Model struct {
	keys      types.KeyMap
	question  Question
	selection bool
	answered  bool
	accepted  bool
	width     int
	height    int
}

// New starts with "no" selected.
func New(keys types.KeyMap, q Question) *Model {
	return &Model{
		keys:     keys,
		question: q,
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

// Accepted reports whether the user answered yes.
func (m *Model) Accepted() bool {
	return m.answered && m.accepted
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case types.ConfirmAnswered:
		m.answered = true
		m.accepted = msg.Accepted
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.HardQuit, m.keys.Back, m.keys.Quit, m.keys.No):
		return m, answer(false)

	case key.Matches(msg, m.keys.Yes):
		return m, answer(true)

	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		m.selection = !m.selection
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		return m, answer(m.selection)
	}
	return m, nil
}

func answer(accepted bool) tea.Cmd {
	return func() tea.Msg { return types.ConfirmAnswered{Accepted: accepted} }
}

func (m *Model) View() string {
	if m.answered {
		return ""
	}

	title := styles.TitleStyle.Render(m.question.Title)
	yes := constants.Prompt.Yes
	no := constants.Prompt.No
	utils.PadRightToSameLength(&yes, &no)

	yesLine := "  [ ] " + yes
	noLine := "  [ ] " + no
	if m.selection {
		yesLine = styles.ErrorStyle.Render(constants.Prompt.SelectedPrefix + "[•] " + yes)
	} else {
		noLine = styles.SuccessStyle.Render(constants.Prompt.SelectedPrefix + "[•] " + no)
	}

	help := styles.SubtleTextStyle.Render(
		"Use ↑/↓ to select, Enter to confirm. y/n answer directly, Esc cancels.",
	)

	return layout.Frame(lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		"",
		styles.NormalTextStyle.Render(m.question.Detail),
		"",
		yesLine,
		noLine,
		"",
		help,
	), m.width, m.height)
}
