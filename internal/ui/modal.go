package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// promptSubmitMsg carries the value typed into a prompt.
type promptSubmitMsg struct {
	kind  promptKind
	value string
}

type promptKind int

const (
	promptPath promptKind = iota
	promptFilter
)

// promptModal is a single-line input dialog.
type promptModal struct {
	kind  promptKind
	title string
	input textinput.Model
}

func newPromptModal(kind promptKind, title, placeholder, value string) (*promptModal, tea.Cmd) {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 256
	in.Width = 48
	in.SetValue(value)
	in.CursorEnd()
	cmd := in.Focus()
	return &promptModal{kind: kind, title: title, input: in}, cmd
}

func (p *promptModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, keys.Confirm):
			kind, value := p.kind, strings.TrimSpace(p.input.Value())
			return p, func() tea.Msg { return promptSubmitMsg{kind: kind, value: value} }, true
		case key.Matches(k, keys.Escape):
			return p, nil, true
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd, false
}

func (p *promptModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	content := styles.AccentText.Bold(true).Render(p.title) + "\n\n" +
		p.input.View() + "\n\n" +
		styles.FaintText.Render("enter to confirm · esc to cancel")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.BorderFocus)).
		Padding(1, 2).
		Width(56).
		Render(content)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
