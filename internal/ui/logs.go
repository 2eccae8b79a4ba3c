package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleLogsKey processes keyboard input while the logs view is open.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.showLogs = false
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		return m, loadLogsCmd(m.logPath)
	case key.Matches(msg, m.keys.Top):
		m.logViewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
		return m, nil
	}
	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

// refreshLogView rebuilds the logs viewport content.
func (m *Model) refreshLogView() {
	if !m.ready {
		return
	}
	m.logViewport.SetContent(m.logContent())
}

func (m Model) logContent() string {
	styles := m.theme.Styles()
	switch {
	case m.logPath == "":
		return "\n  " + styles.MutedText.Render("File logging is disabled")
	case m.logErr != "":
		return "\n  " + styles.DangerText.Render(m.logErr)
	case len(m.logEntries) == 0:
		return "\n  " + styles.MutedText.Render("No log lines in "+m.logPath)
	}

	var b strings.Builder
	for i, entry := range m.logEntries {
		if entry.Level == "" && entry.Time.IsZero() {
			b.WriteString(styles.Text.Render(entry.Raw))
		} else {
			if !entry.Time.IsZero() {
				b.WriteString(styles.FaintText.Render(entry.Time.Local().Format("2006-01-02 15:04:05")))
				b.WriteString(" ")
			}
			b.WriteString(styles.LevelStyle(entry.Level).Render(padRight(entry.Level, 5)))
			b.WriteString(" ")
			b.WriteString(styles.Text.Render(entry.Message))
			for _, attr := range entry.Attrs {
				b.WriteString(" ")
				b.WriteString(styles.MutedText.Render(attr.Key + "=" + attr.Value))
			}
		}
		if i < len(m.logEntries)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
