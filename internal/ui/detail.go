package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/curio/internal/api"
	"github.com/five82/curio/internal/router"
)

// handleDetailKey processes keyboard input for the object detail view.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m.back()
	case key.Matches(msg, m.keys.Top):
		m.detailViewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.detailViewport.GotoBottom()
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		id, err := strconv.ParseInt(m.route.Prop("id"), 10, 64)
		if err != nil || id <= 0 || m.store == nil {
			return m, nil
		}
		return m, fetchObjectCmd(m.ctx, m.store, id)
	}
	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

// refreshDetail rebuilds the detail viewport content.
func (m *Model) refreshDetail() {
	if !m.ready || !m.detailBuilt || m.route.View != router.ViewDetail {
		return
	}
	m.detailViewport.SetContent(m.detailContent())
}

func (m Model) detailContent() string {
	styles := m.theme.Styles()
	if m.detailErr != "" {
		return "\n  " + styles.DangerText.Render(m.detailErr)
	}
	if m.store == nil {
		return ""
	}
	obj, ok := m.store.Detail.GetObject()
	if !ok {
		if m.lastErr != "" {
			return "\n  " + styles.DangerText.Render("Object could not be loaded")
		}
		return "\n  " + styles.MutedText.Render("Loading object…")
	}
	return renderObject(obj, styles, m.width)
}

// renderObject lays out every top-level field as a label/value pair. Nested
// values are pretty-printed JSON.
func renderObject(obj api.Object, styles Styles, width int) string {
	fields, err := obj.Fields()
	if err != nil {
		return "\n  " + styles.Text.Render(fieldValue(obj.Raw))
	}
	names := obj.FieldNames()

	labelWidth := 0
	labels := make(map[string]string, len(names))
	for _, name := range names {
		labels[name] = fieldLabel(name)
		labelWidth = maxInt(labelWidth, len([]rune(labels[name])))
	}

	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(styles.Text.Bold(true).Render(obj.Title()))
	b.WriteString(styles.FaintText.Render(fmt.Sprintf("  #%d", obj.ID)))
	b.WriteString("\n\n")

	indent := strings.Repeat(" ", labelWidth+4)
	for _, name := range names {
		value := fieldValue(fields[name])
		lines := strings.Split(value, "\n")
		b.WriteString("  ")
		b.WriteString(styles.MutedText.Render(padRight(labels[name], labelWidth)))
		b.WriteString("  ")
		for i, line := range lines {
			if i > 0 {
				b.WriteString("\n")
				b.WriteString(indent)
			}
			body := strings.TrimLeft(line, " ")
			lead := line[:len(line)-len(body)]
			b.WriteString(styles.Text.Render(lead + truncate(body, maxInt(width-labelWidth-6-len(lead), 10))))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// fieldValue renders a raw JSON field for display.
func fieldValue(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "—"
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			if s == "" {
				return "—"
			}
			return s
		}
	case '{', '[':
		var out bytes.Buffer
		if err := json.Indent(&out, trimmed, "", "  "); err == nil {
			return out.String()
		}
	}
	return string(trimmed)
}
