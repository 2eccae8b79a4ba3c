package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/curio/internal/router"
)

// renderMain renders the header, command bar, content and footer.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderContent() string {
	height := m.contentHeight()
	var body string
	switch {
	case m.showLogs:
		body = m.logViewport.View()
	case m.route.View == router.ViewHome:
		body = m.renderHome()
	case m.route.View == router.ViewList:
		body = m.renderList(height)
	case m.route.View == router.ViewDetail:
		body = m.detailViewport.View()
	default:
		body = m.renderNotFound()
	}
	return lipgloss.NewStyle().Width(m.width).Height(height).MaxHeight(height).Render(body)
}

// renderHeader shows the logo, current path, loading state and last error.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	parts := []string{bg.Render("curio", styles.Logo)}

	where := m.route.Path
	if m.showLogs {
		where = "logs"
	}
	pathWidth := 48
	if m.width < LayoutCompactWidth {
		pathWidth = 24
	}
	parts = append(parts,
		bg.Render("Path:", styles.MutedText)+bg.Space()+
			bg.Render(truncateMiddle(where, pathWidth), styles.Text))

	if m.store != nil && m.store.Loaders.Any() {
		parts = append(parts, m.spinner.View()+bg.Space()+bg.Render("Loading", styles.WarningText.Bold(true)))
	}
	if m.lastErr != "" {
		parts = append(parts, bg.Render("✗ "+truncate(m.lastErr, maxInt(m.width/2, 20)), styles.DangerText))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}

// renderCommandBar lists the keys that apply to the current view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	var bindings []key.Binding
	switch {
	case m.showLogs:
		bindings = []key.Binding{m.keys.Back, m.keys.Refresh, m.keys.Top, m.keys.Bottom}
	case m.route.View == router.ViewHome:
		bindings = []key.Binding{m.keys.Open}
	case m.route.View == router.ViewList:
		bindings = []key.Binding{m.keys.Open, m.keys.NextPage, m.keys.PrevPage, m.keys.Filter, m.keys.CycleType, m.keys.CycleSort, m.keys.Refresh}
	case m.route.View == router.ViewDetail:
		bindings = []key.Binding{m.keys.Back, m.keys.Refresh}
	default:
		bindings = []key.Binding{m.keys.Back, m.keys.Open}
	}
	bindings = append(bindings, m.keys.GoTo, m.keys.Logs, m.keys.Help, m.keys.Quit)

	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		h := binding.Help()
		parts = append(parts, bg.Render(h.Key, styles.WarningText)+bg.Space()+bg.Render(h.Desc, styles.MutedText))
	}
	return styles.Footer.Width(m.width).Render(bg.Join(parts, "  "))
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{bg.Render(m.cfg.APIURL, styles.FaintText)}
	if m.store != nil {
		if active := m.store.Loaders.Active(); len(active) > 0 {
			parts = append(parts, bg.Render(strings.Join(active, ", "), styles.FaintText))
		}
	}
	parts = append(parts, bg.Render(m.theme.Name, styles.FaintText))
	return styles.Footer.Width(m.width).Render(bg.Join(parts, " · "))
}

func (m Model) renderHome() string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(styles.Logo.Render("curio"))
	b.WriteString(styles.MutedText.Render("  objects catalogue"))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("API  "))
	b.WriteString(styles.Text.Render(m.cfg.APIURL))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render("Press "))
	b.WriteString(styles.WarningText.Render("enter"))
	b.WriteString(styles.Text.Render(" to browse objects or "))
	b.WriteString(styles.WarningText.Render(":"))
	b.WriteString(styles.Text.Render(" to open a path."))
	b.WriteString("\n")

	if len(m.prefs.Recent) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.AccentText.Bold(true).Render("Recently viewed"))
		b.WriteString("\n")
		for _, id := range m.prefs.Recent {
			b.WriteString(styles.FaintText.Render("  " + m.router.ObjectPath(id)))
			b.WriteString("\n")
		}
	}
	return lipgloss.NewStyle().Padding(0, 2).Render(b.String())
}

func (m Model) renderNotFound() string {
	styles := m.theme.Styles()
	return lipgloss.NewStyle().Padding(1, 2).Render(
		styles.DangerText.Render("Not found") + "\n\n" +
			styles.Text.Render("Nothing lives at ") + styles.AccentText.Render(m.route.Path) + "\n" +
			styles.MutedText.Render("esc to go back, enter for home, : to open another path"),
	)
}
