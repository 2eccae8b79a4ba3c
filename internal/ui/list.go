package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/curio/internal/api"
	"github.com/five82/curio/internal/state"
)

// titleFields are shown in the title column and never as extra columns.
var titleFields = map[string]struct{}{
	"id": {}, "title": {}, "name": {}, "label": {},
}

// handleListKey processes keyboard input for the objects list.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.store == nil {
		return m, nil
	}
	objects := m.store.List.GetObjects()
	q := m.store.List.GetQuery()

	switch {
	case key.Matches(msg, m.keys.Back):
		return m.back()
	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selectedRow < len(objects)-1 {
			m.selectedRow++
		}
	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = maxInt(len(objects)-1, 0)
	case key.Matches(msg, m.keys.Open):
		if m.selectedRow < len(objects) {
			return m.navigate(m.router.ObjectPath(objects[m.selectedRow].ID))
		}
	case key.Matches(msg, m.keys.NextPage):
		if m.hasNextPage() {
			return m.changeSettings(state.Settings{}.WithPage(q.Page + 1))
		}
	case key.Matches(msg, m.keys.PrevPage):
		if q.Page > 1 {
			return m.changeSettings(state.Settings{}.WithPage(q.Page - 1))
		}
	case key.Matches(msg, m.keys.Filter):
		return m.openPrompt(promptFilter, "Filter objects", "search term", q.FilterTerm)
	case key.Matches(msg, m.keys.CycleType):
		if len(m.cfg.FilterTypes) > 0 {
			next := cycleOption(m.cfg.FilterTypes, q.FilterType)
			return m.changeSettings(state.Settings{}.WithFilterType(next).WithPage(1))
		}
	case key.Matches(msg, m.keys.CycleSort):
		if len(m.cfg.SortKeys) > 0 {
			next := cycleOption(m.cfg.SortKeys, q.SortBy)
			return m.changeSettings(state.Settings{}.WithSortBy(next).WithPage(1))
		}
	case key.Matches(msg, m.keys.ClearFilter):
		return m.changeSettings(state.Settings{}.WithFilterTerm("").WithFilterType("").WithPage(1))
	case key.Matches(msg, m.keys.Refresh):
		return m, m.fetchObjects()
	}
	return m, nil
}

// hasNextPage reports whether another page exists. Without a page total it
// assumes more pages while the current one is non-empty.
func (m Model) hasNextPage() bool {
	page := m.store.List.GetCurrentPage()
	p := m.store.List.GetPagination()
	if p.TotalPages > 0 {
		return page < p.TotalPages
	}
	return len(m.store.List.GetObjects()) > 0
}

// cycleOption steps through "" followed by options.
func cycleOption(options []string, current string) string {
	all := append([]string{""}, options...)
	for i, option := range all {
		if option == current {
			return all[(i+1)%len(all)]
		}
	}
	return all[1%len(all)]
}

// renderList renders the object table with its paging and settings lines.
func (m Model) renderList(height int) string {
	styles := m.theme.Styles()
	snap := m.store.List.Snapshot()

	var b strings.Builder
	b.WriteString(m.renderListStatus(snap))
	b.WriteString("\n")

	if len(snap.Objects) == 0 {
		msg := "No objects"
		if m.store.Loaders.IsLoading(state.LoaderFetchObjects) {
			msg = "Loading objects…"
		}
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render("  " + msg))
		return b.String()
	}

	extras := extraColumns(snap.Objects)
	if m.width < LayoutExtraColumnsWidth {
		extras = nil
	}
	extraWidth := 20
	titleWidth := maxInt(m.width-idColumnWidth-len(extras)*(extraWidth+1)-4, 10)

	header := padRight("ID", idColumnWidth) + " " + padRight("Title", titleWidth)
	for _, field := range extras {
		header += " " + padRight(truncate(fieldLabel(field), extraWidth), extraWidth)
	}
	b.WriteString(styles.ColumnHeader.Render(header))
	b.WriteString("\n")

	rows := maxInt(height-3, 1)
	start := 0
	if m.selectedRow >= rows {
		start = m.selectedRow - rows + 1
	}
	end := start + rows
	if end > len(snap.Objects) {
		end = len(snap.Objects)
	}

	for i := start; i < end; i++ {
		obj := snap.Objects[i]
		line := padRight(fmt.Sprintf("%d", obj.ID), idColumnWidth) + " " +
			padRight(truncate(obj.Title(), titleWidth), titleWidth)
		for _, field := range extras {
			line += " " + padRight(truncate(obj.String(field), extraWidth), extraWidth)
		}
		if i == m.selectedRow {
			b.WriteString(styles.Selected.Width(m.width).Render(line))
		} else {
			b.WriteString(styles.Text.Render(line))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderListStatus(snap state.ListState) string {
	styles := m.theme.Styles()
	pages := maxInt(snap.Pagination.TotalPages, 1)
	status := fmt.Sprintf("Page %d/%d · %d objects", snap.CurrentPage, pages, snap.Pagination.TotalObjects)

	filter := snap.FilterTerm
	if filter == "" {
		filter = "none"
	}
	kind := snap.FilterType
	if kind == "" {
		kind = "any"
	}
	sortBy := snap.SortBy
	if sortBy == "" {
		sortBy = "default"
	}
	settings := fmt.Sprintf("filter: %s  type: %s  sort: %s", filter, kind, sortBy)
	return styles.AccentText.Render(status) + "  " + styles.MutedText.Render(settings)
}

// extraColumns picks up to two scalar fields of the first object to show
// next to the title.
func extraColumns(objects []api.Object) []string {
	if len(objects) == 0 {
		return nil
	}
	first := objects[0]
	var out []string
	for _, name := range first.FieldNames() {
		if _, skip := titleFields[name]; skip {
			continue
		}
		if first.String(name) == "" {
			continue
		}
		out = append(out, name)
		if len(out) == 2 {
			break
		}
	}
	return out
}
