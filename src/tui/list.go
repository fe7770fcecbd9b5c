package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/BielosX/wombat/pokedex/src/pokemon"
)

// chrome is the number of lines around the list: header, form, filter
// row, status and help.
const chrome = 6

func (m Model) listHeight() int {
	if m.height <= chrome {
		return 10
	}
	return m.height - chrome
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	height := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+height {
		m.offset = m.cursor - height + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeSearch:
		return m.updateSearch(msg)
	case modeFilter:
		return m.updateFilter(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.mode = modeSearch
		cmd := m.search.Focus()
		return m, cmd
	case "t":
		m.mode = modeFilter
		return m, nil
	case "s":
		m.state = m.state.WithSort(m.state.View.Sort.Next())
		m.refresh()
		return m, nil
	case "r":
		return m.reload()
	case "up", "k":
		m.cursor--
		m.clampCursor()
		return m, nil
	case "down", "j":
		m.cursor++
		m.clampCursor()
		return m, m.maybeFetchMore()
	case "pgdown":
		m.cursor += m.listHeight()
		m.clampCursor()
		return m, m.maybeFetchMore()
	case "pgup":
		m.cursor -= m.listHeight()
		m.clampCursor()
		return m, nil
	case "enter":
		if len(m.visible) == 0 {
			return m, nil
		}
		return m.openDetail(m.visible[m.cursor].ID)
	}
	return m, nil
}

// maybeFetchMore requests the next page once the cursor reaches the end
// of the list. Searching never triggers pagination.
func (m Model) maybeFetchMore() tea.Cmd {
	if m.state.View.Search != "" {
		return nil
	}
	if m.cursor < len(m.visible)-1 {
		return nil
	}
	return m.fetchNextPage()
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = modeBrowse
		m.search.Blur()
		return m, nil
	case "esc":
		m.mode = modeBrowse
		m.search.Blur()
		m.search.SetValue("")
		m.state = m.state.WithSearch("")
		m.refresh()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.state.View.Search {
		m.state = m.state.WithSearch(m.search.Value())
		m.cursor = 0
		m.refresh()
	}
	return m, cmd
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	types := pokemon.Types()
	switch msg.String() {
	case "esc", "t", "enter":
		m.mode = modeBrowse
	case "left", "h":
		m.typeCursor = (m.typeCursor - 1 + len(types)) % len(types)
	case "right", "l":
		m.typeCursor = (m.typeCursor + 1) % len(types)
	case " ", "space", "x":
		m.state = m.state.ToggleType(types[m.typeCursor])
		m.cursor = 0
		m.refresh()
	case "c":
		m.state.View.Types = nil
		m.refresh()
	}
	return m, nil
}

func (m Model) viewList() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("◓ Pokédex"))
	b.WriteString("\n")

	b.WriteString(m.search.View())
	b.WriteString("   ")
	b.WriteString(m.styles.Label.Render("Sort: "))
	b.WriteString(m.state.View.Sort.Label())
	b.WriteString("\n")

	b.WriteString(m.viewFilterRow())
	b.WriteString("\n")

	if len(m.visible) == 0 && !m.Loading() {
		b.WriteString(m.styles.Muted.Render("No Pokémon match."))
		b.WriteString("\n")
	}
	end := m.offset + m.listHeight()
	if end > len(m.visible) {
		end = len(m.visible)
	}
	for i := m.offset; i < end; i++ {
		p := m.visible[i]
		line := fmt.Sprintf("%s  %-14s", pokemon.FormatNumber(p.ID), displayName(p.Name))
		if i == m.cursor && m.mode == modeBrowse {
			line = m.styles.Selected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("  ")
		b.WriteString(badges(p.Types))
		b.WriteString("\n")
	}

	b.WriteString(m.viewStatus())
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(m.helpText()))
	return b.String()
}

func (m Model) viewFilterRow() string {
	selected := m.state.View.Types
	if m.mode != modeFilter {
		if selected.Len() == 0 {
			return m.styles.Muted.Render("Types: all")
		}
		parts := make([]string, 0, selected.Len())
		for _, t := range selected.Sorted() {
			parts = append(parts, badge(t, true))
		}
		return m.styles.Label.Render("Types: ") + strings.Join(parts, " ")
	}
	parts := make([]string, 0, len(pokemon.Types()))
	for i, t := range pokemon.Types() {
		cell := badge(t, selected.Has(t))
		if i == m.typeCursor {
			cell = "[" + cell + "]"
		}
		parts = append(parts, cell)
	}
	return strings.Join(parts, "")
}

func (m Model) viewStatus() string {
	status := fmt.Sprintf("%d shown · %d loaded", len(m.visible), m.state.Collection.Len())
	if count := m.pages.Count(); count > 0 {
		status += fmt.Sprintf(" of %d", count)
	}
	if m.Loading() {
		status = m.spinner.View() + " " + status
	}
	if m.err != nil {
		return status + "  " + m.styles.Error.Render(m.err.Error())
	}
	return m.styles.Muted.Render(status)
}

func (m Model) helpText() string {
	switch m.mode {
	case modeSearch:
		return "enter: keep search · esc: clear"
	case modeFilter:
		return "←/→: move · space: toggle · c: clear · esc: done"
	}
	return "↑/↓: move · enter: open · /: search · t: types · s: sort · r: reload · q: quit"
}
