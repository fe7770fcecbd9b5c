package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/BielosX/wombat/pokedex/src/pokeapi"
	"github.com/BielosX/wombat/pokedex/src/pokedex"
	"github.com/BielosX/wombat/pokedex/src/pokemon"
)

const statBarWidth = 24

// openDetail starts loading id and supersedes any detail still loading.
// Nothing is cached: every visit fetches again.
func (m Model) openDetail(id int) (tea.Model, tea.Cmd) {
	m.cancelDetail()
	m.detailSeq++
	ctx, cancel := context.WithCancel(m.deps.Ctx)
	m.detailCancel = cancel
	m.detail = pokedex.NewDetail(id)
	m.screen = screenDetail
	updates := pokedex.LoadDetail(ctx, m.deps.Details, id)
	return m, waitDetail(m.detailSeq, updates)
}

func (m *Model) cancelDetail() {
	if m.detailCancel != nil {
		m.detailCancel()
		m.detailCancel = nil
	}
}

func waitDetail(seq int, updates <-chan pokedex.DetailUpdate) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-updates
		if !ok {
			return detailDoneMsg{seq: seq}
		}
		return detailUpdateMsg{seq: seq, update: u, updates: updates}
	}
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.cancelDetail()
		return m, tea.Quit
	case "esc", "backspace":
		m.cancelDetail()
		m.screen = screenList
		return m, nil
	case "x":
		m.detail = m.detail.ToggleShiny()
		return m, nil
	case "left", "h":
		return m.navigate(-1)
	case "right", "l":
		return m.navigate(1)
	}
	return m, nil
}

func (m Model) navigate(delta int) (tea.Model, tea.Cmd) {
	next := pokedex.Navigate(m.detail.ID, delta, m.pages.Count())
	if next == m.detail.ID {
		return m, nil
	}
	return m.openDetail(next)
}

func (m Model) detailColor() lipgloss.Color {
	if m.detail.Pokemon != nil {
		if t, ok := m.detail.Pokemon.PrimaryType(); ok {
			return typeColor(t)
		}
	}
	return Tint
}

func (m Model) viewDetail() string {
	d := m.detail
	color := m.detailColor()
	header := lipgloss.NewStyle().Bold(true).Foreground(GrayWhite).Background(color).Padding(0, 1)
	section := lipgloss.NewStyle().Bold(true).Foreground(color)

	var b strings.Builder
	name := "…"
	if d.Pokemon != nil {
		name = displayName(d.Pokemon.Name)
	}
	b.WriteString(header.Render(fmt.Sprintf("← %s  %s", name, pokemon.FormatNumber(d.ID))))
	b.WriteString("\n\n")

	if d.RecordErr != nil {
		b.WriteString(m.styles.Error.Render(recordError(d)))
		b.WriteString("\n\n")
	}

	if p := d.Pokemon; p != nil {
		b.WriteString(badges(p.Types))
		b.WriteString("\n\n")
		b.WriteString(section.Render("About"))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("Weight %-10s Height %-8s Moves %s\n",
			pokemon.FormatWeight(p.Weight),
			pokemon.FormatSize(p.Height),
			strings.Join(p.TopMoves(2), ", ")))
	}
	switch {
	case d.BioLoaded:
		b.WriteString(d.Bio)
	case d.BioErr != nil:
		b.WriteString(m.styles.Muted.Render("No description available."))
	default:
		b.WriteString(m.spinner.View())
	}
	b.WriteString("\n\n")

	if p := d.Pokemon; p != nil {
		b.WriteString(section.Render("Base stats"))
		b.WriteString("\n")
		for _, s := range p.Stats {
			b.WriteString(fmt.Sprintf("%s %03d %s\n",
				section.Render(fmt.Sprintf("%-4s", statName(s.Name))), s.BaseValue, statBar(s.BaseValue, statBarWidth, color)))
		}
		b.WriteString("\n")
	}

	artwork := "Artwork"
	if d.Shiny {
		artwork = "Shiny artwork"
	}
	b.WriteString(m.styles.Muted.Render(artwork + ": " + d.ArtworkURL()))
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("h/←: previous · l/→: next · x: shiny · esc: back · q: quit"))
	return b.String()
}

func recordError(d pokedex.Detail) string {
	if errors.Is(d.RecordErr, pokeapi.ErrNotFound) {
		return fmt.Sprintf("No Pokémon with number %d.", d.ID)
	}
	return d.RecordErr.Error()
}
