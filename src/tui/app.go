// Package tui is the interactive terminal Pokédex: a searchable listing
// screen and a detail screen.
package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/BielosX/wombat/pokedex/src/pokeapi"
	"github.com/BielosX/wombat/pokedex/src/pokedex"
	"github.com/BielosX/wombat/pokedex/src/pokemon"
)

type Pages interface {
	FetchNext(ctx context.Context) (*pokeapi.Page, error)
	IsFetching() bool
	HasMore() bool
	Count() int
}

type Merger interface {
	Submit(entries []pokeapi.PokemonListResultEntry) <-chan pokedex.MergeResult
	Snapshot() pokedex.Collection
	Reset()
}

type Deps struct {
	Ctx      context.Context
	NewPages func() Pages
	Merger   Merger
	Details  pokedex.DetailSource
	Sugar    *zap.SugaredLogger
}

type screen int

const (
	screenList screen = iota
	screenDetail
)

type inputMode int

const (
	modeBrowse inputMode = iota
	modeSearch
	modeFilter
)

type pageFetchedMsg struct {
	generation int
	page       *pokeapi.Page
	err        error
}

type mergedMsg struct {
	result pokedex.MergeResult
}

type detailUpdateMsg struct {
	seq     int
	update  pokedex.DetailUpdate
	updates <-chan pokedex.DetailUpdate
}

type detailDoneMsg struct {
	seq int
}

type Model struct {
	deps   Deps
	styles Styles

	width  int
	height int
	screen screen

	// listing
	pages          Pages
	pageGeneration int
	pendingMerges  int
	state          pokedex.State
	visible        []pokemon.Pokemon
	cursor         int
	offset         int
	mode           inputMode
	search         textinput.Model
	typeCursor     int
	spinner        spinner.Model
	err            error

	// detail
	detail       pokedex.Detail
	detailSeq    int
	detailCancel context.CancelFunc
}

func New(deps Deps) Model {
	if deps.Ctx == nil {
		deps.Ctx = context.Background()
	}
	if deps.Sugar == nil {
		deps.Sugar = zap.NewNop().Sugar()
	}
	search := textinput.New()
	search.Placeholder = "Search"
	search.Prompt = "🔍 "
	search.CharLimit = 32

	return Model{
		deps:    deps,
		styles:  DefaultStyles(),
		pages:   deps.NewPages(),
		state:   pokedex.State{View: pokedex.ViewState{Sort: pokedex.SortIDAsc}},
		search:  search,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchNextPage())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.clampCursor()
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case pageFetchedMsg:
		return m.onPage(msg)
	case mergedMsg:
		return m.onMerged(msg)
	case detailUpdateMsg:
		if msg.seq != m.detailSeq {
			return m, nil
		}
		m.detail = m.detail.Apply(msg.update)
		return m, waitDetail(msg.seq, msg.updates)
	case detailDoneMsg:
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancelDetail()
			return m, tea.Quit
		}
		if m.screen == screenDetail {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) View() string {
	if m.screen == screenDetail {
		return m.viewDetail()
	}
	return m.viewList()
}

// Loading reports whether a page fetch or merge is still pending.
func (m Model) Loading() bool {
	return m.pages.IsFetching() || m.pendingMerges > 0
}

func (m Model) fetchNextPage() tea.Cmd {
	if !m.pages.HasMore() || m.pages.IsFetching() {
		return nil
	}
	pages, ctx, generation := m.pages, m.deps.Ctx, m.pageGeneration
	return func() tea.Msg {
		page, err := pages.FetchNext(ctx)
		return pageFetchedMsg{generation: generation, page: page, err: err}
	}
}

func (m Model) onPage(msg pageFetchedMsg) (tea.Model, tea.Cmd) {
	if msg.generation != m.pageGeneration {
		return m, nil
	}
	if msg.err != nil {
		if !isBenignPageError(msg.err) {
			m.deps.Sugar.Errorf("Failed to fetch page: %s", msg.err)
			m.err = msg.err
		}
		return m, nil
	}
	m.err = nil
	m.pendingMerges++
	results := m.deps.Merger.Submit(msg.page.Results)
	return m, func() tea.Msg {
		return mergedMsg{result: <-results}
	}
}

func (m Model) onMerged(msg mergedMsg) (tea.Model, tea.Cmd) {
	if m.pendingMerges > 0 {
		m.pendingMerges--
	}
	res := msg.result
	if res.Stale {
		return m, nil
	}
	if res.Err != nil {
		m.deps.Sugar.Errorf("Failed to merge page: %s", res.Err)
		m.err = res.Err
		return m, nil
	}
	m.state = m.state.WithCollection(res.Collection)
	m.refresh()
	if m.height > 0 && len(m.visible) < m.listHeight() && m.state.View.Search == "" {
		return m, m.fetchNextPage()
	}
	return m, nil
}

// reload drops everything fetched so far and starts over from page one.
func (m Model) reload() (tea.Model, tea.Cmd) {
	m.deps.Merger.Reset()
	m.pageGeneration++
	m.pendingMerges = 0
	m.pages = m.deps.NewPages()
	m.state = m.state.WithCollection(pokedex.Collection{})
	m.err = nil
	m.refresh()
	return m, m.fetchNextPage()
}

func (m *Model) refresh() {
	m.visible = m.state.Visible()
	m.clampCursor()
}

func isBenignPageError(err error) bool {
	return errors.Is(err, pokeapi.ErrFetchInFlight) || errors.Is(err, pokeapi.ErrNoMorePages)
}
