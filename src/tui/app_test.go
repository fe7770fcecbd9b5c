package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BielosX/wombat/pokedex/src/pokeapi"
	"github.com/BielosX/wombat/pokedex/src/pokedex"
	"github.com/BielosX/wombat/pokedex/src/pokemon"
)

var names = map[int]string{1: "bulbasaur", 2: "ivysaur", 3: "venusaur", 4: "charmander", 5: "charmeleon", 6: "charizard"}

func nameOf(id int) string {
	if n, ok := names[id]; ok {
		return n
	}
	return fmt.Sprintf("pokemon%d", id)
}

type fakePages struct {
	pageSize int
	total    int
	fetched  int
	fail     error
}

func (f *fakePages) FetchNext(context.Context) (*pokeapi.Page, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	if !f.HasMore() {
		return nil, pokeapi.ErrNoMorePages
	}
	var results []pokeapi.PokemonListResultEntry
	for id := f.fetched + 1; id <= f.fetched+f.pageSize && id <= f.total; id++ {
		results = append(results, pokeapi.PokemonListResultEntry{
			Name: nameOf(id),
			Url:  fmt.Sprintf("https://pokeapi.co/api/v2/pokemon/%d/", id),
		})
	}
	f.fetched += len(results)
	return &pokeapi.Page{Number: f.fetched / f.pageSize, Results: results}, nil
}

func (f *fakePages) IsFetching() bool { return false }
func (f *fakePages) HasMore() bool    { return f.fetched < f.total }
func (f *fakePages) Count() int       { return f.total }

type fakeMerger struct {
	collection pokedex.Collection
	resets     int
}

func (f *fakeMerger) Submit(entries []pokeapi.PokemonListResultEntry) <-chan pokedex.MergeResult {
	batch := make([]pokemon.Pokemon, 0, len(entries))
	for _, e := range entries {
		id, _ := pokemon.GetPokemonID(e.Url)
		types := []pokemon.Type{pokemon.Grass}
		if id >= 4 {
			types = []pokemon.Type{pokemon.Fire}
		}
		batch = append(batch, pokemon.Pokemon{ID: id, Name: e.Name, Types: types})
	}
	before := f.collection.Len()
	f.collection = f.collection.Merge(batch)
	out := make(chan pokedex.MergeResult, 1)
	out <- pokedex.MergeResult{Collection: f.collection, Added: f.collection.Len() - before}
	return out
}

func (f *fakeMerger) Snapshot() pokedex.Collection { return f.collection }

func (f *fakeMerger) Reset() {
	f.resets++
	f.collection = pokedex.Collection{}
}

type fakeDetails struct{}

func (fakeDetails) GetDetail(_ context.Context, id int) (pokemon.Pokemon, error) {
	if id > 6 {
		return pokemon.Pokemon{}, &pokeapi.StatusError{Url: "x", StatusCode: 404}
	}
	return pokemon.Pokemon{
		ID: id, Name: nameOf(id), Types: []pokemon.Type{pokemon.Fire},
		Weight: 85, Height: 6, Moves: []string{"scratch", "growl", "ember"},
		Stats: []pokemon.Stat{{Name: "hp", BaseValue: 39}},
	}, nil
}

func (fakeDetails) GetBio(_ context.Context, id int) (string, error) {
	return fmt.Sprintf("bio of %d", id), nil
}

func newModel(t *testing.T, total int) (Model, *fakeMerger) {
	t.Helper()
	merger := &fakeMerger{}
	m := New(Deps{
		NewPages: func() Pages { return &fakePages{pageSize: 3, total: total} },
		Merger:   merger,
		Details:  fakeDetails{},
	})
	return m, merger
}

// run feeds msg to the model and keeps executing the returned commands
// that belong to this package, skipping timer-driven ones.
func run(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	queue := []tea.Msg{msg}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		model, cmd := m.Update(next)
		m = model.(Model)
		if cmd == nil {
			continue
		}
		switch out := execute(cmd).(type) {
		case pageFetchedMsg, mergedMsg, detailUpdateMsg, detailDoneMsg:
			queue = append(queue, out)
		}
	}
	return m
}

// execute runs cmd but gives up on commands that wait for a timer, such
// as cursor blinks.
func execute(cmd tea.Cmd) tea.Msg {
	out := make(chan tea.Msg, 1)
	go func() { out <- cmd() }()
	select {
	case msg := <-out:
		return msg
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loadFirstPage(t *testing.T, m Model) Model {
	t.Helper()
	return run(t, m, m.fetchNextPage()())
}

func visibleIDs(m Model) []int {
	out := make([]int, 0, len(m.visible))
	for _, p := range m.visible {
		out = append(out, p.ID)
	}
	return out
}

func TestModel_FirstPage(t *testing.T) {
	m, _ := newModel(t, 6)
	m = loadFirstPage(t, m)
	assert.Equal(t, []int{1, 2, 3}, visibleIDs(m))
	assert.Contains(t, m.View(), "Bulbasaur")
	assert.Contains(t, m.View(), "3 shown · 3 loaded of 6")
}

func TestModel_EndOfListFetchesNextPage(t *testing.T) {
	m, _ := newModel(t, 6)
	m = loadFirstPage(t, m)
	m = run(t, m, key("down"))
	m = run(t, m, key("down"))
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, visibleIDs(m))

	for range 10 {
		m = run(t, m, key("down"))
	}
	assert.Equal(t, 5, m.cursor)
	assert.Len(t, m.visible, 6, "no pages past the end of the collection")
}

func TestModel_SortCycles(t *testing.T) {
	m, _ := newModel(t, 3)
	m = loadFirstPage(t, m)
	m = run(t, m, key("s"))
	assert.Equal(t, []int{3, 2, 1}, visibleIDs(m))
	m = run(t, m, key("s"))
	assert.Equal(t, []int{1, 2, 3}, visibleIDs(m), "bulbasaur, ivysaur, venusaur")
	m = run(t, m, key("s"))
	assert.Equal(t, []int{3, 2, 1}, visibleIDs(m))
	assert.Contains(t, m.View(), "Name Z-A")
}

func TestModel_Search(t *testing.T) {
	m, _ := newModel(t, 6)
	m = loadFirstPage(t, m)
	m = run(t, m, key("down"))
	m = run(t, m, key("down"))
	require.Len(t, m.visible, 6)

	m = run(t, m, key("/"))
	for _, r := range "char" {
		m = run(t, m, key(string(r)))
	}
	assert.Equal(t, []int{4, 5, 6}, visibleIDs(m))

	m = run(t, m, key("enter"))
	assert.Equal(t, modeBrowse, m.mode)
	for range 5 {
		m = run(t, m, key("down"))
	}
	assert.Equal(t, []int{4, 5, 6}, visibleIDs(m))

	m = run(t, m, key("/"))
	m = run(t, m, key("esc"))
	assert.Len(t, m.visible, 6)
}

func TestModel_SearchByNumber(t *testing.T) {
	m, _ := newModel(t, 3)
	m = loadFirstPage(t, m)
	m = run(t, m, key("/"))
	m = run(t, m, key("2"))
	assert.Equal(t, []int{2}, visibleIDs(m))
}

func TestModel_TypeFilter(t *testing.T) {
	m, _ := newModel(t, 6)
	m = loadFirstPage(t, m)
	m = run(t, m, key("down"))
	m = run(t, m, key("down"))

	m = run(t, m, key("t"))
	fireIndex := 0
	for i, ty := range pokemon.Types() {
		if ty == pokemon.Fire {
			fireIndex = i
		}
	}
	for range fireIndex {
		m = run(t, m, key("l"))
	}
	m = run(t, m, key(" "))
	assert.Equal(t, []int{4, 5, 6}, visibleIDs(m))

	m = run(t, m, key("c"))
	m = run(t, m, key("esc"))
	assert.Len(t, m.visible, 6)
	assert.Equal(t, modeBrowse, m.mode)
}

func TestModel_Reload(t *testing.T) {
	m, merger := newModel(t, 6)
	m = loadFirstPage(t, m)
	m = run(t, m, key("r"))
	assert.Equal(t, 1, merger.resets)
	assert.Equal(t, []int{1, 2, 3}, visibleIDs(m))
}

func TestModel_StalePageIgnored(t *testing.T) {
	m, _ := newModel(t, 6)
	stale := m.fetchNextPage()()
	m = run(t, m, key("r"))
	m = run(t, m, stale)
	assert.Equal(t, []int{1, 2, 3}, visibleIDs(m))
	_, ok := stale.(pageFetchedMsg)
	assert.True(t, ok)
}

func TestModel_PageError(t *testing.T) {
	merger := &fakeMerger{}
	m := New(Deps{
		NewPages: func() Pages { return &fakePages{pageSize: 3, total: 6, fail: errors.New("network down")} },
		Merger:   merger,
		Details:  fakeDetails{},
	})
	m = loadFirstPage(t, m)
	assert.Empty(t, m.visible)
	assert.Contains(t, m.View(), "network down")
}

func TestModel_DetailScreen(t *testing.T) {
	m, _ := newModel(t, 6)
	m = loadFirstPage(t, m)
	m = run(t, m, key("enter"))

	require.Equal(t, screenDetail, m.screen)
	require.NotNil(t, m.detail.Pokemon)
	assert.Equal(t, 1, m.detail.ID)
	assert.Equal(t, "bio of 1", m.detail.Bio)
	view := m.View()
	assert.Contains(t, view, "Bulbasaur")
	assert.Contains(t, view, "#001")
	assert.Contains(t, view, "8,5 kg")
	assert.Contains(t, view, "0,6 m")
	assert.Contains(t, view, "scratch, growl")
	assert.NotContains(t, view, "ember")
	assert.Contains(t, view, pokemon.ArtworkURL(1))

	m = run(t, m, key("x"))
	assert.Contains(t, m.View(), pokemon.ShinyArtworkURL(1))

	m = run(t, m, key("h"))
	assert.Equal(t, 1, m.detail.ID, "previous is clamped at the first number")

	m = run(t, m, key("l"))
	assert.Equal(t, 2, m.detail.ID)
	assert.False(t, m.detail.Shiny)

	m = run(t, m, key("esc"))
	assert.Equal(t, screenList, m.screen)
}

func TestModel_DetailNavigationClampsAtCount(t *testing.T) {
	m, _ := newModel(t, 6)
	m = loadFirstPage(t, m)
	model, _ := m.openDetail(6)
	m = model.(Model)
	m = run(t, m, key("l"))
	assert.Equal(t, 6, m.detail.ID)
}

func TestModel_DetailStaleUpdateDiscarded(t *testing.T) {
	m, _ := newModel(t, 6)
	model, firstCmd := m.openDetail(1)
	m = model.(Model)
	model, _ = m.openDetail(2)
	m = model.(Model)

	m = run(t, m, firstCmd())
	assert.Equal(t, 2, m.detail.ID)
	assert.Nil(t, m.detail.Pokemon, "updates for 1 never land on the page of 2")
}

func TestModel_DetailNotFound(t *testing.T) {
	m, _ := newModel(t, 6)
	model, cmd := m.openDetail(7)
	m = run(t, model.(Model), cmd())
	assert.True(t, strings.Contains(m.View(), "No Pokémon with number 7."))
}
