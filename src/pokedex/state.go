package pokedex

import "github.com/BielosX/wombat/pokedex/src/pokemon"

// State is the listing screen's application state. Every transition
// returns a new value.
type State struct {
	View       ViewState
	Collection Collection
}

func (s State) Merge(batch []pokemon.Pokemon) State {
	s.Collection = s.Collection.Merge(batch)
	return s
}

func (s State) WithCollection(c Collection) State {
	s.Collection = c
	return s
}

func (s State) WithSearch(query string) State {
	s.View.Search = query
	return s
}

func (s State) ToggleType(t pokemon.Type) State {
	s.View.Types = s.View.Types.Toggle(t)
	return s
}

func (s State) WithSort(key SortKey) State {
	s.View.Sort = key
	return s
}

func (s State) Visible() []pokemon.Pokemon {
	return Apply(s.View, s.Collection)
}
