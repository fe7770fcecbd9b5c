// Package pokedex aggregates paginated detail records into a
// deduplicated collection and derives the visible list from view state.
package pokedex

import (
	"sort"

	"github.com/BielosX/wombat/pokedex/src/pokemon"
)

// Collection is an immutable set of records keyed by id. Merge returns a
// new value and never mutates the receiver, so snapshots can be shared.
type Collection struct {
	byId map[int]pokemon.Pokemon
}

func NewCollection(items ...pokemon.Pokemon) Collection {
	return Collection{}.Merge(items)
}

// Merge adds every record whose id is not yet present. The first record
// stored for an id wins.
func (c Collection) Merge(batch []pokemon.Pokemon) Collection {
	merged := make(map[int]pokemon.Pokemon, len(c.byId)+len(batch))
	for id, p := range c.byId {
		merged[id] = p
	}
	for _, p := range batch {
		if _, exists := merged[p.ID]; exists {
			continue
		}
		merged[p.ID] = p
	}
	return Collection{byId: merged}
}

func (c Collection) Len() int {
	return len(c.byId)
}

func (c Collection) Has(id int) bool {
	_, ok := c.byId[id]
	return ok
}

func (c Collection) Get(id int) (pokemon.Pokemon, bool) {
	p, ok := c.byId[id]
	return p, ok
}

// Items lists the records in ascending id order.
func (c Collection) Items() []pokemon.Pokemon {
	out := make([]pokemon.Pokemon, 0, len(c.byId))
	for _, p := range c.byId {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (c Collection) MaxID() int {
	max := 0
	for id := range c.byId {
		if id > max {
			max = id
		}
	}
	return max
}
