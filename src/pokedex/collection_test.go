package pokedex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/BielosX/wombat/pokedex/src/pokemon"
)

func TestCollection_Merge(t *testing.T) {
	empty := Collection{}
	first := empty.Merge([]pokemon.Pokemon{mon(2, "ivysaur"), mon(1, "bulbasaur")})

	assert.Equal(t, 0, empty.Len(), "merge must not mutate the receiver")
	assert.Equal(t, []int{1, 2}, ids(first.Items()))

	second := first.Merge([]pokemon.Pokemon{mon(2, "renamed"), mon(3, "venusaur")})
	assert.Equal(t, []int{1, 2, 3}, ids(second.Items()))
	p, ok := second.Get(2)
	assert.True(t, ok)
	assert.Equal(t, "ivysaur", p.Name, "the first record for an id wins")
	assert.Equal(t, 2, first.Len())
	assert.Equal(t, 3, second.MaxID())
	assert.True(t, second.Has(3))
	assert.False(t, second.Has(4))
}

func TestCollection_DuplicateWithinBatch(t *testing.T) {
	c := NewCollection(mon(5, "charmeleon"), mon(5, "other"))
	assert.Equal(t, 1, c.Len())
	p, _ := c.Get(5)
	assert.Equal(t, "charmeleon", p.Name)
}

func TestCollection_MergeIdempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		existing := NewCollection(genCollection(rt)...)
		batch := genCollection(rt)

		once := existing.Merge(batch)
		twice := once.Merge(batch)

		if once.Len() != twice.Len() {
			rt.Fatalf("merging twice holds %d records, once holds %d", twice.Len(), once.Len())
		}
		seen := map[int]bool{}
		for _, p := range twice.Items() {
			if seen[p.ID] {
				rt.Fatalf("duplicate id %d", p.ID)
			}
			seen[p.ID] = true
		}
		for _, p := range batch {
			if !twice.Has(p.ID) {
				rt.Fatalf("id %d missing after merge", p.ID)
			}
		}
	})
}

func TestState_Transitions(t *testing.T) {
	s := State{}.Merge(starters)
	s = s.WithSearch("char").ToggleType(pokemon.Fire).WithSort(SortNameDesc)
	assert.Equal(t, []int{4, 6}, ids(s.Visible()))

	s = s.ToggleType(pokemon.Fire).WithSearch("")
	assert.Len(t, s.Visible(), len(starters))

	s = s.WithCollection(Collection{})
	assert.Empty(t, s.Visible())
}
