package pokedex

import (
	"pgregory.net/rapid"

	"github.com/BielosX/wombat/pokedex/src/pokemon"
)

func genPokemon(id int) *rapid.Generator[pokemon.Pokemon] {
	return rapid.Custom(func(t *rapid.T) pokemon.Pokemon {
		types := rapid.SliceOfNDistinct(rapid.SampledFrom(pokemon.Types()), 1, 2, func(ty pokemon.Type) pokemon.Type { return ty }).Draw(t, "types")
		return pokemon.Pokemon{
			ID:    id,
			Name:  rapid.StringMatching(`[a-z]{1,8}`).Draw(t, "name"),
			Types: types,
		}
	})
}

// genCollection draws records with distinct ids.
func genCollection(t *rapid.T) []pokemon.Pokemon {
	ids := rapid.SliceOfNDistinct(rapid.IntRange(1, 500), 0, 40, func(id int) int { return id }).Draw(t, "ids")
	out := make([]pokemon.Pokemon, 0, len(ids))
	for _, id := range ids {
		out = append(out, genPokemon(id).Draw(t, "pokemon"))
	}
	return out
}

func ids(items []pokemon.Pokemon) []int {
	out := make([]int, 0, len(items))
	for _, p := range items {
		out = append(out, p.ID)
	}
	return out
}

func mon(id int, name string, types ...pokemon.Type) pokemon.Pokemon {
	return pokemon.Pokemon{ID: id, Name: name, Types: types}
}
