package pokeapi

import (
	"strings"

	"github.com/BielosX/wombat/pokedex/src/pokemon"
)

type NamedResource struct {
	Name string `json:"name"`
	Url  string `json:"url"`
}

type PokemonListResultEntry struct {
	Name string `json:"name"`
	Url  string `json:"url"`
}

type PokemonListResult struct {
	Count    int                      `json:"count"`
	Next     *string                  `json:"next"`
	Previous *string                  `json:"previous"`
	Results  []PokemonListResultEntry `json:"results"`
}

type PokemonType struct {
	Slot int32         `json:"slot"`
	Type NamedResource `json:"type"`
}

type PokemonStat struct {
	BaseStat int32         `json:"base_stat"`
	Stat     NamedResource `json:"stat"`
}

type PokemonMove struct {
	Move NamedResource `json:"move"`
}

type PokemonResponse struct {
	Id      int           `json:"id"`
	Name    string        `json:"name"`
	Weight  int32         `json:"weight"`
	Height  int32         `json:"height"`
	Types   []PokemonType `json:"types"`
	Stats   []PokemonStat `json:"stats"`
	Moves   []PokemonMove `json:"moves"`
	Species NamedResource `json:"species"`
}

type FlavorTextEntry struct {
	FlavorText string        `json:"flavor_text"`
	Language   NamedResource `json:"language"`
	Version    NamedResource `json:"version"`
}

type PokemonSpecies struct {
	Id                int               `json:"id"`
	Name              string            `json:"name"`
	FlavorTextEntries []FlavorTextEntry `json:"flavor_text_entries"`
	Generation        NamedResource     `json:"generation"`
}

type PokemonGeneration struct {
	Id   int32  `json:"id"`
	Name string `json:"name"`
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\f", " ", "\r", " ")

// Bio returns the first flavor text written in lang with its line breaks
// flattened, or "" when the species has none.
func (s PokemonSpecies) Bio(lang string) string {
	for _, entry := range s.FlavorTextEntries {
		if entry.Language.Name == lang {
			return lineBreaks.Replace(entry.FlavorText)
		}
	}
	return ""
}

// ToPokemon converts the raw detail payload into the domain record,
// dropping types outside the taxonomy.
func (r PokemonResponse) ToPokemon() pokemon.Pokemon {
	typeNames := make([]string, 0, len(r.Types))
	for _, t := range r.Types {
		typeNames = append(typeNames, t.Type.Name)
	}
	stats := make([]pokemon.Stat, 0, len(r.Stats))
	for _, s := range r.Stats {
		stats = append(stats, pokemon.Stat{Name: s.Stat.Name, BaseValue: int(s.BaseStat)})
	}
	moves := make([]string, 0, len(r.Moves))
	for _, m := range r.Moves {
		moves = append(moves, m.Move.Name)
	}
	return pokemon.Pokemon{
		ID:         r.Id,
		Name:       r.Name,
		Types:      pokemon.ParseTypes(typeNames),
		Weight:     int(r.Weight),
		Height:     int(r.Height),
		Stats:      stats,
		Moves:      moves,
		SpeciesURL: r.Species.Url,
	}
}
