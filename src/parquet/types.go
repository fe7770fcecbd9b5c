package parquet

import "github.com/BielosX/wombat/pokedex/src/pokemon"

// Pokemon is one exported row. A record with several types yields one row
// per type.
type Pokemon struct {
	Id         int32  `parquet:"name=id, type=INT32"`
	Name       string `parquet:"name=name, type=BYTE_ARRAY, convertedtype=UTF8"`
	Weight     int32  `parquet:"name=weight, type=INT32"`
	Height     int32  `parquet:"name=height, type=INT32"`
	Type       string `parquet:"name=type, type=BYTE_ARRAY, convertedtype=UTF8"`
	Slot       int32  `parquet:"name=slot, type=INT32"`
	Generation int32  `parquet:"name=generation, type=INT32"`
	Artwork    string `parquet:"name=artwork, type=BYTE_ARRAY, convertedtype=UTF8"`
}

func ToPokemon(p pokemon.Pokemon, generation int32) []Pokemon {
	base := Pokemon{
		Id:         int32(p.ID),
		Name:       p.Name,
		Weight:     int32(p.Weight),
		Height:     int32(p.Height),
		Generation: generation,
		Artwork:    pokemon.ArtworkURL(p.ID),
	}
	if len(p.Types) == 0 {
		return []Pokemon{base}
	}
	rows := make([]Pokemon, 0, len(p.Types))
	for i, t := range p.Types {
		row := base
		row.Type = t.String()
		row.Slot = int32(i + 1)
		rows = append(rows, row)
	}
	return rows
}
