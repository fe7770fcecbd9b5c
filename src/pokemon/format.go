// Package pokemon holds the Pokédex domain record, the type taxonomy and
// the display formatters shared by every screen and exporter.
package pokemon

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	artworkBase = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/other/official-artwork"
)

// GetPokemonID extracts the trailing numeric path segment of a resource
// URL such as https://pokeapi.co/api/v2/pokemon/42/.
func GetPokemonID(url string) (int, error) {
	trimmed := strings.TrimRight(url, "/")
	idx := strings.LastIndex(trimmed, "/")
	segment := trimmed[idx+1:]
	id, err := strconv.Atoi(segment)
	if err != nil {
		return 0, fmt.Errorf("no numeric id in %q: %w", url, err)
	}
	return id, nil
}

func ArtworkURL(id int) string {
	return fmt.Sprintf("%s/%d.png", artworkBase, id)
}

func ShinyArtworkURL(id int) string {
	return fmt.Sprintf("%s/shiny/%d.png", artworkBase, id)
}

// FormatWeight renders hectograms as kilograms with a decimal comma.
// Non-positive values are treated as absent.
func FormatWeight(hectograms int) string {
	return formatTenths(hectograms, "kg")
}

// FormatSize renders decimeters as meters with a decimal comma.
func FormatSize(decimeters int) string {
	return formatTenths(decimeters, "m")
}

func formatTenths(value int, unit string) string {
	if value <= 0 {
		return ""
	}
	s := strconv.FormatFloat(float64(value)/10, 'f', 1, 64)
	return strings.Replace(s, ".", ",", 1) + " " + unit
}

// FormatNumber renders an id as #001.
func FormatNumber(id int) string {
	return fmt.Sprintf("#%03d", id)
}
