package pokedex

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/BielosX/wombat/pokedex/src/pokemon"
)

type SortKey string

const (
	SortIDAsc    SortKey = "id"
	SortIDDesc   SortKey = "id-desc"
	SortNameAsc  SortKey = "name"
	SortNameDesc SortKey = "name-desc"
)

var sortKeys = []SortKey{SortIDAsc, SortIDDesc, SortNameAsc, SortNameDesc}

var sortLabels = map[SortKey]string{
	SortIDAsc:    "Number ↑",
	SortIDDesc:   "Number ↓",
	SortNameAsc:  "Name A-Z",
	SortNameDesc: "Name Z-A",
}

func ParseSortKey(s string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if key == "" {
		return SortIDAsc, nil
	}
	if _, ok := sortLabels[key]; !ok {
		return "", fmt.Errorf("unknown sort key %q, expected one of id, id-desc, name, name-desc", s)
	}
	return key, nil
}

// Next cycles through the sort keys.
func (k SortKey) Next() SortKey {
	i := slices.Index(sortKeys, k)
	return sortKeys[(i+1)%len(sortKeys)]
}

func (k SortKey) Label() string {
	if l, ok := sortLabels[k]; ok {
		return l
	}
	return sortLabels[SortIDAsc]
}

// ViewState holds what the user selected on the listing screen. An empty
// Types set disables type filtering.
type ViewState struct {
	Search string
	Types  pokemon.TypeSet
	Sort   SortKey
}

// Search keeps records whose name contains the lower-cased query or whose
// decimal id equals the query exactly.
func Search(items []pokemon.Pokemon, query string) []pokemon.Pokemon {
	needle := strings.ToLower(query)
	out := make([]pokemon.Pokemon, 0, len(items))
	for _, p := range items {
		if strings.Contains(p.Name, needle) || strconv.Itoa(p.ID) == query {
			out = append(out, p)
		}
	}
	return out
}

// FilterTypes keeps records sharing at least one type with selected.
func FilterTypes(items []pokemon.Pokemon, selected pokemon.TypeSet) []pokemon.Pokemon {
	if selected.Len() == 0 {
		return items
	}
	out := make([]pokemon.Pokemon, 0, len(items))
	for _, p := range items {
		if selected.Intersects(p.Types) {
			out = append(out, p)
		}
	}
	return out
}

// Sort returns a sorted copy of items. Names are compared with English
// collation rules.
func Sort(items []pokemon.Pokemon, key SortKey) []pokemon.Pokemon {
	out := slices.Clone(items)
	switch key {
	case SortIDDesc:
		slices.SortStableFunc(out, func(a, b pokemon.Pokemon) int { return b.ID - a.ID })
	case SortNameAsc, SortNameDesc:
		collator := collate.New(language.English)
		sign := 1
		if key == SortNameDesc {
			sign = -1
		}
		slices.SortStableFunc(out, func(a, b pokemon.Pokemon) int {
			return sign * collator.CompareString(a.Name, b.Name)
		})
	default:
		slices.SortStableFunc(out, func(a, b pokemon.Pokemon) int { return a.ID - b.ID })
	}
	return out
}

// Apply derives the visible list: search, then type filter, then sort.
func Apply(view ViewState, c Collection) []pokemon.Pokemon {
	items := Search(c.Items(), view.Search)
	items = FilterTypes(items, view.Types)
	return Sort(items, view.Sort)
}
