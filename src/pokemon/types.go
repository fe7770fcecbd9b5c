package pokemon

import (
	"sort"
	"strings"
)

// Type is one of the closed set of Pokémon categories.
type Type string

const (
	Bug      Type = "bug"
	Dark     Type = "dark"
	Dragon   Type = "dragon"
	Electric Type = "electric"
	Fairy    Type = "fairy"
	Fighting Type = "fighting"
	Fire     Type = "fire"
	Flying   Type = "flying"
	Ghost    Type = "ghost"
	Normal   Type = "normal"
	Grass    Type = "grass"
	Ground   Type = "ground"
	Ice      Type = "ice"
	Poison   Type = "poison"
	Psychic  Type = "psychic"
	Rock     Type = "rock"
	Steel    Type = "steel"
	Water    Type = "water"
)

var typeOrder = []Type{
	Bug, Dark, Dragon, Electric, Fairy, Fighting, Fire, Flying, Ghost,
	Normal, Grass, Ground, Ice, Poison, Psychic, Rock, Steel, Water,
}

var typeColors = map[Type]string{
	Bug:      "#A7B723",
	Dark:     "#75574C",
	Dragon:   "#7037FF",
	Electric: "#F9CF30",
	Fairy:    "#E69EAC",
	Fighting: "#C12239",
	Fire:     "#F57D31",
	Flying:   "#A891EC",
	Ghost:    "#70559B",
	Normal:   "#AAA67F",
	Grass:    "#74CB48",
	Ground:   "#DEC16B",
	Ice:      "#9AD6DF",
	Poison:   "#A43E9E",
	Psychic:  "#FB5584",
	Rock:     "#B69E31",
	Steel:    "#B7B9D0",
	Water:    "#6493EB",
}

// DefaultColor is used when a record has no known type.
const DefaultColor = "#DC0A2D"

// Types returns every known type in display order.
func Types() []Type {
	out := make([]Type, len(typeOrder))
	copy(out, typeOrder)
	return out
}

// ParseType maps a raw API name onto the taxonomy.
func ParseType(name string) (Type, bool) {
	t := Type(strings.ToLower(strings.TrimSpace(name)))
	_, ok := typeColors[t]
	return t, ok
}

// ParseTypes keeps the known names in order and drops the rest.
func ParseTypes(names []string) []Type {
	out := make([]Type, 0, len(names))
	for _, name := range names {
		if t, ok := ParseType(name); ok {
			out = append(out, t)
		}
	}
	return out
}

// Color is the hex display color of the type, or DefaultColor.
func (t Type) Color() string {
	if c, ok := typeColors[t]; ok {
		return c
	}
	return DefaultColor
}

func (t Type) String() string {
	return string(t)
}

// TypeSet is a set of selected types. The zero value is an empty set.
// Toggle never mutates the receiver.
type TypeSet map[Type]struct{}

func NewTypeSet(types ...Type) TypeSet {
	set := make(TypeSet, len(types))
	for _, t := range types {
		set[t] = struct{}{}
	}
	return set
}

func (s TypeSet) Has(t Type) bool {
	_, ok := s[t]
	return ok
}

func (s TypeSet) Len() int {
	return len(s)
}

// Toggle returns a copy of the set with t added or removed.
func (s TypeSet) Toggle(t Type) TypeSet {
	out := make(TypeSet, len(s)+1)
	for k := range s {
		out[k] = struct{}{}
	}
	if s.Has(t) {
		delete(out, t)
	} else {
		out[t] = struct{}{}
	}
	return out
}

// Intersects reports whether any of types is in the set.
func (s TypeSet) Intersects(types []Type) bool {
	for _, t := range types {
		if s.Has(t) {
			return true
		}
	}
	return false
}

// Sorted lists the members alphabetically.
func (s TypeSet) Sorted() []Type {
	out := make([]Type, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
