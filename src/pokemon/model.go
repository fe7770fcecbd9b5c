package pokemon

// Pokemon is a fully resolved detail record. ID is the identity key.
type Pokemon struct {
	ID         int
	Name       string
	Types      []Type
	Weight     int
	Height     int
	Stats      []Stat
	Moves      []string
	Bio        string
	SpeciesURL string
}

type Stat struct {
	Name      string
	BaseValue int
}

// PrimaryType is the first known type of the record.
func (p Pokemon) PrimaryType() (Type, bool) {
	if len(p.Types) == 0 {
		return "", false
	}
	return p.Types[0], true
}

// TopMoves returns at most n moves in API order.
func (p Pokemon) TopMoves(n int) []string {
	if n < 0 {
		n = 0
	}
	if n > len(p.Moves) {
		n = len(p.Moves)
	}
	return p.Moves[:n]
}
