package pokedex

import (
	"context"
	"sync"

	"github.com/BielosX/wombat/pokedex/src/pokemon"
)

type DetailSource interface {
	GetDetail(ctx context.Context, id int) (pokemon.Pokemon, error)
	GetBio(ctx context.Context, id int) (string, error)
}

type DetailPart int

const (
	PartRecord DetailPart = iota
	PartBio
)

// DetailUpdate carries one resolved half of a detail page.
type DetailUpdate struct {
	ID      int
	Part    DetailPart
	Pokemon pokemon.Pokemon
	Bio     string
	Err     error
}

// LoadDetail fetches the record and the species bio of id concurrently.
// Updates are delivered in completion order and the channel is closed
// once both requests have finished.
func LoadDetail(ctx context.Context, source DetailSource, id int) <-chan DetailUpdate {
	updates := make(chan DetailUpdate, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		p, err := source.GetDetail(ctx, id)
		updates <- DetailUpdate{ID: id, Part: PartRecord, Pokemon: p, Err: err}
	}()
	go func() {
		defer wg.Done()
		bio, err := source.GetBio(ctx, id)
		updates <- DetailUpdate{ID: id, Part: PartBio, Bio: bio, Err: err}
	}()
	go func() {
		wg.Wait()
		close(updates)
	}()
	return updates
}

// Detail is the view state of a detail page. Fields stay absent until the
// matching update has arrived.
type Detail struct {
	ID        int
	Pokemon   *pokemon.Pokemon
	Bio       string
	BioLoaded bool
	RecordErr error
	BioErr    error
	Shiny     bool
}

func NewDetail(id int) Detail {
	return Detail{ID: id}
}

// Apply folds an update into the page. Updates for another id are
// ignored.
func (d Detail) Apply(u DetailUpdate) Detail {
	if u.ID != d.ID {
		return d
	}
	switch u.Part {
	case PartRecord:
		if u.Err != nil {
			d.RecordErr = u.Err
			return d
		}
		p := u.Pokemon
		d.Pokemon = &p
	case PartBio:
		if u.Err != nil {
			d.BioErr = u.Err
			return d
		}
		d.Bio = u.Bio
		d.BioLoaded = true
	}
	return d
}

func (d Detail) Loading() bool {
	recordPending := d.Pokemon == nil && d.RecordErr == nil
	bioPending := !d.BioLoaded && d.BioErr == nil
	return recordPending || bioPending
}

func (d Detail) ToggleShiny() Detail {
	d.Shiny = !d.Shiny
	return d
}

func (d Detail) ArtworkURL() string {
	if d.Shiny {
		return pokemon.ShinyArtworkURL(d.ID)
	}
	return pokemon.ArtworkURL(d.ID)
}

// Navigate moves from id by delta, clamped to [1, maxID]. A non-positive
// maxID means the upper bound is unknown.
func Navigate(id, delta, maxID int) int {
	next := id + delta
	if maxID > 0 && next > maxID {
		next = maxID
	}
	if next < 1 {
		next = 1
	}
	return next
}
