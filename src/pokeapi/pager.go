package pokeapi

import (
	"context"
	"sync"
)

type PageFetcher interface {
	FetchPage(ctx context.Context, url string) (*PokemonListResult, error)
}

// Page is one batch of summary records returned by Pager.
type Page struct {
	Number  int
	Results []PokemonListResultEntry
}

// Pager walks the list endpoint by following the API's next cursor. At
// most one request is in flight at a time.
type Pager struct {
	fetcher PageFetcher

	mu       sync.Mutex
	next     string
	fetched  int
	count    int
	done     bool
	fetching bool
	err      error
}

func NewPager(client *Client, limit int) *Pager {
	return NewPagerFrom(client, client.PageUrl(limit, 0))
}

// NewPagerFrom starts a pager at an arbitrary list url.
func NewPagerFrom(fetcher PageFetcher, firstUrl string) *Pager {
	return &Pager{fetcher: fetcher, next: firstUrl}
}

// FetchNext requests the next page. It returns ErrFetchInFlight without
// issuing a request while another call is pending, and ErrNoMorePages once
// the API has reported the end of the collection. A failed request leaves
// the cursor in place.
func (p *Pager) FetchNext(ctx context.Context) (*Page, error) {
	p.mu.Lock()
	if p.fetching {
		p.mu.Unlock()
		return nil, ErrFetchInFlight
	}
	if p.done {
		p.mu.Unlock()
		return nil, ErrNoMorePages
	}
	p.fetching = true
	url := p.next
	p.mu.Unlock()

	result, err := p.fetcher.FetchPage(ctx, url)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.fetching = false
	if err != nil {
		p.err = err
		return nil, err
	}
	p.err = nil
	p.fetched++
	p.count = result.Count
	if result.Next == nil || *result.Next == "" {
		p.done = true
	} else {
		p.next = *result.Next
	}
	return &Page{Number: p.fetched, Results: result.Results}, nil
}

func (p *Pager) IsFetching() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fetching
}

func (p *Pager) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.done
}

// Count is the total number of records reported by the last page.
func (p *Pager) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.count
}

// Err is the error of the most recent fetch, cleared by a later success.
func (p *Pager) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}
