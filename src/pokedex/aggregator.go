package pokedex

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/BielosX/wombat/pokedex/src/pokeapi"
	"github.com/BielosX/wombat/pokedex/src/pokemon"
)

var ErrClosed = errors.New("pokedex: aggregator closed")

const queueSize = 64

type DetailFetcher interface {
	FetchDetails(ctx context.Context, entries []pokeapi.PokemonListResultEntry) ([]pokemon.Pokemon, error)
}

// MergeResult reports the outcome of one submitted batch. Stale is set
// when the batch was superseded before it could be merged; the collection
// is then the unchanged current one.
type MergeResult struct {
	Collection Collection
	Added      int
	Stale      bool
	Err        error
}

type token struct {
	generation uint64
	ctx        context.Context
}

type mergeRequest struct {
	entries []pokeapi.PokemonListResultEntry
	token   token
	result  chan MergeResult
}

// Aggregator serializes batch merges through a single writer goroutine.
// Each submission is bound to the generation current at submit time;
// Supersede invalidates older generations and cancels their fetches.
type Aggregator struct {
	fetcher DetailFetcher
	sugar   *zap.SugaredLogger
	queue   chan *mergeRequest

	mu         sync.RWMutex
	collection Collection
	generation uint64
	ctx        context.Context
	cancel     context.CancelFunc

	base      context.Context
	stop      context.CancelFunc
	done      chan struct{}
	startOnce sync.Once
	closeOnce sync.Once
}

func NewAggregator(fetcher DetailFetcher, sugar *zap.SugaredLogger) *Aggregator {
	base, stop := context.WithCancel(context.Background())
	ctx, cancel := context.WithCancel(base)
	return &Aggregator{
		fetcher: fetcher,
		sugar:   sugar,
		queue:   make(chan *mergeRequest, queueSize),
		ctx:     ctx,
		cancel:  cancel,
		base:    base,
		stop:    stop,
		done:    make(chan struct{}),
	}
}

// Start launches the writer goroutine. It is safe to call more than once.
func (a *Aggregator) Start() {
	a.startOnce.Do(func() {
		go a.run()
	})
}

// Close stops the writer and waits for it. Pending submissions complete
// with ErrClosed.
func (a *Aggregator) Close() {
	a.closeOnce.Do(func() {
		a.stop()
		a.startOnce.Do(func() {
			a.drain()
			close(a.done)
		})
		<-a.done
	})
}

func (a *Aggregator) Snapshot() Collection {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.collection
}

// Supersede invalidates every batch submitted so far.
func (a *Aggregator) Supersede() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.supersedeLocked()
}

// Reset supersedes pending work and empties the collection.
func (a *Aggregator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.supersedeLocked()
	a.collection = Collection{}
}

func (a *Aggregator) supersedeLocked() {
	a.cancel()
	a.generation++
	a.ctx, a.cancel = context.WithCancel(a.base)
}

func (a *Aggregator) current() token {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return token{generation: a.generation, ctx: a.ctx}
}

func (a *Aggregator) isCurrent(t token) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.generation == t.generation
}

// Submit enqueues a batch of summary records. The returned channel
// receives exactly one result.
func (a *Aggregator) Submit(entries []pokeapi.PokemonListResultEntry) <-chan MergeResult {
	req := &mergeRequest{
		entries: entries,
		token:   a.current(),
		result:  make(chan MergeResult, 1),
	}
	select {
	case <-a.base.Done():
		req.result <- MergeResult{Collection: a.Snapshot(), Err: ErrClosed}
		return req.result
	default:
	}
	select {
	case a.queue <- req:
	case <-a.base.Done():
		req.result <- MergeResult{Collection: a.Snapshot(), Err: ErrClosed}
	}
	return req.result
}

// Merge submits a batch and waits for its result.
func (a *Aggregator) Merge(ctx context.Context, entries []pokeapi.PokemonListResultEntry) (MergeResult, error) {
	select {
	case res := <-a.Submit(entries):
		return res, res.Err
	case <-ctx.Done():
		return MergeResult{}, ctx.Err()
	}
}

func (a *Aggregator) run() {
	defer close(a.done)
	for {
		select {
		case <-a.base.Done():
			a.drain()
			return
		case req := <-a.queue:
			req.result <- a.process(req)
		}
	}
}

func (a *Aggregator) drain() {
	for {
		select {
		case req := <-a.queue:
			req.result <- MergeResult{Collection: a.Snapshot(), Err: ErrClosed}
		default:
			return
		}
	}
}

func (a *Aggregator) process(req *mergeRequest) MergeResult {
	if !a.isCurrent(req.token) {
		return MergeResult{Collection: a.Snapshot(), Stale: true}
	}
	batch, err := a.fetcher.FetchDetails(req.token.ctx, req.entries)
	if !a.isCurrent(req.token) {
		a.sugar.Infof("Discarding superseded batch of %d Pokemon", len(req.entries))
		return MergeResult{Collection: a.Snapshot(), Stale: true}
	}
	if err != nil {
		if a.base.Err() != nil {
			err = ErrClosed
		}
		a.sugar.Errorf("Failed to merge batch of %d Pokemon: %s", len(req.entries), err)
		return MergeResult{Collection: a.Snapshot(), Err: err}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.generation != req.token.generation {
		return MergeResult{Collection: a.collection, Stale: true}
	}
	before := a.collection.Len()
	a.collection = a.collection.Merge(batch)
	added := a.collection.Len() - before
	a.sugar.Infof("Merged %d new Pokemon, collection holds %d", added, a.collection.Len())
	return MergeResult{Collection: a.collection, Added: added}
}
