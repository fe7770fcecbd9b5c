// Package pokeapi talks to the public PokeAPI REST service.
package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/BielosX/wombat/pokedex/src/pokemon"
)

const (
	DefaultBaseUrl     = "https://pokeapi.co/api/v2/"
	DefaultConcurrency = 8
	DefaultTimeout     = 10 * time.Second
	BioLanguage        = "en"
)

type Client struct {
	baseUrl     string
	client      *http.Client
	sugar       *zap.SugaredLogger
	concurrency int
}

type Option func(*Client)

func WithBaseUrl(baseUrl string) Option {
	return func(c *Client) {
		c.baseUrl = baseUrl
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// WithConcurrency bounds the number of parallel detail requests per batch.
func WithConcurrency(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

func NewClient(sugar *zap.SugaredLogger, opts ...Option) *Client {
	c := &Client{
		baseUrl:     DefaultBaseUrl,
		client:      &http.Client{Timeout: DefaultTimeout},
		sugar:       sugar,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.baseUrl = strings.TrimRight(c.baseUrl, "/")
	return c
}

func (c *Client) getAndDecode(ctx context.Context, url string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("pokeapi: build request %s: %w", url, err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("pokeapi: GET %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Url: url, StatusCode: resp.StatusCode}
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("pokeapi: decode %s: %w", url, err)
	}
	return nil
}

func (c *Client) PageUrl(limit, offset int) string {
	return fmt.Sprintf("%s/pokemon?limit=%d&offset=%d", c.baseUrl, limit, offset)
}

// FetchPage fetches one page of summary records from a list url, usually
// the next cursor of a previous page.
func (c *Client) FetchPage(ctx context.Context, url string) (*PokemonListResult, error) {
	c.sugar.Infof("Fetching Pokemon page %s", url)
	var result PokemonListResult
	if err := c.getAndDecode(ctx, url, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ListPage(ctx context.Context, limit, offset int) (*PokemonListResult, error) {
	return c.FetchPage(ctx, c.PageUrl(limit, offset))
}

func (c *Client) GetPokemonByUrl(ctx context.Context, url string) (*PokemonResponse, error) {
	c.sugar.Infof("Fetching PokemonResponse %s", url)
	var pokemon PokemonResponse
	if err := c.getAndDecode(ctx, url, &pokemon); err != nil {
		return nil, err
	}
	return &pokemon, nil
}

func (c *Client) GetPokemon(ctx context.Context, id int) (*PokemonResponse, error) {
	return c.GetPokemonByUrl(ctx, fmt.Sprintf("%s/pokemon/%d/", c.baseUrl, id))
}

func (c *Client) GetSpecies(ctx context.Context, id int) (*PokemonSpecies, error) {
	return c.getSpecies(ctx, fmt.Sprintf("%s/pokemon-species/%d/", c.baseUrl, id))
}

func (c *Client) getSpecies(ctx context.Context, url string) (*PokemonSpecies, error) {
	c.sugar.Infof("Fetching PokemonSpecies %s", url)
	var species PokemonSpecies
	if err := c.getAndDecode(ctx, url, &species); err != nil {
		return nil, err
	}
	return &species, nil
}

func (c *Client) GetPokemonGeneration(ctx context.Context, speciesUrl string) (int32, error) {
	species, err := c.getSpecies(ctx, speciesUrl)
	if err != nil {
		return 0, err
	}
	var generation PokemonGeneration
	if err := c.getAndDecode(ctx, species.Generation.Url, &generation); err != nil {
		return 0, err
	}
	return generation.Id, nil
}

func (c *Client) GetDetail(ctx context.Context, id int) (pokemon.Pokemon, error) {
	resp, err := c.GetPokemon(ctx, id)
	if err != nil {
		return pokemon.Pokemon{}, err
	}
	return resp.ToPokemon(), nil
}

func (c *Client) GetBio(ctx context.Context, id int) (string, error) {
	species, err := c.GetSpecies(ctx, id)
	if err != nil {
		return "", err
	}
	return species.Bio(BioLanguage), nil
}

// FetchDetails resolves every summary entry with one request each. The
// batch is all-or-nothing: the first failure cancels the remaining
// requests and is returned alone.
func (c *Client) FetchDetails(ctx context.Context, entries []PokemonListResultEntry) ([]pokemon.Pokemon, error) {
	results := make([]pokemon.Pokemon, len(entries))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(c.concurrency)
	for i, entry := range entries {
		group.Go(func() error {
			resp, err := c.GetPokemonByUrl(groupCtx, entry.Url)
			if err != nil {
				return err
			}
			results[i] = resp.ToPokemon()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		c.sugar.Errorf("Failed to fetch batch of %d Pokemon: %s", len(entries), err)
		return nil, err
	}
	return results, nil
}

// ListPokemons fetches one page and resolves all of its entries.
func (c *Client) ListPokemons(ctx context.Context, limit, offset int) ([]pokemon.Pokemon, error) {
	page, err := c.ListPage(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return c.FetchDetails(ctx, page.Results)
}
