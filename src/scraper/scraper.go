// Package scraper exports pages of Pokémon to Parquet and CSV files.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BielosX/wombat/pokedex/src/csv"
	"github.com/BielosX/wombat/pokedex/src/parquet"
	"github.com/BielosX/wombat/pokedex/src/pokemon"
)

type Format string

const (
	FormatParquet Format = "parquet"
	FormatCsv     Format = "csv"
	FormatBoth    Format = "both"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatParquet, FormatCsv, FormatBoth:
		return f, nil
	case "":
		return FormatBoth, nil
	default:
		return "", fmt.Errorf("scraper: unknown format %q, expected parquet, csv or both", s)
	}
}

func (f Format) parquet() bool { return f == FormatParquet || f == FormatBoth }

func (f Format) csv() bool { return f == FormatCsv || f == FormatBoth }

type Source interface {
	ListPokemons(ctx context.Context, limit, offset int) ([]pokemon.Pokemon, error)
	GetPokemonGeneration(ctx context.Context, speciesUrl string) (int32, error)
}

type ScraperResult struct {
	RunId           string `json:"runId"`
	Count           int    `json:"count"`
	ParquetFileName string `json:"parquetFileName,omitempty"`
	CsvFileName     string `json:"csvFileName,omitempty"`
}

type Scraper struct {
	source      Source
	sink        Sink
	sugar       *zap.SugaredLogger
	prefix      string
	format      Format
	generations bool
}

type Option func(*Scraper)

func WithPrefix(prefix string) Option {
	return func(s *Scraper) { s.prefix = prefix }
}

func WithFormat(format Format) Option {
	return func(s *Scraper) { s.format = format }
}

// WithGenerations looks up the generation of every record, two extra
// requests each.
func WithGenerations(enabled bool) Option {
	return func(s *Scraper) { s.generations = enabled }
}

func New(source Source, sink Sink, sugar *zap.SugaredLogger, opts ...Option) *Scraper {
	s := &Scraper{
		source: source,
		sink:   sink,
		sugar:  sugar,
		prefix: "pokemons",
		format: FormatBoth,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scrape fetches one scheduled page and exports it. An empty page exports
// nothing and returns a nil result.
func (s *Scraper) Scrape(ctx context.Context, request Schedule) (*ScraperResult, error) {
	s.sugar.Infof("Starting Scrapping, limit: %d offset: %d", request.Limit, request.Offset)
	pokemons, err := s.source.ListPokemons(ctx, int(request.Limit), int(request.Offset))
	if err != nil {
		return nil, err
	}
	s.sugar.Infof("Got %d Pokemon results", len(pokemons))
	return s.Export(ctx, pokemons)
}

// Export writes the given records, ordered by id, to the configured
// formats and stores them in the sink.
func (s *Scraper) Export(ctx context.Context, pokemons []pokemon.Pokemon) (*ScraperResult, error) {
	if len(pokemons) == 0 {
		return nil, nil
	}
	sorted := make([]pokemon.Pokemon, len(pokemons))
	copy(sorted, pokemons)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	runId := uuid.NewString()
	sugar := s.sugar.With("runId", runId)

	var parquetWriter *parquet.PokemonWriter
	var csvWriter *csv.PokemonWriter
	if s.format.parquet() {
		w, err := parquet.NewPokemonWriter()
		if err != nil {
			sugar.Errorf("Failed to create Pokemon Parquet Writer: %s", err)
			return nil, err
		}
		parquetWriter = w
	}
	if s.format.csv() {
		csvWriter = csv.NewPokemonWriter()
		if err := csvWriter.WriteHeader(); err != nil {
			return nil, err
		}
	}

	for _, p := range sorted {
		generation, err := s.generation(ctx, p)
		if err != nil {
			sugar.Errorf("Failed to get Pokemon Generation: %s", err)
			return nil, err
		}
		for _, entry := range parquet.ToPokemon(p, generation) {
			if parquetWriter != nil {
				if err := parquetWriter.WritePokemon(&entry); err != nil {
					sugar.Errorf("Error writing Pokemon to Parquet: %s", err)
					return nil, err
				}
			}
			if csvWriter != nil {
				if err := csvWriter.Write(entry); err != nil {
					sugar.Errorf("Error writing Pokemon to CSV: %s", err)
					return nil, err
				}
			}
		}
	}

	var finishErrs []error
	if parquetWriter != nil {
		finishErrs = append(finishErrs, parquetWriter.Finish())
	}
	if csvWriter != nil {
		finishErrs = append(finishErrs, csvWriter.Finish())
	}
	if err := errors.Join(finishErrs...); err != nil {
		return nil, err
	}

	base := path.Join(s.prefix, fmt.Sprintf("%d_%d", sorted[0].ID, sorted[len(sorted)-1].ID))
	result := &ScraperResult{RunId: runId, Count: len(sorted)}
	if parquetWriter != nil {
		result.ParquetFileName = base + ".parquet"
		sugar.Infof("Sending parquet file of size %d to %s", parquetWriter.Size(), s.sink.Location(result.ParquetFileName))
		if err := s.sink.Put(ctx, result.ParquetFileName, parquetWriter.BufferReader()); err != nil {
			return nil, err
		}
	}
	if csvWriter != nil {
		result.CsvFileName = base + ".csv"
		sugar.Infof("Sending CSV file of size %d to %s", csvWriter.Size(), s.sink.Location(result.CsvFileName))
		if err := s.sink.Put(ctx, result.CsvFileName, csvWriter.BufferReader()); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (s *Scraper) generation(ctx context.Context, p pokemon.Pokemon) (int32, error) {
	if !s.generations || p.SpeciesURL == "" {
		return 0, nil
	}
	return s.source.GetPokemonGeneration(ctx, p.SpeciesURL)
}
