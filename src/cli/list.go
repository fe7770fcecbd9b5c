package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BielosX/wombat/pokedex/src/logging"
	"github.com/BielosX/wombat/pokedex/src/pokeapi"
	"github.com/BielosX/wombat/pokedex/src/pokedex"
	"github.com/BielosX/wombat/pokedex/src/pokemon"
)

type listOptions struct {
	pages  int
	search string
	types  []string
	sort   string
}

func newListCmd(a *app) *cobra.Command {
	opts := &listOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print a filtered, sorted listing",
		Long: `list loads pages of the national dex and prints the records matching
the search and type filters, in the requested order.

Examples:
  pokedex list --pages 2 --search sa
  pokedex list --type fire --type water --sort name-desc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, a, opts)
		},
	}
	cmd.Flags().IntVar(&opts.pages, "pages", 1, "number of pages to load, 0 loads all")
	cmd.Flags().StringVar(&opts.search, "search", "", "name substring or exact number")
	cmd.Flags().StringSliceVar(&opts.types, "type", nil, "only show these types (repeatable)")
	cmd.Flags().StringVar(&opts.sort, "sort", "id", "sort order: id, id-desc, name, name-desc")
	return cmd
}

func (o *listOptions) view() (pokedex.ViewState, error) {
	key, err := pokedex.ParseSortKey(o.sort)
	if err != nil {
		return pokedex.ViewState{}, err
	}
	types := make([]pokemon.Type, 0, len(o.types))
	for _, name := range o.types {
		t, ok := pokemon.ParseType(name)
		if !ok {
			return pokedex.ViewState{}, fmt.Errorf("unknown type %q", name)
		}
		types = append(types, t)
	}
	if o.pages < 0 {
		return pokedex.ViewState{}, fmt.Errorf("--pages must not be negative, got %d", o.pages)
	}
	return pokedex.ViewState{
		Search: o.search,
		Types:  pokemon.NewTypeSet(types...),
		Sort:   key,
	}, nil
}

func runList(cmd *cobra.Command, a *app, opts *listOptions) error {
	view, err := opts.view()
	if err != nil {
		return err
	}
	sugar, err := a.logger()
	if err != nil {
		return err
	}
	defer logging.Sync(sugar)

	client := a.client(sugar)
	collection, err := loadPages(cmd.Context(), client, a.cfg.List.PageSize, opts.pages, sugar)
	if err != nil {
		return err
	}
	printListing(cmd.OutOrStdout(), pokedex.Apply(view, collection))
	return nil
}

// loadPages walks the listing through the merge aggregator. pages <= 0
// loads until the API reports the end.
func loadPages(ctx context.Context, client *pokeapi.Client, pageSize, pages int, sugar *zap.SugaredLogger) (pokedex.Collection, error) {
	aggregator := pokedex.NewAggregator(client, sugar)
	aggregator.Start()
	defer aggregator.Close()

	pager := pokeapi.NewPager(client, pageSize)
	for n := 0; pages <= 0 || n < pages; n++ {
		page, err := pager.FetchNext(ctx)
		if errors.Is(err, pokeapi.ErrNoMorePages) {
			break
		}
		if err != nil {
			return pokedex.Collection{}, err
		}
		if _, err := aggregator.Merge(ctx, page.Results); err != nil {
			return pokedex.Collection{}, err
		}
	}
	return aggregator.Snapshot(), nil
}

func printListing(out io.Writer, items []pokemon.Pokemon) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NUMBER\tNAME\tTYPES")
	for _, p := range items {
		names := make([]string, len(p.Types))
		for i, t := range p.Types {
			names[i] = t.String()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", pokemon.FormatNumber(p.ID), p.Name, strings.Join(names, ", "))
	}
	w.Flush()
	fmt.Fprintf(out, "%d shown\n", len(items))
}
