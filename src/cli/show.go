package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/BielosX/wombat/pokedex/src/logging"
	"github.com/BielosX/wombat/pokedex/src/pokeapi"
	"github.com/BielosX/wombat/pokedex/src/pokedex"
	"github.com/BielosX/wombat/pokedex/src/pokemon"
)

func newShowCmd(a *app) *cobra.Command {
	var shiny bool
	cmd := &cobra.Command{
		Use:   "show <number>",
		Short: "Print the detail page of one Pokémon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid Pokémon number %q", args[0])
			}
			sugar, err := a.logger()
			if err != nil {
				return err
			}
			defer logging.Sync(sugar)

			detail := pokedex.NewDetail(id)
			for update := range pokedex.LoadDetail(cmd.Context(), a.client(sugar), id) {
				detail = detail.Apply(update)
			}
			if shiny {
				detail = detail.ToggleShiny()
			}
			if detail.RecordErr != nil {
				if errors.Is(detail.RecordErr, pokeapi.ErrNotFound) {
					return fmt.Errorf("no Pokémon with number %d", id)
				}
				return detail.RecordErr
			}
			printDetail(cmd.OutOrStdout(), detail)
			return nil
		},
	}
	cmd.Flags().BoolVar(&shiny, "shiny", false, "print the shiny artwork url")
	return cmd
}

func printDetail(out io.Writer, d pokedex.Detail) {
	p := d.Pokemon
	names := make([]string, len(p.Types))
	for i, t := range p.Types {
		names[i] = t.String()
	}
	fmt.Fprintf(out, "%s %s\n", pokemon.FormatNumber(p.ID), p.Name)
	fmt.Fprintf(out, "Types:  %s\n", strings.Join(names, ", "))
	fmt.Fprintf(out, "Weight: %s\n", pokemon.FormatWeight(p.Weight))
	fmt.Fprintf(out, "Height: %s\n", pokemon.FormatSize(p.Height))
	fmt.Fprintf(out, "Moves:  %s\n", strings.Join(p.TopMoves(2), ", "))
	if d.BioLoaded {
		fmt.Fprintf(out, "\n%s\n", d.Bio)
	}
	if len(p.Stats) > 0 {
		fmt.Fprintln(out)
		for _, s := range p.Stats {
			fmt.Fprintf(out, "%-16s %3d\n", s.Name, s.BaseValue)
		}
	}
	fmt.Fprintf(out, "\nArtwork: %s\n", d.ArtworkURL())
}
