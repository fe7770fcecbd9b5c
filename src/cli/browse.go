package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/BielosX/wombat/pokedex/src/logging"
	"github.com/BielosX/wombat/pokedex/src/pokeapi"
	"github.com/BielosX/wombat/pokedex/src/pokedex"
	"github.com/BielosX/wombat/pokedex/src/tui"
)

func newBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive Pokédex (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, a)
		},
	}
}

func runBrowse(cmd *cobra.Command, a *app) error {
	// The terminal belongs to the UI; logs go to the configured file or nowhere.
	sugar, err := logging.ForTerminalUI(a.cfg.Log)
	if err != nil {
		return err
	}
	defer logging.Sync(sugar)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	client := a.client(sugar)
	aggregator := pokedex.NewAggregator(client, sugar)
	aggregator.Start()
	defer aggregator.Close()

	pageSize := a.cfg.List.PageSize
	model := tui.New(tui.Deps{
		Ctx: ctx,
		NewPages: func() tui.Pages {
			return pokeapi.NewPager(client, pageSize)
		},
		Merger:  aggregator,
		Details: client,
		Sugar:   sugar,
	})

	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running pokedex ui: %w", err)
	}
	return nil
}
