// Package cli wires the Pokédex commands.
package cli

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/BielosX/wombat/pokedex/src/config"
	"github.com/BielosX/wombat/pokedex/src/logging"
	"github.com/BielosX/wombat/pokedex/src/pokeapi"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

// app is the state shared by every command of one invocation.
type app struct {
	v          *viper.Viper
	configPath string
	cfg        *config.Config
	httpClient *http.Client
}

func (a *app) load(cmd *cobra.Command) error {
	for key, flag := range map[string]string{
		"api.base_url":    "base-url",
		"log.level":       "log-level",
		"log.file":        "log-file",
		"list.page_size":  "page-size",
		"api.concurrency": "concurrency",
	} {
		if err := a.v.BindPFlag(key, cmd.Root().PersistentFlags().Lookup(flag)); err != nil {
			return err
		}
	}
	if err := config.ReadFile(a.v, a.configPath); err != nil {
		return err
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

func (a *app) logger() (*zap.SugaredLogger, error) {
	return logging.New(a.cfg.Log)
}

func (a *app) client(sugar *zap.SugaredLogger) *pokeapi.Client {
	httpClient := a.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: a.cfg.API.Timeout}
	}
	return pokeapi.NewClient(sugar,
		pokeapi.WithBaseUrl(a.cfg.API.BaseURL),
		pokeapi.WithHTTPClient(httpClient),
		pokeapi.WithConcurrency(a.cfg.API.Concurrency))
}

// NewRootCmd builds the command tree. Running it without a subcommand
// opens the interactive browser.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{v: config.New()})
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "pokedex",
		Short: "Browse the Pokédex from your terminal",
		Long: `pokedex browses Pokémon from the public PokeAPI.

It pages through the national dex, lets you search by name or number,
filter by type and sort, and shows a detail page per Pokémon. The same
data can be listed non-interactively or exported to Parquet and CSV.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, a)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default ./pokedex.yaml or ~/.config/pokedex/pokedex.yaml)")
	flags.String("base-url", pokeapi.DefaultBaseUrl, "PokeAPI base url")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("log-file", "", "write logs to this file instead of stderr")
	flags.Int("page-size", 21, "records per page")
	flags.Int("concurrency", pokeapi.DefaultConcurrency, "parallel detail requests per page")

	root.AddCommand(
		newBrowseCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newExportCmd(a),
		newLambdaCmd(a),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command until ctx is done.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pokedex %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
		},
	}
}
