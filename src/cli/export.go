package cli

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BielosX/wombat/pokedex/src/config"
	"github.com/BielosX/wombat/pokedex/src/logging"
	"github.com/BielosX/wombat/pokedex/src/s3"
	"github.com/BielosX/wombat/pokedex/src/scraper"
)

type exportOptions struct {
	pages      int
	start      int
	format     string
	toS3       bool
	generation bool
}

func newExportCmd(a *app) *cobra.Command {
	opts := &exportOptions{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export pages of Pokémon to Parquet and CSV",
		Long: `export fetches consecutive pages and writes one Parquet and/or CSV
file per page named <prefix>/<first>_<last>.<ext>, either below
export.dir or into the export.bucket S3 bucket with --s3.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, a, opts)
		},
	}
	cmd.Flags().IntVar(&opts.pages, "pages", 1, "number of pages to export")
	cmd.Flags().IntVar(&opts.start, "start", 0, "offset of the first record")
	cmd.Flags().StringVar(&opts.format, "format", string(scraper.FormatBoth), "output format: parquet, csv or both")
	cmd.Flags().BoolVar(&opts.toS3, "s3", false, "upload to the configured S3 bucket")
	cmd.Flags().BoolVar(&opts.generation, "generation", false, "look up the generation of every record")
	return cmd
}

func runExport(cmd *cobra.Command, a *app, opts *exportOptions) error {
	format, err := scraper.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	schedules, err := scraper.ScheduleTasks(scraper.ScheduleRequest{
		PageSize:    int32(a.cfg.List.PageSize),
		StartOffset: int32(opts.start),
		PageCount:   int32(opts.pages),
	})
	if err != nil {
		return err
	}
	sugar, err := a.logger()
	if err != nil {
		return err
	}
	defer logging.Sync(sugar)

	ctx := cmd.Context()
	var sink scraper.Sink = scraper.DirSink{Root: a.cfg.Export.Dir}
	if opts.toS3 {
		sink, err = newS3Sink(ctx, a.cfg.Export)
		if err != nil {
			return err
		}
	}
	s := newScraper(a, sink, sugar,
		scraper.WithFormat(format),
		scraper.WithGenerations(opts.generation))

	out := cmd.OutOrStdout()
	for _, schedule := range schedules {
		result, err := s.Scrape(ctx, schedule)
		if err != nil {
			return err
		}
		if result == nil {
			fmt.Fprintf(out, "offset %d: nothing to export\n", schedule.Offset)
			break
		}
		for _, name := range []string{result.ParquetFileName, result.CsvFileName} {
			if name != "" {
				fmt.Fprintf(out, "%d records -> %s\n", result.Count, sink.Location(name))
			}
		}
	}
	return nil
}

func newScraper(a *app, sink scraper.Sink, sugar *zap.SugaredLogger, opts ...scraper.Option) *scraper.Scraper {
	opts = append([]scraper.Option{scraper.WithPrefix(a.cfg.Export.Prefix)}, opts...)
	return scraper.New(a.client(sugar), sink, sugar, opts...)
}

func newS3Sink(ctx context.Context, cfg config.ExportConfig) (*s3.Client, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("export.bucket is not set")
	}
	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return s3.NewClient(awsCfg, cfg.Bucket), nil
}
