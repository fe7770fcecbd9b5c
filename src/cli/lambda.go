package cli

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/cobra"

	"github.com/BielosX/wombat/pokedex/src/logging"
	"github.com/BielosX/wombat/pokedex/src/scraper"
)

const (
	handlerScheduler = "scheduler"
	handlerScraper   = "scraper"
)

func newLambdaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lambda",
		Short: "Serve the scheduler or scraper AWS Lambda handler",
		Long: `lambda starts the handler named by lambda.handler (the _HANDLER
variable inside the Lambda runtime):

  scheduler  splits {pageSize, startOffset, pageCount} into page schedules
  scraper    exports one {limit, offset} schedule to export.bucket`,
		Args:   cobra.NoArgs,
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sugar, err := a.logger()
			if err != nil {
				return err
			}
			defer logging.Sync(sugar)

			switch handler := a.cfg.Lambda.Handler; handler {
			case handlerScheduler:
				lambda.Start(func(request scraper.ScheduleRequest) ([]scraper.Schedule, error) {
					sugar.Infof("Starting Schedule Tasks Handler, pageSize: %d, startOffset: %d, pageCount: %d",
						request.PageSize, request.StartOffset, request.PageCount)
					return scraper.ScheduleTasks(request)
				})
			case handlerScraper:
				sink, err := newS3Sink(cmd.Context(), a.cfg.Export)
				if err != nil {
					sugar.Errorf("Failed to create S3 sink: %s", err)
					return err
				}
				s := newScraper(a, sink, sugar, scraper.WithGenerations(true))
				lambda.Start(func(ctx context.Context, request scraper.Schedule) (*scraper.ScraperResult, error) {
					return s.Scrape(ctx, request)
				})
			default:
				return fmt.Errorf("unknown lambda handler %q, expected %s or %s", handler, handlerScheduler, handlerScraper)
			}
			return nil
		},
	}
}
