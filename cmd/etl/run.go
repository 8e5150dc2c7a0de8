package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/paid-media-etl/internal/domain"
)

func newRunCommand() *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the daily pipeline for every advertiser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			dateRange, err := runRange(start, end, cfg.Pipeline.LookbackDays)
			if err != nil {
				return err
			}

			app, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			outcome, err := app.orchestrator.Run(cmd.Context(), dateRange)
			if err != nil {
				return err
			}

			logrus.WithFields(logrus.Fields{
				"run_id":       outcome.RunID,
				"rows":         outcome.RowsLoaded,
				"units":        len(outcome.Units),
				"units_failed": outcome.FailedUnits(),
				"files":        len(outcome.FilesIngested),
			}).Info("run complete")
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "first day to fetch (YYYY-MM-DD), defaults to the lookback window")
	cmd.Flags().StringVar(&end, "end", "", "last day to fetch (YYYY-MM-DD), defaults to yesterday")
	return cmd
}

// runRange resolves --start/--end against the lookback window ending yesterday
func runRange(start, end string, lookbackDays int) (domain.DateRange, error) {
	lookback := domain.LookbackRange(now(), lookbackDays)
	if start == "" && end == "" {
		return lookback, nil
	}
	if start == "" {
		start = lookback.Start.Format(dateLayout)
	}
	if end == "" {
		end = lookback.End.Format(dateLayout)
	}
	return domain.ParseDateRange(start, end)
}
