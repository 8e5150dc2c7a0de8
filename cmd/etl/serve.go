package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/paid-media-etl/internal/api"
	"github.com/vfg2006/paid-media-etl/internal/scheduler"
	"github.com/vfg2006/paid-media-etl/internal/usecases/authenticating"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the pipeline scheduler and the ops HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			app, err := newApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			pipelineSync := scheduler.NewPipelineSyncService(app.orchestrator, cfg)
			if err := pipelineSync.Start(ctx); err != nil {
				return err
			}
			logrus.Info("pipeline scheduler started")

			server := api.New(cfg, authenticating.NewService(cfg.Auth), pipelineSync, app.ops)
			err = server.Run(ctx)

			cancel()
			pipelineSync.Wait()
			return err
		},
	}
}
