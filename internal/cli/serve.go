package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/plan4land/tourindex/internal/bootstrap"
	"github.com/plan4land/tourindex/internal/logger"
	"github.com/plan4land/tourindex/internal/scheduler"
	"github.com/plan4land/tourindex/internal/server"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the daily sync scheduler and ops server",
		Long:  `Runs the cron-driven incremental sync with yesterday's cutoff, alongside the health and metrics endpoints.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			log.Info("Starting catalog sync service",
				logger.String("name", cfg.Service.Name),
				logger.String("version", cfg.Service.Version),
				logger.Int("port", cfg.Service.Port),
				logger.String("schedule", cfg.Scheduler.Schedule),
			)

			esClient, err := bootstrap.SetupElasticsearch(cfg)
			if err != nil {
				return err
			}
			log.Info("Elasticsearch client initialized")

			registry := prometheus.NewRegistry()
			registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			p := bootstrap.NewPipeline(cfg, esClient, registry, log)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			sched := scheduler.New(cfg.Scheduler.Schedule, func(runCtx context.Context, cutoff string) error {
				_, runErr := p.IncrementalSync(runCtx, cutoff)
				return runErr
			}, log)
			if startErr := sched.Start(ctx); startErr != nil {
				return startErr
			}
			defer sched.Stop()

			opsServer := server.New(server.Config{
				Port:        cfg.Service.Port,
				ServiceName: cfg.Service.Name,
				Version:     cfg.Service.Version,
				IndexName:   cfg.Sync.IndexName,
				Debug:       cfg.Service.Debug,
			}, esClient, registry, log)

			return opsServer.Start(ctx)
		},
	}
}
