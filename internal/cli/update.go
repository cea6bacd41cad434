package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/plan4land/tourindex/internal/bootstrap"
	"github.com/plan4land/tourindex/internal/scheduler"
)

const cutoffLayout = "20060102"

func newUpdateCommand() *cobra.Command {
	var cutoff string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Run an incremental catalog sync",
		Long:  `Ingests records modified on the cutoff date and upserts them one by one into the search index.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cutoff == "" {
				cutoff = scheduler.Yesterday(time.Now())
			}
			if _, err := time.Parse(cutoffLayout, cutoff); err != nil {
				return fmt.Errorf("invalid --date %q, expected YYYYMMDD: %w", cutoff, err)
			}

			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			esClient, err := bootstrap.SetupElasticsearch(cfg)
			if err != nil {
				return err
			}

			p := bootstrap.NewPipeline(cfg, esClient, nil, log)
			stats, err := p.IncrementalSync(cmd.Context(), cutoff)
			if stats != nil {
				renderRunStats(stats)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&cutoff, "date", "", "modification date to sync (YYYYMMDD, default yesterday)")
	return cmd
}
