package cli

import (
	"os"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/plan4land/tourindex/internal/bootstrap"
	"github.com/plan4land/tourindex/internal/pipeline"
)

func newSyncCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Run a full catalog sync",
		Long:  `Re-ingests the entire upstream catalog and bulk-loads the surviving records into the search index.`,
		RunE: func(cmd *cobra.Command, args []string) error {
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
			stats, err := p.FullSync(cmd.Context())
			if stats != nil {
				renderRunStats(stats)
			}
			return err
		},
	}
}

// renderRunStats prints the run summary table to stdout.
func renderRunStats(stats *pipeline.RunStats) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Run", "Mode", "Total", "Pages", "Failed Pages", "Excluded", "Dropped", "Indexed", "Failed", "Duration"})
	t.AppendRow(table.Row{
		stats.RunID,
		stats.Mode,
		strconv.Itoa(stats.TotalCount),
		strconv.Itoa(stats.PagesFetched),
		strconv.Itoa(stats.PagesFailed),
		strconv.Itoa(stats.Excluded),
		strconv.Itoa(stats.Dropped),
		strconv.Itoa(stats.Indexed),
		strconv.Itoa(stats.Failed),
		stats.Duration.Round(time.Second).String(),
	})
	t.Render()
}
