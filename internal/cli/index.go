package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/plan4land/tourindex/internal/bootstrap"
	"github.com/plan4land/tourindex/internal/elasticsearch/mappings"
	"github.com/plan4land/tourindex/internal/logger"
)

func newIndexCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Manage the search index",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newIndexCreateCommand())
	cmd.AddCommand(newIndexDeleteCommand())
	cmd.AddCommand(newIndexListCommand())
	return cmd
}

func newIndexCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create the tour spot index if it does not exist",
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

			indexName := cfg.Sync.IndexName
			exists, err := esClient.IndexExists(cmd.Context(), indexName)
			if err != nil {
				return fmt.Errorf("failed to check if index exists: %w", err)
			}
			if exists {
				log.Info("Index already exists", logger.String("index", indexName))
				return nil
			}

			if createErr := esClient.CreateIndex(cmd.Context(), indexName, mappings.GetTourSpotIndexBody()); createErr != nil {
				return createErr
			}
			log.Info("Index created", logger.String("index", indexName))
			return nil
		},
	}
}

func newIndexDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the tour spot index",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return errors.New("refusing to delete the index without --force")
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

			indexName := cfg.Sync.IndexName
			if deleteErr := esClient.DeleteIndex(cmd.Context(), indexName); deleteErr != nil {
				return deleteErr
			}
			log.Info("Index deleted", logger.String("index", indexName))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "confirm index deletion")
	return cmd
}

func newIndexListCommand() *cobra.Command {
	var pattern string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List indices in the cluster",
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

			indices, err := esClient.ListIndices(cmd.Context(), pattern)
			if err != nil {
				return err
			}
			if len(indices) == 0 {
				log.Info("No indices found")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"Index", "Health", "Status", "Docs", "Size"})
			for _, info := range indices {
				t.AppendRow(table.Row{info.Name, info.Health, info.Status, info.DocumentCount, info.Size})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&pattern, "pattern", "", "index name pattern (default all)")
	return cmd
}
