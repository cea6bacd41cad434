package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/plan4land/tourindex/internal/recommend"
)

// recommendInput is the YAML document fed to the recommend command: one
// traveler profile and the candidate destinations to score.
type recommendInput struct {
	Profile    recommend.Profile     `yaml:"profile"`
	Candidates []recommend.Candidate `yaml:"candidates"`
}

func newRecommendCommand() *cobra.Command {
	var inputPath string

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Rank candidate destinations for a traveler profile",
		Long:  `Scores the candidate destinations with the external scorer service and prints the top recommendations.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if inputPath == "" {
				return errors.New("--input is required")
			}

			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if cfg.Recommender.URL == "" {
				return errors.New("recommender.url is not configured")
			}

			data, err := os.ReadFile(inputPath)
			if err != nil {
				return fmt.Errorf("read input file: %w", err)
			}
			var input recommendInput
			if err := yaml.Unmarshal(data, &input); err != nil {
				return fmt.Errorf("parse input file: %w", err)
			}

			scorer := recommend.NewClient(cfg.Recommender.URL, cfg.Recommender.Timeout, log)
			recommendations, err := recommend.Rank(
				cmd.Context(),
				scorer,
				input.Profile,
				input.Candidates,
				cfg.Recommender.Threshold,
				cfg.Recommender.TopN,
			)
			if err != nil {
				return err
			}
			if len(recommendations) == 0 {
				fmt.Println("No destinations met the recommendation threshold")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"#", "Destination", "Probability"})
			for i, rec := range recommendations {
				t.AppendRow(table.Row{i + 1, rec.Name, fmt.Sprintf("%.3f", rec.Probability)})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "YAML file with the traveler profile and candidate destinations")
	return cmd
}
