package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gocmmi/adapters/catalog"
	"gocmmi/domain/assessment"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gocmmi-cli",
		Short: "Offline CMMI Level 2 diagnosis over a catalog and an answers file",
	}

	rootCmd.AddCommand(
		newDiagnoseCmd(),
		newModelCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newDiagnoseCmd() *cobra.Command {
	var dataDir string
	var thresholdKPA, thresholdGlobal float64

	cmd := &cobra.Command{
		Use:   "diagnose [answers.json]",
		Short: "Score an answers file and print the diagnosis as JSON",
		Long: `Score an answers file against the question catalog and print the
diagnosis (KPA scores, recommendations, conclusion) as JSON.

Example: gocmmi-cli diagnose answers.json --data-dir data/cmmi_v1.3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read answers file: %w", err)
			}
			var answers assessment.AnswerSet
			if err := json.Unmarshal(raw, &answers); err != nil {
				return fmt.Errorf("answers file must be a JSON object of questionId -> si|parcial|no: %w", err)
			}

			ctx := context.Background()
			repo := catalog.NewFSRepository(dataDir)
			questions, err := repo.Questions(ctx)
			if err != nil {
				return err
			}
			rules, err := repo.Rules(ctx)
			if err != nil {
				return err
			}

			thresholds := assessment.Thresholds{KPA: thresholdKPA, Global: thresholdGlobal}
			result, err := assessment.ComputeScores(answers, questions, thresholds)
			if err != nil {
				return err
			}
			recommendations := assessment.GenerateRecommendations(answers, questions, rules)

			out := map[string]interface{}{
				"kpaScores":       result.KPAScores,
				"overallPercent":  result.OverallPercent,
				"level2Verified":  result.Level2Verified,
				"thresholds":      result.Thresholds,
				"recommendations": recommendations,
				"conclusion":      assessment.BuildConclusion(result),
			}
			return printJSON(cmd, out)
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", "data/cmmi_v1.3", "directory holding questions.json and rules.json")
	cmd.Flags().Float64Var(&thresholdKPA, "threshold-kpa", 0.8, "per-KPA pass threshold as a fraction")
	cmd.Flags().Float64Var(&thresholdGlobal, "threshold-global", 0.8, "global pass threshold as a fraction")

	return cmd
}

func newModelCmd() *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "model [kpas|questions|rules]",
		Short: "Print a catalog document as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			repo := catalog.NewFSRepository(dataDir)

			switch args[0] {
			case "kpas":
				kpas, err := repo.KPAs(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd, kpas)
			case "questions":
				questions, err := repo.Questions(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd, questions)
			case "rules":
				rules, err := repo.Rules(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd, rules)
			default:
				return fmt.Errorf("unknown catalog %q: expected kpas, questions or rules", args[0])
			}
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", "data/cmmi_v1.3", "directory holding the catalog files")

	return cmd
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(v)
}
