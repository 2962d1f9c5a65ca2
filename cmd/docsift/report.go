package main

import (
	"github.com/spf13/cobra"

	"github.com/docsift/docsift/jsonl"
	"github.com/docsift/docsift/report"
	"github.com/docsift/docsift/validate"
)

var repValidation string
var repMetrics string
var repOut string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Assemble the final QA report from validation and metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		var val validate.Report
		if err := jsonl.ReadJSON(repValidation, &val); err != nil {
			return err
		}
		var m report.Metrics
		if err := jsonl.ReadJSON(repMetrics, &m); err != nil {
			return err
		}

		final := report.BuildFinal(val, m)
		if err := jsonl.WriteJSON(repOut, final); err != nil {
			return err
		}
		printFinal(cmd.OutOrStdout(), final)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&repValidation, "validation", "validation.json", "Validation report JSON file")
	reportCmd.Flags().StringVar(&repMetrics, "metrics", "metrics.json", "Metrics JSON file")
	reportCmd.Flags().StringVarP(&repOut, "out", "o", "final_report.json", "Output JSON file")
	rootCmd.AddCommand(reportCmd)
}
