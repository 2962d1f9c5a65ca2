package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docsift/docsift/chunk"
	"github.com/docsift/docsift/jsonl"
	"github.com/docsift/docsift/report"
	"github.com/docsift/docsift/toc"
)

var metTOC string
var metChunks string
var metOut string

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Aggregate document metrics from ToC entries and chunks",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := toc.ReadJSONL(metTOC)
		if err != nil {
			return err
		}
		chunks, err := chunk.ReadJSONL(metChunks)
		if err != nil {
			return err
		}

		m := report.Compute(entries, chunks)
		if err := jsonl.WriteJSON(metOut, m); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %d\n", dimStyle.Render("Chapters:"), m.TotalChapters)
		fmt.Fprintf(out, "%s %d\n", dimStyle.Render("Sections:"), m.TotalSections)
		fmt.Fprintf(out, "%s %d\n", dimStyle.Render("Figure references:"), m.TotalFigures)
		fmt.Fprintf(out, "%s %d\n", dimStyle.Render("Table references:"), m.TotalTables)
		fmt.Fprintf(out, "%s %d\n", dimStyle.Render("Avg tokens/section:"), m.AvgTokensPerSection)
		return nil
	},
}

func init() {
	metricsCmd.Flags().StringVar(&metTOC, "toc", "toc.jsonl", "ToC entries JSONL file")
	metricsCmd.Flags().StringVar(&metChunks, "chunks", "chunks.jsonl", "Chunks JSONL file")
	metricsCmd.Flags().StringVarP(&metOut, "out", "o", "metrics.json", "Output JSON file")
	rootCmd.AddCommand(metricsCmd)
}
