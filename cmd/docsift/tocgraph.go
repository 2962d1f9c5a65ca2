package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docsift/docsift/graph"
	"github.com/docsift/docsift/toc"
)

var tgTOC string
var tgOut string

var tocGraphCmd = &cobra.Command{
	Use:     "toc-graph",
	Aliases: []string{"graph"},
	Short:   "Build the directed section hierarchy graph from ToC entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := toc.ReadJSONL(tgTOC)
		if err != nil {
			return err
		}

		g := graph.BuildTOC(entries)
		if err := g.WriteJSON(tgOut); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %d nodes, %d links -> %s\n",
			okStyle.Render("built"), len(g.Nodes), len(g.Links), tgOut)
		for _, a := range g.Anomalies {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", warnStyle.Render("anomaly:"), a)
		}
		return nil
	},
}

func init() {
	tocGraphCmd.Flags().StringVar(&tgTOC, "toc", "toc.jsonl", "ToC entries JSONL file")
	tocGraphCmd.Flags().StringVarP(&tgOut, "out", "o", "toc_graph.json", "Output JSON file")
	rootCmd.AddCommand(tocGraphCmd)
}
