package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool
var configPath string

var rootCmd = &cobra.Command{
	Use:   "docsift",
	Short: "Structure extraction and QA for technical PDFs",
	Long: `docsift parses a technical PDF into structured artifacts: a table of
contents, section-aligned chunks, a validation report comparing the two,
document metrics, a ToC graph, and requirement triples.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelInfo
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable progress logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (JSON)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
