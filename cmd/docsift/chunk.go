package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docsift/docsift/chunk"
	"github.com/docsift/docsift/extract"
)

var chunkOut string
var chunkSkipPages string

var chunkCmd = &cobra.Command{
	Use:   "chunk <pdf>",
	Short: "Recognize section headings and emit content chunks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pages, err := extract.Pages(args[0])
		if err != nil {
			return err
		}

		rec := chunk.NewRecognizer()
		skip, err := parsePageRange(chunkSkipPages)
		if err != nil {
			return err
		}
		if skip.Start == 0 {
			if r, ok := extract.DetectTOCRange(pages); ok {
				skip = r
			}
		}
		if skip.Start != 0 {
			rec.SkipRange(skip)
		}

		chunks := rec.Recognize(pages)
		n, err := chunk.WriteJSONL(chunkOut, chunks)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %d chunks -> %s\n",
			okStyle.Render("recognized"), n, chunkOut)
		return nil
	},
}

func init() {
	chunkCmd.Flags().StringVarP(&chunkOut, "out", "o", "chunks.jsonl", "Output JSONL file")
	chunkCmd.Flags().StringVar(&chunkSkipPages, "skip-pages", "", "Page range to exclude, e.g. 3-9 (default: autodetected ToC)")
	rootCmd.AddCommand(chunkCmd)
}
