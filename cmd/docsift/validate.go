package main

import (
	"github.com/spf13/cobra"

	"github.com/docsift/docsift/chunk"
	"github.com/docsift/docsift/jsonl"
	"github.com/docsift/docsift/toc"
	"github.com/docsift/docsift/validate"
)

var valTOC string
var valChunks string
var valOut string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Cross-check parsed ToC entries against recognized chunks",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := toc.ReadJSONL(valTOC)
		if err != nil {
			return err
		}
		chunks, err := chunk.ReadJSONL(valChunks)
		if err != nil {
			return err
		}

		report := validate.Run(entries, chunks)
		if err := jsonl.WriteJSON(valOut, report); err != nil {
			return err
		}
		printValidation(cmd.OutOrStdout(), report)
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&valTOC, "toc", "toc.jsonl", "ToC entries JSONL file")
	validateCmd.Flags().StringVar(&valChunks, "chunks", "chunks.jsonl", "Chunks JSONL file")
	validateCmd.Flags().StringVarP(&valOut, "out", "o", "validation.json", "Output JSON file")
	rootCmd.AddCommand(validateCmd)
}
