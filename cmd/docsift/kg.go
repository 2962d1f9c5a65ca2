package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docsift/docsift/chunk"
	"github.com/docsift/docsift/graph"
)

var kgChunks string
var kgOut string
var kgSubjects string
var kgStates string
var kgParams string
var kgMeta bool

var kgCmd = &cobra.Command{
	Use:   "kg",
	Short: "Extract requirement and state-transition triples from chunks",
	RunE: func(cmd *cobra.Command, args []string) error {
		chunks, err := chunk.ReadJSONL(kgChunks)
		if err != nil {
			return err
		}

		x := graph.NewExtractor(splitList(kgSubjects), splitList(kgStates), splitList(kgParams))
		x.IncludeMeta = kgMeta
		triples := x.Extract(chunks)

		n, err := graph.WriteJSONL(kgOut, triples)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %d triples -> %s\n",
			okStyle.Render("extracted"), n, kgOut)
		return nil
	},
}

func init() {
	kgCmd.Flags().StringVar(&kgChunks, "chunks", "chunks.jsonl", "Chunks JSONL file")
	kgCmd.Flags().StringVarP(&kgOut, "out", "o", "kg_triples.jsonl", "Output JSONL file")
	kgCmd.Flags().StringVar(&kgSubjects, "subjects", "", "Comma-separated subject nouns (default: built-in vocabulary)")
	kgCmd.Flags().StringVar(&kgStates, "states", "", "Comma-separated state names (default: built-in vocabulary)")
	kgCmd.Flags().StringVar(&kgParams, "parameters", "", "Comma-separated parameter names (default: built-in vocabulary)")
	kgCmd.Flags().BoolVar(&kgMeta, "meta", true, "Attach section id and title to each triple")
	rootCmd.AddCommand(kgCmd)
}
