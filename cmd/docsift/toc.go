package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docsift/docsift/extract"
	"github.com/docsift/docsift/toc"
)

var tocOut string
var tocPages string
var tocDocTitle string
var tocMinLevel int

var tocCmd = &cobra.Command{
	Use:   "toc <pdf>",
	Short: "Parse the table of contents into JSONL entries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pages, err := extract.Pages(args[0])
		if err != nil {
			return err
		}

		r, err := parsePageRange(tocPages)
		if err != nil {
			return err
		}
		if r.Start == 0 {
			var ok bool
			if r, ok = extract.DetectTOCRange(pages); !ok {
				return fmt.Errorf("no table of contents found; pass --pages")
			}
		}

		title := tocDocTitle
		if title == "" {
			title = args[0]
		}
		p := toc.NewParser()
		p.MinLevel = tocMinLevel
		entries, err := p.Parse(extract.Slice(pages, r), title)
		if err != nil {
			return err
		}

		n, err := toc.WriteJSONL(tocOut, entries)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %d entries (pages %d-%d) -> %s\n",
			okStyle.Render("parsed"), n, r.Start, r.End, tocOut)
		return nil
	},
}

func init() {
	tocCmd.Flags().StringVarP(&tocOut, "out", "o", "toc.jsonl", "Output JSONL file")
	tocCmd.Flags().StringVar(&tocPages, "pages", "", "ToC page range, e.g. 3-9 (default: autodetect)")
	tocCmd.Flags().StringVar(&tocDocTitle, "doc-title", "", "Document title for entries (default: input path)")
	tocCmd.Flags().IntVar(&tocMinLevel, "min-level", 0, "Drop entries shallower than this level")
	rootCmd.AddCommand(tocCmd)
}
