package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/docsift/docsift"
	"github.com/docsift/docsift/chunk"
	"github.com/docsift/docsift/export"
	"github.com/docsift/docsift/jsonl"
	"github.com/docsift/docsift/report"
	"github.com/docsift/docsift/store"
	"github.com/docsift/docsift/toc"
	"github.com/docsift/docsift/validate"
)

var expArtifacts string
var expOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write artifacts to an Excel workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := toc.ReadJSONL(filepath.Join(expArtifacts, docsift.TOCFile))
		if err != nil {
			return err
		}
		chunks, err := chunk.ReadJSONL(filepath.Join(expArtifacts, docsift.ChunksFile))
		if err != nil {
			return err
		}
		var val *validate.Report
		var r validate.Report
		if err := jsonl.ReadJSON(filepath.Join(expArtifacts, docsift.ValidationFile), &r); err == nil {
			val = &r
		}

		out := expOut
		if out == "" {
			out = filepath.Join(expArtifacts, docsift.WorkbookFile)
		}
		if err := export.Workbook(out, entries, chunks, val); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", okStyle.Render("wrote"), out)
		return nil
	},
}

var idxArtifacts string
var idxDB string

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Load artifacts into a SQLite database for querying",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := toc.ReadJSONL(filepath.Join(idxArtifacts, docsift.TOCFile))
		if err != nil {
			return err
		}
		chunks, err := chunk.ReadJSONL(filepath.Join(idxArtifacts, docsift.ChunksFile))
		if err != nil {
			return err
		}

		dbPath := idxDB
		if dbPath == "" {
			dbPath = filepath.Join(idxArtifacts, docsift.DBFile)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		if err := st.ReplaceTOC(ctx, entries); err != nil {
			return err
		}
		if err := st.ReplaceChunks(ctx, chunks); err != nil {
			return err
		}

		// Validation and metrics artifacts are optional; index toc and
		// chunks regardless.
		var val validate.Report
		if err := jsonl.ReadJSON(filepath.Join(idxArtifacts, docsift.ValidationFile), &val); err == nil {
			if err := st.SaveValidation(ctx, val); err != nil {
				return err
			}
		}
		var m report.Metrics
		if err := jsonl.ReadJSON(filepath.Join(idxArtifacts, docsift.MetricsFile), &m); err == nil {
			if err := st.SaveMetrics(ctx, m); err != nil {
				return err
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s %d entries, %d chunks -> %s\n",
			okStyle.Render("indexed"), len(entries), len(chunks), dbPath)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&expArtifacts, "artifacts", "a", "artifacts", "Artifact directory")
	exportCmd.Flags().StringVarP(&expOut, "out", "o", "", "Output xlsx path (default: <artifacts>/report.xlsx)")
	rootCmd.AddCommand(exportCmd)

	indexCmd.Flags().StringVarP(&idxArtifacts, "artifacts", "a", "artifacts", "Artifact directory")
	indexCmd.Flags().StringVar(&idxDB, "db", "", "SQLite path (default: <artifacts>/artifacts.db)")
	rootCmd.AddCommand(indexCmd)
}
