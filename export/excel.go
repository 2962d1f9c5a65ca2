// Package export writes pipeline artifacts to an Excel workbook for review
// outside the toolchain: one sheet for ToC entries, one for chunk summaries,
// one for the validation outcome.
package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/docsift/docsift/chunk"
	"github.com/docsift/docsift/toc"
	"github.com/docsift/docsift/validate"
)

// maxColWidth caps autofitted column widths so content cells stay readable.
const maxColWidth = 60

// Workbook writes the three artifact sheets to path, replacing any existing
// file.
func Workbook(path string, entries []toc.Entry, chunks []chunk.Chunk, val *validate.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeTOCSheet(f, entries); err != nil {
		return err
	}
	if err := writeChunkSheet(f, chunks); err != nil {
		return err
	}
	if val != nil {
		if err := writeValidationSheet(f, *val); err != nil {
			return err
		}
	}

	// Drop the default sheet excelize creates.
	f.DeleteSheet("Sheet1")

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func writeTOCSheet(f *excelize.File, entries []toc.Entry) error {
	const sheet = "ToC"
	rows := [][]any{{"section_id", "title", "page", "level", "parent_id"}}
	for _, e := range entries {
		parent := ""
		if e.ParentID != nil {
			parent = *e.ParentID
		}
		rows = append(rows, []any{e.SectionID, e.Title, e.Page, e.Level, parent})
	}
	return writeSheet(f, sheet, rows)
}

func writeChunkSheet(f *excelize.File, chunks []chunk.Chunk) error {
	const sheet = "Chunks"
	rows := [][]any{{"section_id", "title", "page_range", "words", "figures", "tables"}}
	for _, c := range chunks {
		rows = append(rows, []any{
			c.SectionID, c.Title, c.PageRange,
			len(strings.Fields(c.Content)), len(c.Figures), len(c.Tables),
		})
	}
	return writeSheet(f, sheet, rows)
}

func writeValidationSheet(f *excelize.File, val validate.Report) error {
	const sheet = "Validation"
	rows := [][]any{
		{"metric", "value"},
		{"toc_section_count", val.TOCSectionCount},
		{"parsed_section_count", val.ParsedSectionCount},
		{"matched", len(val.MatchedSections)},
		{"missing", len(val.MissingSections)},
		{"extra", len(val.ExtraSections)},
		{"out_of_order", len(val.OutOfOrderSections)},
	}
	for _, id := range val.MissingSections {
		rows = append(rows, []any{"missing_section", id})
	}
	return writeSheet(f, sheet, rows)
}

func writeSheet(f *excelize.File, sheet string, rows [][]any) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("creating sheet %s: %w", sheet, err)
	}

	widths := make([]int, len(rows[0]))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d of %s: %w", i+1, sheet, err)
		}
		for j, v := range row {
			if j < len(widths) {
				if w := len(fmt.Sprint(v)); w > widths[j] {
					widths[j] = w
				}
			}
		}
	}

	// Bold header row.
	styleID, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		end, _ := excelize.CoordinatesToCellName(len(rows[0]), 1)
		f.SetCellStyle(sheet, "A1", end, styleID)
	}

	// Best-effort column autofit.
	for j, w := range widths {
		col, err := excelize.ColumnNumberToName(j + 1)
		if err != nil {
			continue
		}
		width := w + 2
		if width > maxColWidth {
			width = maxColWidth
		}
		f.SetColWidth(sheet, col, col, float64(width))
	}
	return nil
}
