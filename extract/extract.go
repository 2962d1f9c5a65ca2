// Package extract is the boundary to the PDF text extractor. It produces
// ordered per-page plain text for the rest of the pipeline and locates the
// table-of-contents page range. It does not interpret document structure.
package extract

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Page is one page of extracted text in physical document order.
type Page struct {
	Number int    `json:"page"`
	Text   string `json:"text"`
}

// Pages extracts plain text from every page of the document at path.
// Pages whose extraction fails are skipped rather than aborting the whole
// document; page numbers are 1-based and preserved.
func Pages(path string) ([]Page, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	total := reader.NumPage()
	pages := make([]Page, 0, total)

	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			slog.Warn("extract: page failed, skipping", "page", i, "error", err)
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		pages = append(pages, Page{Number: i, Text: Normalize(text)})
	}

	slog.Info("extract: document read", "path", path, "pages", len(pages), "total", total)
	return pages, nil
}

// PageRange is an inclusive 1-based span of pages.
type PageRange struct {
	Start int
	End   int
}

var (
	tocStartRx = regexp.MustCompile(`(?i)\bTable of Contents\b`)
	listStopRx = regexp.MustCompile(`(?i)\bList of (Figures|Tables)\b`)
)

// tocSearchWindow limits how deep into the document the ToC marker is sought.
const tocSearchWindow = 30

// DetectTOCRange locates the table-of-contents pages by scanning the first
// pages for a ToC marker. The range ends just before a List of Figures/Tables
// marker, or defaults to seven pages past the start. Returns ok=false when no
// marker is found.
func DetectTOCRange(pages []Page) (PageRange, bool) {
	start := 0
	for i, p := range pages {
		if i >= tocSearchWindow {
			break
		}
		if tocStartRx.MatchString(p.Text) {
			start = p.Number
			break
		}
	}
	if start == 0 {
		return PageRange{}, false
	}

	end := 0
	for _, p := range pages {
		if p.Number <= start || p.Number > start+11 {
			continue
		}
		if listStopRx.MatchString(p.Text) {
			end = p.Number - 1
			break
		}
	}
	if end == 0 {
		end = start + 7
		if last := lastPage(pages); last > 0 && end > last {
			end = last
		}
	}
	return PageRange{Start: start, End: end}, true
}

// Slice returns the pages whose numbers fall inside r, preserving order.
func Slice(pages []Page, r PageRange) []Page {
	var out []Page
	for _, p := range pages {
		if p.Number >= r.Start && p.Number <= r.End {
			out = append(out, p)
		}
	}
	return out
}

func lastPage(pages []Page) int {
	if len(pages) == 0 {
		return 0
	}
	return pages[len(pages)-1].Number
}
