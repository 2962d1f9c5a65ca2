package chunk

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/docsift/docsift/extract"
)

// ---------------------------------------------------------------------------
// Recognition
// ---------------------------------------------------------------------------

func TestRecognizeBasic(t *testing.T) {
	pages := []extract.Page{
		{Number: 5, Text: "1 Overview\nThis document describes the widget bus.\nMore prose."},
		{Number: 6, Text: "1.1 Scope\nApplies to all widgets.\n2 Requirements\nWidgets shall be round."},
	}
	chunks := NewRecognizer().Recognize(pages)

	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3: %+v", len(chunks), chunks)
	}

	first := chunks[0]
	if first.SectionID != "1" || first.Title != "Overview" {
		t.Errorf("first = %q %q", first.SectionID, first.Title)
	}
	if first.SectionPath != "1 Overview" {
		t.Errorf("section_path = %q", first.SectionPath)
	}
	if first.PageRange != "5" {
		t.Errorf("first page_range = %q, want 5", first.PageRange)
	}
	if first.Content != "This document describes the widget bus.\nMore prose." {
		t.Errorf("first content = %q", first.Content)
	}

	// Content never includes the next chunk's heading line.
	for _, c := range chunks {
		if c.SectionID == "1.1" && c.Content != "Applies to all widgets." {
			t.Errorf("1.1 content = %q", c.Content)
		}
	}
}

func TestRecognizeOrderFolding(t *testing.T) {
	// "1.4" after "2.1" would go backward; it is body text, not a heading.
	pages := []extract.Page{
		{Number: 1, Text: "2 Details\nintro\n2.1 Sub\nbody\n1.4 is referenced in this sentence\nmore body"},
	}
	chunks := NewRecognizer().Recognize(pages)

	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	sub := chunks[1]
	if sub.SectionID != "2.1" {
		t.Fatalf("second chunk id = %q", sub.SectionID)
	}
	want := "body\n1.4 is referenced in this sentence\nmore body"
	if sub.Content != want {
		t.Errorf("folded content = %q, want %q", sub.Content, want)
	}
}

func TestRecognizeMonotonicIDs(t *testing.T) {
	pages := []extract.Page{
		{Number: 1, Text: "4.9 Ninth\nbody\n4.10 Tenth\nbody\n4.2 Backref in text\ntail"},
	}
	chunks := NewRecognizer().Recognize(pages)

	var ids []string
	for _, c := range chunks {
		ids = append(ids, c.SectionID)
	}
	// "4.10" must be recognized after "4.9" (numeric order), "4.2" folded.
	want := []string{"4.9", "4.10"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("ids = %v, want %v", ids, want)
	}
}

func TestRecognizePageRanges(t *testing.T) {
	pages := []extract.Page{
		{Number: 47, Text: "3 Protocol\nfirst page of protocol"},
		{Number: 48, Text: "continued prose"},
		{Number: 49, Text: "still protocol\n4 Timing\ntiming prose"},
	}
	chunks := NewRecognizer().Recognize(pages)

	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	if chunks[0].PageRange != "47,49" {
		t.Errorf("protocol page_range = %q, want 47,49", chunks[0].PageRange)
	}
	if chunks[0].StartPage() != 47 || chunks[0].EndPage() != 49 {
		t.Errorf("StartPage/EndPage = %d/%d", chunks[0].StartPage(), chunks[0].EndPage())
	}
	if chunks[1].PageRange != "49" {
		t.Errorf("timing page_range = %q, want 49", chunks[1].PageRange)
	}
}

func TestRecognizeNoHeadings(t *testing.T) {
	pages := []extract.Page{
		{Number: 1, Text: "just prose with no numbering"},
		{Number: 2, Text: "even more prose"},
		{Number: 3, Text: "closing prose"},
	}
	chunks := NewRecognizer().Recognize(pages)

	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want exactly 1", len(chunks))
	}
	c := chunks[0]
	if c.SectionID != "" {
		t.Errorf("fallback chunk id = %q, want empty", c.SectionID)
	}
	if c.StartPage() != 1 || c.EndPage() != 3 {
		t.Errorf("fallback range = %q, want 1 through 3", c.PageRange)
	}
}

func TestRecognizeStripsRunningHeaders(t *testing.T) {
	header := "Widget Interconnect Specification Rev 2.1"
	pages := []extract.Page{
		{Number: 1, Text: header + "\n1 Overview\nprose one"},
		{Number: 2, Text: header + "\nprose two"},
		{Number: 3, Text: header + "\nprose three"},
		{Number: 4, Text: header + "\n2 Details\nprose four"},
	}
	chunks := NewRecognizer().Recognize(pages)

	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2: %+v", len(chunks), chunks)
	}
	for _, c := range chunks {
		if contains := c.Content; contains != "" && containsLine(contains, header) {
			t.Errorf("chunk %s content still carries running header", c.SectionID)
		}
	}
}

func TestRecognizeSkipPages(t *testing.T) {
	r := NewRecognizer()
	r.SkipRange(extract.PageRange{Start: 2, End: 3})
	pages := []extract.Page{
		{Number: 1, Text: "1 Overview\nreal body"},
		{Number: 2, Text: "1.1 Scope ....... 4"}, // ToC page, must be ignored
		{Number: 4, Text: "2 Details\ndetails body"},
	}
	chunks := r.Recognize(pages)

	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	if chunks[0].SectionID != "1" || chunks[1].SectionID != "2" {
		t.Errorf("ids = %q, %q", chunks[0].SectionID, chunks[1].SectionID)
	}
}

// ---------------------------------------------------------------------------
// Captions
// ---------------------------------------------------------------------------

func TestDetectCaptions(t *testing.T) {
	content := "intro\nFigure 5-1: System Overview\nprose\nTable 5-2 Pin Assignments\nFigure 5-3 - Flow"
	figures, tables := detectCaptions(content)

	if len(figures) != 2 || figures[0].ID != "5-1" || figures[1].ID != "5-3" {
		t.Errorf("figures = %+v", figures)
	}
	if len(tables) != 1 || tables[0].ID != "5-2" {
		t.Errorf("tables = %+v", tables)
	}
}

func TestDetectCaptionsWrappedLine(t *testing.T) {
	// A caption split across two physical lines is one reference.
	content := "Figure 5-1:\nSystem Overview"
	figures, _ := detectCaptions(content)
	if len(figures) != 1 || figures[0].ID != "5-1" {
		t.Errorf("figures = %+v, want single 5-1", figures)
	}
}

func TestDetectCaptionsDedupeFirstWins(t *testing.T) {
	content := "Table 10-3 Timing\nsee Table 10-3 above\nTable 10-4 Limits"
	_, tables := detectCaptions(content)
	if len(tables) != 2 || tables[0].ID != "10-3" || tables[1].ID != "10-4" {
		t.Errorf("tables = %+v", tables)
	}
}

func TestDetectCaptionsSpacedKeyword(t *testing.T) {
	figures, _ := detectCaptions("F i g u r e 7-2 Diagram")
	if len(figures) != 1 || figures[0].ID != "7-2" {
		t.Errorf("figures = %+v", figures)
	}
}

// ---------------------------------------------------------------------------
// Serialization
// ---------------------------------------------------------------------------

func TestChunkJSONRoundTrip(t *testing.T) {
	in := Chunk{
		SectionPath: "4.3 Negotiation",
		SectionID:   "4.3",
		Title:       "Negotiation",
		PageRange:   "47,49",
		Content:     "body text",
		Tables:      []Caption{{ID: "4-1"}},
		Figures:     []Caption{{ID: "4-2"}},
	}
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out Chunk
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip mismatch:\n in=%+v\nout=%+v", in, out)
	}
}

func containsLine(content, line string) bool {
	for _, l := range splitLines(content) {
		if l == line {
			return true
		}
	}
	return false
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return append(out, s[start:])
}
