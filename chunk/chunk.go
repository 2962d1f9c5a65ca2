// Package chunk segments a document's extracted text into heading-addressed
// chunks. A chunk spans everything between two consecutive recognized
// headings; within each chunk, figure and table captions are collected.
package chunk

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/docsift/docsift/extract"
	"github.com/docsift/docsift/jsonl"
	"github.com/docsift/docsift/section"
)

// Caption is a detected "Figure 5-1" / "Table 10-3" style reference.
type Caption struct {
	ID string `json:"id"`
}

// Chunk is a contiguous span of document text between two recognized
// headings, in document order.
type Chunk struct {
	SectionPath string    `json:"section_path"`
	SectionID   string    `json:"section_id"`
	Title       string    `json:"title"`
	PageRange   string    `json:"page_range"`
	Content     string    `json:"content"`
	Tables      []Caption `json:"tables"`
	Figures     []Caption `json:"figures"`
}

// StartPage returns the first page of the chunk's page range.
func (c Chunk) StartPage() int {
	s, _ := splitRange(c.PageRange)
	return s
}

// EndPage returns the last page of the chunk's page range.
func (c Chunk) EndPage() int {
	_, e := splitRange(c.PageRange)
	return e
}

func splitRange(pr string) (int, int) {
	var s, e int
	if strings.Contains(pr, ",") {
		fmt.Sscanf(pr, "%d,%d", &s, &e)
		return s, e
	}
	fmt.Sscanf(pr, "%d", &s)
	return s, s
}

func formatRange(start, end int) string {
	if end <= start {
		return fmt.Sprintf("%d", start)
	}
	return fmt.Sprintf("%d,%d", start, end)
}

// Recognizer detects body headings and builds chunks. Construct with
// NewRecognizer; the grammar is owned by the recognizer.
type Recognizer struct {
	grammar *section.Grammar

	// SkipPages excludes pages (typically the ToC range) from scanning.
	SkipPages map[int]bool
}

// NewRecognizer returns a Recognizer using the shared grammar in body mode.
func NewRecognizer() *Recognizer {
	return &Recognizer{grammar: section.New(section.ModeBody)}
}

// SkipRange marks every page in r as excluded from recognition.
func (r *Recognizer) SkipRange(pr extract.PageRange) {
	if r.SkipPages == nil {
		r.SkipPages = make(map[int]bool)
	}
	for p := pr.Start; p <= pr.End; p++ {
		r.SkipPages[p] = true
	}
}

var pageFooterRx = regexp.MustCompile(`(?i)^\s*Page\s+\d+\s*$`)

// Recognize scans the full page sequence and returns chunks in document
// order. Headings must advance in numeric id order; a grammar match that
// would go backward is folded into the current chunk's content. This
// suppression is a best-effort heuristic, not a correctness guarantee. A
// document with no recognized headings yields a single chunk covering every
// page.
func (r *Recognizer) Recognize(pages []extract.Page) []Chunk {
	pages = r.visible(pages)
	if len(pages) == 0 {
		return nil
	}
	running := detectRunningLines(pages)

	var chunks []Chunk
	var cur *builder
	var last section.ID

	for _, page := range pages {
		for _, line := range strings.Split(page.Text, "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || running[trimmed] || pageFooterRx.MatchString(trimmed) {
				continue
			}

			if m := r.grammar.Match(trimmed); m != nil && section.Plausible(m) {
				if last == "" || m.ID.Compare(last) > 0 {
					if cur != nil {
						chunks = append(chunks, cur.finish())
					}
					cur = newBuilder(m, page.Number)
					last = m.ID
					continue
				}
				// Backward id: body text that looks like a heading.
			}

			if cur == nil {
				// Preamble before the first heading.
				cur = newDocumentBuilder(page.Number)
			}
			cur.addLine(trimmed, page.Number)
		}
	}

	if cur != nil {
		chunks = append(chunks, cur.finish())
	}
	slog.Info("chunk: recognition complete", "chunks", len(chunks), "pages", len(pages))
	return chunks
}

// visible filters out skipped pages.
func (r *Recognizer) visible(pages []extract.Page) []extract.Page {
	if len(r.SkipPages) == 0 {
		return pages
	}
	out := make([]extract.Page, 0, len(pages))
	for _, p := range pages {
		if !r.SkipPages[p.Number] {
			out = append(out, p)
		}
	}
	return out
}

// runningEdgeLines is how many lines at the top and bottom of a page are
// candidates for running header/footer detection.
const runningEdgeLines = 3

// detectRunningLines finds line texts that repeat at page edges across a
// quarter of the document (at least 3 pages). Such lines are removed before
// heading detection since they can false-match the grammar and pollute
// content.
func detectRunningLines(pages []extract.Page) map[string]bool {
	if len(pages) < 3 {
		return nil
	}
	seen := make(map[string]map[int]bool)
	for _, p := range pages {
		lines := strings.Split(p.Text, "\n")
		for i, line := range lines {
			if i >= runningEdgeLines && i < len(lines)-runningEdgeLines {
				continue
			}
			t := strings.TrimSpace(line)
			if len(t) < 8 {
				continue
			}
			if seen[t] == nil {
				seen[t] = make(map[int]bool)
			}
			seen[t][p.Number] = true
		}
	}

	threshold := len(pages) / 4
	if threshold < 3 {
		threshold = 3
	}
	running := make(map[string]bool)
	for text, onPages := range seen {
		if len(onPages) >= threshold {
			running[text] = true
		}
	}
	return running
}

// builder accumulates one chunk until the next heading closes it.
type builder struct {
	id        section.ID
	title     string
	startPage int
	lastPage  int
	lines     []string
}

func newBuilder(m *section.Match, page int) *builder {
	return &builder{id: m.ID, title: m.Title, startPage: page, lastPage: page}
}

// newDocumentBuilder opens the fallback chunk used when no heading has been
// seen yet.
func newDocumentBuilder(page int) *builder {
	return &builder{title: "Document", startPage: page, lastPage: page}
}

func (b *builder) addLine(line string, page int) {
	line = extract.StripDotLeaders(line)
	line = strings.Join(strings.Fields(line), " ")
	if line == "" {
		return
	}
	b.lines = append(b.lines, line)
	b.lastPage = page
}

func (b *builder) finish() Chunk {
	content := strings.Join(b.lines, "\n")
	path := strings.TrimSpace(string(b.id) + " " + b.title)
	c := Chunk{
		SectionPath: path,
		SectionID:   string(b.id),
		Title:       b.title,
		PageRange:   formatRange(b.startPage, b.lastPage),
		Content:     content,
	}
	c.Figures, c.Tables = detectCaptions(content)
	if c.Figures == nil {
		c.Figures = []Caption{}
	}
	if c.Tables == nil {
		c.Tables = []Caption{}
	}
	return c
}

// WriteJSONL persists chunks one JSON object per line.
func WriteJSONL(path string, chunks []Chunk) (int, error) {
	return jsonl.WriteFile(path, chunks)
}

// ReadJSONL loads previously written chunks, skipping malformed lines.
func ReadJSONL(path string) ([]Chunk, error) {
	return jsonl.ReadFile[Chunk](path)
}
