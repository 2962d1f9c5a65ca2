// Package toc parses table-of-contents pages into ordered section entries.
// It shares the section-numbering grammar with package chunk; the only
// difference is that ToC rows carry a trailing page number.
package toc

import (
	"errors"
	"regexp"
	"strings"

	"github.com/docsift/docsift/extract"
	"github.com/docsift/docsift/jsonl"
	"github.com/docsift/docsift/section"
)

// ErrNoEntries is returned when no ToC-formatted lines are recognized at all.
var ErrNoEntries = errors.New("toc: no entries recognized")

// Entry is one parsed table-of-contents row.
type Entry struct {
	DocTitle  string  `json:"doc_title"`
	SectionID string  `json:"section_id"`
	Title     string  `json:"title"`
	Page      int     `json:"page"`
	Level     int     `json:"level"`
	ParentID  *string `json:"parent_id"`
	FullPath  string  `json:"full_path"`
}

// Parser recognizes ToC rows. Construct with NewParser; the grammar is
// compiled once and owned by the parser, not shared process-wide.
type Parser struct {
	grammar *section.Grammar

	// MinLevel drops entries shallower than this depth (0 keeps all).
	MinLevel int
}

// NewParser returns a Parser using the shared grammar in ToC mode.
func NewParser() *Parser {
	return &Parser{grammar: section.New(section.ModeTOC)}
}

var (
	headerLineRx   = regexp.MustCompile(`(?i)^\s*(table of contents|list of (figures|tables))\b`)
	pageNoiseRx    = regexp.MustCompile(`(?i)\bPage\s*\d+\b`)
	trailingDotsRx = regexp.MustCompile(`[.\x{00B7}\x{2022}]{2,}\s*$`)
)

// Parse scans the ToC pages line by line and returns entries in document
// order. A row whose title wraps onto the next physical line (no trailing
// page number yet) is merged with that line and re-matched. Rows whose id
// would go backward relative to the previous accepted entry are rejected as
// false positives. Returns ErrNoEntries when nothing matches.
func (p *Parser) Parse(pages []extract.Page, docTitle string) ([]Entry, error) {
	var entries []Entry
	var last section.ID

	for _, page := range pages {
		lines := strings.Split(page.Text, "\n")
		for i := 0; i < len(lines); i++ {
			line := p.preclean(lines[i])
			if line == "" || headerLineRx.MatchString(line) {
				continue
			}

			m := p.grammar.Match(line)
			if m == nil && i+1 < len(lines) {
				// Wrapped title: the page number landed on the next line.
				merged := line + " " + p.preclean(lines[i+1])
				if m = p.grammar.Match(merged); m != nil {
					i++
				}
			}
			if m == nil || !section.Plausible(m) {
				continue
			}
			if p.MinLevel > 0 && m.ID.Level() < p.MinLevel {
				continue
			}
			if last != "" && m.ID.Compare(last) <= 0 {
				// Body text that merely looks like a ToC row, or a repeated
				// running header. Ordering is the tell.
				continue
			}

			entries = append(entries, newEntry(docTitle, m))
			last = m.ID
		}
	}

	if len(entries) == 0 {
		return nil, ErrNoEntries
	}
	return entries, nil
}

func newEntry(docTitle string, m *section.Match) Entry {
	id := m.ID
	title := cleanTitle(m.Title)
	e := Entry{
		DocTitle:  docTitle,
		SectionID: string(id),
		Title:     title,
		Page:      m.Page,
		Level:     id.Level(),
		FullPath:  string(id) + " " + title,
	}
	if parent := id.Parent(); parent != "" {
		s := string(parent)
		e.ParentID = &s
	}
	return e
}

// preclean removes footer noise that would otherwise corrupt row matching.
func (p *Parser) preclean(s string) string {
	s = pageNoiseRx.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// cleanTitle strips dot-leader padding left inside a matched title without
// touching periods that belong to the title text itself.
func cleanTitle(s string) string {
	s = extract.StripDotLeaders(s)
	s = trailingDotsRx.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

// WriteJSONL persists entries one JSON object per line and returns the
// number written.
func WriteJSONL(path string, entries []Entry) (int, error) {
	return jsonl.WriteFile(path, entries)
}

// ReadJSONL loads previously written entries, skipping malformed lines.
func ReadJSONL(path string) ([]Entry, error) {
	return jsonl.ReadFile[Entry](path)
}
