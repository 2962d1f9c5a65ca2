// Package validate reconciles the independently parsed table of contents
// against the recognized chunk sequence, classifying every ToC entry as
// matched, missing, or out of order, and every unmatched chunk as extra.
package validate

import (
	"log/slog"

	"github.com/docsift/docsift/chunk"
	"github.com/docsift/docsift/section"
	"github.com/docsift/docsift/toc"
)

// Report is the result of a ToC-vs-chunks reconciliation.
type Report struct {
	TOCSectionCount    int      `json:"toc_section_count"`
	ParsedSectionCount int      `json:"parsed_section_count"`
	MissingSections    []string `json:"missing_sections"`
	ExtraSections      []string `json:"extra_sections"`
	OutOfOrderSections []string `json:"out_of_order_sections"`
	MatchedSections    []string `json:"matched_sections"`
}

// Run aligns entries with chunks by normalized section id. It is a streaming
// two-pointer reconciliation, not an edit-distance diff: each ToC entry is
// looked up in chunk order and checked against a running maximum chunk index.
// An entry found at a non-advancing index is both matched and out of order.
// Duplicate chunk ids keep their first occurrence; later duplicates count as
// extra.
func Run(entries []toc.Entry, chunks []chunk.Chunk) Report {
	chunkIdx := make(map[section.ID]int, len(chunks))
	for i, c := range chunks {
		id := section.Normalize(c.SectionID)
		if id == "" {
			continue
		}
		if _, dup := chunkIdx[id]; !dup {
			chunkIdx[id] = i
		}
	}

	r := Report{
		TOCSectionCount:    len(entries),
		ParsedSectionCount: len(chunks),
		MissingSections:    []string{},
		ExtraSections:      []string{},
		OutOfOrderSections: []string{},
		MatchedSections:    []string{},
	}

	used := make(map[int]bool, len(entries))
	lastIdx := -1
	for _, e := range entries {
		id := section.Normalize(e.SectionID)
		i, ok := chunkIdx[id]
		if !ok {
			r.MissingSections = append(r.MissingSections, e.SectionID)
			continue
		}
		used[i] = true
		r.MatchedSections = append(r.MatchedSections, e.SectionID)
		if i <= lastIdx {
			r.OutOfOrderSections = append(r.OutOfOrderSections, e.SectionID)
			continue
		}
		lastIdx = i
	}

	for i, c := range chunks {
		if !used[i] {
			r.ExtraSections = append(r.ExtraSections, c.SectionID)
		}
	}

	slog.Info("validate: reconciliation complete",
		"matched", len(r.MatchedSections),
		"missing", len(r.MissingSections),
		"extra", len(r.ExtraSections),
		"out_of_order", len(r.OutOfOrderSections))
	return r
}
