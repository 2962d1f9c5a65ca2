// Package report computes corpus-level metrics over parsed chunks and the
// validation output, and assembles the final QA report.
package report

import (
	"log/slog"
	"math"
	"strings"

	"github.com/docsift/docsift/chunk"
	"github.com/docsift/docsift/section"
	"github.com/docsift/docsift/toc"
)

// tokenWordRatio converts whitespace-delimited word counts into approximate
// model tokens.
const tokenWordRatio = 1.3

// Debug carries secondary figures useful when tuning the pipeline.
type Debug struct {
	ParsedSectionsFromChunks int     `json:"parsed_sections_from_chunks"`
	AvgWordsPerSection       float64 `json:"avg_words_per_section"`
}

// Metrics aggregates counts and per-section averages. Purely computed; an
// empty chunk set yields zeros, never an error.
type Metrics struct {
	TotalChapters          int      `json:"total_chapters"`
	TotalSections          int      `json:"total_sections"`
	TotalFigures           int      `json:"total_figures"`
	TotalTables            int      `json:"total_tables"`
	AvgTokensPerSection    int      `json:"avg_tokens_per_section"`
	SectionsWithoutFigures []string `json:"sections_without_diagrams"`
	SectionsWithoutTables  []string `json:"sections_without_tables"`
	Debug                  Debug    `json:"debug"`
}

// Compute derives metrics from the ToC entries and recognized chunks.
func Compute(entries []toc.Entry, chunks []chunk.Chunk) Metrics {
	m := Metrics{
		TotalSections:          len(entries),
		SectionsWithoutFigures: []string{},
		SectionsWithoutTables:  []string{},
	}

	// Chapter count is the larger of the two independently derived sets, so
	// a chapter only one side saw never inflates the total.
	tocChapters := make(map[string]bool)
	for _, e := range entries {
		if c := chapterOf(e.SectionID); c != "" {
			tocChapters[c] = true
		}
	}
	chunkChapters := make(map[string]bool)
	for _, c := range chunks {
		if ch := chapterOf(c.SectionID); ch != "" {
			chunkChapters[ch] = true
		}
	}
	m.TotalChapters = max(len(tocChapters), len(chunkChapters))

	var totalWords, nonEmpty int
	for _, c := range chunks {
		m.TotalFigures += len(c.Figures)
		m.TotalTables += len(c.Tables)

		if words := len(strings.Fields(c.Content)); words > 0 {
			totalWords += words
			nonEmpty++
		}

		label := strings.TrimSpace(c.SectionID + " " + c.Title)
		if len(c.Figures) == 0 {
			m.SectionsWithoutFigures = append(m.SectionsWithoutFigures, label)
		}
		if len(c.Tables) == 0 {
			m.SectionsWithoutTables = append(m.SectionsWithoutTables, label)
		}
	}

	if nonEmpty > 0 {
		avgWords := float64(totalWords) / float64(nonEmpty)
		m.Debug.AvgWordsPerSection = math.Round(avgWords*100) / 100
		m.AvgTokensPerSection = int(math.Round(avgWords / tokenWordRatio))
	}
	m.Debug.ParsedSectionsFromChunks = len(chunks)

	slog.Info("report: metrics computed",
		"chapters", m.TotalChapters,
		"sections", m.TotalSections,
		"figures", m.TotalFigures,
		"tables", m.TotalTables)
	return m
}

// chapterOf returns the level-1 component of a section id, or "" when the id
// is empty.
func chapterOf(id string) string {
	comps := section.ID(id).Components()
	if len(comps) == 0 {
		return ""
	}
	return comps[0]
}
