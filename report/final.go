package report

import (
	"fmt"

	"github.com/docsift/docsift/validate"
)

// Caps keeping the final report readable on badly mismatched documents.
const (
	maxDiscrepancies = 200
	maxMissingListed = 50
)

// Final is the combined QA report generated from the validation and metrics
// artifacts.
type Final struct {
	Summary         string        `json:"summary"`
	Discrepancies   []string      `json:"discrepancies"`
	Metrics         FinalMetrics  `json:"metrics"`
	Recommendations []string      `json:"recommendations"`
}

// FinalMetrics is the condensed metrics block embedded in the final report.
type FinalMetrics struct {
	TOCSections     int      `json:"toc_sections"`
	ParsedSections  int      `json:"parsed_sections"`
	Figures         int      `json:"figures"`
	Tables          int      `json:"tables"`
	MissingSections []string `json:"missing_sections"`
}

// BuildFinal assembles the final report from a validation report and metrics.
func BuildFinal(val validate.Report, m Metrics) Final {
	matched := len(val.MatchedSections)
	pct := 0.0
	if val.TOCSectionCount > 0 {
		pct = float64(matched) / float64(val.TOCSectionCount) * 100
	}

	f := Final{
		Summary: fmt.Sprintf("Matched %d of %d ToC sections (%.1f%% match).",
			matched, val.TOCSectionCount, pct),
	}

	for _, s := range val.MissingSections {
		f.Discrepancies = append(f.Discrepancies, "Missing in chunks: "+s)
	}
	for _, s := range val.ExtraSections {
		f.Discrepancies = append(f.Discrepancies, "Extra (not in ToC): "+s)
	}
	for _, s := range val.OutOfOrderSections {
		f.Discrepancies = append(f.Discrepancies, "Out of order: "+s)
	}
	if len(f.Discrepancies) > maxDiscrepancies {
		f.Discrepancies = f.Discrepancies[:maxDiscrepancies]
	}

	missing := val.MissingSections
	if len(missing) > maxMissingListed {
		missing = missing[:maxMissingListed]
	}
	f.Metrics = FinalMetrics{
		TOCSections:     m.TotalSections,
		ParsedSections:  val.ParsedSectionCount,
		Figures:         m.TotalFigures,
		Tables:          m.TotalTables,
		MissingSections: missing,
	}

	f.Recommendations = recommendations(val, m)
	return f
}

func recommendations(val validate.Report, m Metrics) []string {
	var recs []string
	if len(val.MissingSections) > 0 {
		recs = append(recs, "Re-parse pages around missing sections; verify ToC page bounds.")
	}
	if len(val.ExtraSections) > 0 {
		recs = append(recs, "Tighten heading detection or gate strictly by ToC ids.")
	}
	if m.TotalFigures == 0 && m.TotalTables == 0 {
		recs = append(recs, "No captions detected; relax the caption grammar or review extraction quality.")
	}
	if m.AvgTokensPerSection > 0 && m.AvgTokensPerSection < 300 {
		recs = append(recs, "Many short chunks; consider merging consecutive small sections.")
	}
	if m.AvgTokensPerSection > 9000 {
		recs = append(recs, "Very large chunks; consider splitting by subheadings or page breaks.")
	}
	return recs
}
