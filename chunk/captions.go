package chunk

import (
	"regexp"
	"strings"
)

// captionID matches chapter-qualified reference ids: "5-1", "10-3", "A-2",
// also dotted forms some documents use ("5.1").
const captionID = `(?:\d+|[A-Z])(?:[-.]\d+)+|\d+`

var (
	figureRx = regexp.MustCompile(`(?i)\bFigure\s+(` + captionID + `)\b`)
	tableRx  = regexp.MustCompile(`(?i)\bTable\s+(` + captionID + `)\b`)

	// spacedWordRx repairs letter-spaced caption keywords some extractors
	// emit ("F i g u r e 5-1").
	spacedFigureRx = regexp.MustCompile(`(?i)\bF\s*i\s*g\s*u\s*r\s*e\b`)
	spacedTableRx  = regexp.MustCompile(`(?i)\bT\s*a\s*b\s*l\s*e\b`)
)

// detectCaptions scans chunk content line by line for figure and table
// caption references. A caption whose text wraps onto the following line is
// still one reference: matching is keyed on the id, and ids are deduplicated
// within the chunk with first occurrence winning.
func detectCaptions(content string) (figures, tables []Caption) {
	if content == "" {
		return nil, nil
	}
	seenFig := make(map[string]bool)
	seenTab := make(map[string]bool)

	for _, line := range strings.Split(content, "\n") {
		line = normCaptionLine(line)
		for _, m := range figureRx.FindAllStringSubmatch(line, -1) {
			if id := m[1]; !seenFig[id] {
				seenFig[id] = true
				figures = append(figures, Caption{ID: id})
			}
		}
		for _, m := range tableRx.FindAllStringSubmatch(line, -1) {
			if id := m[1]; !seenTab[id] {
				seenTab[id] = true
				tables = append(tables, Caption{ID: id})
			}
		}
	}
	return figures, tables
}

// normCaptionLine undoes extraction artifacts on caption keywords before
// matching.
func normCaptionLine(s string) string {
	s = spacedFigureRx.ReplaceAllString(s, "Figure")
	s = spacedTableRx.ReplaceAllString(s, "Table")
	return s
}
