package extract

import (
	"regexp"
	"strings"
)

// ligatures maps typographic ligatures and bullet variants emitted by PDF
// extraction back to plain ASCII.
var ligatures = strings.NewReplacer(
	"ﬁ", "fi",
	"ﬂ", "fl",
	"ﬀ", "ff",
	"ﬃ", "ffi",
	"ﬄ", "ffl",
	"–", "-",
	"—", "-",
	"·", ".",
	"•", ".",
)

var (
	nbspRx       = regexp.MustCompile(`[\x{00A0}\x{202F}]`)
	spaceRunRx   = regexp.MustCompile(`[ \t]+`)
	dotLeadersRx = regexp.MustCompile(`\.{3,}`)
)

// Normalize fixes ligatures, non-breaking spaces, and runs of spaces or tabs
// in extracted text. Line structure is preserved.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = nbspRx.ReplaceAllString(s, " ")
	s = ligatures.Replace(s)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(spaceRunRx.ReplaceAllString(line, " "), " ")
	}
	return strings.Join(lines, "\n")
}

// StripDotLeaders collapses long dot-leader runs into single spaces. Short
// runs (ellipses, "Ver. 1.1") are left alone.
func StripDotLeaders(s string) string {
	return dotLeadersRx.ReplaceAllString(s, " ")
}
