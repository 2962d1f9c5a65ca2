// Package section defines the dotted section-numbering grammar shared by the
// ToC parser and the heading recognizer. Both consumers must agree on what a
// section id looks like; keeping a single compiled grammar here prevents the
// two from drifting apart.
package section

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ID is a dotted numeric section identifier such as "4.3.2".
type ID string

// Normalize strips trailing dots and folds unicode dash variants so that ids
// from different extraction paths compare equal.
func Normalize(s string) ID {
	s = strings.TrimSpace(s)
	s = dashRx.ReplaceAllString(s, "-")
	s = strings.TrimRight(s, ".")
	return ID(s)
}

var dashRx = regexp.MustCompile(`[\x{2010}\x{2011}\x{2012}\x{2013}\x{2014}\x{2212}]`)

// Components splits the id into its numeric parts. Non-numeric components
// (appendix letters, "A.1") are returned as-is and compare after all numbers.
func (id ID) Components() []string {
	if id == "" {
		return nil
	}
	return strings.Split(string(id), ".")
}

// Level is the hierarchy depth implied by the id: "1" is level 1,
// "1.2" level 2, and so on.
func (id ID) Level() int {
	if id == "" {
		return 0
	}
	return strings.Count(string(id), ".") + 1
}

// Parent returns the id with its last component removed, or "" for a
// top-level id.
func (id ID) Parent() ID {
	i := strings.LastIndex(string(id), ".")
	if i < 0 {
		return ""
	}
	return id[:i]
}

// Compare orders ids component-wise and numerically, so "4.9" < "4.10".
// A shorter id that is a prefix of a longer one sorts first ("4" < "4.1").
// Returns -1, 0, or 1.
func (id ID) Compare(other ID) int {
	a, b := id.Components(), other.Components()
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := compareComponent(a[i], b[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// compareComponent compares one dot-separated component. Numbers compare
// numerically; letters (appendix ids like "A") sort after all numbers.
func compareComponent(a, b string) int {
	an, aerr := strconv.Atoi(a)
	bn, berr := strconv.Atoi(b)
	switch {
	case aerr == nil && berr == nil:
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		}
		return 0
	case aerr == nil:
		return -1
	case berr == nil:
		return 1
	}
	return strings.Compare(a, b)
}

// Mode selects which surface form of a heading line the grammar accepts.
type Mode int

const (
	// ModeBody matches headings as they appear in body text: id, title,
	// and no trailing page number.
	ModeBody Mode = iota

	// ModeTOC matches table-of-contents rows: id, title, optional
	// dot-leader padding, and a mandatory trailing page number.
	ModeTOC
)

// Match is a successfully parsed heading line.
type Match struct {
	ID    ID
	Title string
	Page  int // 0 in ModeBody
}

// Grammar recognizes heading lines in one of the two modes. Construct once
// per stage with New; the zero value is not usable.
type Grammar struct {
	mode Mode
	re   *regexp.Regexp
}

const idPattern = `[1-9]\d*(?:\.\d+)*|[A-Z](?:\.\d+)*`

var (
	bodyRe = regexp.MustCompile(`^\s*(` + idPattern + `)\s+(\S.*?)\s*$`)
	tocRe  = regexp.MustCompile(`^\s*(` + idPattern + `)\s+(.+?)[\s.·•]*\s(\d{1,5})\s*$`)
)

// New returns a Grammar for the given mode.
func New(mode Mode) *Grammar {
	g := &Grammar{mode: mode}
	switch mode {
	case ModeTOC:
		g.re = tocRe
	default:
		g.re = bodyRe
	}
	return g
}

// Mode reports which mode the grammar was built with.
func (g *Grammar) Mode() Mode { return g.mode }

// Match attempts to parse line as a heading. It returns nil when the line
// does not have the id/title shape the mode requires.
func (g *Grammar) Match(line string) *Match {
	m := g.re.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	out := &Match{ID: Normalize(m[1]), Title: strings.TrimSpace(m[2])}
	if g.mode == ModeTOC {
		page, err := strconv.Atoi(m[3])
		if err != nil || page < 1 {
			return nil
		}
		out.Page = page
	}
	if out.Title == "" {
		return nil
	}
	return out
}

// Plausible applies lexical sanity checks to a matched title: it must carry
// real words, not be dominated by digits, and not be a run of leftover
// single letters from column-split extraction.
func Plausible(m *Match) bool {
	t := strings.TrimSpace(m.Title)
	if len(t) < 3 {
		return false
	}
	letters, digits := 0, 0
	for _, r := range t {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			letters++
		case r >= '0' && r <= '9':
			digits++
		}
	}
	if letters == 0 || digits > letters {
		return false
	}
	// A bare appendix letter is easy to confuse with prose ("A widget
	// shall..."); require a short, capitalised title for those.
	if len(m.ID) == 1 && m.ID[0] >= 'A' && m.ID[0] <= 'Z' {
		if len(t) > 60 || t[0] < 'A' || t[0] > 'Z' {
			return false
		}
	}
	return !isolatedLettersRx.MatchString(t)
}

var isolatedLettersRx = regexp.MustCompile(`(?:\b[A-Za-z]\b[.\s]*){6,}`)

// String implements fmt.Stringer for diagnostics.
func (m *Match) String() string {
	if m.Page > 0 {
		return fmt.Sprintf("%s %s (p.%d)", m.ID, m.Title, m.Page)
	}
	return fmt.Sprintf("%s %s", m.ID, m.Title)
}
