package graph

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/docsift/docsift/chunk"
	"github.com/docsift/docsift/jsonl"
)

// Triple is one subject/relation/object statement mined from chunk content.
type Triple struct {
	Subject   string `json:"subject"`
	Relation  string `json:"relation"`
	Object    string `json:"object"`
	Condition string `json:"condition,omitempty"`
	Section   string `json:"section,omitempty"`
	Title     string `json:"title,omitempty"`
}

// Extractor mines requirement, capability, state-transition, and parameter
// triples using normative-language patterns. The vocabularies are
// configurable so the extractor is not tied to one document family.
type Extractor struct {
	// IncludeMeta attaches section id and title to each triple.
	IncludeMeta bool

	reqRx   *regexp.Regexp
	capRx   *regexp.Regexp
	stateRx *regexp.Regexp
	paramRx *regexp.Regexp
}

// DefaultSubjects are the actor nouns recognized as triple subjects.
var DefaultSubjects = []string{
	"Source", "Sink", "Host", "Device", "Port", "Cable", "Controller", "System",
}

// DefaultStates are the state names recognized in transition statements.
var DefaultStates = []string{
	"Attach", "Detach", "Negotiation", "Contract", "Hard Reset", "Soft Reset",
	"Error Recovery", "Idle", "Active",
}

// DefaultParameters are the quantity names recognized in value assignments.
var DefaultParameters = []string{
	"voltage", "current", "power", "frequency", "resistance", "timeout",
	"temperature",
}

// modalRelations maps normative modal verbs to relation names.
var modalRelations = map[string]string{
	"shall":  "requires",
	"must":   "requires",
	"should": "recommends",
	"may":    "permits",
}

// NewExtractor compiles the triple patterns for the given subject, state,
// and parameter vocabularies; empty slices fall back to the defaults.
func NewExtractor(subjects, states, parameters []string) *Extractor {
	if len(subjects) == 0 {
		subjects = DefaultSubjects
	}
	if len(states) == 0 {
		states = DefaultStates
	}
	if len(parameters) == 0 {
		parameters = DefaultParameters
	}
	subjectAlt := altGroup(subjects)
	stateAlt := altGroup(states)
	paramAlt := altGroup(parameters)

	return &Extractor{
		reqRx:   regexp.MustCompile(`(?i)\b(` + subjectAlt + `)\b\s+(shall|must|should|may)\s+([^.;]+?)(?:\s+(?:when|if|under)\s+([^.;]+))?[.;]`),
		capRx:   regexp.MustCompile(`(?i)\b(` + subjectAlt + `)\b\s+(?:supports?|is capable of)\s+([^.;]+)`),
		stateRx: regexp.MustCompile(`(?i)\b(` + subjectAlt + `)\b\s+(?:enters|transitions to|leaves|exits)\s+(` + stateAlt + `)\b`),
		paramRx: regexp.MustCompile(`(?i)\b(` + paramAlt + `)\b\s*(?:=|is\s+set\s+to|shall\s+be|must\s+be|should\s+be|set\s+to|is)\s*([^.;]+)`),
	}
}

func altGroup(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(quoted, "|")
}

// Extract mines triples from every chunk, in document order. Figure and
// table presence is summarized as has_diagram / has_table triples.
func (x *Extractor) Extract(chunks []chunk.Chunk) []Triple {
	var out []Triple
	for _, ch := range chunks {
		text := strings.ReplaceAll(ch.Content, "\n", " ")

		for _, m := range x.reqRx.FindAllStringSubmatch(text, -1) {
			t := Triple{
				Subject:  m[1],
				Relation: modalRelations[strings.ToLower(m[2])],
				Object:   strings.TrimSpace(m[3]),
			}
			if m[4] != "" {
				t.Condition = strings.TrimSpace(m[4])
			}
			out = append(out, x.meta(t, ch))
		}
		for _, m := range x.capRx.FindAllStringSubmatch(text, -1) {
			out = append(out, x.meta(Triple{
				Subject:  m[1],
				Relation: "supports",
				Object:   strings.TrimSpace(m[2]),
			}, ch))
		}
		for _, m := range x.stateRx.FindAllStringSubmatch(text, -1) {
			out = append(out, x.meta(Triple{
				Subject:  m[1],
				Relation: "transitions_to",
				Object:   m[2],
			}, ch))
		}
		for _, m := range x.paramRx.FindAllStringSubmatch(text, -1) {
			out = append(out, x.meta(Triple{
				Subject:  m[1],
				Relation: "equals",
				Object:   strings.TrimSpace(m[2]),
			}, ch))
		}

		label := strings.TrimSpace(ch.SectionID + " " + ch.Title)
		if len(ch.Figures) > 0 {
			out = append(out, Triple{Subject: label, Relation: "has_diagram", Object: fmt.Sprintf("%d", len(ch.Figures))})
		}
		if len(ch.Tables) > 0 {
			out = append(out, Triple{Subject: label, Relation: "has_table", Object: fmt.Sprintf("%d", len(ch.Tables))})
		}
	}
	return out
}

func (x *Extractor) meta(t Triple, ch chunk.Chunk) Triple {
	if x.IncludeMeta {
		t.Section = ch.SectionID
		t.Title = ch.Title
	}
	return t
}

// WriteJSONL persists triples one per line.
func WriteJSONL(path string, triples []Triple) (int, error) {
	return jsonl.WriteFile(path, triples)
}

// WriteJSON persists triples as a single JSON array.
func WriteJSON(path string, triples []Triple) error {
	return jsonl.WriteJSON(path, triples)
}
