package graph

import (
	"reflect"
	"testing"

	"github.com/docsift/docsift/chunk"
	"github.com/docsift/docsift/toc"
)

func strptr(s string) *string { return &s }

// ---------------------------------------------------------------------------
// ToC hierarchy
// ---------------------------------------------------------------------------

func TestBuildTOC(t *testing.T) {
	entries := []toc.Entry{
		{SectionID: "1", Title: "Overview", Page: 1, Level: 1},
		{SectionID: "1.1", Title: "Scope", Page: 2, Level: 2, ParentID: strptr("1")},
		{SectionID: "1.2", Title: "Terms", Page: 3, Level: 2, ParentID: strptr("1")},
		{SectionID: "2", Title: "Details", Page: 5, Level: 1},
	}

	g := BuildTOC(entries)

	if len(g.Nodes) != 4 {
		t.Fatalf("nodes = %d, want 4", len(g.Nodes))
	}
	if !g.Directed {
		t.Error("graph should be directed")
	}
	if got := g.Children("1"); !reflect.DeepEqual(got, []string{"1.1", "1.2"}) {
		t.Errorf("children of 1 = %v", got)
	}
	if got := g.Roots(); !reflect.DeepEqual(got, []string{"1", "2"}) {
		t.Errorf("roots = %v", got)
	}
	if len(g.Anomalies) != 0 {
		t.Errorf("anomalies = %v", g.Anomalies)
	}
}

func TestBuildTOCOrphanParent(t *testing.T) {
	// "3.2" declares parent "3", which is absent from the ToC.
	entries := []toc.Entry{
		{SectionID: "1", Title: "Overview", Page: 1, Level: 1},
		{SectionID: "3.2", Title: "Orphan", Page: 9, Level: 2, ParentID: strptr("3")},
	}

	g := BuildTOC(entries)

	if !reflect.DeepEqual(g.Anomalies, []string{"3.2"}) {
		t.Errorf("anomalies = %v", g.Anomalies)
	}
	// The synthesized parent exists and carries the child.
	if got := g.Children("3"); !reflect.DeepEqual(got, []string{"3.2"}) {
		t.Errorf("children of synthesized 3 = %v", got)
	}
	var found bool
	for _, n := range g.Nodes {
		if n.ID == "3" && n.Title == "3" && n.Level == 1 {
			found = true
		}
	}
	if !found {
		t.Error("synthesized parent node missing")
	}
}

// ---------------------------------------------------------------------------
// Triples
// ---------------------------------------------------------------------------

func TestExtractRequirementTriples(t *testing.T) {
	chunks := []chunk.Chunk{{
		SectionID: "4.1",
		Title:     "Rules",
		Content:   "The Source shall provide 5 volts when the Contract is active. The Sink may draw current.",
	}}

	x := NewExtractor(nil, nil, nil)
	x.IncludeMeta = true
	triples := x.Extract(chunks)

	var req *Triple
	for i := range triples {
		if triples[i].Subject == "Source" {
			req = &triples[i]
		}
	}
	if req == nil {
		t.Fatalf("no Source triple in %+v", triples)
	}
	if req.Relation != "requires" {
		t.Errorf("relation = %q, want requires", req.Relation)
	}
	if req.Object != "provide 5 volts" {
		t.Errorf("object = %q", req.Object)
	}
	if req.Condition != "the Contract is active" {
		t.Errorf("condition = %q", req.Condition)
	}
	if req.Section != "4.1" || req.Title != "Rules" {
		t.Errorf("meta = %q/%q", req.Section, req.Title)
	}
}

func TestExtractStateAndSummaryTriples(t *testing.T) {
	chunks := []chunk.Chunk{{
		SectionID: "5",
		Title:     "States",
		Content:   "The Port enters Attach on connection.",
		Figures:   []chunk.Caption{{ID: "5-1"}, {ID: "5-2"}},
		Tables:    []chunk.Caption{{ID: "5-3"}},
	}}

	triples := NewExtractor(nil, nil, nil).Extract(chunks)

	byRelation := make(map[string]Triple)
	for _, tr := range triples {
		byRelation[tr.Relation] = tr
	}
	if tr, ok := byRelation["transitions_to"]; !ok || tr.Object != "Attach" {
		t.Errorf("transition triple = %+v", tr)
	}
	if tr, ok := byRelation["has_diagram"]; !ok || tr.Object != "2" || tr.Subject != "5 States" {
		t.Errorf("has_diagram triple = %+v", tr)
	}
	if tr, ok := byRelation["has_table"]; !ok || tr.Object != "1" {
		t.Errorf("has_table triple = %+v", tr)
	}
}

func TestExtractParameterTriples(t *testing.T) {
	chunks := []chunk.Chunk{{
		SectionID: "6.2",
		Title:     "Power Rules",
		Content:   "The voltage is set to 20 V under an active contract. Timeout = 300 ms.",
	}}

	x := NewExtractor(nil, nil, nil)
	triples := x.Extract(chunks)

	byObject := make(map[string]Triple)
	for _, tr := range triples {
		if tr.Relation == "equals" {
			byObject[tr.Object] = tr
		}
	}
	if len(byObject) != 2 {
		t.Fatalf("want 2 equals triples, got %+v", triples)
	}
	if tr, ok := byObject["20 V under an active contract"]; !ok || tr.Subject != "voltage" {
		t.Errorf("voltage triple = %+v", tr)
	}
	if tr, ok := byObject["300 ms"]; !ok || tr.Subject != "Timeout" {
		t.Errorf("timeout triple = %+v", tr)
	}
}

func TestExtractParameterCustomVocabulary(t *testing.T) {
	x := NewExtractor(nil, nil, []string{"VBUS"})
	triples := x.Extract([]chunk.Chunk{{
		Content: "VBUS shall be 5 V before entry.",
	}})
	if len(triples) != 1 {
		t.Fatalf("want 1 triple, got %+v", triples)
	}
	if triples[0].Subject != "VBUS" || triples[0].Relation != "equals" || triples[0].Object != "5 V before entry" {
		t.Errorf("triple = %+v", triples[0])
	}
}

func TestExtractCustomVocabulary(t *testing.T) {
	x := NewExtractor([]string{"Gateway"}, []string{"Standby"}, nil)
	triples := x.Extract([]chunk.Chunk{{
		Content: "The Gateway enters Standby after timeout.",
	}})
	if len(triples) != 1 || triples[0].Subject != "Gateway" || triples[0].Object != "Standby" {
		t.Errorf("triples = %+v", triples)
	}
}
