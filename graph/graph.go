// Package graph reconstructs the section hierarchy of a parsed table of
// contents and extracts lightweight requirement triples from chunk content.
package graph

import (
	"github.com/docsift/docsift/jsonl"
	"github.com/docsift/docsift/section"
	"github.com/docsift/docsift/toc"
)

// Node is one section in the ToC hierarchy.
type Node struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Page  int    `json:"page,omitempty"`
	Level int    `json:"level"`
}

// Link is a parent→child edge.
type Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// TOCGraph is a serializable tree (forest when several level-1 roots exist)
// of ToC entries keyed by section id, children in document order.
type TOCGraph struct {
	Directed bool   `json:"directed"`
	Nodes    []Node `json:"nodes"`
	Links    []Link `json:"links"`

	// Anomalies lists section ids whose declared parent was absent from
	// the ToC; such entries are attached under a synthesized parent node
	// rather than dropped.
	Anomalies []string `json:"anomalies,omitempty"`
}

// BuildTOC builds the hierarchy from parent ids. Read-only after
// construction.
func BuildTOC(entries []toc.Entry) *TOCGraph {
	g := &TOCGraph{Directed: true}

	known := make(map[string]bool, len(entries))
	for _, e := range entries {
		if !known[e.SectionID] {
			known[e.SectionID] = true
			g.Nodes = append(g.Nodes, Node{
				ID:    e.SectionID,
				Title: e.Title,
				Page:  e.Page,
				Level: e.Level,
			})
		}
	}

	for _, e := range entries {
		parent := parentOf(e)
		if parent == "" {
			continue
		}
		if !known[parent] {
			// Declared parent missing from the ToC: synthesize it as a
			// root so the child is not silently dropped.
			known[parent] = true
			g.Nodes = append(g.Nodes, Node{
				ID:    parent,
				Title: parent,
				Level: section.ID(parent).Level(),
			})
			g.Anomalies = append(g.Anomalies, e.SectionID)
		}
		g.Links = append(g.Links, Link{Source: parent, Target: e.SectionID})
	}

	return g
}

func parentOf(e toc.Entry) string {
	if e.ParentID != nil {
		return *e.ParentID
	}
	return string(section.ID(e.SectionID).Parent())
}

// Children returns the ids of g's direct children of id, in document order.
func (g *TOCGraph) Children(id string) []string {
	var out []string
	for _, l := range g.Links {
		if l.Source == id {
			out = append(out, l.Target)
		}
	}
	return out
}

// Roots returns the ids that have no parent edge, in document order.
func (g *TOCGraph) Roots() []string {
	hasParent := make(map[string]bool, len(g.Links))
	for _, l := range g.Links {
		hasParent[l.Target] = true
	}
	var out []string
	for _, n := range g.Nodes {
		if !hasParent[n.ID] {
			out = append(out, n.ID)
		}
	}
	return out
}

// WriteJSON persists the graph as a single JSON document.
func (g *TOCGraph) WriteJSON(path string) error {
	return jsonl.WriteJSON(path, g)
}
