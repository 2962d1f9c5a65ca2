package validate

import (
	"reflect"
	"testing"

	"github.com/docsift/docsift/chunk"
	"github.com/docsift/docsift/toc"
)

func entry(id string, page int) toc.Entry {
	return toc.Entry{SectionID: id, Title: "t", Page: page, Level: 1}
}

func chunkFor(id string) chunk.Chunk {
	return chunk.Chunk{SectionID: id, SectionPath: id + " t", Title: "t", PageRange: "1"}
}

func TestAllMatched(t *testing.T) {
	entries := []toc.Entry{entry("1", 1), entry("1.1", 2)}
	chunks := []chunk.Chunk{chunkFor("1"), chunkFor("1.1")}

	r := Run(entries, chunks)

	if !reflect.DeepEqual(r.MatchedSections, []string{"1", "1.1"}) {
		t.Errorf("matched = %v", r.MatchedSections)
	}
	if len(r.MissingSections) != 0 || len(r.ExtraSections) != 0 || len(r.OutOfOrderSections) != 0 {
		t.Errorf("unexpected classifications: %+v", r)
	}
	if r.TOCSectionCount != 2 || r.ParsedSectionCount != 2 {
		t.Errorf("counts = %d/%d", r.TOCSectionCount, r.ParsedSectionCount)
	}
}

func TestMissingSection(t *testing.T) {
	entries := []toc.Entry{entry("1", 1), entry("2", 5)}
	chunks := []chunk.Chunk{chunkFor("2")}

	r := Run(entries, chunks)

	if !reflect.DeepEqual(r.MissingSections, []string{"1"}) {
		t.Errorf("missing = %v", r.MissingSections)
	}
	if !reflect.DeepEqual(r.MatchedSections, []string{"2"}) {
		t.Errorf("matched = %v", r.MatchedSections)
	}
}

func TestReversedOrder(t *testing.T) {
	entries := []toc.Entry{entry("1", 1), entry("2", 5)}
	chunks := []chunk.Chunk{chunkFor("2"), chunkFor("1")}

	r := Run(entries, chunks)

	// Both ids are present; the later-processed entry whose chunk index does
	// not advance is flagged out of order (and still matched).
	if !reflect.DeepEqual(r.MatchedSections, []string{"1", "2"}) {
		t.Errorf("matched = %v", r.MatchedSections)
	}
	if !reflect.DeepEqual(r.OutOfOrderSections, []string{"2"}) {
		t.Errorf("out_of_order = %v", r.OutOfOrderSections)
	}
	if len(r.MissingSections) != 0 {
		t.Errorf("missing = %v", r.MissingSections)
	}
}

func TestExtraChunks(t *testing.T) {
	entries := []toc.Entry{entry("1", 1)}
	chunks := []chunk.Chunk{chunkFor("1"), chunkFor("9.9")}

	r := Run(entries, chunks)

	if !reflect.DeepEqual(r.ExtraSections, []string{"9.9"}) {
		t.Errorf("extra = %v", r.ExtraSections)
	}
}

func TestDuplicateChunkIDFirstWins(t *testing.T) {
	entries := []toc.Entry{entry("1", 1), entry("2", 5)}
	chunks := []chunk.Chunk{chunkFor("1"), chunkFor("2"), chunkFor("1")}

	r := Run(entries, chunks)

	if !reflect.DeepEqual(r.MatchedSections, []string{"1", "2"}) {
		t.Errorf("matched = %v", r.MatchedSections)
	}
	// The duplicate "1" chunk was not consumed by any ToC entry.
	if !reflect.DeepEqual(r.ExtraSections, []string{"1"}) {
		t.Errorf("extra = %v", r.ExtraSections)
	}
}

func TestNormalizedIDEquality(t *testing.T) {
	entries := []toc.Entry{entry("4.3.", 1)} // trailing dot from sloppy ToC row
	chunks := []chunk.Chunk{chunkFor("4.3")}

	r := Run(entries, chunks)
	if len(r.MatchedSections) != 1 {
		t.Errorf("normalized ids should match: %+v", r)
	}
}

func TestTotalsInvariant(t *testing.T) {
	entries := []toc.Entry{entry("1", 1), entry("2", 2), entry("3", 3)}
	chunks := []chunk.Chunk{chunkFor("3"), chunkFor("1")}

	r := Run(entries, chunks)

	if len(r.MatchedSections)+len(r.MissingSections) != r.TOCSectionCount {
		t.Errorf("matched(%d) + missing(%d) != toc(%d)",
			len(r.MatchedSections), len(r.MissingSections), r.TOCSectionCount)
	}
	chunkIDs := map[string]bool{"3": true, "1": true}
	for _, id := range r.MatchedSections {
		if !chunkIDs[id] {
			t.Errorf("matched id %q not in chunk set", id)
		}
	}
}
