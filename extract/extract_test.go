package extract

import "testing"

func TestNormalize(t *testing.T) {
	in := "Eﬀective conﬁguration   with\ttabs"
	want := "Effective configuration with tabs"
	if got := Normalize(in); got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
}

func TestNormalizeKeepsLines(t *testing.T) {
	in := "line one  \nline   two"
	want := "line one\nline two"
	if got := Normalize(in); got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
}

func TestStripDotLeaders(t *testing.T) {
	if got := StripDotLeaders("Overview ........ 12"); got != "Overview  12" {
		t.Errorf("StripDotLeaders = %q", got)
	}
	// Short runs stay: version numbers and ellipses are legitimate.
	if got := StripDotLeaders("Ver. 1.1"); got != "Ver. 1.1" {
		t.Errorf("StripDotLeaders touched short runs: %q", got)
	}
}

func TestDetectTOCRange(t *testing.T) {
	pages := []Page{
		{Number: 1, Text: "Title page"},
		{Number: 2, Text: "Table of Contents\n1 Overview ... 5"},
		{Number: 3, Text: "2 Details ... 9"},
		{Number: 4, Text: "List of Figures"},
		{Number: 5, Text: "1 Overview\nbody"},
	}
	r, ok := DetectTOCRange(pages)
	if !ok {
		t.Fatal("expected ToC range")
	}
	if r.Start != 2 || r.End != 3 {
		t.Errorf("range = %+v, want {2 3}", r)
	}
}

func TestDetectTOCRangeDefaultEnd(t *testing.T) {
	pages := []Page{
		{Number: 1, Text: "Table of Contents"},
		{Number: 2, Text: "entries"},
		{Number: 3, Text: "entries"},
	}
	r, ok := DetectTOCRange(pages)
	if !ok {
		t.Fatal("expected ToC range")
	}
	// No stop marker: end defaults to start+7, clamped to the last page.
	if r.Start != 1 || r.End != 3 {
		t.Errorf("range = %+v, want {1 3}", r)
	}
}

func TestDetectTOCRangeAbsent(t *testing.T) {
	pages := []Page{{Number: 1, Text: "no markers here"}}
	if _, ok := DetectTOCRange(pages); ok {
		t.Error("expected no ToC range")
	}
}

func TestSlice(t *testing.T) {
	pages := []Page{{Number: 1}, {Number: 2}, {Number: 3}, {Number: 4}}
	got := Slice(pages, PageRange{Start: 2, End: 3})
	if len(got) != 2 || got[0].Number != 2 || got[1].Number != 3 {
		t.Errorf("Slice = %+v", got)
	}
}
