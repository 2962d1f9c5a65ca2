package section

import "testing"

// ---------------------------------------------------------------------------
// ID value type
// ---------------------------------------------------------------------------

func TestLevelAndParent(t *testing.T) {
	tests := []struct {
		id     ID
		level  int
		parent ID
	}{
		{"1", 1, ""},
		{"4.3", 2, "4"},
		{"4.3.2", 3, "4.3"},
		{"10.1.2.3", 4, "10.1.2"},
		{"A.1", 2, "A"},
	}
	for _, tt := range tests {
		if got := tt.id.Level(); got != tt.level {
			t.Errorf("Level(%q) = %d, want %d", tt.id, got, tt.level)
		}
		if got := tt.id.Parent(); got != tt.parent {
			t.Errorf("Parent(%q) = %q, want %q", tt.id, got, tt.parent)
		}
	}
}

func TestCompareNumeric(t *testing.T) {
	tests := []struct {
		a, b ID
		want int
	}{
		{"4.9", "4.10", -1}, // numeric, not lexical
		{"10", "2", 1},
		{"1", "1", 0},
		{"4", "4.1", -1}, // prefix sorts first
		{"4.1", "4", 1},
		{"2.3", "2.3", 0},
		{"9", "A", -1}, // appendix letters after all numbers
		{"A", "B.1", -1},
	}
	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("4.3."); got != "4.3" {
		t.Errorf("Normalize trailing dot: got %q, want %q", got, "4.3")
	}
	if got := Normalize(" 5–1 "); got != "5-1" {
		t.Errorf("Normalize unicode dash: got %q, want %q", got, "5-1")
	}
}

// ---------------------------------------------------------------------------
// Grammar modes
// ---------------------------------------------------------------------------

func TestBodyGrammar(t *testing.T) {
	g := New(ModeBody)

	m := g.Match("4.3.2 Power Negotiation")
	if m == nil {
		t.Fatal("expected body heading match")
	}
	if m.ID != "4.3.2" || m.Title != "Power Negotiation" || m.Page != 0 {
		t.Errorf("got %+v, want id=4.3.2 title=Power Negotiation page=0", m)
	}

	if g.Match("no heading here") != nil {
		t.Error("plain text should not match body grammar")
	}
	if g.Match("0 Zero chapter") != nil {
		t.Error("id component 0 should not match")
	}
}

func TestTOCGrammarTolerance(t *testing.T) {
	g := New(ModeTOC)

	// Dot-leader run length and separator width must not matter.
	lines := []string{
		"4.3.2 Power Negotiation ............ 47",
		"4.3.2  Power Negotiation   47",
		"4.3.2 Power Negotiation .. ... .... 47",
		"   4.3.2 Power Negotiation\t47",
	}
	for _, line := range lines {
		m := g.Match(line)
		if m == nil {
			t.Fatalf("no match for %q", line)
		}
		if m.ID != "4.3.2" || m.Title != "Power Negotiation" || m.Page != 47 {
			t.Errorf("line %q: got (%q, %q, %d)", line, m.ID, m.Title, m.Page)
		}
	}
}

func TestTOCGrammarTitleWithPeriods(t *testing.T) {
	g := New(ModeTOC)
	m := g.Match("2.1 Ver. 1.1 Compatibility ..... 12")
	if m == nil {
		t.Fatal("expected match")
	}
	if m.Title != "Ver. 1.1 Compatibility" {
		t.Errorf("title corrupted by leader stripping: %q", m.Title)
	}
	if m.Page != 12 {
		t.Errorf("page = %d, want 12", m.Page)
	}
}

func TestTOCGrammarRequiresPage(t *testing.T) {
	g := New(ModeTOC)
	if g.Match("4.3.2 Power Negotiation") != nil {
		t.Error("ToC grammar must require a trailing page number")
	}
}

func TestPlausible(t *testing.T) {
	tests := []struct {
		title string
		want  bool
	}{
		{"Power Negotiation", true},
		{"ab", false},              // too short
		{"1234 5678", false},       // no letters
		{"a b c d e f g h", false}, // isolated letter run
		{"Cable 5A Operation", true},
	}
	for _, tt := range tests {
		m := &Match{ID: "1", Title: tt.title}
		if got := Plausible(m); got != tt.want {
			t.Errorf("Plausible(%q) = %v, want %v", tt.title, got, tt.want)
		}
	}
}

func TestPlausibleAppendixLetter(t *testing.T) {
	if Plausible(&Match{ID: "A", Title: "widget shall be round and this is clearly prose text"}) {
		t.Error("prose starting with a bare letter must not pass")
	}
	if !Plausible(&Match{ID: "A", Title: "Message Types"}) {
		t.Error("appendix heading should pass")
	}
}
