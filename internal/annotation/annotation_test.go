package annotation

import (
	"fmt"
	"reflect"
	"testing"
)

type recordingHighlighter struct {
	preview map[string]bool
	focused []string
}

func (r *recordingHighlighter) SetPreview(ids []string, on bool) {
	if r.preview == nil {
		r.preview = make(map[string]bool)
	}
	for _, id := range ids {
		r.preview[id] = on
	}
}

func (r *recordingHighlighter) Focus(id string)   { r.focused = append(r.focused, id) }
func (r *recordingHighlighter) Unfocus(id string) {}

func matchesFor(terms ...string) []Match {
	out := make([]Match, len(terms))
	for i, term := range terms {
		out[i] = Match{ID: fmt.Sprintf("m%d", i), Term: term, Text: term, Explanation: "why " + term}
	}
	return out
}

func TestBuildGroupsAndCounts(t *testing.T) {
	idx := Build(matchesFor("novel", "new", "novel", "unique", "new", "novel"))

	if idx.Total() != 6 {
		t.Errorf("Total = %d, want 6", idx.Total())
	}
	want := map[string]int{"novel": 3, "new": 2, "unique": 1}
	if got := idx.Counts(); !reflect.DeepEqual(got, want) {
		t.Errorf("Counts = %v, want %v", got, want)
	}

	g, ok := idx.Group("novel")
	if !ok {
		t.Fatal("missing novel group")
	}
	if got := g.IDs(); !reflect.DeepEqual(got, []string{"m0", "m2", "m5"}) {
		t.Errorf("novel ids = %v, want document order", got)
	}
	if g.Explanation() != "why novel" {
		t.Errorf("Explanation = %q", g.Explanation())
	}
}

func TestGroupsOrder(t *testing.T) {
	idx := Build(matchesFor("b", "a", "c", "a", "c"))
	var got []string
	for _, g := range idx.Groups() {
		got = append(got, g.Term)
	}
	if want := []string{"a", "c", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestNextRoundRobin(t *testing.T) {
	for n := 1; n <= 4; n++ {
		terms := make([]string, n)
		for i := range terms {
			terms[i] = "novel"
		}
		idx := Build(matchesFor(terms...))

		seen := make(map[string]int)
		var firstPass []string
		for i := 0; i < n; i++ {
			m, ok := idx.Next("novel")
			if !ok {
				t.Fatal("Next returned false")
			}
			seen[m.ID]++
			firstPass = append(firstPass, m.ID)
		}
		if len(seen) != n {
			t.Errorf("n=%d: visited %d distinct matches", n, len(seen))
		}
		m, _ := idx.Next("novel")
		if m.ID != firstPass[0] {
			t.Errorf("n=%d: after a full cycle got %s, want %s", n, m.ID, firstPass[0])
		}
	}
}

func TestNextUnknownTerm(t *testing.T) {
	idx := Build(nil)
	if _, ok := idx.Next("novel"); ok {
		t.Error("expected no match in empty index")
	}
	if idx.Total() != 0 || len(idx.Groups()) != 0 {
		t.Error("expected empty index")
	}
}

func TestSetPreviewAndLookup(t *testing.T) {
	idx := Build(matchesFor("novel", "new", "novel"))
	h := &recordingHighlighter{}

	idx.SetPreview(h, "novel", true)
	if !h.preview["m0"] || !h.preview["m2"] || h.preview["m1"] {
		t.Errorf("preview = %v", h.preview)
	}
	idx.SetPreview(h, "novel", false)
	if h.preview["m0"] || h.preview["m2"] {
		t.Errorf("preview not cleared: %v", h.preview)
	}
	idx.SetPreview(nil, "novel", true)
	idx.SetPreview(h, "missing", true)

	m, ok := idx.Lookup("m1")
	if !ok || m.Term != "new" {
		t.Errorf("Lookup(m1) = %+v, %v", m, ok)
	}
	if _, ok := idx.Lookup("nope"); ok {
		t.Error("expected unknown id to miss")
	}
}
