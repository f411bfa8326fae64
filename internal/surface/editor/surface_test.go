package editor

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/hypelessli/hypeless/internal/matcher"
	"github.com/hypelessli/hypeless/internal/surface"
	"github.com/hypelessli/hypeless/internal/terms"
)

const latexDoc = `\documentclass{article}
\section{A novel approach}
\textbf{groundbreaking} results
We present a novel and groundbreaking method $novel$.
% first-principles novel
`

func testMatcher(t *testing.T) *matcher.Matcher {
	t.Helper()
	m, err := matcher.New(terms.New([]terms.Term{
		{Text: "novel", Explanation: "Let readers judge novelty."},
		{Text: "groundbreaking", Explanation: "Strong claim."},
	}, []string{"first-principles"}))
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestSurfaceScan(t *testing.T) {
	ace := newFakeAce(latexDoc)
	s := NewSurface(NewAce(ace), testMatcher(t))

	matches, err := s.Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	want := []Range{
		{Line: 1, StartColumn: 11, EndColumn: 16},
		{Line: 3, StartColumn: 13, EndColumn: 18},
		{Line: 3, StartColumn: 23, EndColumn: 37},
	}
	if len(matches) != len(want) {
		t.Fatalf("got %d matches, want %d: %+v", len(matches), len(want), matches)
	}
	for i, m := range matches {
		got := Range{m.Location.Line, m.Location.StartColumn, m.Location.EndColumn}
		if got != want[i] {
			t.Errorf("match %d at %+v, want %+v", i, got, want[i])
		}
		if m.ID != surface.MatchID(i) {
			t.Errorf("match %d id = %s", i, m.ID)
		}
	}
	if ace.markerCount() != 3 {
		t.Errorf("markers = %d, want 3", ace.markerCount())
	}
	if s.Degraded() {
		t.Error("ace supports decorations")
	}
}

func TestSurfaceRescanClearsDecorations(t *testing.T) {
	ace := newFakeAce(latexDoc)
	s := NewSurface(NewAce(ace), testMatcher(t))

	for i := 0; i < 3; i++ {
		if _, err := s.Scan(); err != nil {
			t.Fatal(err)
		}
	}
	if ace.markerCount() != 3 {
		t.Errorf("markers = %d after rescans, want 3", ace.markerCount())
	}

	ace.set("nothing to see")
	matches, _ := s.Scan()
	if len(matches) != 0 || ace.markerCount() != 0 {
		t.Errorf("stale highlights: %d matches, %d markers", len(matches), ace.markerCount())
	}
}

func TestSurfaceStates(t *testing.T) {
	ace := newFakeAce(latexDoc)
	s := NewSurface(NewAce(ace), testMatcher(t))
	matches, _ := s.Scan()

	s.SetPreview([]string{matches[0].ID, matches[1].ID}, true)
	if n := ace.classCount(surface.PreviewClass); n != 2 {
		t.Errorf("preview markers = %d, want 2", n)
	}
	s.SetPreview([]string{matches[0].ID, matches[1].ID}, false)
	if n := ace.classCount(surface.PreviewClass); n != 0 {
		t.Errorf("preview markers = %d, want 0", n)
	}

	s.Focus(matches[2].ID)
	if n := ace.classCount(surface.FocusClass); n != 1 {
		t.Errorf("focus markers = %d, want 1", n)
	}
	s.Unfocus(matches[2].ID)
	if n := ace.classCount(surface.FocusClass); n != 0 {
		t.Errorf("focus markers = %d, want 0", n)
	}

	s.SetHidden(true)
	if ace.markerCount() != 0 {
		t.Error("hidden surface should have no markers")
	}
	if len(s.Matches()) != 3 {
		t.Error("hiding must keep the matches")
	}
	s.SetHidden(false)
	if ace.markerCount() != 3 {
		t.Errorf("markers = %d after unhide, want 3", ace.markerCount())
	}
}

func TestSurfaceDegradedMode(t *testing.T) {
	view := &fakeCM6{doc: latexDoc}
	s := NewSurface(NewCodeMirror6(view), testMatcher(t))

	matches, err := s.Scan()
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 3 {
		t.Errorf("degraded scan found %d matches, want 3", len(matches))
	}
	if !s.Degraded() {
		t.Error("expected degraded mode without mark support")
	}
}

func TestSurfaceMonacoText(t *testing.T) {
	s := NewSurface(NewMonaco(&fakeMonaco{}), testMatcher(t))
	if _, err := s.Scan(); err == nil {
		t.Error("expected an error when the editor has no model")
	}
}

func TestSubscribeDebouncesEdits(t *testing.T) {
	ace := newFakeAce(latexDoc)
	s := NewSurface(NewAce(ace), testMatcher(t))

	var runs atomic.Int32
	cancel := s.Subscribe(30*time.Millisecond, func() { runs.Add(1) })

	for i := 0; i < 5; i++ {
		ace.set(latexDoc)
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(150 * time.Millisecond)
	if got := runs.Load(); got != 1 {
		t.Errorf("runs = %d, want 1", got)
	}

	cancel()
	ace.set(latexDoc)
	time.Sleep(80 * time.Millisecond)
	if got := runs.Load(); got != 1 {
		t.Errorf("runs = %d after cancel, want 1", got)
	}
}

func TestSurfaceSkipsFailingDecorations(t *testing.T) {
	ed := &brittleEditor{
		text:      "a novel idea\nnovel again\nthe last novel",
		panicLine: 0,
		errLine:   1,
	}
	s := NewSurface(ed, testMatcher(t))

	matches, err := s.Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("got %d matches, want all 3 reported", len(matches))
	}
	if len(ed.decorated) != 1 || ed.decorated[0].Line != 2 {
		t.Errorf("decorated = %+v, want only line 2", ed.decorated)
	}
	if s.Degraded() {
		t.Error("a failing decoration is not degraded mode")
	}

	// Later repaints go through the same guard.
	s.Focus(matches[0].ID)
	s.SetHidden(true)
	s.SetHidden(false)
	if len(ed.decorated) != 1 {
		t.Errorf("decorated = %+v after repaint", ed.decorated)
	}
}

func TestSurfaceSurvivesPanickingClear(t *testing.T) {
	ed := &brittleEditor{text: "a novel idea", panicLine: -1, errLine: -1, panicClear: true}
	s := NewSurface(ed, testMatcher(t))

	matches, err := s.Scan()
	if err != nil || len(matches) != 1 {
		t.Fatalf("Scan = %d matches, %v", len(matches), err)
	}
	s.Clear()
	if len(s.Matches()) != 0 {
		t.Error("Clear should forget the matches")
	}
}
