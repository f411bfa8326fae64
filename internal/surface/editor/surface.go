package editor

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/hypelessli/hypeless/internal/annotation"
	"github.com/hypelessli/hypeless/internal/matcher"
	"github.com/hypelessli/hypeless/internal/surface"
	"github.com/hypelessli/hypeless/internal/syntax"
)

// Surface scans an editor buffer line by line and mirrors the matches as
// editor decorations. It is not safe for concurrent use; the session
// serializes calls.
type Surface struct {
	editor  Editor
	matcher *matcher.Matcher

	matches  []annotation.Match
	preview  map[string]bool
	focused  map[string]bool
	hidden   bool
	degraded bool
}

var _ surface.Surface = (*Surface)(nil)

// NewSurface returns a surface over ed.
func NewSurface(ed Editor, m *matcher.Matcher) *Surface {
	return &Surface{
		editor:  ed,
		matcher: m,
		preview: make(map[string]bool),
		focused: make(map[string]bool),
	}
}

// Editor returns the wrapped editor.
func (s *Surface) Editor() Editor { return s.editor }

// Structured is always true for editor buffers.
func (s *Surface) Structured() bool { return true }

// Degraded reports whether the last scan found that the editor cannot be
// decorated. Matches are still reported in that case.
func (s *Surface) Degraded() bool { return s.degraded }

// Scan clears the previous decorations, matches every line outside its
// markup zones and decorates each accepted match.
func (s *Surface) Scan() ([]annotation.Match, error) {
	s.Clear()
	if s.matcher == nil || s.matcher.Empty() {
		return nil, nil
	}
	text, err := s.editor.Text()
	if err != nil {
		return nil, fmt.Errorf("reading %s content: %w", s.editor.Kind(), err)
	}

	var matches []annotation.Match
	for i, line := range strings.Split(text, "\n") {
		found, err := s.scanLine(i, strings.TrimSuffix(line, "\r"), len(matches))
		if err != nil {
			log.Printf("editor: skipping line %d: %v", i+1, err)
			continue
		}
		matches = append(matches, found...)
	}
	s.matches = matches
	s.degraded = false
	s.redraw()
	return matches, nil
}

func (s *Surface) scanLine(n int, line string, next int) (matches []annotation.Match, err error) {
	defer func() {
		if r := recover(); r != nil {
			matches, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()
	hits := s.matcher.Find(line)
	if len(hits) == 0 {
		return nil, nil
	}
	zones := syntax.Zones(line)
	for _, h := range hits {
		if syntax.Excluded(zones, h.Offset, h.End()) {
			continue
		}
		matches = append(matches, annotation.Match{
			ID:          surface.MatchID(next + len(matches)),
			Term:        h.Term,
			Text:        h.Text,
			Explanation: h.Explanation,
			Location: annotation.Location{
				Line:        n,
				StartColumn: h.Offset,
				EndColumn:   h.End(),
			},
		})
	}
	return matches, nil
}

// Matches returns the matches of the last scan.
func (s *Surface) Matches() []annotation.Match { return s.matches }

// Clear removes every decoration and forgets the last scan.
func (s *Surface) Clear() {
	s.clearDecorations()
	s.matches = nil
	s.preview = make(map[string]bool)
	s.focused = make(map[string]bool)
}

// SetHidden removes the decorations while hidden and restores them after.
func (s *Surface) SetHidden(hidden bool) {
	s.hidden = hidden
	s.redraw()
}

// SetPreview toggles the preview state of the given matches.
func (s *Surface) SetPreview(ids []string, on bool) {
	for _, id := range ids {
		if on {
			s.preview[id] = true
		} else {
			delete(s.preview, id)
		}
	}
	s.redraw()
}

// Focus marks one match as focused.
func (s *Surface) Focus(id string) {
	s.focused[id] = true
	s.redraw()
}

// Unfocus clears the focus state of a match.
func (s *Surface) Unfocus(id string) {
	delete(s.focused, id)
	s.redraw()
}

// redraw repaints all decorations from the current match states. Editors
// without decorations switch the surface to degraded mode. A match the
// adapter fails to decorate is logged and skipped.
func (s *Surface) redraw() {
	s.clearDecorations()
	if s.hidden || s.degraded {
		return
	}
	for _, m := range s.matches {
		err := s.decorate(m)
		if errors.Is(err, ErrNoDecorations) {
			log.Printf("editor: %s has no decoration support, showing matches in the panel only", s.editor.Kind())
			s.degraded = true
			return
		}
		if err != nil {
			log.Printf("editor: decorating %s: %v", m.ID, err)
		}
	}
}

func (s *Surface) decorate(m annotation.Match) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return s.editor.Decorate(Range{
		Line:        m.Location.Line,
		StartColumn: m.Location.StartColumn,
		EndColumn:   m.Location.EndColumn,
	}, s.classes(m.ID))
}

func (s *Surface) clearDecorations() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("editor: clearing %s decorations: panic: %v", s.editor.Kind(), r)
		}
	}()
	s.editor.ClearDecorations()
}

func (s *Surface) classes(id string) string {
	cl := surface.ClassList(surface.HighlightClass)
	cl = cl.With(surface.PreviewClass, s.preview[id])
	cl = cl.With(surface.FocusClass, s.focused[id])
	return string(cl)
}

// Subscribe runs fn after edits settle for window. The returned function
// unsubscribes and drops any pending run.
func (s *Surface) Subscribe(window time.Duration, fn func()) (cancel func()) {
	if window <= 0 {
		window = DefaultDebounce
	}
	d := NewDebouncer(window, fn)
	off := s.editor.OnChange(d.Trigger)
	return func() {
		if off != nil {
			off()
		}
		d.Stop()
	}
}
