// Package surface defines what the session needs from an annotated
// substrate, whether an HTML document or a live editor buffer.
package surface

import (
	"fmt"
	"strings"

	"github.com/hypelessli/hypeless/internal/annotation"
)

// Visual state class names shared by both surfaces.
const (
	HighlightClass = "hypeless-highlight"
	PreviewClass   = "hypeless-preview"
	FocusClass     = "hypeless-focus"
	HiddenClass    = "hypeless-hidden"
)

// Surface owns the live highlights of one substrate. Scan tears down the
// previous highlights before placing new ones.
type Surface interface {
	annotation.Highlighter

	// Scan highlights every accepted match and returns them in document
	// order.
	Scan() ([]annotation.Match, error)
	// Clear removes all highlights.
	Clear()
	// SetHidden hides or shows the highlights without removing them.
	SetHidden(hidden bool)
	// Structured reports whether the surface is a markup editor buffer.
	Structured() bool
}

// MatchID returns the id of the n-th match of a scan.
func MatchID(n int) string {
	return fmt.Sprintf("hypeless-match-%d", n)
}

// ClassList is a space separated HTML class attribute value.
type ClassList string

// Has reports whether c is in the list.
func (l ClassList) Has(c string) bool {
	for _, f := range strings.Fields(string(l)) {
		if f == c {
			return true
		}
	}
	return false
}

// With returns the list with c added or removed.
func (l ClassList) With(c string, on bool) ClassList {
	var out []string
	for _, f := range strings.Fields(string(l)) {
		if f != c {
			out = append(out, f)
		}
	}
	if on {
		out = append(out, c)
	}
	return ClassList(strings.Join(out, " "))
}
