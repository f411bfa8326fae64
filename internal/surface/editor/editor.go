// Package editor highlights hype terms inside a live structured-text editor.
//
// Each supported editor is wrapped in an adapter behind the Editor
// interface; the rest of the package never looks at the editor kind.
package editor

import "errors"

// Kind names a supported editor implementation.
type Kind string

const (
	KindCodeMirror6 Kind = "codemirror6"
	KindAce         Kind = "ace"
	KindMonaco      Kind = "monaco"
	KindCodeMirror5 Kind = "codemirror"
)

var (
	// ErrNoDecorations is returned by Decorate when the editor offers no
	// way to paint a range.
	ErrNoDecorations = errors.New("editor: decorations not supported")
	// ErrDetectionFailed is returned when no editor with content appeared
	// within the retry budget.
	ErrDetectionFailed = errors.New("editor: no editor with content detected")
)

// Range is a span on one line. Columns count runes.
type Range struct {
	Line        int `json:"line"`
	StartColumn int `json:"startColumn"`
	EndColumn   int `json:"endColumn"`
}

// Editor is the capability set the surface needs from an editor.
type Editor interface {
	Kind() Kind
	// Text returns the whole buffer.
	Text() (string, error)
	// OnChange registers fn to run after every content change and returns
	// a function that unregisters it.
	OnChange(fn func()) (cancel func())
	// Decorate paints r with the CSS class.
	Decorate(r Range, class string) error
	// ClearDecorations removes everything Decorate added.
	ClearDecorations()
}
