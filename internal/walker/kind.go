package walker

import (
	"path/filepath"
	"strings"
)

// Kind is the document flavor a file is scanned as.
type Kind string

const (
	KindHTML     Kind = "html"
	KindLaTeX    Kind = "latex"
	KindMarkdown Kind = "markdown"
	KindText     Kind = "text"
	KindUnknown  Kind = ""
)

// extensionToKind maps file extensions to document kinds.
var extensionToKind = map[string]Kind{
	".html":  KindHTML,
	".htm":   KindHTML,
	".xhtml": KindHTML,
	".tex":   KindLaTeX,
	".ltx":   KindLaTeX,
	".md":    KindMarkdown,
	".txt":   KindText,
}

// DetectKind returns the document kind for a file name, or KindUnknown.
func DetectKind(name string) Kind {
	return extensionToKind[strings.ToLower(filepath.Ext(name))]
}

// Structured reports whether the kind carries markup that must not be
// flagged, such as LaTeX commands.
func (k Kind) Structured() bool { return k == KindLaTeX }
