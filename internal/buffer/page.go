package buffer

import "github.com/hypelessli/hypeless/internal/surface/editor"

// Page hosts a single buffer as an Ace editor so editor detection finds
// it the same way it finds one in a browser.
type Page struct {
	host string
	file *File
}

var _ editor.Page = (*Page)(nil)

// NewPage returns a page on host showing f.
func NewPage(f *File, host string) *Page {
	return &Page{host: host, file: f}
}

func (p *Page) Host() string { return p.host }

// Query returns the editor element for the Ace selector.
func (p *Page) Query(selector string) []editor.Element {
	if selector == ".ace_editor" {
		return []editor.Element{element{}}
	}
	return nil
}

// Global exposes the ace namespace.
func (p *Page) Global(name string) (any, bool) {
	if name == "ace" {
		return aceGlobal{p.file}, true
	}
	return nil, false
}

type aceGlobal struct{ file *File }

func (g aceGlobal) Edit(editor.Element) (editor.AceEditor, error) { return g.file, nil }

type element struct{}

func (element) Property(string) (any, bool) { return nil, false }
func (element) Visible() bool               { return true }
