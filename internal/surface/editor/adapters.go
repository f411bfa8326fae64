package editor

import (
	"errors"
	"strings"
)

// CM6View is the part of a CodeMirror 6 EditorView the adapter uses.
type CM6View interface {
	Doc() string
	// OnUpdate registers an update listener. docChanged is true when the
	// transaction changed the document.
	OnUpdate(fn func(docChanged bool)) (remove func())
}

// CM6Marker is implemented by views that can apply mark decorations.
// from and to are rune offsets into the document.
type CM6Marker interface {
	Mark(from, to int, class string) (clear func(), err error)
}

type cm6Adapter struct {
	view  CM6View
	marks []func()
}

// NewCodeMirror6 wraps a CodeMirror 6 view.
func NewCodeMirror6(view CM6View) Editor { return &cm6Adapter{view: view} }

func (a *cm6Adapter) Kind() Kind            { return KindCodeMirror6 }
func (a *cm6Adapter) Text() (string, error) { return a.view.Doc(), nil }

func (a *cm6Adapter) OnChange(fn func()) func() {
	return a.view.OnUpdate(func(docChanged bool) {
		if docChanged {
			fn()
		}
	})
}

func (a *cm6Adapter) Decorate(r Range, class string) error {
	marker, ok := a.view.(CM6Marker)
	if !ok {
		return ErrNoDecorations
	}
	start, ok := lineStart(a.view.Doc(), r.Line)
	if !ok {
		return errors.New("editor: line out of range")
	}
	undo, err := marker.Mark(start+r.StartColumn, start+r.EndColumn, class)
	if err != nil {
		return err
	}
	a.marks = append(a.marks, undo)
	return nil
}

func (a *cm6Adapter) ClearDecorations() {
	for _, undo := range a.marks {
		if undo != nil {
			undo()
		}
	}
	a.marks = nil
}

// lineStart returns the rune offset of the first character of line.
func lineStart(doc string, line int) (int, bool) {
	if line < 0 {
		return 0, false
	}
	offset := 0
	for i := 0; i < line; i++ {
		nl := strings.IndexByte(doc, '\n')
		if nl < 0 {
			return 0, false
		}
		offset += len([]rune(doc[:nl])) + 1
		doc = doc[nl+1:]
	}
	return offset, true
}

// AceRange is a zero-based row/column range.
type AceRange struct {
	StartRow, StartColumn, EndRow, EndColumn int
}

// AceSession is the edit session owning an Ace editor's markers.
type AceSession interface {
	AddMarker(r AceRange, class, kind string) int
	RemoveMarker(id int)
}

// AceEditor is the part of an Ace editor the adapter uses.
type AceEditor interface {
	GetValue() string
	On(event string, fn func()) (off func())
	Session() AceSession
}

type aceAdapter struct {
	ed      AceEditor
	markers []int
}

// NewAce wraps an Ace editor.
func NewAce(ed AceEditor) Editor { return &aceAdapter{ed: ed} }

func (a *aceAdapter) Kind() Kind                { return KindAce }
func (a *aceAdapter) Text() (string, error)     { return a.ed.GetValue(), nil }
func (a *aceAdapter) OnChange(fn func()) func() { return a.ed.On("change", fn) }

func (a *aceAdapter) Decorate(r Range, class string) error {
	id := a.ed.Session().AddMarker(AceRange{
		StartRow:    r.Line,
		StartColumn: r.StartColumn,
		EndRow:      r.Line,
		EndColumn:   r.EndColumn,
	}, class, "text")
	a.markers = append(a.markers, id)
	return nil
}

func (a *aceAdapter) ClearDecorations() {
	session := a.ed.Session()
	for _, id := range a.markers {
		session.RemoveMarker(id)
	}
	a.markers = nil
}

// MonacoModel is a Monaco text model.
type MonacoModel interface {
	GetValue() string
}

// Disposable releases a Monaco subscription.
type Disposable interface {
	Dispose()
}

// MonacoRange is a one-based Monaco range.
type MonacoRange struct {
	StartLineNumber, StartColumn, EndLineNumber, EndColumn int
}

// MonacoDecoration is a decoration with an inline class.
type MonacoDecoration struct {
	Range           MonacoRange
	InlineClassName string
}

// MonacoEditor is the part of a Monaco code editor the adapter uses.
type MonacoEditor interface {
	GetModel() MonacoModel
	OnDidChangeModelContent(fn func()) Disposable
	DeltaDecorations(old []string, decorations []MonacoDecoration) []string
}

type monacoAdapter struct {
	ed  MonacoEditor
	ids []string
}

// NewMonaco wraps a Monaco editor.
func NewMonaco(ed MonacoEditor) Editor { return &monacoAdapter{ed: ed} }

func (a *monacoAdapter) Kind() Kind { return KindMonaco }

func (a *monacoAdapter) Text() (string, error) {
	model := a.ed.GetModel()
	if model == nil {
		return "", errors.New("editor: monaco editor has no model")
	}
	return model.GetValue(), nil
}

func (a *monacoAdapter) OnChange(fn func()) func() {
	d := a.ed.OnDidChangeModelContent(fn)
	return func() {
		if d != nil {
			d.Dispose()
		}
	}
}

func (a *monacoAdapter) Decorate(r Range, class string) error {
	ids := a.ed.DeltaDecorations(nil, []MonacoDecoration{{
		Range: MonacoRange{
			StartLineNumber: r.Line + 1,
			StartColumn:     r.StartColumn + 1,
			EndLineNumber:   r.Line + 1,
			EndColumn:       r.EndColumn + 1,
		},
		InlineClassName: class,
	}})
	a.ids = append(a.ids, ids...)
	return nil
}

func (a *monacoAdapter) ClearDecorations() {
	if len(a.ids) > 0 {
		a.ed.DeltaDecorations(a.ids, nil)
	}
	a.ids = nil
}

// Pos is a CodeMirror 5 position.
type Pos struct {
	Line, Ch int
}

// TextMarker is a CodeMirror 5 mark.
type TextMarker interface {
	Clear()
}

// CodeMirror5 is the part of a CodeMirror 5 instance the adapter uses.
type CodeMirror5 interface {
	GetValue() string
	On(event string, fn func()) (off func())
	MarkText(from, to Pos, className string) TextMarker
}

type cm5Adapter struct {
	cm      CodeMirror5
	markers []TextMarker
}

// NewCodeMirror5 wraps a CodeMirror 5 instance.
func NewCodeMirror5(cm CodeMirror5) Editor { return &cm5Adapter{cm: cm} }

func (a *cm5Adapter) Kind() Kind                { return KindCodeMirror5 }
func (a *cm5Adapter) Text() (string, error)     { return a.cm.GetValue(), nil }
func (a *cm5Adapter) OnChange(fn func()) func() { return a.cm.On("change", fn) }

func (a *cm5Adapter) Decorate(r Range, class string) error {
	m := a.cm.MarkText(Pos{r.Line, r.StartColumn}, Pos{r.Line, r.EndColumn}, class)
	if m == nil {
		return ErrNoDecorations
	}
	a.markers = append(a.markers, m)
	return nil
}

func (a *cm5Adapter) ClearDecorations() {
	for _, m := range a.markers {
		m.Clear()
	}
	a.markers = nil
}
