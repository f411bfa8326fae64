package editor

import (
	"errors"
	"strings"
	"sync"
)

// fakeAce is an Ace editor with an in-memory session.
type fakeAce struct {
	mu        sync.Mutex
	value     string
	listeners map[int]func()
	nextL     int
	markers   map[int]AceRange
	classes   map[int]string
	nextM     int
}

func newFakeAce(value string) *fakeAce {
	return &fakeAce{
		value:     value,
		listeners: make(map[int]func()),
		markers:   make(map[int]AceRange),
		classes:   make(map[int]string),
	}
}

func (f *fakeAce) GetValue() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

func (f *fakeAce) On(event string, fn func()) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextL
	f.nextL++
	f.listeners[id] = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.listeners, id)
	}
}

func (f *fakeAce) Session() AceSession { return f }

func (f *fakeAce) AddMarker(r AceRange, class, kind string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextM
	f.nextM++
	f.markers[id] = r
	f.classes[id] = class
	return id
}

func (f *fakeAce) RemoveMarker(id int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.markers, id)
	delete(f.classes, id)
}

func (f *fakeAce) set(value string) {
	f.mu.Lock()
	f.value = value
	var fns []func()
	for _, fn := range f.listeners {
		fns = append(fns, fn)
	}
	f.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (f *fakeAce) markerCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.markers)
}

func (f *fakeAce) classCount(class string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.classes {
		if strings.Contains(" "+c+" ", " "+class+" ") {
			n++
		}
	}
	return n
}

// fakeCM6 is a CodeMirror 6 view without mark support.
type fakeCM6 struct {
	doc      string
	listener func(bool)
}

func (f *fakeCM6) Doc() string { return f.doc }

func (f *fakeCM6) OnUpdate(fn func(bool)) func() {
	f.listener = fn
	return func() { f.listener = nil }
}

// markingCM6 adds mark decorations to fakeCM6.
type markingCM6 struct {
	fakeCM6
	marks map[int][2]int
	next  int
}

func (f *markingCM6) Mark(from, to int, class string) (func(), error) {
	if f.marks == nil {
		f.marks = make(map[int][2]int)
	}
	id := f.next
	f.next++
	f.marks[id] = [2]int{from, to}
	return func() { delete(f.marks, id) }, nil
}

type fakeModel string

func (m fakeModel) GetValue() string { return string(m) }

type disposeFunc func()

func (d disposeFunc) Dispose() { d() }

type fakeMonaco struct {
	model       MonacoModel
	listener    func()
	decorations map[string]MonacoDecoration
	next        int
}

func (f *fakeMonaco) GetModel() MonacoModel { return f.model }

func (f *fakeMonaco) OnDidChangeModelContent(fn func()) Disposable {
	f.listener = fn
	return disposeFunc(func() { f.listener = nil })
}

func (f *fakeMonaco) DeltaDecorations(old []string, decs []MonacoDecoration) []string {
	if f.decorations == nil {
		f.decorations = make(map[string]MonacoDecoration)
	}
	for _, id := range old {
		delete(f.decorations, id)
	}
	var ids []string
	for _, d := range decs {
		f.next++
		id := strings.Repeat("d", f.next)
		f.decorations[id] = d
		ids = append(ids, id)
	}
	return ids
}

type fakeMarker struct {
	cm *fakeCM5
	id int
}

func (m fakeMarker) Clear() { delete(m.cm.marks, m.id) }

type fakeCM5 struct {
	value    string
	listener func()
	marks    map[int][2]Pos
	next     int
}

func (f *fakeCM5) GetValue() string { return f.value }

func (f *fakeCM5) On(event string, fn func()) func() {
	f.listener = fn
	return func() { f.listener = nil }
}

func (f *fakeCM5) MarkText(from, to Pos, className string) TextMarker {
	if f.marks == nil {
		f.marks = make(map[int][2]Pos)
	}
	f.next++
	f.marks[f.next] = [2]Pos{from, to}
	return fakeMarker{cm: f, id: f.next}
}

type fakeElement struct {
	props  map[string]any
	hidden bool
}

func (e *fakeElement) Property(name string) (any, bool) {
	v, ok := e.props[name]
	return v, ok
}

func (e *fakeElement) Visible() bool { return !e.hidden }

type fakePage struct {
	mu       sync.Mutex
	host     string
	elements map[string][]Element
	globals  map[string]any
	queries  int
}

func (p *fakePage) Host() string { return p.host }

func (p *fakePage) Query(selector string) []Element {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queries++
	return p.elements[selector]
}

func (p *fakePage) Global(name string) (any, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, ok := p.globals[name]
	return v, ok
}

type fakeAceGlobal struct{ ed AceEditor }

func (g fakeAceGlobal) Edit(Element) (AceEditor, error) { return g.ed, nil }

type fakeMonacoGlobal struct{ eds []MonacoEditor }

func (g fakeMonacoGlobal) Editors() []MonacoEditor { return g.eds }

// brittleEditor panics when asked to decorate panicLine and fails with an
// error on errLine.
type brittleEditor struct {
	text       string
	panicLine  int
	errLine    int
	panicClear bool
	decorated  []Range
}

func (b *brittleEditor) Kind() Kind                { return KindAce }
func (b *brittleEditor) Text() (string, error)     { return b.text, nil }
func (b *brittleEditor) OnChange(fn func()) func() { return func() {} }

func (b *brittleEditor) Decorate(r Range, class string) error {
	switch r.Line {
	case b.panicLine:
		panic("adapter blew up")
	case b.errLine:
		return errors.New("marker rejected")
	}
	b.decorated = append(b.decorated, r)
	return nil
}

func (b *brittleEditor) ClearDecorations() {
	b.decorated = nil
	if b.panicClear {
		panic("clear blew up")
	}
}
