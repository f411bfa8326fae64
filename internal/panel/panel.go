// Package panel keeps the state of the results side panel and renders it
// as an HTML fragment.
package panel

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"

	"github.com/hypelessli/hypeless/internal/annotation"
)

// Width limits of the panel in pixels.
const (
	MinWidth     = 180
	MaxWidth     = 500
	DefaultWidth = 300
)

// Element ids of the two panel variants.
const (
	StandardID   = "hypeless-sidebar"
	StructuredID = "hypeless-overleaf-sidebar"
)

// Item is one row of the panel.
type Item struct {
	Term        string
	Count       int
	Explanation string
}

// Answer is a rendered reply from the relay.
type Answer struct {
	Question string
	HTML     template.HTML
}

// Panel is the side panel state. It starts collapsed with the float
// button showing. Not safe for concurrent use.
type Panel struct {
	structured bool
	collapsed  bool
	helpOpen   bool
	resizing   bool
	width      int
	items      []Item
	total      int
	answer     *Answer
	md         goldmark.Markdown
	tmpl       *template.Template
}

// New returns a collapsed, empty panel. structured selects the editor
// variant, which also offers the AI button.
func New(structured bool) *Panel {
	return &Panel{
		structured: structured,
		collapsed:  true,
		width:      DefaultWidth,
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle("github"),
				),
			),
		),
		tmpl: template.Must(template.New("panel").Parse(panelTemplate)),
	}
}

// ID returns the element id of the panel.
func (p *Panel) ID() string {
	if p.structured {
		return StructuredID
	}
	return StandardID
}

// Structured reports whether this is the editor variant.
func (p *Panel) Structured() bool { return p.structured }

// Update replaces the rows with the groups of idx.
func (p *Panel) Update(idx *annotation.Index) {
	p.items = nil
	p.total = 0
	if idx == nil {
		return
	}
	for _, g := range idx.Groups() {
		p.items = append(p.items, Item{Term: g.Term, Count: g.Count(), Explanation: g.Explanation()})
	}
	p.total = idx.Total()
}

// Items returns the rows in display order.
func (p *Panel) Items() []Item { return p.items }

// Total returns the number of matches shown in the header.
func (p *Panel) Total() int { return p.total }

// Header returns the header text.
func (p *Panel) Header() string { return fmt.Sprintf("HypeLessLi (%d found)", p.total) }

// Visible reports whether the panel is expanded.
func (p *Panel) Visible() bool { return !p.collapsed }

// FloatButtonVisible reports whether the float button shows. It is shown
// exactly while the panel is collapsed.
func (p *Panel) FloatButtonVisible() bool { return p.collapsed }

// SetVisible expands or collapses the panel.
func (p *Panel) SetVisible(visible bool) { p.collapsed = !visible }

// Toggle flips visibility and returns the new state.
func (p *Panel) Toggle() bool {
	p.collapsed = !p.collapsed
	return !p.collapsed
}

// ToggleHelp flips the help popup and returns whether it is open.
func (p *Panel) ToggleHelp() bool {
	p.helpOpen = !p.helpOpen
	return p.helpOpen
}

// HelpOpen reports whether the help popup is open.
func (p *Panel) HelpOpen() bool { return p.helpOpen }

// Width returns the panel width in pixels.
func (p *Panel) Width() int { return p.width }

// StartResize marks the start of a pointer drag on the resizer.
func (p *Panel) StartResize() { p.resizing = true }

// Resize applies a pointer move during a drag. The panel sits on the right
// edge, so moving left widens it. The width is clamped to
// [MinWidth, MaxWidth].
func (p *Panel) Resize(startWidth, startX, clientX int) int {
	p.width = max(MinWidth, min(MaxWidth, startWidth-(clientX-startX)))
	return p.width
}

// EndResize ends a drag.
func (p *Panel) EndResize() { p.resizing = false }

// Resizing reports whether a drag is in progress.
func (p *Panel) Resizing() bool { return p.resizing }

// SetAnswer renders a markdown answer below the rows. Raw HTML in the
// answer is dropped.
func (p *Panel) SetAnswer(question, markdown string) error {
	var buf bytes.Buffer
	if err := p.md.Convert([]byte(markdown), &buf); err != nil {
		return fmt.Errorf("converting answer: %w", err)
	}
	p.answer = &Answer{Question: question, HTML: template.HTML(buf.String())}
	return nil
}

// Answer returns the current answer, if any.
func (p *Panel) Answer() *Answer { return p.answer }

// ClearAnswer removes the answer.
func (p *Panel) ClearAnswer() { p.answer = nil }

type view struct {
	ID         string
	Header     string
	Structured bool
	Collapsed  bool
	HelpOpen   bool
	Resizing   bool
	Width      int
	Items      []Item
	Answer     *Answer
}

// Render writes the panel fragment: styles, the panel, the float button
// and the tooltip. Every top-level element carries data-hypeless-ui.
func (p *Panel) Render(w io.Writer) error {
	err := p.tmpl.Execute(w, view{
		ID:         p.ID(),
		Header:     p.Header(),
		Structured: p.structured,
		Collapsed:  p.collapsed,
		HelpOpen:   p.helpOpen,
		Resizing:   p.resizing,
		Width:      p.width,
		Items:      p.items,
		Answer:     p.answer,
	})
	if err != nil {
		return fmt.Errorf("rendering panel: %w", err)
	}
	return nil
}

// HTML returns the rendered fragment.
func (p *Panel) HTML() (string, error) {
	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
