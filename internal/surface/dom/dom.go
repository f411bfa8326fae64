// Package dom highlights hype terms inside an HTML document.
package dom

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/hypelessli/hypeless/internal/annotation"
	"github.com/hypelessli/hypeless/internal/contrast"
	"github.com/hypelessli/hypeless/internal/matcher"
	"github.com/hypelessli/hypeless/internal/surface"
)

// UIAttr marks elements that belong to the injected panel. Their subtree is
// never scanned and Clear removes them.
const UIAttr = "data-hypeless-ui"

const wrapperClass = "hypeless-wrapper"

// Elements whose text is never prose.
var skipTags = map[string]bool{
	"script":   true,
	"style":    true,
	"code":     true,
	"pre":      true,
	"noscript": true,
	"textarea": true,
	"template": true,
}

// Finder locates hype terms in a run of text. *matcher.Matcher is the
// usual implementation.
type Finder interface {
	Find(text string) []matcher.Hit
	Empty() bool
}

// Document is a DOM surface over a parsed HTML tree.
type Document struct {
	doc     *goquery.Document
	matcher Finder
	marks   map[string]*html.Node
	hidden  bool
}

var _ surface.Surface = (*Document)(nil)

// Parse reads an HTML document.
func Parse(r io.Reader, m Finder) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}
	return &Document{doc: doc, matcher: m, marks: make(map[string]*html.Node)}, nil
}

// New wraps an already parsed tree.
func New(root *html.Node, m Finder) *Document {
	return &Document{
		doc:     goquery.NewDocumentFromNode(root),
		matcher: m,
		marks:   make(map[string]*html.Node),
	}
}

// Root returns the document node.
func (d *Document) Root() *html.Node { return d.doc.Nodes[0] }

// Structured is always false for HTML documents.
func (d *Document) Structured() bool { return false }

func (d *Document) body() *goquery.Selection {
	body := d.doc.Find("body")
	if body.Length() == 0 {
		return d.doc.Selection
	}
	return body.First()
}

// Scan clears earlier highlights, then wraps every accepted hit in a
// mark element. Text nodes that fail are logged and left untouched.
func (d *Document) Scan() ([]annotation.Match, error) {
	d.Clear()
	if d.matcher == nil || d.matcher.Empty() {
		return nil, nil
	}

	var nodes []*html.Node
	for _, root := range d.body().Nodes {
		nodes = append(nodes, textNodes(root)...)
	}

	var matches []annotation.Match
	for _, n := range nodes {
		found, err := d.annotate(n, len(matches))
		if err != nil {
			log.Printf("dom: skipping text node: %v", err)
			continue
		}
		matches = append(matches, found...)
	}
	if d.hidden {
		d.SetHidden(true)
	}
	return matches, nil
}

// annotate replaces n with a wrapper holding its text and one mark per hit.
// Ids continue from next.
func (d *Document) annotate(n *html.Node, next int) (matches []annotation.Match, err error) {
	defer func() {
		if r := recover(); r != nil {
			matches, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()

	hits := d.matcher.Find(n.Data)
	if len(hits) == 0 || n.Parent == nil {
		return nil, nil
	}
	palette := contrast.ForText(ambientColors(n)...)
	style := fmt.Sprintf("--highlight-normal: %s; --highlight-preview: %s; --highlight-focus: %s",
		palette.Normal, palette.Preview, palette.Focus)

	runes := []rune(n.Data)
	wrapper := element(atom.Span, html.Attribute{Key: "class", Val: wrapperClass})
	marks := make(map[string]*html.Node, len(hits))
	pos := 0
	for i, h := range hits {
		if h.Offset > pos {
			wrapper.AppendChild(text(string(runes[pos:h.Offset])))
		}
		id := surface.MatchID(next + i)
		mark := element(atom.Mark,
			html.Attribute{Key: "id", Val: id},
			html.Attribute{Key: "class", Val: surface.HighlightClass},
			html.Attribute{Key: "data-term", Val: h.Term},
			html.Attribute{Key: "data-expl", Val: h.Explanation},
			html.Attribute{Key: "style", Val: style},
		)
		mark.AppendChild(text(h.Text))
		wrapper.AppendChild(mark)
		marks[id] = mark
		matches = append(matches, annotation.Match{
			ID:          id,
			Term:        h.Term,
			Text:        h.Text,
			Explanation: h.Explanation,
			Location:    annotation.Location{Element: mark},
		})
		pos = h.End()
	}
	if pos < len(runes) {
		wrapper.AppendChild(text(string(runes[pos:])))
	}

	n.Parent.InsertBefore(wrapper, n)
	n.Parent.RemoveChild(n)
	for id, mark := range marks {
		d.marks[id] = mark
	}
	return matches, nil
}

// Clear removes the panel, replaces every mark with its text and merges
// the text nodes back together.
func (d *Document) Clear() {
	d.doc.Find("[" + UIAttr + "]").Remove()
	d.doc.Find("mark." + surface.HighlightClass).Contents().Unwrap()
	d.doc.Find("span." + wrapperClass).Contents().Unwrap()
	// Wrappers or marks left empty by a failed pass.
	d.doc.Find("span." + wrapperClass + ", mark." + surface.HighlightClass).Remove()
	for _, n := range d.doc.Nodes {
		normalize(n)
	}
	d.marks = make(map[string]*html.Node)
}

// SetHidden toggles the hidden class on all marks.
func (d *Document) SetHidden(hidden bool) {
	d.hidden = hidden
	marks := d.doc.Find("mark." + surface.HighlightClass)
	if hidden {
		marks.AddClass(surface.HiddenClass)
	} else {
		marks.RemoveClass(surface.HiddenClass)
	}
}

// SetPreview toggles the preview class on the given marks.
func (d *Document) SetPreview(ids []string, on bool) {
	d.toggle(surface.PreviewClass, on, ids...)
}

// Focus adds the focus class to a mark.
func (d *Document) Focus(id string) { d.toggle(surface.FocusClass, true, id) }

// Unfocus removes the focus class from a mark.
func (d *Document) Unfocus(id string) { d.toggle(surface.FocusClass, false, id) }

func (d *Document) toggle(class string, on bool, ids ...string) {
	var nodes []*html.Node
	for _, id := range ids {
		if n, ok := d.marks[id]; ok {
			nodes = append(nodes, n)
		}
	}
	if len(nodes) == 0 {
		return
	}
	sel := d.doc.FindNodes(nodes...)
	if on {
		sel.AddClass(class)
	} else {
		sel.RemoveClass(class)
	}
}

// MarkCount returns the number of marks currently in the tree.
func (d *Document) MarkCount() int {
	return d.doc.Find("mark." + surface.HighlightClass).Length()
}

// Text returns the visible text of the body.
func (d *Document) Text() string { return d.body().Text() }

// AppendUI parses fragment and appends it to the body. The fragment's
// top-level elements should carry UIAttr so Clear can remove them.
func (d *Document) AppendUI(fragment string) error {
	body := d.body()
	if body.Length() == 0 {
		return fmt.Errorf("document has no body")
	}
	body.AppendHtml(fragment)
	return nil
}

// Render writes the annotated document.
func (d *Document) Render(w io.Writer) error {
	if err := html.Render(w, d.Root()); err != nil {
		return fmt.Errorf("rendering html: %w", err)
	}
	return nil
}

// textNodes returns the non-blank text nodes under root that are rendered
// prose.
func textNodes(root *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if strings.TrimSpace(n.Data) != "" {
				out = append(out, n)
			}
			return
		case html.ElementNode:
			if skipElement(n) {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func skipElement(n *html.Node) bool {
	if skipTags[n.Data] {
		return true
	}
	if hasAttr(n, "hidden") || hasAttr(n, UIAttr) || getAttr(n, "aria-hidden") == "true" {
		return true
	}
	style := inlineStyle(n)
	return style["display"] == "none" || style["visibility"] == "hidden"
}

// ambientColors returns the inline text colors from n's parent outwards.
func ambientColors(n *html.Node) []string {
	var colors []string
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type != html.ElementNode {
			continue
		}
		if c, ok := inlineStyle(p)["color"]; ok {
			colors = append(colors, c)
		}
	}
	return colors
}

func inlineStyle(n *html.Node) map[string]string {
	raw := getAttr(n, "style")
	if raw == "" {
		return nil
	}
	out := make(map[string]string)
	for _, decl := range strings.Split(raw, ";") {
		k, v, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		v = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "!important"))
		out[strings.ToLower(strings.TrimSpace(k))] = strings.ToLower(v)
	}
	return out
}

// normalize merges adjacent text nodes and drops empty ones.
func normalize(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.TextNode {
			for next != nil && next.Type == html.TextNode {
				c.Data += next.Data
				after := next.NextSibling
				n.RemoveChild(next)
				next = after
			}
			if c.Data == "" {
				n.RemoveChild(c)
			}
		} else {
			normalize(c)
		}
		c = next
	}
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
