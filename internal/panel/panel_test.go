package panel

import (
	"strings"
	"testing"

	"github.com/hypelessli/hypeless/internal/annotation"
	"github.com/hypelessli/hypeless/internal/surface/dom"
)

func index() *annotation.Index {
	return annotation.Build([]annotation.Match{
		{ID: "a", Term: "new", Explanation: "Everything was new once."},
		{ID: "b", Term: "novel", Explanation: "Let <readers> judge."},
		{ID: "c", Term: "novel", Explanation: "Let <readers> judge."},
	})
}

func TestRenderItems(t *testing.T) {
	p := New(false)
	p.Update(index())

	if p.Header() != "HypeLessLi (3 found)" {
		t.Errorf("Header = %q", p.Header())
	}
	out, err := p.HTML()
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	for _, want := range []string{
		`id="hypeless-sidebar"`,
		`<span>HypeLessLi (3 found)</span>`,
		`<b>novel</b> (2)`,
		`<small>Let &lt;readers&gt; judge.</small>`,
		`data-term="new"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Index(out, "<b>novel</b>") > strings.Index(out, "<b>new</b>") {
		t.Error("rows should be ordered by count")
	}
	if strings.Contains(out, "hypeless-suggestions") {
		t.Error("AI button should only appear in structured mode")
	}
	if strings.Contains(out, "No hype terms found.") {
		t.Error("empty message shown with results")
	}
}

func TestRenderEmptyStructured(t *testing.T) {
	p := New(true)
	p.Update(annotation.Build(nil))

	out, err := p.HTML()
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`id="hypeless-overleaf-sidebar"`,
		"HypeLessLi (0 found)",
		"No hype terms found.",
		`id="hypeless-suggestions"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestEveryTopLevelElementIsMarked(t *testing.T) {
	out, err := New(false).HTML()
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(out, dom.UIAttr); n != 4 {
		t.Errorf("%s appears %d times, want 4", dom.UIAttr, n)
	}
}

func TestVisibility(t *testing.T) {
	p := New(false)
	if p.Visible() || !p.FloatButtonVisible() {
		t.Fatal("panel should start collapsed with the float button shown")
	}
	if !p.Toggle() {
		t.Error("Toggle should expand")
	}
	if p.FloatButtonVisible() {
		t.Error("float button should hide while the panel is open")
	}
	out, _ := p.HTML()
	if !strings.Contains(out, `style="display: none" data-hypeless-ui>`) {
		t.Error("float button should render hidden")
	}
	p.SetVisible(false)
	if p.Visible() {
		t.Error("SetVisible(false) should collapse")
	}

	if !p.ToggleHelp() || !p.HelpOpen() {
		t.Error("help should open")
	}
	out, _ = p.HTML()
	if !strings.Contains(out, `id="hypeless-help-popup" class="visible"`) {
		t.Error("help popup should render visible")
	}
}

func TestResizeClamps(t *testing.T) {
	p := New(false)
	tests := []struct {
		startW, startX, clientX int
		want                    int
	}{
		{300, 1000, 900, 400},
		{300, 1000, 1050, 250},
		{300, 1000, 500, MaxWidth},
		{300, 1000, 1400, MinWidth},
	}
	p.StartResize()
	for _, tt := range tests {
		if got := p.Resize(tt.startW, tt.startX, tt.clientX); got != tt.want {
			t.Errorf("Resize(%d, %d, %d) = %d, want %d", tt.startW, tt.startX, tt.clientX, got, tt.want)
		}
	}
	if !p.Resizing() {
		t.Error("expected resizing")
	}
	p.EndResize()
	if p.Resizing() || p.Width() != MinWidth {
		t.Errorf("after drag: resizing=%v width=%d", p.Resizing(), p.Width())
	}
}

func TestSetAnswer(t *testing.T) {
	p := New(true)
	if err := p.SetAnswer("Why?", "Because **reasons**.\n\n<script>alert(1)</script>\n\n```go\nfmt.Println(1)\n```\n"); err != nil {
		t.Fatal(err)
	}
	out, err := p.HTML()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "<strong>reasons</strong>") {
		t.Error("markdown not rendered")
	}
	if strings.Contains(out, "<script>alert(1)</script>") {
		t.Error("raw html from the answer must be dropped")
	}
	if !strings.Contains(out, `<p class="hypeless-question">Why?</p>`) {
		t.Error("question missing")
	}
	if !strings.Contains(out, "<pre") {
		t.Error("code block missing")
	}
	p.ClearAnswer()
	if p.Answer() != nil {
		t.Error("answer not cleared")
	}
}
