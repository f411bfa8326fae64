package editor

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
)

// Element is a DOM element of the hosting page.
type Element interface {
	// Property returns a JavaScript property attached to the element.
	Property(name string) (any, bool)
	// Visible reports whether the element is displayed.
	Visible() bool
}

// Page is the hosting page seen by detection.
type Page interface {
	Host() string
	// Query returns the elements matching a CSS selector in document
	// order.
	Query(selector string) []Element
	// Global returns a window global.
	Global(name string) (any, bool)
}

// AceGlobal is the window.ace namespace.
type AceGlobal interface {
	Edit(el Element) (AceEditor, error)
}

// MonacoGlobal is the window.monaco namespace.
type MonacoGlobal interface {
	Editors() []MonacoEditor
}

// Anchor selectors, probed in this order.
const (
	selectorCM6    = ".cm-editor"
	selectorAce    = ".ace_editor"
	selectorMonaco = ".monaco-editor"
	selectorCM5    = ".CodeMirror"
)

// DefaultHosts are the hosts where structured mode is entered.
var DefaultHosts = []string{"overleaf.com"}

// Detect returns the first recognized editor on the page: a CodeMirror 6
// view attached to .cm-editor, a visible Ace editor, a Monaco editor, then
// a CodeMirror 5 instance.
func Detect(page Page) (Editor, bool) {
	for _, el := range page.Query(selectorCM6) {
		if v, ok := el.Property("cmView"); ok {
			if view, ok := v.(CM6View); ok {
				return NewCodeMirror6(view), true
			}
		}
	}

	if g, ok := page.Global("ace"); ok {
		if ace, ok := g.(AceGlobal); ok {
			for _, el := range page.Query(selectorAce) {
				if !el.Visible() {
					continue
				}
				ed, err := ace.Edit(el)
				if err != nil || ed == nil {
					continue
				}
				return NewAce(ed), true
			}
		}
	}

	if g, ok := page.Global("monaco"); ok {
		if monaco, ok := g.(MonacoGlobal); ok {
			if eds := monaco.Editors(); len(eds) > 0 && eds[0] != nil {
				return NewMonaco(eds[0]), true
			}
		}
	}

	for _, el := range page.Query(selectorCM5) {
		if v, ok := el.Property("CodeMirror"); ok {
			if cm, ok := v.(CodeMirror5); ok {
				return NewCodeMirror5(cm), true
			}
		}
	}
	return nil, false
}

// StructuredMode reports whether the page is on one of hosts (or a
// subdomain) and carries a known editor anchor.
func StructuredMode(page Page, hosts []string) bool {
	host := strings.ToLower(page.Host())
	onHost := false
	for _, h := range hosts {
		h = strings.ToLower(strings.TrimSpace(h))
		if h != "" && (host == h || strings.HasSuffix(host, "."+h)) {
			onHost = true
			break
		}
	}
	if !onHost {
		return false
	}
	for _, sel := range []string{selectorCM6, selectorAce, selectorMonaco, selectorCM5} {
		if len(page.Query(sel)) > 0 {
			return true
		}
	}
	return false
}

// Detector retries Detect until an editor holds enough text.
type Detector struct {
	Attempts   int
	Interval   time.Duration
	MinContent int
}

// DefaultDetector waits up to 30 seconds for more than 10 characters.
func DefaultDetector() Detector {
	return Detector{Attempts: 30, Interval: time.Second, MinContent: 10}
}

// Wait polls the page until an editor with more than MinContent non-blank
// characters is found. It returns ErrDetectionFailed when the attempts run
// out, or the context error when ctx ends first.
func (d Detector) Wait(ctx context.Context, page Page) (Editor, error) {
	attempts := d.Attempts
	if attempts <= 0 {
		attempts = 1
	}
	for i := 1; i <= attempts; i++ {
		if ed, ok := Detect(page); ok {
			text, err := ed.Text()
			switch {
			case err != nil:
				log.Printf("editor: reading %s content: %v", ed.Kind(), err)
			case len([]rune(strings.TrimSpace(text))) > d.MinContent:
				log.Printf("editor: found %s with %d characters", ed.Kind(), len(text))
				return ed, nil
			default:
				log.Printf("editor: %s found but content is too short, retrying", ed.Kind())
			}
		}
		if i == attempts {
			break
		}
		timer := time.NewTimer(d.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return nil, fmt.Errorf("%w after %d attempts", ErrDetectionFailed, attempts)
}
