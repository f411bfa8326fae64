// Package session owns the scan lifecycle of one annotated page: the
// enabled flag, the active surface, the annotation index and the panel.
package session

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/hypelessli/hypeless/internal/annotation"
	"github.com/hypelessli/hypeless/internal/matcher"
	"github.com/hypelessli/hypeless/internal/panel"
	"github.com/hypelessli/hypeless/internal/protocol"
	"github.com/hypelessli/hypeless/internal/surface"
	"github.com/hypelessli/hypeless/internal/surface/editor"
)

// FocusDuration is how long a jumped-to match keeps the focus state.
const FocusDuration = 2 * time.Second

// State is a lifecycle state.
type State int

const (
	Uninitialized State = iota
	DetectingEditor
	Scanning
	Idle
	Disabled
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case DetectingEditor:
		return "detecting-editor"
	case Scanning:
		return "scanning"
	case Idle:
		return "idle"
	case Disabled:
		return "disabled"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// EnabledSource reads the persisted enabled flag.
type EnabledSource interface {
	Enabled(ctx context.Context) (bool, error)
}

// Result is what observers see after each scan.
type Result struct {
	Matches    []annotation.Match
	Index      *annotation.Index
	Structured bool
}

// Controller serializes every scan and every highlight mutation behind one
// mutex. Observers run outside the lock.
type Controller struct {
	store EnabledSource

	mu        sync.Mutex
	state     State
	enabled   bool
	toggled   bool
	scanned   bool
	dirty     bool
	scans     int
	surface   surface.Surface
	index     *annotation.Index
	panel     *panel.Panel
	focus     map[string]*time.Timer
	observers []func(Result)
	cancelSub func()

	// FocusDuration overrides the package default when positive.
	FocusDuration time.Duration
}

// New returns an uninitialized controller. A nil store means always
// enabled.
func New(store EnabledSource) *Controller {
	return &Controller{
		store:   store,
		enabled: true,
		index:   annotation.Build(nil),
		focus:   make(map[string]*time.Timer),
	}
}

// loadEnabled reads the persisted flag, falling back to enabled.
func (c *Controller) loadEnabled(ctx context.Context) bool {
	if c.store == nil {
		return true
	}
	enabled, err := c.store.Enabled(ctx)
	if err != nil {
		log.Printf("session: reading enabled state, assuming enabled: %v", err)
		return true
	}
	return enabled
}

// Start attaches s and performs the initial scan unless the stored flag
// says disabled.
func (c *Controller) Start(ctx context.Context, s surface.Surface) error {
	enabled := c.loadEnabled(ctx)

	res, ok := c.attach(s, enabled, nil)
	if ok {
		c.notify(res)
	}
	return nil
}

// StartEditor waits for an editor on page, attaches an editor surface and
// rescans on every edit after the debounce window. When detection fails
// the controller stays uninitialized and the error is returned. A toggle
// received while waiting wins over the stored flag.
func (c *Controller) StartEditor(ctx context.Context, page editor.Page, det editor.Detector, m *matcher.Matcher, debounce time.Duration) error {
	enabled := c.loadEnabled(ctx)

	c.mu.Lock()
	c.state = DetectingEditor
	c.mu.Unlock()

	ed, err := det.Wait(ctx, page)
	if err != nil {
		log.Printf("session: editor detection: %v", err)
		c.mu.Lock()
		c.state = Uninitialized
		c.mu.Unlock()
		return err
	}

	s := editor.NewSurface(ed, m)
	res, ok := c.attach(s, enabled, func() {
		c.cancelSub = s.Subscribe(debounce, c.changed)
	})
	if ok {
		c.notify(res)
	}
	return nil
}

// attach installs s under the lock. then runs before the lock is released.
func (c *Controller) attach(s surface.Surface, enabled bool, then func()) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	res, ok := c.attachLocked(s, enabled)
	if then != nil {
		then()
	}
	return res, ok
}

func (c *Controller) attachLocked(s surface.Surface, enabled bool) (Result, bool) {
	c.surface = s
	c.panel = panel.New(s.Structured())
	if c.toggled {
		enabled = c.enabled
	}
	c.enabled = enabled
	if !enabled {
		c.state = Disabled
		return Result{}, false
	}
	return c.scanLocked(), true
}

// scanLocked tears down and rebuilds the highlights and the index.
func (c *Controller) scanLocked() Result {
	c.state = Scanning
	defer func() { c.state = Idle }()
	for id, t := range c.focus {
		t.Stop()
		delete(c.focus, id)
	}
	matches, err := c.scanSurface()
	if err != nil {
		log.Printf("session: scan failed: %v", err)
	}
	c.index = annotation.Build(matches)
	c.panel.Update(c.index)
	c.scanned = true
	c.dirty = false
	c.scans++
	return Result{Matches: matches, Index: c.index, Structured: c.surface.Structured()}
}

// scanSurface turns a panicking surface into a failed scan.
func (c *Controller) scanSurface() (matches []annotation.Match, err error) {
	defer func() {
		if r := recover(); r != nil {
			matches, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()
	return c.surface.Scan()
}

// changed is the debounced edit callback.
func (c *Controller) changed() {
	if res, ok := c.rescan(); ok {
		c.notify(res)
	}
}

func (c *Controller) rescan() (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.surface == nil {
		return Result{}, false
	}
	if !c.enabled {
		c.dirty = true
		return Result{}, false
	}
	return c.scanLocked(), true
}

// Rescan scans now. While disabled the request is remembered and served
// on the next enable.
func (c *Controller) Rescan() {
	c.changed()
}

// SetEnabled hides the highlights when disabling. Enabling shows them
// again and scans only if nothing was scanned yet or a change arrived
// while disabled. Before a surface is attached the flag is recorded and
// applied on attach.
func (c *Controller) SetEnabled(enabled bool) {
	if res, ok := c.setEnabled(enabled); ok {
		c.notify(res)
	}
}

func (c *Controller) setEnabled(enabled bool) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.surface == nil {
		c.enabled = enabled
		c.toggled = true
		return Result{}, false
	}
	if c.enabled == enabled {
		return Result{}, false
	}
	c.enabled = enabled
	if !enabled {
		c.state = Disabled
		c.panel.SetVisible(false)
		c.surface.SetHidden(true)
		return Result{}, false
	}
	c.state = Idle
	c.surface.SetHidden(false)
	if c.scanned && !c.dirty {
		return Result{}, false
	}
	return c.scanLocked(), true
}

// Hover previews every match of term.
func (c *Controller) Hover(term string) { c.preview(term, true) }

// Unhover ends the preview of term.
func (c *Controller) Unhover(term string) { c.preview(term, false) }

func (c *Controller) preview(term string, on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.surface == nil || !c.enabled {
		return
	}
	c.index.SetPreview(c.surface, term, on)
}

// Jump focuses the next match of term for the focus duration and returns
// it.
func (c *Controller) Jump(term string) (annotation.Match, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.surface == nil || !c.enabled {
		return annotation.Match{}, false
	}
	m, ok := c.index.Next(term)
	if !ok {
		return annotation.Match{}, false
	}
	c.surface.Focus(m.ID)

	d := c.FocusDuration
	if d <= 0 {
		d = FocusDuration
	}
	if t, ok := c.focus[m.ID]; ok {
		t.Stop()
	}
	scan := c.scans
	c.focus[m.ID] = time.AfterFunc(d, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.scans != scan {
			return
		}
		delete(c.focus, m.ID)
		c.surface.Unfocus(m.ID)
	})
	return m, true
}

// Tooltip returns the explanation of a highlighted match.
func (c *Controller) Tooltip(id string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.index.Lookup(id)
	if !ok {
		return "", false
	}
	return m.Explanation, true
}

// ToggleSidebar flips the panel and returns whether it is now visible.
func (c *Controller) ToggleSidebar() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.panel == nil {
		return false
	}
	return c.panel.Toggle()
}

// SetAnswer shows a relay answer in the panel.
func (c *Controller) SetAnswer(question, markdown string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.panel == nil {
		return fmt.Errorf("session not started")
	}
	return c.panel.SetAnswer(question, markdown)
}

// RenderPanel writes the panel fragment.
func (c *Controller) RenderPanel(w io.Writer) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.panel == nil {
		return fmt.Errorf("session not started")
	}
	return c.panel.Render(w)
}

// HandleMessage applies a message pushed by the coordinator.
func (c *Controller) HandleMessage(msg protocol.Message) {
	switch msg.Type {
	case protocol.StateChanged:
		if msg.Enabled != nil {
			c.SetEnabled(*msg.Enabled)
		}
	case protocol.ToggleSidebar:
		c.ToggleSidebar()
	case protocol.Rescan:
		c.Rescan()
	}
}

// OnScan registers fn to run after every scan.
func (c *Controller) OnScan(fn func(Result)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

func (c *Controller) notify(res Result) {
	c.mu.Lock()
	observers := append([]func(Result){}, c.observers...)
	c.mu.Unlock()
	for _, fn := range observers {
		fn(res)
	}
}

// State returns the lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Enabled returns the enabled flag.
func (c *Controller) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// Scans returns how many scans ran.
func (c *Controller) Scans() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scans
}

// Index returns the index of the last scan.
func (c *Controller) Index() *annotation.Index {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// Close stops change subscriptions and pending focus timers.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancelSub != nil {
		c.cancelSub()
		c.cancelSub = nil
	}
	for id, t := range c.focus {
		t.Stop()
		delete(c.focus, id)
	}
}
