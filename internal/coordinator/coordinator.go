// Package coordinator is the background side of the messaging contract:
// it owns the enabled flag, answers popups and pushes state to pages.
package coordinator

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/hypelessli/hypeless/internal/protocol"
)

// Store persists the enabled flag.
type Store interface {
	Enabled(ctx context.Context) (bool, error)
	SetEnabled(ctx context.Context, enabled bool) error
}

// Sender delivers a message to one page context.
type Sender interface {
	Send(msg protocol.Message) error
}

// Coordinator tracks connected page contexts and the active one.
type Coordinator struct {
	store Store
	// toggleMu orders read-flip-write cycles and their broadcasts.
	toggleMu sync.Mutex

	mu     sync.Mutex
	tabs   map[string]Sender
	order  []string
	active string
}

// New returns a Coordinator persisting through store.
func New(store Store) *Coordinator {
	return &Coordinator{store: store, tabs: make(map[string]Sender)}
}

// Register adds a page context and returns its id. The first page to
// register becomes active.
func (c *Coordinator) Register(s Sender) string {
	id := uuid.New().String()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tabs[id] = s
	c.order = append(c.order, id)
	if c.active == "" {
		c.active = id
	}
	return id
}

// Unregister removes a page context. If it was active, the most recently
// registered remaining page takes over.
func (c *Coordinator) Unregister(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.tabs, id)
	for i, t := range c.order {
		if t == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	if c.active == id {
		c.active = ""
		if n := len(c.order); n > 0 {
			c.active = c.order[n-1]
		}
	}
}

// Tabs returns the number of connected page contexts.
func (c *Coordinator) Tabs() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tabs)
}

// Active returns the id of the active page context.
func (c *Coordinator) Active() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// State returns the stored flag; a storage error reads as enabled.
func (c *Coordinator) State(ctx context.Context) bool {
	enabled, err := c.store.Enabled(ctx)
	if err != nil {
		log.Printf("coordinator: getting state: %v", err)
		return true
	}
	return enabled
}

// Handle applies msg sent by page context from (empty for popups). Kinds
// that expect no answer return a nil response.
func (c *Coordinator) Handle(ctx context.Context, from string, msg protocol.Message) (*protocol.Response, error) {
	switch msg.Type {
	case protocol.GetState:
		return &protocol.Response{Enabled: c.State(ctx)}, nil

	case protocol.ToggleExtension:
		return c.toggle(ctx), nil

	case protocol.ToggleSidebar, protocol.Rescan:
		c.sendActive(protocol.Message{Type: msg.Type})
		return nil, nil

	case protocol.Activate:
		if from == "" {
			return nil, fmt.Errorf("%s needs a page context", msg.Type)
		}
		c.mu.Lock()
		if _, ok := c.tabs[from]; ok {
			c.active = from
		}
		c.mu.Unlock()
		return nil, nil
	}
	return nil, fmt.Errorf("message type %q is not accepted by the coordinator", msg.Type)
}

// toggle flips and persists the flag and notifies every page. When the
// write fails the old value is reported and nobody is notified.
func (c *Coordinator) toggle(ctx context.Context) *protocol.Response {
	c.toggleMu.Lock()
	defer c.toggleMu.Unlock()
	current := c.State(ctx)
	next := !current
	if err := c.store.SetEnabled(ctx, next); err != nil {
		log.Printf("coordinator: toggling extension: %v", err)
		return &protocol.Response{Enabled: current, Error: err.Error()}
	}
	c.Broadcast(protocol.StateChangedMessage(next))
	return &protocol.Response{Enabled: next}
}

// Broadcast sends msg to every page. Delivery errors are ignored; a page
// without a listener is not a failure.
func (c *Coordinator) Broadcast(msg protocol.Message) {
	for _, s := range c.senders() {
		if err := s.Send(msg); err != nil {
			log.Printf("coordinator: notify page: %v", err)
		}
	}
}

func (c *Coordinator) sendActive(msg protocol.Message) {
	c.mu.Lock()
	s, ok := c.tabs[c.active]
	c.mu.Unlock()
	if !ok {
		return
	}
	if err := s.Send(msg); err != nil {
		log.Printf("coordinator: send to active page: %v", err)
	}
}

func (c *Coordinator) senders() []Sender {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Sender, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.tabs[id])
	}
	return out
}
