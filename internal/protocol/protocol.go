// Package protocol defines the messages exchanged between the coordinator,
// popups and page contexts.
package protocol

import (
	"encoding/json"
	"fmt"
)

// Kind is a message type.
type Kind string

const (
	// GetState asks the coordinator for the enabled flag.
	GetState Kind = "getState"
	// ToggleExtension flips and persists the enabled flag.
	ToggleExtension Kind = "toggleExtension"
	// ToggleSidebar shows or hides the panel of the active page.
	ToggleSidebar Kind = "toggleSidebar"
	// StateChanged is pushed to pages after a toggle.
	StateChanged Kind = "stateChanged"
	// Rescan forces a page to scan again.
	Rescan Kind = "rescan"
	// Activate marks the sending page as the active one.
	Activate Kind = "activate"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case GetState, ToggleExtension, ToggleSidebar, StateChanged, Rescan, Activate:
		return true
	}
	return false
}

// Message is one envelope on the wire.
type Message struct {
	Type    Kind  `json:"type"`
	Enabled *bool `json:"enabled,omitempty"`
}

// Response answers GetState and ToggleExtension.
type Response struct {
	Enabled bool   `json:"enabled"`
	Error   string `json:"error,omitempty"`
}

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// StateChangedMessage is the push sent to pages after a toggle.
func StateChangedMessage(enabled bool) Message {
	return Message{Type: StateChanged, Enabled: Bool(enabled)}
}

// Decode parses and validates a message.
func Decode(data []byte) (Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return Message{}, fmt.Errorf("decoding message: %w", err)
	}
	if !m.Type.Valid() {
		return Message{}, fmt.Errorf("unknown message type %q", m.Type)
	}
	if m.Type == StateChanged && m.Enabled == nil {
		return Message{}, fmt.Errorf("%s without enabled", m.Type)
	}
	return m, nil
}
