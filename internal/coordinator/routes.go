package coordinator

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/hypelessli/hypeless/internal/protocol"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// RegisterRoutes mounts the popup endpoint and the page socket.
func (c *Coordinator) RegisterRoutes(r chi.Router) {
	r.Post("/api/message", c.handleMessage)
	r.Get("/ws/page", c.handlePage)
}

// handleMessage serves popups. Kinds without an answer get 204.
func (c *Coordinator) handleMessage(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<16))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, protocol.Response{Error: "reading body"})
		return
	}
	msg, err := protocol.Decode(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, protocol.Response{Error: err.Error()})
		return
	}
	resp, err := c.Handle(r.Context(), "", msg)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, protocol.Response{Error: err.Error()})
		return
	}
	if resp == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// wsSender serializes writes to one page socket.
type wsSender struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *wsSender) Send(msg protocol.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteJSON(msg)
}

// handlePage upgrades a page context, pushes the current state and then
// applies whatever the page sends until it disconnects.
func (c *Coordinator) handlePage(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("coordinator: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	sender := &wsSender{conn: conn}
	id := c.Register(sender)
	defer c.Unregister(id)

	if err := sender.Send(protocol.StateChangedMessage(c.State(r.Context()))); err != nil {
		log.Printf("coordinator: initial state: %v", err)
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("coordinator: websocket read: %v", err)
			}
			return
		}
		msg, err := protocol.Decode(data)
		if err != nil {
			log.Printf("coordinator: page %s: %v", id, err)
			continue
		}
		// Answers reach pages as stateChanged pushes, so replies are dropped.
		if _, err := c.Handle(r.Context(), id, msg); err != nil {
			log.Printf("coordinator: page %s: %v", id, err)
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
