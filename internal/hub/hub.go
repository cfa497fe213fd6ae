package hub

import (
	"encoding/json"
	"sync"

	"myswamvar/backend/internal/metrics"
)

// Event represents a real-time event to be sent to clients.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Session is the delivery channel for a single connected device or tab. The
// websocket write pump drains it.
type Session chan []byte

// Hub is the presence registry: it maps each user to their currently connected
// sessions. A user may hold several sessions at once, and fan-out reaches all
// of them. The hub is constructed once per process and injected; presence is
// process-local and rebuilt as clients reconnect after a restart.
type Hub struct {
	mu    sync.RWMutex
	users map[uint]map[string]Session
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		users: make(map[uint]map[string]Session),
	}
}

// Register adds a session for a user.
func (h *Hub) Register(userID uint, sessionID string, s Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.users[userID]; !ok {
		h.users[userID] = make(map[string]Session)
	}
	h.users[userID][sessionID] = s
	metrics.WsSessions.Inc()
}

// Unregister removes a session. The user entry disappears once their last
// session is gone. The session channel is closed to stop its write pump.
func (h *Hub) Unregister(userID uint, sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sessions, ok := h.users[userID]
	if !ok {
		return
	}
	s, ok := sessions[sessionID]
	if !ok {
		return
	}
	delete(sessions, sessionID)
	close(s)
	metrics.WsSessions.Dec()
	if len(sessions) == 0 {
		delete(h.users, userID)
	}
}

// Sessions returns the IDs of the user's currently connected sessions.
func (h *Hub) Sessions(userID uint) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	sessions := h.users[userID]
	ids := make([]string, 0, len(sessions))
	for id := range sessions {
		ids = append(ids, id)
	}
	return ids
}

// Push sends an event to every session of a user and returns how many sessions
// it reached. Zero sessions is not an error: the user is simply offline and
// will see the message on the next fetch.
func (h *Hub) Push(userID uint, event Event) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	sessions, ok := h.users[userID]
	if !ok {
		return 0
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return 0
	}

	delivered := 0
	for _, s := range sessions {
		// Non-blocking send so a slow session cannot stall the hub. A full
		// channel means the connection is on its way out; its unregister
		// cleans up.
		select {
		case s <- payload:
			delivered++
		default:
		}
	}
	if delivered > 0 {
		metrics.MessagesPushedTotal.Add(float64(delivered))
	}
	return delivered
}
