package realtime

import (
	"sync"

	"github.com/random-lottery/AIPortal/internal/features/portal"

	"go.uber.org/zap"
)

// Sink is one live connection. *websocket.Conn satisfies it.
type Sink interface {
	WriteJSON(v interface{}) error
}

type session struct {
	sink Sink
	mu   sync.Mutex // serializes writes to one connection
}

func (s *session) send(v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sink.WriteJSON(v)
}

// settingsEvent is the frame pushed to subscribers after a mutation.
type settingsEvent struct {
	Event    string                 `json:"event"`
	Settings *portal.PortalSettings `json:"settings"`
}

const settingsUpdatedEvent = "portal-settings-updated"

// Hub is the per-user broadcast registry. The user id is the channel
// name; connections join explicitly and are removed on disconnect.
// It is the only shared mutable state across requests, so all access
// goes through the lock.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[string]map[Sink]*session
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		rooms:  make(map[string]map[Sink]*session),
		logger: logger,
	}
}

// Subscribe registers a connection under the user's channel.
func (h *Hub) Subscribe(userID string, sink Sink) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[userID]
	if !ok {
		room = make(map[Sink]*session)
		h.rooms[userID] = room
	}
	room[sink] = &session{sink: sink}
}

// Unsubscribe removes a connection from the user's channel.
func (h *Hub) Unsubscribe(userID string, sink Sink) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[userID]
	if !ok {
		return
	}
	delete(room, sink)
	if len(room) == 0 {
		delete(h.rooms, userID)
	}
}

// Publish delivers the updated document to every session in the user's
// channel. No subscribers is a no-op, and write failures are logged and
// swallowed: the command already succeeded for its own caller.
func (h *Hub) Publish(userID string, settings *portal.PortalSettings) {
	h.mu.RLock()
	sessions := make([]*session, 0, len(h.rooms[userID]))
	for _, s := range h.rooms[userID] {
		sessions = append(sessions, s)
	}
	h.mu.RUnlock()

	if len(sessions) == 0 {
		return
	}

	event := settingsEvent{
		Event:    settingsUpdatedEvent,
		Settings: settings,
	}
	for _, s := range sessions {
		if err := s.send(event); err != nil {
			h.logger.Warn("Failed to push settings update",
				zap.String("userId", userID),
				zap.Error(err),
			)
		}
	}
}
