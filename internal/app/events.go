package app

import (
	"encoding/json"

	"github.com/chatbees/server/internal/core"
	"github.com/chatbees/server/internal/domain"
)

// Outbound event types pushed to clients.
const (
	EventPresenceSnapshot = "presence-snapshot"
	EventMessageReceived  = "message-received"
	EventTypingStarted    = "typing-started"
	EventTypingStopped    = "typing-stopped"
)

type presenceSnapshotEvent struct {
	Type   string                 `json:"type"`
	Online map[core.ConnID]string `json:"online"`
}

type messageReceivedEvent struct {
	Type    string          `json:"type"`
	Room    domain.RoomID   `json:"room"`
	From    string          `json:"from"`
	Payload json.RawMessage `json:"payload"`
}

type typingEvent struct {
	Type string        `json:"type"`
	Room domain.RoomID `json:"room"`
	From string        `json:"from"`
}

func encode(v any) (core.Frame, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return core.Frame(b), nil
}
