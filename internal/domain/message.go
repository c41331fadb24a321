package domain

import "time"

// Message is a durable chat record. Live relay of the same client action
// is a separate write path and does not go through this type.
type Message struct {
	ID     string    `json:"id"`
	RoomID RoomID    `json:"roomId"`
	Sender string    `json:"sender"`
	Body   string    `json:"body"`
	SentAt time.Time `json:"sentAt"`
}
