package domain

// RoomID is an opaque identifier minted by the room resolution API.
// The relay core never inspects its structure.
type RoomID string

type Room struct {
	ID           RoomID   `json:"id"`
	Participants []string `json:"participants"`
}
