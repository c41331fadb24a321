package store

import "time"

type userRecord struct {
	ID           string `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;size:64"`
	PasswordHash string
	CreatedAt    time.Time
}

func (userRecord) TableName() string { return "users" }

type roomRecord struct {
	ID string `gorm:"primaryKey"`
	// ParticipantsKey is the sorted participant list joined with a unit
	// separator, so one conversation maps to exactly one room row.
	ParticipantsKey string `gorm:"uniqueIndex"`
	Participants    string
	CreatedAt       time.Time
}

func (roomRecord) TableName() string { return "rooms" }

type messageRecord struct {
	ID     string `gorm:"primaryKey"`
	RoomID string `gorm:"index"`
	Sender string
	Body   string
	SentAt time.Time `gorm:"index"`
}

func (messageRecord) TableName() string { return "messages" }
