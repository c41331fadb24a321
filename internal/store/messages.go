package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/chatbees/server/internal/domain"
)

// AppendMessage durably stores one chat message.
func (s *Store) AppendMessage(ctx context.Context, msg domain.Message) (domain.Message, error) {
	rec := messageRecord{
		ID:     uuid.NewString(),
		RoomID: string(msg.RoomID),
		Sender: msg.Sender,
		Body:   msg.Body,
		SentAt: msg.SentAt,
	}
	if rec.SentAt.IsZero() {
		rec.SentAt = time.Now()
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return domain.Message{}, fmt.Errorf("append message: %w", err)
	}
	msg.ID = rec.ID
	msg.SentAt = rec.SentAt
	return msg, nil
}

// RoomHistory returns the stored messages for a room, oldest first.
func (s *Store) RoomHistory(ctx context.Context, room domain.RoomID) ([]domain.Message, error) {
	var recs []messageRecord
	err := s.db.WithContext(ctx).
		Where("room_id = ?", string(room)).
		Order("sent_at").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("room history: %w", err)
	}
	out := make([]domain.Message, 0, len(recs))
	for _, rec := range recs {
		out = append(out, domain.Message{
			ID:     rec.ID,
			RoomID: domain.RoomID(rec.RoomID),
			Sender: rec.Sender,
			Body:   rec.Body,
			SentAt: rec.SentAt,
		})
	}
	return out, nil
}
