package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chatbees/server/internal/domain"
)

// participantsKey normalizes a participant set into a stable lookup key so
// the same conversation always resolves to the same room.
func participantsKey(participants []string) string {
	sorted := make([]string, len(participants))
	copy(sorted, participants)
	sort.Strings(sorted)
	return strings.Join(sorted, "\x1f")
}

// ResolveRoom returns the room id for a participant set, minting and
// persisting a new one if no room exists yet. The id is opaque to callers.
func (s *Store) ResolveRoom(ctx context.Context, participants []string) (domain.RoomID, error) {
	key := participantsKey(participants)

	var rec roomRecord
	err := s.db.WithContext(ctx).Where("participants_key = ?", key).First(&rec).Error
	if err == nil {
		return domain.RoomID(rec.ID), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("lookup room: %w", err)
	}

	rec = roomRecord{
		ID:              uuid.NewString(),
		ParticipantsKey: key,
		Participants:    strings.Join(participants, ","),
		CreatedAt:       time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return "", fmt.Errorf("create room: %w", err)
	}
	return domain.RoomID(rec.ID), nil
}
