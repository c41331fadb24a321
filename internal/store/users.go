package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/chatbees/server/internal/domain"
)

// CreateUser registers a username with a bcrypt-hashed password.
func (s *Store) CreateUser(ctx context.Context, username, password string) (domain.User, error) {
	var existing userRecord
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&existing).Error
	if err == nil {
		return domain.User{}, ErrUserExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.User{}, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	rec := userRecord{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	return domain.User{ID: domain.UserID(rec.ID), Username: rec.Username}, nil
}

// VerifyUser checks the credentials and returns the stored user.
func (s *Store) VerifyUser(ctx context.Context, username, password string) (domain.User, error) {
	var rec userRecord
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("lookup user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)) != nil {
		return domain.User{}, ErrWrongPassword
	}
	return domain.User{ID: domain.UserID(rec.ID), Username: rec.Username}, nil
}

// ListUsers returns every registered user. The login response includes this
// list so the client can offer conversation partners.
func (s *Store) ListUsers(ctx context.Context) ([]domain.User, error) {
	var recs []userRecord
	if err := s.db.WithContext(ctx).Order("username").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]domain.User, 0, len(recs))
	for _, rec := range recs {
		out = append(out, domain.User{ID: domain.UserID(rec.ID), Username: rec.Username})
	}
	return out, nil
}
