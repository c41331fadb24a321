// Package store is the durable side of the system: users, rooms and message
// history. The live relay never reads or writes through it; both are
// triggered independently by the client.
package store

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	ErrUserExists    = errors.New("user already exists")
	ErrUserNotFound  = errors.New("user not found")
	ErrWrongPassword = errors.New("wrong password")
)

type Store struct {
	db *gorm.DB
}

// Open connects to the sqlite database at path and migrates the schema.
// Use "file::memory:?cache=shared" for tests.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.AutoMigrate(&userRecord{}, &roomRecord{}, &messageRecord{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	log.Info().Str("module", "store").Str("path", path).Msg("store opened")
	return &Store{db: db}, nil
}
