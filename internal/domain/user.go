// Package domain contains entity without logic, just meta-data
package domain

import "errors"

const (
	MaxUsernameLen = 36
	MinPasswordLen = 8
)

var (
	ErrUsernameTooLong = errors.New("username too long")
	ErrUsernameEmpty   = errors.New("username empty")
	ErrWeakPassword    = errors.New("password must be at least 8 characters")
)

type UserID string

type User struct {
	ID       UserID `json:"id"`
	Username string `json:"username"`
}

// ValidateUsername guards the announce and register paths with one rule set.
func ValidateUsername(name string) error {
	if len(name) == 0 {
		return ErrUsernameEmpty
	}
	if len(name) > MaxUsernameLen {
		return ErrUsernameTooLong
	}
	return nil
}

// ValidatePassword applies the registration password policy.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLen {
		return ErrWeakPassword
	}
	return nil
}
