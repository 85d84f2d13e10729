// Package domain contains the core domain types and validation logic.
// This is part of the Functional Core - all functions are pure with no I/O.
package domain

import (
	"errors"
	"regexp"
	"time"
)

// =============================================================================
// Errors
// =============================================================================

var (
	// Username validation errors
	ErrUsernameRequired     = errors.New("user name is required")
	ErrUsernameTooShort     = errors.New("user name must be at least 4 characters long")
	ErrUsernameInvalidChars = errors.New("only letters, spaces and numbers are allowed")

	// Email validation errors
	ErrEmailRequired = errors.New("email is required")
	ErrEmailInvalid  = errors.New("invalid email format")

	// Password validation errors
	ErrPasswordRequired = errors.New("password is required")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters long")
)

// =============================================================================
// User
// =============================================================================

// User represents a registered account. PasswordHash is never serialized;
// the HTTP layer projects users through views that omit it.
type User struct {
	ID           int
	Username     string
	Email        string
	PasswordHash string
	IsAdmin      bool
}

// =============================================================================
// Validation Functions (Pure)
// =============================================================================

var (
	alnumSpaceRegex = regexp.MustCompile(`^[a-zA-Z0-9 ]+$`)
	emailRegex      = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// ValidateUsername validates a user name per the account rules.
func ValidateUsername(name string) error {
	if name == "" {
		return ErrUsernameRequired
	}
	if len(name) < 4 {
		return ErrUsernameTooShort
	}
	if !alnumSpaceRegex.MatchString(name) {
		return ErrUsernameInvalidChars
	}
	return nil
}

// ValidateEmail validates an email address shape.
func ValidateEmail(email string) error {
	if email == "" {
		return ErrEmailRequired
	}
	if !emailRegex.MatchString(email) {
		return ErrEmailInvalid
	}
	return nil
}

// ValidatePassword validates a plaintext password. Only the length is
// constrained; the hash stored afterwards has its own format.
func ValidatePassword(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if len(password) < 6 {
		return ErrPasswordTooShort
	}
	return nil
}

// ValidateUser validates the mutable account fields together.
// Password is validated separately because updates may omit it.
func ValidateUser(u User) []error {
	var errs []error
	if err := ValidateUsername(u.Username); err != nil {
		errs = append(errs, err)
	}
	if err := ValidateEmail(u.Email); err != nil {
		errs = append(errs, err)
	}
	return errs
}

// =============================================================================
// Time Helpers
// =============================================================================

// DateOnly truncates a timestamp to its calendar date in UTC.
// Gardens and comments store creation dates, not instants.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
