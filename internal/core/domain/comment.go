package domain

import (
	"errors"
	"time"
	"unicode"
)

// =============================================================================
// Errors
// =============================================================================

var (
	ErrMessageRequired  = errors.New("message is required")
	ErrMessageTooShort  = errors.New("message must be at least 4 characters long")
	ErrMessageBadPrefix = errors.New("message must begin with a letter")
)

// =============================================================================
// Comment
// =============================================================================

// Comment is a message posted by a user on a garden.
type Comment struct {
	ID          int
	Message     string
	CommentDate time.Time
	UserID      int
	GardenID    int
}

// NewComment creates a comment by the given user on the given garden,
// dated today. Returns an error if validation fails.
func NewComment(message string, userID, gardenID int) (*Comment, error) {
	if err := ValidateMessage(message); err != nil {
		return nil, err
	}
	return &Comment{
		Message:     message,
		CommentDate: DateOnly(time.Now()),
		UserID:      userID,
		GardenID:    gardenID,
	}, nil
}

// =============================================================================
// Validation Functions (Pure)
// =============================================================================

// ValidateMessage validates a comment message.
func ValidateMessage(message string) error {
	if message == "" {
		return ErrMessageRequired
	}
	if len(message) < 4 {
		return ErrMessageTooShort
	}
	first := []rune(message)[0]
	if !unicode.IsLetter(first) {
		return ErrMessageBadPrefix
	}
	return nil
}
