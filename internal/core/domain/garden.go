package domain

import (
	"errors"
	"time"
)

// =============================================================================
// Errors
// =============================================================================

var (
	// Garden name validation errors
	ErrGardenNameRequired     = errors.New("garden name is required")
	ErrGardenNameTooShort     = errors.New("garden name must be at least 4 characters long")
	ErrGardenNameInvalidChars = errors.New("only letters, spaces and numbers are allowed")

	// Description validation errors
	ErrDescriptionTooShort     = errors.New("description must be at least 4 characters long")
	ErrDescriptionInvalidChars = errors.New("only letters, spaces and numbers are allowed")
)

// =============================================================================
// Garden
// =============================================================================

// Garden is a named collection owned by a user, holding plant placements
// and comments. Deleting a garden cascades to both.
type Garden struct {
	ID           int
	Name         string
	Description  string
	CreationDate time.Time
	UserID       int
}

// NewGarden creates a garden owned by the given user, dated today.
// Returns an error if validation fails.
func NewGarden(name, description string, userID int) (*Garden, error) {
	if err := ValidateGardenName(name); err != nil {
		return nil, err
	}
	if description != "" {
		if err := ValidateDescription(description); err != nil {
			return nil, err
		}
	}
	return &Garden{
		Name:         name,
		Description:  description,
		CreationDate: DateOnly(time.Now()),
		UserID:       userID,
	}, nil
}

// =============================================================================
// Validation Functions (Pure)
// =============================================================================

// ValidateGardenName validates a garden name.
func ValidateGardenName(name string) error {
	if name == "" {
		return ErrGardenNameRequired
	}
	if len(name) < 4 {
		return ErrGardenNameTooShort
	}
	if !alnumSpaceRegex.MatchString(name) {
		return ErrGardenNameInvalidChars
	}
	return nil
}

// ValidateDescription validates a garden description.
func ValidateDescription(description string) error {
	if len(description) < 4 {
		return ErrDescriptionTooShort
	}
	if !alnumSpaceRegex.MatchString(description) {
		return ErrDescriptionInvalidChars
	}
	return nil
}
