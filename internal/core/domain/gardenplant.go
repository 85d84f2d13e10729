package domain

import "errors"

// =============================================================================
// Errors
// =============================================================================

var (
	ErrInvalidColor    = errors.New("color must be one of: Green, Red, Yellow, Orange, Purple, Blue, Rainbow")
	ErrInvalidPosition = errors.New("position must be one of: Center, South, North, East, West, Northeast, Northwest, Southeast, Southwest")
	ErrInvalidSize     = errors.New("size must be one of: Small, Medium, Large")
	ErrPositionMissing = errors.New("position is required")
)

// =============================================================================
// Enum Types
// =============================================================================

// Color is a placement's display color.
type Color string

const (
	ColorGreen   Color = "Green"
	ColorRed     Color = "Red"
	ColorYellow  Color = "Yellow"
	ColorOrange  Color = "Orange"
	ColorPurple  Color = "Purple"
	ColorBlue    Color = "Blue"
	ColorRainbow Color = "Rainbow"
)

// IsValid checks if the color value is valid.
func (c Color) IsValid() bool {
	switch c {
	case ColorGreen, ColorRed, ColorYellow, ColorOrange, ColorPurple, ColorBlue, ColorRainbow:
		return true
	default:
		return false
	}
}

// Position is an enumerated compass/center location within a garden.
// At most one placement per garden may hold a given position.
type Position string

const (
	PositionCenter    Position = "Center"
	PositionSouth     Position = "South"
	PositionNorth     Position = "North"
	PositionEast      Position = "East"
	PositionWest      Position = "West"
	PositionNortheast Position = "Northeast"
	PositionNorthwest Position = "Northwest"
	PositionSoutheast Position = "Southeast"
	PositionSouthwest Position = "Southwest"
)

// IsValid checks if the position value is valid.
func (p Position) IsValid() bool {
	switch p {
	case PositionCenter, PositionSouth, PositionNorth, PositionEast, PositionWest,
		PositionNortheast, PositionNorthwest, PositionSoutheast, PositionSouthwest:
		return true
	default:
		return false
	}
}

// Size is a placement's size classification.
type Size string

const (
	SizeSmall  Size = "Small"
	SizeMedium Size = "Medium"
	SizeLarge  Size = "Large"
)

// IsValid checks if the size value is valid.
func (s Size) IsValid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	default:
		return false
	}
}

// =============================================================================
// GardenPlant
// =============================================================================

// GardenPlant records one plant's placement (position, color, size) within
// one garden. It has no lifecycle of its own: deleting either the garden
// or the plant removes it.
type GardenPlant struct {
	ID       int
	Color    Color
	Position Position
	Size     Size
	GardenID int
	PlantID  int
}

// NewGardenPlant creates a placement, applying defaults for omitted
// color and size. Position is mandatory.
func NewGardenPlant(gardenID, plantID int, color Color, position Position, size Size) (*GardenPlant, error) {
	if color == "" {
		color = ColorGreen
	}
	if size == "" {
		size = SizeMedium
	}
	gp := &GardenPlant{
		Color:    color,
		Position: position,
		Size:     size,
		GardenID: gardenID,
		PlantID:  plantID,
	}
	if errs := ValidateGardenPlant(*gp); len(errs) > 0 {
		return nil, errs[0]
	}
	return gp, nil
}

// =============================================================================
// Validation Functions (Pure)
// =============================================================================

// ValidateGardenPlant validates placement attributes and returns all
// validation errors. Position occupancy is a store-level invariant and
// is checked there, inside the writing transaction.
func ValidateGardenPlant(gp GardenPlant) []error {
	var errs []error
	if gp.Position == "" {
		errs = append(errs, ErrPositionMissing)
	} else if !gp.Position.IsValid() {
		errs = append(errs, ErrInvalidPosition)
	}
	if !gp.Color.IsValid() {
		errs = append(errs, ErrInvalidColor)
	}
	if !gp.Size.IsValid() {
		errs = append(errs, ErrInvalidSize)
	}
	return errs
}
