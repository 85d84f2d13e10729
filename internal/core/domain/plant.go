package domain

import "errors"

// =============================================================================
// Errors
// =============================================================================

var (
	// Plant name validation errors
	ErrPlantNameRequired     = errors.New("plant name is required")
	ErrPlantNameTooShort     = errors.New("plant name must be at least 4 characters long")
	ErrPlantNameInvalidChars = errors.New("only letters, spaces and numbers are allowed")

	// Genus validation errors
	ErrGenusRequired     = errors.New("genus is required")
	ErrGenusTooShort     = errors.New("genus must be at least 4 characters long")
	ErrGenusInvalidChars = errors.New("only letters, spaces and numbers are allowed")

	// Enum validation errors
	ErrInvalidWatering   = errors.New("watering must be one of: Frequent, Average, Minimal")
	ErrInvalidGrowthRate = errors.New("growth rate must be one of: High, Moderate, Low")
)

// =============================================================================
// Enum Types
// =============================================================================

// Watering is a plant's watering-frequency classification.
type Watering string

const (
	WateringFrequent Watering = "Frequent"
	WateringAverage  Watering = "Average"
	WateringMinimal  Watering = "Minimal"
)

// IsValid checks if the watering value is valid.
func (w Watering) IsValid() bool {
	switch w {
	case WateringFrequent, WateringAverage, WateringMinimal:
		return true
	default:
		return false
	}
}

// GrowthRate is a plant's growth-rate classification.
type GrowthRate string

const (
	GrowthHigh     GrowthRate = "High"
	GrowthModerate GrowthRate = "Moderate"
	GrowthLow      GrowthRate = "Low"
)

// IsValid checks if the growth rate value is valid.
func (g GrowthRate) IsValid() bool {
	switch g {
	case GrowthHigh, GrowthModerate, GrowthLow:
		return true
	default:
		return false
	}
}

// =============================================================================
// Plant
// =============================================================================

// Plant is a catalog entry shared across gardens via placements.
type Plant struct {
	ID         int
	Name       string
	Genus      string
	Watering   Watering
	GrowthRate GrowthRate
}

// NewPlant creates a plant, applying catalog defaults for omitted enums.
// Returns an error if validation fails.
func NewPlant(name, genus string, watering Watering, growthRate GrowthRate) (*Plant, error) {
	if watering == "" {
		watering = WateringFrequent
	}
	if growthRate == "" {
		growthRate = GrowthHigh
	}
	p := &Plant{
		Name:       name,
		Genus:      genus,
		Watering:   watering,
		GrowthRate: growthRate,
	}
	if errs := ValidatePlant(*p); len(errs) > 0 {
		return nil, errs[0]
	}
	return p, nil
}

// =============================================================================
// Validation Functions (Pure)
// =============================================================================

// ValidatePlantName validates a plant name.
func ValidatePlantName(name string) error {
	if name == "" {
		return ErrPlantNameRequired
	}
	if len(name) < 4 {
		return ErrPlantNameTooShort
	}
	if !alnumSpaceRegex.MatchString(name) {
		return ErrPlantNameInvalidChars
	}
	return nil
}

// ValidateGenus validates a plant genus.
func ValidateGenus(genus string) error {
	if genus == "" {
		return ErrGenusRequired
	}
	if len(genus) < 4 {
		return ErrGenusTooShort
	}
	if !alnumSpaceRegex.MatchString(genus) {
		return ErrGenusInvalidChars
	}
	return nil
}

// ValidatePlant validates a plant and returns all validation errors.
func ValidatePlant(p Plant) []error {
	var errs []error
	if err := ValidatePlantName(p.Name); err != nil {
		errs = append(errs, err)
	}
	if err := ValidateGenus(p.Genus); err != nil {
		errs = append(errs, err)
	}
	if !p.Watering.IsValid() {
		errs = append(errs, ErrInvalidWatering)
	}
	if !p.GrowthRate.IsValid() {
		errs = append(errs, ErrInvalidGrowthRate)
	}
	return errs
}
