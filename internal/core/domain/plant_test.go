package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Enum Tests
// =============================================================================

func TestWatering_IsValid(t *testing.T) {
	for _, w := range []Watering{WateringFrequent, WateringAverage, WateringMinimal} {
		assert.True(t, w.IsValid(), "watering: %s", w)
	}
	assert.False(t, Watering("Sometimes").IsValid())
	assert.False(t, Watering("").IsValid())
}

func TestGrowthRate_IsValid(t *testing.T) {
	for _, g := range []GrowthRate{GrowthHigh, GrowthModerate, GrowthLow} {
		assert.True(t, g.IsValid(), "growth rate: %s", g)
	}
	assert.False(t, GrowthRate("Fast").IsValid())
}

// =============================================================================
// NewPlant Tests
// =============================================================================

func TestNewPlant_Valid(t *testing.T) {
	p, err := NewPlant("Fraser Fir", "Abies Fraseri", WateringFrequent, GrowthModerate)
	require.NoError(t, err)

	assert.Equal(t, "Fraser Fir", p.Name)
	assert.Equal(t, "Abies Fraseri", p.Genus)
	assert.Equal(t, WateringFrequent, p.Watering)
	assert.Equal(t, GrowthModerate, p.GrowthRate)
}

func TestNewPlant_AppliesDefaults(t *testing.T) {
	p, err := NewPlant("Ginkgo Tree", "Ginkgo Biloba", "", "")
	require.NoError(t, err)

	assert.Equal(t, WateringFrequent, p.Watering)
	assert.Equal(t, GrowthHigh, p.GrowthRate)
}

func TestNewPlant_InvalidName(t *testing.T) {
	_, err := NewPlant("ab", "Ginkgo Biloba", "", "")
	assert.ErrorIs(t, err, ErrPlantNameTooShort)
}

func TestNewPlant_InvalidWatering(t *testing.T) {
	_, err := NewPlant("Ginkgo Tree", "Ginkgo Biloba", "Hourly", "")
	assert.ErrorIs(t, err, ErrInvalidWatering)
}

// =============================================================================
// ValidatePlant Tests
// =============================================================================

func TestValidatePlant_CollectsAllErrors(t *testing.T) {
	p := Plant{Name: "ab", Genus: "cd", Watering: "bad", GrowthRate: "bad"}
	errs := ValidatePlant(p)
	assert.Len(t, errs, 4)
}

func TestValidateGenus_InvalidChars(t *testing.T) {
	assert.ErrorIs(t, ValidateGenus("Acer-Japonicum"), ErrGenusInvalidChars)
}
