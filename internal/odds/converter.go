// Package odds converts American odds to implied probabilities and decimal
// odds. All functions are pure.
package odds

import (
	"fmt"
	"math"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// ImpliedProbability converts signed American odds to the win probability
// the price implies.
// -200 -> 200/(200+100) = 0.667, +150 -> 100/(150+100) = 0.40.
func ImpliedProbability(american int) (float64, error) {
	if american == 0 {
		return 0, models.ErrInvalidOdds
	}
	if american < 0 {
		a := float64(-american)
		return a / (a + 100.0), nil
	}
	return 100.0 / (float64(american) + 100.0), nil
}

// ToDecimal converts signed American odds to decimal odds.
// -200 -> 1.50, +150 -> 2.50.
func ToDecimal(american int) (float64, error) {
	if american == 0 {
		return 0, models.ErrInvalidOdds
	}
	if american < 0 {
		return (100.0 / float64(-american)) + 1.0, nil
	}
	return (float64(american) / 100.0) + 1.0, nil
}

// FromDecimal converts decimal odds back to American odds. Favorites
// (decimal < 2.0) map to negative American odds, underdogs to positive.
func FromDecimal(decimal float64) (int, error) {
	if decimal <= 1.0 {
		return 0, fmt.Errorf("invalid decimal odds %.4f: must be > 1.0", decimal)
	}
	if decimal >= 2.0 {
		return int(math.Round((decimal - 1.0) * 100.0)), nil
	}
	return int(math.Round(-100.0 / (decimal - 1.0))), nil
}

// FormatAmerican renders American odds with their conventional sign prefix.
func FormatAmerican(american int) string {
	return fmt.Sprintf("%+d", american)
}
