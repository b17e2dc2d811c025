// Package budget implements the weekly budget computation engine:
// cadence normalization, plan-tier capability resolution, allocation
// math, health classification, and tip generation.
package budget

import (
	"errors"
	"fmt"
	"math"

	"github.com/livinsalti/salti/internal/model"
)

// ErrInvalidInput marks structurally invalid engine input: negative
// amounts, unknown cadences, out-of-range save rates, or negative split
// weights. Financial edge cases (zero income, fixed costs exceeding
// income) are not errors; they surface as StatusCritical results.
var ErrInvalidInput = errors.New("invalid budget input")

// weeksPerMonth is the average number of weeks in a calendar month.
const weeksPerMonth = 4.345

// ToWeekly converts an amount at the given cadence to a weekly amount,
// rounded to the nearest cent.
func ToWeekly(amount model.Cents, c model.Cadence) (model.Cents, error) {
	if amount < 0 {
		return 0, fmt.Errorf("%w: negative amount %d", ErrInvalidInput, amount)
	}

	switch c {
	case model.CadenceWeekly:
		return amount, nil
	case model.CadenceBiweekly:
		return roundCents(float64(amount) / 2), nil
	case model.CadenceMonthly:
		return roundCents(float64(amount) / weeksPerMonth), nil
	case model.CadenceAnnual:
		return roundCents(float64(amount) / 52), nil
	}
	return 0, fmt.Errorf("%w: unknown cadence %q", ErrInvalidInput, c)
}

func roundCents(f float64) model.Cents {
	return model.Cents(math.Round(f))
}
