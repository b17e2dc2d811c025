// Package projection computes compound-growth estimates shown in tips,
// the standalone projection command, and share flows.
package projection

import "math"

// FutureValue returns the value of a one-time principal compounded
// annually at annualRate for the given number of years.
func FutureValue(principal, annualRate, years float64) float64 {
	return principal * math.Pow(1+annualRate, years)
}

// FutureValueOfRecurring returns the future value of a recurring
// contribution using the annuity-due formula: each payment compounds at
// the per-period rate for the remaining periods. A zero annual rate
// degenerates to simple accumulation.
func FutureValueOfRecurring(payment float64, periodsPerYear int, annualRate, years float64) float64 {
	n := float64(periodsPerYear) * years
	if annualRate == 0 {
		return payment * n
	}
	r := annualRate / float64(periodsPerYear)
	return payment * ((math.Pow(1+r, n) - 1) / r) * (1 + r)
}
