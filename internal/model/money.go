// Package model defines the domain types shared by the budget engine,
// the store, and the rendering layers.
package model

import "math"

// Cents is a money amount in integer minor units (USD cents). All engine
// and store math is done in Cents; dollars exist only at the config and
// rendering boundaries.
type Cents int64

// FromDollars converts a dollar amount to Cents, rounding to the nearest cent.
func FromDollars(d float64) Cents {
	return Cents(math.Round(d * 100))
}

// Dollars returns the amount in major units.
func (c Cents) Dollars() float64 {
	return float64(c) / 100
}
