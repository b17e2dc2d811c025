package model

import (
	"strings"
	"time"
)

// Cadence is the recurrence period of an income or expense.
type Cadence string

// Supported cadences.
const (
	CadenceWeekly   Cadence = "weekly"
	CadenceBiweekly Cadence = "biweekly"
	CadenceMonthly  Cadence = "monthly"
	CadenceAnnual   Cadence = "annual"
)

// ParseCadence parses a cadence string case-insensitively.
// Returns false if the string is not a known cadence.
func ParseCadence(s string) (Cadence, bool) {
	switch Cadence(strings.ToLower(strings.TrimSpace(s))) {
	case CadenceWeekly:
		return CadenceWeekly, true
	case CadenceBiweekly:
		return CadenceBiweekly, true
	case CadenceMonthly:
		return CadenceMonthly, true
	case CadenceAnnual:
		return CadenceAnnual, true
	}
	return "", false
}

// Income is one recurring income source.
type Income struct {
	Amount  Cents
	Cadence Cadence
	Source  string
}

// Valid reports whether the income should be considered by the engine:
// a positive amount and a non-empty source label.
func (i Income) Valid() bool {
	return i.Amount > 0 && strings.TrimSpace(i.Source) != ""
}

// FixedExpense is one recurring obligation (rent, insurance, subscriptions).
type FixedExpense struct {
	Name    string
	Amount  Cents
	Cadence Cadence
}

// Valid reports whether the expense should be considered by the engine.
func (e FixedExpense) Valid() bool {
	return e.Amount > 0 && strings.TrimSpace(e.Name) != ""
}

// CategorySplit assigns a proportional weight to one variable-spending
// category. Weights need not sum to 1; the engine normalizes them.
type CategorySplit struct {
	Name   string
	Weight float64
}

// Preferences holds the user's variable-spending preferences.
type Preferences struct {
	// SaveRate is the fraction in [0, 1] of leftover weekly income
	// directed to savings ("Save n Stack").
	SaveRate float64
	// Splits is the ordered category weight table. Order is preserved
	// through allocation so output is deterministic.
	Splits []CategorySplit
}

// Goal is a savings goal. Goals are display-only; the allocation
// algorithm does not consume them.
type Goal struct {
	Name         string
	TargetAmount Cents
	DueDate      time.Time
}

// BudgetInput is the aggregate handed to the engine. It is treated as
// immutable during a single computation.
type BudgetInput struct {
	Incomes       []Income
	FixedExpenses []FixedExpense
	Preferences   Preferences
	Goals         []Goal
}

// HealthStatus classifies a computed weekly budget.
type HealthStatus string

// Health statuses, worst to best.
const (
	StatusCritical HealthStatus = "critical"
	StatusWarning  HealthStatus = "warning"
	StatusHealthy  HealthStatus = "healthy"
)

// Allocation is the weekly amount assigned to one variable category.
type Allocation struct {
	Category string
	Weekly   Cents
}

// WeeklyBudgetResult is the immutable output of one engine computation.
//
// Invariant: Income = Fixed + SaveNStack + VariableTotal + Remainder when
// Income >= Fixed, and every allocation is non-negative.
type WeeklyBudgetResult struct {
	Income        Cents
	Fixed         Cents
	SaveNStack    Cents
	VariableTotal Cents
	// Remainder is the residue left unallocated by cent apportionment.
	Remainder   Cents
	Allocations []Allocation
	Status      HealthStatus
	Tips        []string
}
