package budget

import (
	"fmt"
	"math"
	"sort"

	"github.com/livinsalti/salti/internal/model"
)

// Compute produces the weekly allocation for one budget input under the
// given plan tier. defaults, when non-nil, supplies the profile-level
// default preferences used for tiers that cannot customize splits; the
// built-in table applies otherwise.
//
// Compute is pure: it reads no clock, no globals, and returns identical
// results for identical arguments. Bad financial situations (zero
// income, fixed costs above income) complete normally with a critical
// status; only structurally invalid input returns an error.
func Compute(in model.BudgetInput, tier model.Tier, defaults *model.Preferences) (model.WeeklyBudgetResult, error) {
	caps := Resolve(tier)

	// Effective preferences are fixed before any allocation math so a
	// restricted tier's customizations are ignored wholesale, never
	// partially applied.
	prefs := in.Preferences
	if !caps.CanCustomizeSaveRate {
		prefs.SaveRate = DefaultSaveRate
	}
	if !caps.CanCustomizeSplits || len(prefs.Splits) == 0 {
		if defaults != nil && len(defaults.Splits) > 0 {
			prefs.Splits = defaults.Splits
		} else {
			prefs.Splits = DefaultSplits()
		}
	}

	if err := validate(in, prefs); err != nil {
		return model.WeeklyBudgetResult{}, err
	}

	// Weights are normalized by apportion; a weight table that sums to
	// zero would allocate nothing, so it falls back to the built-in one.
	if weightSum(prefs.Splits) <= 0 {
		prefs.Splits = DefaultSplits()
	}

	var res model.WeeklyBudgetResult

	for _, inc := range truncate(in.Incomes, caps.MaxIncomes) {
		w, err := ToWeekly(inc.Amount, inc.Cadence)
		if err != nil {
			return model.WeeklyBudgetResult{}, fmt.Errorf("income %q: %w", inc.Source, err)
		}
		res.Income += w
	}

	for _, exp := range truncate(in.FixedExpenses, caps.MaxFixedExpenses) {
		w, err := ToWeekly(exp.Amount, exp.Cadence)
		if err != nil {
			return model.WeeklyBudgetResult{}, fmt.Errorf("fixed expense %q: %w", exp.Name, err)
		}
		res.Fixed += w
	}

	available := res.Income - res.Fixed
	if available < 0 {
		available = 0
	}

	res.SaveNStack = roundCents(float64(available) * prefs.SaveRate)
	res.VariableTotal = available - res.SaveNStack
	res.Allocations, res.Remainder = apportion(res.VariableTotal, prefs.Splits)
	res.Status = classify(res)
	res.Tips = buildTips(res)

	return res, nil
}

// validate rejects structurally invalid input. It checks the effective
// preferences, not the raw ones, so values a restricted tier cannot use
// anyway do not fail the computation.
func validate(in model.BudgetInput, prefs model.Preferences) error {
	for _, inc := range in.Incomes {
		if inc.Amount < 0 {
			return fmt.Errorf("%w: income %q has negative amount", ErrInvalidInput, inc.Source)
		}
	}
	for _, exp := range in.FixedExpenses {
		if exp.Amount < 0 {
			return fmt.Errorf("%w: fixed expense %q has negative amount", ErrInvalidInput, exp.Name)
		}
	}
	if prefs.SaveRate < 0 || prefs.SaveRate > 1 || math.IsNaN(prefs.SaveRate) {
		return fmt.Errorf("%w: save rate %v outside [0, 1]", ErrInvalidInput, prefs.SaveRate)
	}
	for _, s := range prefs.Splits {
		if s.Weight < 0 || math.IsNaN(s.Weight) {
			return fmt.Errorf("%w: split %q has invalid weight %v", ErrInvalidInput, s.Name, s.Weight)
		}
	}
	return nil
}

// truncate caps a list to its first n entries, preserving entry order.
// Unlimited keeps everything.
func truncate[T any](list []T, n int) []T {
	if n == model.Unlimited || len(list) <= n {
		return list
	}
	return list[:n]
}

func weightSum(splits []model.CategorySplit) float64 {
	var sum float64
	for _, s := range splits {
		sum += s.Weight
	}
	return sum
}

// apportion distributes total across categories proportionally to their
// weights using largest-remainder cent rounding, so the allocations sum
// to total exactly. The returned remainder is the unassigned residue,
// zero except in degenerate cases.
func apportion(total model.Cents, splits []model.CategorySplit) ([]model.Allocation, model.Cents) {
	allocs := make([]model.Allocation, len(splits))
	for i, s := range splits {
		allocs[i].Category = s.Name
	}

	sum := weightSum(splits)
	if total <= 0 || sum <= 0 {
		return allocs, 0
	}

	type fraction struct {
		idx  int
		part float64
	}
	fracs := make([]fraction, len(splits))

	var assigned model.Cents
	for i, s := range splits {
		exact := float64(total) * (s.Weight / sum)
		floor := math.Floor(exact)
		allocs[i].Weekly = model.Cents(floor)
		assigned += model.Cents(floor)
		fracs[i] = fraction{idx: i, part: exact - floor}
	}

	// Hand leftover cents to the categories with the largest fractional
	// parts, earlier categories winning ties.
	leftover := total - assigned
	sort.SliceStable(fracs, func(a, b int) bool {
		return fracs[a].part > fracs[b].part
	})
	for i := 0; i < len(fracs) && leftover > 0; i++ {
		allocs[fracs[i].idx].Weekly++
		leftover--
	}

	return allocs, leftover
}

// classify applies the health thresholds: critical when there is no
// income or fixed costs exceed it, warning when savings land under 5%
// of income despite money being left over, healthy otherwise.
func classify(r model.WeeklyBudgetResult) model.HealthStatus {
	if r.Income <= 0 || r.Income < r.Fixed {
		return model.StatusCritical
	}
	if r.Income-r.Fixed > 0 && float64(r.SaveNStack) < 0.05*float64(r.Income) {
		return model.StatusWarning
	}
	return model.StatusHealthy
}
