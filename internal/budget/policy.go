package budget

import "github.com/livinsalti/salti/internal/model"

// DefaultSaveRate is the savings fraction applied for tiers that cannot
// customize it.
const DefaultSaveRate = 0.20

// DefaultSplits returns the built-in variable category weight table.
// Callers may mutate the returned slice; each call allocates a fresh copy.
func DefaultSplits() []model.CategorySplit {
	return []model.CategorySplit{
		{Name: "groceries", Weight: 0.40},
		{Name: "gas", Weight: 0.20},
		{Name: "eating_out", Weight: 0.20},
		{Name: "fun", Weight: 0.15},
		{Name: "misc", Weight: 0.05},
	}
}

// Resolve maps a plan tier to its capabilities. Every limit check in the
// repo (engine truncation, wizard entry caps, history/export gating)
// reads from the returned struct. Unrecognized tiers resolve to the free
// tier: an explicit fallback, so a corrupted plan value degrades to the
// most restricted behavior instead of failing open.
func Resolve(t model.Tier) model.Capabilities {
	if t == model.TierPro {
		return model.Capabilities{
			MaxIncomes:           model.Unlimited,
			MaxFixedExpenses:     model.Unlimited,
			MaxGoals:             model.Unlimited,
			CanCustomizeSaveRate: true,
			CanCustomizeSplits:   true,
			CanViewHistory:       true,
			CanExport:            true,
		}
	}

	return model.Capabilities{
		MaxIncomes:       1,
		MaxFixedExpenses: 4,
		MaxGoals:         1,
	}
}
