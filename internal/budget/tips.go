package budget

import (
	"fmt"

	"github.com/livinsalti/salti/internal/model"
	"github.com/livinsalti/salti/internal/projection"
)

const maxTips = 3

// Tip projection assumptions: a 10-year horizon at a nominal 8% annual
// return, contributed weekly.
const (
	tipProjectionRate  = 0.08
	tipProjectionYears = 10
)

// buildTips generates the ordered advice list for a computed result.
// Rules fire in a fixed order and the output is capped at maxTips, so
// tips are deterministic for a given result.
func buildTips(r model.WeeklyBudgetResult) []string {
	var tips []string

	if r.Status == model.StatusCritical {
		if r.Income <= 0 {
			tips = append(tips, "Add an income source to unlock your weekly plan.")
		} else {
			gap := r.Fixed - r.Income
			tips = append(tips, fmt.Sprintf(
				"Fixed costs exceed income by %s/week. Trimming rent, subscriptions, or insurance is the fastest way back to positive.",
				dollars(gap)))
		}
	}

	if r.VariableTotal > 0 {
		for _, a := range r.Allocations {
			if a.Weekly*2 > r.VariableTotal {
				share := float64(a.Weekly) / float64(r.VariableTotal) * 100
				tips = append(tips, fmt.Sprintf(
					"%.0f%% of your variable spending goes to %s. Rebalancing your splits would spread the risk.",
					share, a.Category))
				break
			}
		}
	}

	if r.Income > 0 && float64(r.SaveNStack) > 0.30*float64(r.Income) {
		fv := projection.FutureValueOfRecurring(r.SaveNStack.Dollars(), 52, tipProjectionRate, tipProjectionYears)
		tips = append(tips, fmt.Sprintf(
			"Saving %s/week is excellent. Kept up for %d years at %.0f%% that grows to about %s.",
			dollars(r.SaveNStack), tipProjectionYears, tipProjectionRate*100, dollars(model.FromDollars(fv))))
	}

	if r.Status == model.StatusWarning {
		tips = append(tips, "Your savings rate is under 5% of income. Even a small bump compounds over time.")
	}

	if len(tips) > maxTips {
		tips = tips[:maxTips]
	}
	return tips
}

func dollars(c model.Cents) string {
	return fmt.Sprintf("$%.2f", c.Dollars())
}
