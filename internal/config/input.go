package config

import (
	"fmt"
	"time"

	"github.com/livinsalti/salti/internal/model"
)

// Input converts the budget definition into engine input: dollars
// become cents, entries without an amount or label are trimmed, and
// cadence strings are parsed. A malformed cadence on a surviving entry
// is an error; the engine should never see one.
func (b BudgetConfig) Input() (model.BudgetInput, error) {
	var in model.BudgetInput

	for _, ic := range b.Incomes {
		inc := model.Income{
			Amount: model.FromDollars(ic.Amount),
			Source: ic.Source,
		}
		if !inc.Valid() {
			continue
		}
		cadence, ok := model.ParseCadence(ic.Cadence)
		if !ok {
			return model.BudgetInput{}, fmt.Errorf("income %q: unknown cadence %q", ic.Source, ic.Cadence)
		}
		inc.Cadence = cadence
		in.Incomes = append(in.Incomes, inc)
	}

	for _, ec := range b.FixedExpenses {
		exp := model.FixedExpense{
			Name:   ec.Name,
			Amount: model.FromDollars(ec.Amount),
		}
		if !exp.Valid() {
			continue
		}
		cadence, ok := model.ParseCadence(ec.Cadence)
		if !ok {
			return model.BudgetInput{}, fmt.Errorf("fixed expense %q: unknown cadence %q", ec.Name, ec.Cadence)
		}
		exp.Cadence = cadence
		in.FixedExpenses = append(in.FixedExpenses, exp)
	}

	in.Preferences.SaveRate = b.SaveRate
	for _, sc := range b.Splits {
		if sc.Name == "" {
			continue
		}
		in.Preferences.Splits = append(in.Preferences.Splits, model.CategorySplit{
			Name:   sc.Name,
			Weight: sc.Weight,
		})
	}

	for _, gc := range b.Goals {
		if gc.Name == "" || gc.Target <= 0 {
			continue
		}
		goal := model.Goal{
			Name:         gc.Name,
			TargetAmount: model.FromDollars(gc.Target),
		}
		if gc.Due != "" {
			if due, err := time.Parse("2006-01-02", gc.Due); err == nil {
				goal.DueDate = due
			}
		}
		in.Goals = append(in.Goals, goal)
	}

	return in, nil
}

// Tier returns the configured plan tier. Anything unrecognized resolves
// downstream to the free tier.
func (p ProfileConfig) Tier() model.Tier {
	return model.Tier(p.Plan)
}
