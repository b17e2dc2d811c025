package budget

import (
	"errors"
	"reflect"
	"testing"

	"github.com/livinsalti/salti/internal/model"
)

func weeklyIncome(t *testing.T, cents model.Cents) model.BudgetInput {
	t.Helper()
	return model.BudgetInput{
		Incomes: []model.Income{{Amount: cents, Cadence: model.CadenceWeekly, Source: "paycheck"}},
	}
}

func allocationSum(allocs []model.Allocation) model.Cents {
	var sum model.Cents
	for _, a := range allocs {
		sum += a.Weekly
	}
	return sum
}

func TestComputeSingleWeeklyIncomeFreeTier(t *testing.T) {
	res, err := Compute(weeklyIncome(t, 70000), model.TierFree, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Income != 70000 {
		t.Errorf("Income = %d, want 70000", res.Income)
	}
	if res.SaveNStack != 14000 {
		t.Errorf("SaveNStack = %d, want 14000 (20%%)", res.SaveNStack)
	}
	if res.VariableTotal != 56000 {
		t.Errorf("VariableTotal = %d, want 56000", res.VariableTotal)
	}
	if res.Status != model.StatusHealthy {
		t.Errorf("Status = %s, want healthy", res.Status)
	}

	// Standard table: groceries gets 40% of variable.
	if len(res.Allocations) != 5 {
		t.Fatalf("got %d allocations, want 5", len(res.Allocations))
	}
	if res.Allocations[0].Category != "groceries" || res.Allocations[0].Weekly != 22400 {
		t.Errorf("groceries = %+v, want {groceries 22400}", res.Allocations[0])
	}
	if got := allocationSum(res.Allocations); got != res.VariableTotal {
		t.Errorf("allocations sum to %d, want %d", got, res.VariableTotal)
	}
	if res.Remainder != 0 {
		t.Errorf("Remainder = %d, want 0", res.Remainder)
	}
}

func TestComputeMonthlyCadences(t *testing.T) {
	in := model.BudgetInput{
		Incomes: []model.Income{{Amount: 200000, Cadence: model.CadenceMonthly, Source: "salary"}},
		FixedExpenses: []model.FixedExpense{
			{Name: "rent", Amount: 180000, Cadence: model.CadenceMonthly},
		},
	}

	res, err := Compute(in, model.TierFree, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Income != 46030 {
		t.Errorf("Income = %d, want 46030", res.Income)
	}
	if res.Fixed != 41427 {
		t.Errorf("Fixed = %d, want 41427", res.Fixed)
	}
	if res.SaveNStack != 921 {
		t.Errorf("SaveNStack = %d, want 921", res.SaveNStack)
	}
	// Savings land under 5% of income while money is left over.
	if res.Status != model.StatusWarning {
		t.Errorf("Status = %s, want warning", res.Status)
	}
}

func TestComputeFixedExceedsIncome(t *testing.T) {
	in := weeklyIncome(t, 40000)
	in.FixedExpenses = []model.FixedExpense{
		{Name: "rent", Amount: 50000, Cadence: model.CadenceWeekly},
	}

	res, err := Compute(in, model.TierFree, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Status != model.StatusCritical {
		t.Errorf("Status = %s, want critical", res.Status)
	}
	if res.SaveNStack != 0 || res.VariableTotal != 0 {
		t.Errorf("SaveNStack = %d, VariableTotal = %d, want both 0", res.SaveNStack, res.VariableTotal)
	}
	for _, a := range res.Allocations {
		if a.Weekly != 0 {
			t.Errorf("allocation %s = %d, want 0", a.Category, a.Weekly)
		}
	}
	if len(res.Tips) == 0 {
		t.Error("expected a tip about fixed costs exceeding income")
	}
}

func TestComputeZeroIncome(t *testing.T) {
	res, err := Compute(model.BudgetInput{}, model.TierFree, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != model.StatusCritical {
		t.Errorf("Status = %s, want critical", res.Status)
	}
}

func TestComputeProCustomSaveRate(t *testing.T) {
	in := weeklyIncome(t, 100000)
	in.Preferences.SaveRate = 0.35

	res, err := Compute(in, model.TierPro, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.SaveNStack != 35000 {
		t.Errorf("SaveNStack = %d, want 35000", res.SaveNStack)
	}
	if res.VariableTotal != 65000 {
		t.Errorf("VariableTotal = %d, want 65000", res.VariableTotal)
	}
}

func TestComputeFreeTierIgnoresCustomSaveRate(t *testing.T) {
	in := weeklyIncome(t, 100000)
	in.Preferences.SaveRate = 0.50

	res, err := Compute(in, model.TierFree, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.SaveNStack != 20000 {
		t.Errorf("SaveNStack = %d, want 20000 (forced 20%%)", res.SaveNStack)
	}
}

// A free-tier save rate outside [0, 1] is overridden before validation,
// so it must not fail the computation.
func TestComputeFreeTierIgnoresInvalidSaveRate(t *testing.T) {
	in := weeklyIncome(t, 100000)
	in.Preferences.SaveRate = 7.5

	if _, err := Compute(in, model.TierFree, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestComputeProInvalidSaveRate(t *testing.T) {
	in := weeklyIncome(t, 100000)
	in.Preferences.SaveRate = 1.5

	_, err := Compute(in, model.TierPro, nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
}

func TestComputeFreeTierTruncatesIncomes(t *testing.T) {
	in := model.BudgetInput{
		Incomes: []model.Income{
			{Amount: 50000, Cadence: model.CadenceWeekly, Source: "job"},
			{Amount: 30000, Cadence: model.CadenceWeekly, Source: "side gig"},
		},
	}

	res, err := Compute(in, model.TierFree, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Income != 50000 {
		t.Errorf("Income = %d, want 50000 (second income truncated)", res.Income)
	}

	pro, err := Compute(in, model.TierPro, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pro.Income != 80000 {
		t.Errorf("pro Income = %d, want 80000", pro.Income)
	}
}

func TestComputeFreeTierTruncatesExpenses(t *testing.T) {
	in := weeklyIncome(t, 100000)
	for _, name := range []string{"rent", "insurance", "phone", "internet", "gym"} {
		in.FixedExpenses = append(in.FixedExpenses, model.FixedExpense{
			Name: name, Amount: 1000, Cadence: model.CadenceWeekly,
		})
	}

	res, err := Compute(in, model.TierFree, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Fixed != 4000 {
		t.Errorf("Fixed = %d, want 4000 (fifth expense truncated)", res.Fixed)
	}
}

func TestComputeFreeTierIgnoresCustomSplits(t *testing.T) {
	in := weeklyIncome(t, 100000)
	in.Preferences.Splits = []model.CategorySplit{{Name: "everything", Weight: 1}}

	res, err := Compute(in, model.TierFree, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Allocations) != 5 || res.Allocations[0].Category != "groceries" {
		t.Errorf("free tier used custom splits: %+v", res.Allocations)
	}
}

func TestComputeProCustomSplits(t *testing.T) {
	in := weeklyIncome(t, 100000)
	in.Preferences.SaveRate = 0.20
	in.Preferences.Splits = []model.CategorySplit{
		{Name: "food", Weight: 3},
		{Name: "fun", Weight: 1},
	}

	res, err := Compute(in, model.TierPro, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []model.Allocation{
		{Category: "food", Weekly: 60000},
		{Category: "fun", Weekly: 20000},
	}
	if !reflect.DeepEqual(res.Allocations, want) {
		t.Errorf("Allocations = %+v, want %+v", res.Allocations, want)
	}
}

func TestComputeZeroWeightSplitsFallBack(t *testing.T) {
	in := weeklyIncome(t, 100000)
	in.Preferences.SaveRate = 0.20
	in.Preferences.Splits = []model.CategorySplit{{Name: "food", Weight: 0}}

	res, err := Compute(in, model.TierPro, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Allocations) != 5 {
		t.Errorf("got %d allocations, want standard table fallback", len(res.Allocations))
	}
}

func TestComputeDefaultsFromProfile(t *testing.T) {
	defaults := &model.Preferences{
		SaveRate: 0.10,
		Splits: []model.CategorySplit{
			{Name: "essentials", Weight: 0.7},
			{Name: "extras", Weight: 0.3},
		},
	}

	res, err := Compute(weeklyIncome(t, 100000), model.TierFree, defaults)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Free tier still forces the 20% rate, but takes the profile splits.
	if res.SaveNStack != 20000 {
		t.Errorf("SaveNStack = %d, want 20000", res.SaveNStack)
	}
	if len(res.Allocations) != 2 || res.Allocations[0].Category != "essentials" {
		t.Errorf("Allocations = %+v, want profile defaults", res.Allocations)
	}
}

func TestComputeApportionExact(t *testing.T) {
	// A variable total that does not divide evenly across the weights.
	in := weeklyIncome(t, 101)
	in.Preferences.SaveRate = 0
	in.Preferences.Splits = []model.CategorySplit{
		{Name: "a", Weight: 1},
		{Name: "b", Weight: 1},
		{Name: "c", Weight: 1},
	}

	res, err := Compute(in, model.TierPro, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := allocationSum(res.Allocations); got+res.Remainder != res.VariableTotal {
		t.Errorf("sum %d + remainder %d != variable %d", got, res.Remainder, res.VariableTotal)
	}
	if res.Remainder != 0 {
		t.Errorf("Remainder = %d, want 0 with positive weights", res.Remainder)
	}
	// Ties go to earlier categories.
	if res.Allocations[0].Weekly < res.Allocations[2].Weekly {
		t.Errorf("tie-break order wrong: %+v", res.Allocations)
	}
}

func TestComputeDeterministic(t *testing.T) {
	in := weeklyIncome(t, 123457)
	in.FixedExpenses = []model.FixedExpense{
		{Name: "rent", Amount: 98765, Cadence: model.CadenceMonthly},
	}

	first, err := Compute(in, model.TierFree, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := Compute(in, model.TierFree, nil)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d diverged:\nfirst = %+v\nagain = %+v", i, first, again)
		}
	}
}

func TestComputeNegativeAmountRejected(t *testing.T) {
	in := model.BudgetInput{
		Incomes: []model.Income{{Amount: -1, Cadence: model.CadenceWeekly, Source: "bad"}},
	}
	_, err := Compute(in, model.TierFree, nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
}

func FuzzComputeInvariants(f *testing.F) {
	f.Add(int64(70000), int64(20000), 0.20, false)
	f.Add(int64(0), int64(0), 0.0, false)
	f.Add(int64(1), int64(1000000), 0.95, true)
	f.Add(int64(987654321), int64(3), 0.01, true)

	f.Fuzz(func(t *testing.T, income, fixed int64, saveRate float64, pro bool) {
		in := model.BudgetInput{
			Incomes: []model.Income{{Amount: model.Cents(income), Cadence: model.CadenceWeekly, Source: "x"}},
			FixedExpenses: []model.FixedExpense{
				{Name: "y", Amount: model.Cents(fixed), Cadence: model.CadenceWeekly},
			},
			Preferences: model.Preferences{SaveRate: saveRate},
		}
		tier := model.TierFree
		if pro {
			tier = model.TierPro
		}

		res, err := Compute(in, tier, nil)
		if err != nil {
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("unexpected error type: %v", err)
			}
			return
		}

		if res.SaveNStack < 0 || res.VariableTotal < 0 || res.Remainder < 0 {
			t.Fatalf("negative output: %+v", res)
		}
		for _, a := range res.Allocations {
			if a.Weekly < 0 {
				t.Fatalf("negative allocation: %+v", a)
			}
		}
		if got := allocationSum(res.Allocations) + res.Remainder; got != res.VariableTotal {
			t.Fatalf("allocations + remainder = %d, want %d", got, res.VariableTotal)
		}
		if res.Income >= res.Fixed {
			available := res.Income - res.Fixed
			if res.SaveNStack+res.VariableTotal != available {
				t.Fatalf("save %d + variable %d != available %d", res.SaveNStack, res.VariableTotal, available)
			}
			if res.SaveNStack > available {
				t.Fatalf("save %d exceeds available %d", res.SaveNStack, available)
			}
		}
	})
}
