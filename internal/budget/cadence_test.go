package budget

import (
	"errors"
	"testing"

	"github.com/livinsalti/salti/internal/model"
)

func TestToWeekly(t *testing.T) {
	tests := []struct {
		name    string
		amount  model.Cents
		cadence model.Cadence
		want    model.Cents
	}{
		{"weekly passthrough", 70000, model.CadenceWeekly, 70000},
		{"biweekly halves", 100000, model.CadenceBiweekly, 50000},
		{"biweekly rounds", 99999, model.CadenceBiweekly, 50000},
		{"monthly divides by 4.345", 100000, model.CadenceMonthly, 23015},
		{"annual divides by 52", 520000, model.CadenceAnnual, 10000},
		{"zero amount", 0, model.CadenceWeekly, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToWeekly(tt.amount, tt.cadence)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ToWeekly(%d, %s) = %d, want %d", tt.amount, tt.cadence, got, tt.want)
			}
		})
	}
}

func TestToWeeklyNegativeAmount(t *testing.T) {
	_, err := ToWeekly(-100, model.CadenceWeekly)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
}

func TestToWeeklyUnknownCadence(t *testing.T) {
	_, err := ToWeekly(100, model.Cadence("fortnightly"))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
}

// Monthly and annual conversions of the same yearly total should land
// within a cent of each other per week.
func TestToWeeklyMonthlyAnnualAgree(t *testing.T) {
	monthly, err := ToWeekly(100000, model.CadenceMonthly)
	if err != nil {
		t.Fatal(err)
	}
	annual, err := ToWeekly(1200000, model.CadenceAnnual)
	if err != nil {
		t.Fatal(err)
	}

	diff := monthly - annual
	if diff < 0 {
		diff = -diff
	}
	// 12/4.345 weeks vs 52 weeks per year differ slightly; allow 1%.
	if float64(diff) > 0.01*float64(annual) {
		t.Errorf("monthly %d vs annual %d diverge more than 1%%", monthly, annual)
	}
}
