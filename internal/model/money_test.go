package model

import "testing"

func TestFromDollars(t *testing.T) {
	tests := []struct {
		dollars float64
		want    Cents
	}{
		{0, 0},
		{1, 100},
		{700.50, 70050},
		{0.1, 10},
		{19.99, 1999},
		{-5.25, -525},
	}
	for _, tt := range tests {
		if got := FromDollars(tt.dollars); got != tt.want {
			t.Errorf("FromDollars(%v) = %d, want %d", tt.dollars, got, tt.want)
		}
	}
}

func TestDollarsRoundtrip(t *testing.T) {
	c := Cents(123456)
	if got := FromDollars(c.Dollars()); got != c {
		t.Errorf("roundtrip = %d, want %d", got, c)
	}
}

func TestParseCadence(t *testing.T) {
	tests := []struct {
		in   string
		want Cadence
		ok   bool
	}{
		{"weekly", CadenceWeekly, true},
		{"Biweekly", CadenceBiweekly, true},
		{" MONTHLY ", CadenceMonthly, true},
		{"annual", CadenceAnnual, true},
		{"fortnightly", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseCadence(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseCadence(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
