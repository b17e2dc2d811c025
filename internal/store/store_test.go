package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/livinsalti/salti/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "budgets.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func sampleResult() model.WeeklyBudgetResult {
	return model.WeeklyBudgetResult{
		Income:        70000,
		Fixed:         10000,
		SaveNStack:    12000,
		VariableTotal: 48000,
		Allocations: []model.Allocation{
			{Category: "groceries", Weekly: 19200},
			{Category: "gas", Weekly: 9600},
			{Category: "eating_out", Weekly: 9600},
			{Category: "fun", Weekly: 7200},
			{Category: "misc", Weekly: 2400},
		},
		Status: model.StatusHealthy,
	}
}

var testWeek = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

func TestUpsertWeeklyRoundtrip(t *testing.T) {
	st := openTestStore(t)

	saved, err := st.UpsertWeekly("user-1", testWeek, sampleResult())
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("expected a minted id")
	}

	rec, found, err := st.GetWeekly("user-1", testWeek)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !found {
		t.Fatal("saved week not found")
	}

	if rec.ID != saved.ID {
		t.Errorf("ID = %s, want %s", rec.ID, saved.ID)
	}
	if rec.Result.Income != 70000 || rec.Result.SaveNStack != 12000 {
		t.Errorf("result = %+v, want saved amounts", rec.Result)
	}
	if rec.Result.Status != model.StatusHealthy {
		t.Errorf("Status = %s, want healthy", rec.Result.Status)
	}
	if len(rec.Result.Allocations) != 5 {
		t.Fatalf("got %d allocations, want 5", len(rec.Result.Allocations))
	}
	if rec.Result.Allocations[0].Category != "groceries" || rec.Result.Allocations[0].Weekly != 19200 {
		t.Errorf("first allocation = %+v, want groceries 19200", rec.Result.Allocations[0])
	}
}

func TestUpsertWeeklyIdempotent(t *testing.T) {
	st := openTestStore(t)

	first, err := st.UpsertWeekly("user-1", testWeek, sampleResult())
	if err != nil {
		t.Fatal(err)
	}

	updated := sampleResult()
	updated.SaveNStack = 21000
	updated.Allocations = []model.Allocation{{Category: "groceries", Weekly: 39000}}

	second, err := st.UpsertWeekly("user-1", testWeek, updated)
	if err != nil {
		t.Fatal(err)
	}

	// Same week keeps its id across overwrites; last write wins.
	if second.ID != first.ID {
		t.Errorf("id changed on overwrite: %s -> %s", first.ID, second.ID)
	}

	count, err := st.WeeklyCount("user-1")
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("WeeklyCount = %d, want 1", count)
	}

	rec, _, err := st.GetWeekly("user-1", testWeek)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Result.SaveNStack != 21000 {
		t.Errorf("SaveNStack = %d, want 21000 (last write)", rec.Result.SaveNStack)
	}
	if len(rec.Result.Allocations) != 1 {
		t.Errorf("got %d allocations, want 1 (replaced wholesale)", len(rec.Result.Allocations))
	}
}

func TestListWeeklyOrdering(t *testing.T) {
	st := openTestStore(t)

	weeks := []time.Time{
		testWeek,
		testWeek.AddDate(0, 0, 7),
		testWeek.AddDate(0, 0, 14),
	}
	for _, w := range weeks {
		if _, err := st.UpsertWeekly("user-1", w, sampleResult()); err != nil {
			t.Fatal(err)
		}
	}

	recs, err := st.ListWeekly("user-1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 {
		t.Fatalf("got %d records, want 3", len(recs))
	}
	if !recs[0].WeekStart.Equal(weeks[2]) {
		t.Errorf("first record week = %v, want most recent %v", recs[0].WeekStart, weeks[2])
	}
	for _, rec := range recs {
		if len(rec.Result.Allocations) != 5 {
			t.Errorf("week %v loaded %d allocations, want 5", rec.WeekStart, len(rec.Result.Allocations))
		}
	}

	limited, err := st.ListWeekly("user-1", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 {
		t.Errorf("limited list = %d records, want 2", len(limited))
	}
}

func TestListWeeklyIsolatesUsers(t *testing.T) {
	st := openTestStore(t)

	if _, err := st.UpsertWeekly("user-1", testWeek, sampleResult()); err != nil {
		t.Fatal(err)
	}

	recs, err := st.ListWeekly("user-2", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 0 {
		t.Errorf("user-2 sees %d records, want 0", len(recs))
	}
}

func TestGetWeeklyMissing(t *testing.T) {
	st := openTestStore(t)

	_, found, err := st.GetWeekly("user-1", testWeek)
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Error("found a week that was never saved")
	}
}

func TestDeleteWeekly(t *testing.T) {
	st := openTestStore(t)

	if _, err := st.UpsertWeekly("user-1", testWeek, sampleResult()); err != nil {
		t.Fatal(err)
	}
	if err := st.DeleteWeekly("user-1", testWeek); err != nil {
		t.Fatal(err)
	}

	_, found, err := st.GetWeekly("user-1", testWeek)
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Error("week still present after delete")
	}
}

func TestProfileRoundtrip(t *testing.T) {
	st := openTestStore(t)

	prefs := model.Preferences{
		SaveRate: 0.35,
		Splits: []model.CategorySplit{
			{Name: "food", Weight: 0.6},
			{Name: "fun", Weight: 0.4},
		},
	}
	in := model.Profile{
		UserID:       "user-1",
		Email:        "sara@example.com",
		Plan:         model.TierPro,
		DefaultPrefs: &prefs,
	}
	if err := st.UpsertProfile(in); err != nil {
		t.Fatal(err)
	}

	out, found, err := st.GetProfile("user-1")
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Fatal("profile not found")
	}
	if out.Email != in.Email || out.Plan != model.TierPro {
		t.Errorf("profile = %+v, want %+v", out, in)
	}
	if out.DefaultPrefs == nil {
		t.Fatal("DefaultPrefs missing")
	}
	if out.DefaultPrefs.SaveRate != 0.35 {
		t.Errorf("SaveRate = %v, want 0.35", out.DefaultPrefs.SaveRate)
	}
	if len(out.DefaultPrefs.Splits) != 2 || out.DefaultPrefs.Splits[0].Name != "food" {
		t.Errorf("Splits = %+v, want roundtripped", out.DefaultPrefs.Splits)
	}
}

func TestProfileWithoutDefaults(t *testing.T) {
	st := openTestStore(t)

	if err := st.UpsertProfile(model.Profile{UserID: "user-1", Plan: model.TierFree}); err != nil {
		t.Fatal(err)
	}

	out, found, err := st.GetProfile("user-1")
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Fatal("profile not found")
	}
	if out.DefaultPrefs != nil {
		t.Errorf("DefaultPrefs = %+v, want nil", out.DefaultPrefs)
	}
}

func TestGetProfileMissing(t *testing.T) {
	st := openTestStore(t)

	_, found, err := st.GetProfile("nobody")
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Error("found a profile that was never saved")
	}
}
