// Package store provides the SQLite-backed persistence for computed
// weekly budgets and the local profile.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/livinsalti/salti/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// dateLayout is the canonical week-start key format.
const dateLayout = "2006-01-02"

// Store wraps the budget database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the budget database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening budget db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// WeeklyRecord is one persisted weekly budget row.
type WeeklyRecord struct {
	ID        string
	UserID    string
	WeekStart time.Time
	Result    model.WeeklyBudgetResult
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UpsertWeekly writes the computed result for (userID, weekStart),
// overwriting any existing row for that week. The row id is minted on
// first insert and survives overwrites, so repeated saves for the same
// week converge to the same stored state (last write wins).
//
// Tips are recomputed on every load path, so only the numeric result
// and status are persisted.
func (s *Store) UpsertWeekly(userID string, weekStart time.Time, res model.WeeklyBudgetResult) (WeeklyRecord, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return WeeklyRecord{}, err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	weekKey := weekStart.Format(dateLayout)

	rec := WeeklyRecord{
		UserID:    userID,
		WeekStart: weekStart,
		Result:    res,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var existingID, createdAt string
	err = tx.QueryRow(
		"SELECT id, created_at FROM weekly_budgets WHERE user_id = ? AND week_start = ?",
		userID, weekKey,
	).Scan(&existingID, &createdAt)
	switch {
	case err == sql.ErrNoRows:
		rec.ID = uuid.NewString()
	case err != nil:
		return WeeklyRecord{}, err
	default:
		rec.ID = existingID
		if t, perr := time.Parse(time.RFC3339, createdAt); perr == nil {
			rec.CreatedAt = t
		}
	}

	_, err = tx.Exec(`INSERT OR REPLACE INTO weekly_budgets
		(id, user_id, week_start, income_cents, fixed_cents, save_n_stack_cents,
		 variable_cents, remainder_cents, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, userID, weekKey, int64(res.Income), int64(res.Fixed), int64(res.SaveNStack),
		int64(res.VariableTotal), int64(res.Remainder), string(res.Status),
		rec.CreatedAt.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return WeeklyRecord{}, err
	}

	// Replace the allocation breakdown wholesale
	if _, err = tx.Exec("DELETE FROM weekly_allocations WHERE budget_id = ?", rec.ID); err != nil {
		return WeeklyRecord{}, err
	}
	for i, a := range res.Allocations {
		_, err = tx.Exec(`INSERT INTO weekly_allocations (budget_id, position, category, weekly_cents)
			VALUES (?, ?, ?, ?)`,
			rec.ID, i, a.Category, int64(a.Weekly),
		)
		if err != nil {
			return WeeklyRecord{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return WeeklyRecord{}, err
	}
	return rec, nil
}

// GetWeekly loads the stored budget for one week. The second return is
// false when no row exists.
func (s *Store) GetWeekly(userID string, weekStart time.Time) (WeeklyRecord, bool, error) {
	recs, err := s.listWeekly(userID, weekStart.Format(dateLayout), 1)
	if err != nil {
		return WeeklyRecord{}, false, err
	}
	if len(recs) == 0 {
		return WeeklyRecord{}, false, nil
	}
	return recs[0], true, nil
}

// ListWeekly returns stored weekly budgets for the user, most recent
// week first. limit <= 0 returns everything.
func (s *Store) ListWeekly(userID string, limit int) ([]WeeklyRecord, error) {
	return s.listWeekly(userID, "", limit)
}

func (s *Store) listWeekly(userID, weekKey string, limit int) ([]WeeklyRecord, error) {
	query := `SELECT id, user_id, week_start, income_cents, fixed_cents,
		save_n_stack_cents, variable_cents, remainder_cents, status, created_at, updated_at
		FROM weekly_budgets WHERE user_id = ?`
	args := []any{userID}
	if weekKey != "" {
		query += " AND week_start = ?"
		args = append(args, weekKey)
	}
	query += " ORDER BY week_start DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var recs []WeeklyRecord
	for rows.Next() {
		var rec WeeklyRecord
		var weekStr, status, createdStr, updatedStr string
		var income, fixed, save, variable, remainder int64

		err := rows.Scan(&rec.ID, &rec.UserID, &weekStr, &income, &fixed,
			&save, &variable, &remainder, &status, &createdStr, &updatedStr)
		if err != nil {
			return nil, err
		}

		rec.WeekStart, _ = time.Parse(dateLayout, weekStr)
		rec.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
		rec.UpdatedAt, _ = time.Parse(time.RFC3339, updatedStr)
		rec.Result = model.WeeklyBudgetResult{
			Income:        model.Cents(income),
			Fixed:         model.Cents(fixed),
			SaveNStack:    model.Cents(save),
			VariableTotal: model.Cents(variable),
			Remainder:     model.Cents(remainder),
			Status:        model.HealthStatus(status),
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return recs, nil
	}

	// Batch-load allocations for the user and match them up by id
	recIdx := make(map[string]int)
	for i, rec := range recs {
		recIdx[rec.ID] = i
	}

	allocRows, err := s.db.Query(`SELECT a.budget_id, a.category, a.weekly_cents
		FROM weekly_allocations a
		JOIN weekly_budgets b ON a.budget_id = b.id
		WHERE b.user_id = ?
		ORDER BY a.budget_id, a.position`, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = allocRows.Close() }()

	for allocRows.Next() {
		var budgetID, category string
		var cents int64
		if err := allocRows.Scan(&budgetID, &category, &cents); err != nil {
			return nil, err
		}
		if idx, ok := recIdx[budgetID]; ok {
			recs[idx].Result.Allocations = append(recs[idx].Result.Allocations, model.Allocation{
				Category: category,
				Weekly:   model.Cents(cents),
			})
		}
	}

	return recs, allocRows.Err()
}

// WeeklyCount returns the number of stored weekly budgets for the user.
func (s *Store) WeeklyCount(userID string) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM weekly_budgets WHERE user_id = ?", userID).Scan(&count)
	return count, err
}

// DeleteWeekly removes one stored week and its allocations.
func (s *Store) DeleteWeekly(userID string, weekStart time.Time) error {
	_, err := s.db.Exec("DELETE FROM weekly_budgets WHERE user_id = ? AND week_start = ?",
		userID, weekStart.Format(dateLayout))
	return err
}

// GetProfile loads the stored profile. The second return is false when
// no profile row exists yet.
func (s *Store) GetProfile(userID string) (model.Profile, bool, error) {
	var p model.Profile
	var email sql.NullString
	var plan string
	var saveRate sql.NullFloat64
	var splitsJSON sql.NullString

	err := s.db.QueryRow(
		"SELECT user_id, email, plan, save_rate, splits_json FROM profiles WHERE user_id = ?",
		userID,
	).Scan(&p.UserID, &email, &plan, &saveRate, &splitsJSON)
	if err == sql.ErrNoRows {
		return model.Profile{}, false, nil
	}
	if err != nil {
		return model.Profile{}, false, err
	}

	p.Email = email.String
	p.Plan = model.Tier(plan)
	if saveRate.Valid {
		prefs := model.Preferences{SaveRate: saveRate.Float64}
		if splitsJSON.Valid && splitsJSON.String != "" {
			if err := json.Unmarshal([]byte(splitsJSON.String), &prefs.Splits); err != nil {
				return model.Profile{}, false, fmt.Errorf("decoding default splits: %w", err)
			}
		}
		p.DefaultPrefs = &prefs
	}

	return p, true, nil
}

// UpsertProfile writes the profile, including the pro user's saved
// default preferences when present.
func (s *Store) UpsertProfile(p model.Profile) error {
	var saveRate any
	var splitsJSON any
	if p.DefaultPrefs != nil {
		saveRate = p.DefaultPrefs.SaveRate
		data, err := json.Marshal(p.DefaultPrefs.Splits)
		if err != nil {
			return fmt.Errorf("encoding default splits: %w", err)
		}
		splitsJSON = string(data)
	}

	_, err := s.db.Exec(`INSERT OR REPLACE INTO profiles
		(user_id, email, plan, save_rate, splits_json, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.UserID, p.Email, string(p.Plan), saveRate, splitsJSON,
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}
