package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS profiles (
    user_id      TEXT PRIMARY KEY,
    email        TEXT,
    plan         TEXT NOT NULL DEFAULT 'free',
    save_rate    REAL,
    splits_json  TEXT,
    updated_at   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS weekly_budgets (
    id                   TEXT NOT NULL UNIQUE,
    user_id              TEXT NOT NULL,
    week_start           TEXT NOT NULL,
    income_cents         INTEGER NOT NULL,
    fixed_cents          INTEGER NOT NULL,
    save_n_stack_cents   INTEGER NOT NULL,
    variable_cents       INTEGER NOT NULL,
    remainder_cents      INTEGER NOT NULL,
    status               TEXT NOT NULL,
    created_at           TEXT NOT NULL,
    updated_at           TEXT NOT NULL,
    PRIMARY KEY (user_id, week_start)
);

CREATE TABLE IF NOT EXISTS weekly_allocations (
    budget_id            TEXT NOT NULL REFERENCES weekly_budgets(id) ON DELETE CASCADE,
    position             INTEGER NOT NULL,
    category             TEXT NOT NULL,
    weekly_cents         INTEGER NOT NULL,
    PRIMARY KEY (budget_id, category)
);

CREATE INDEX IF NOT EXISTS idx_weekly_budgets_week ON weekly_budgets(user_id, week_start);
`
