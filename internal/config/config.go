// Package config reads and writes the salti TOML configuration: the
// local profile, the budget definition, and appearance/feed settings.
// Amounts are dollars in the file and converted to cents on the way in;
// nothing past this boundary handles dollar floats.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
)

// Config holds all salti configuration.
type Config struct {
	Profile    ProfileConfig    `toml:"profile"`
	Budget     BudgetConfig     `toml:"budget"`
	Appearance AppearanceConfig `toml:"appearance"`
	Feed       FeedConfig       `toml:"feed"`
}

// ProfileConfig holds the local identity and plan tier.
type ProfileConfig struct {
	UserID string `toml:"user_id,omitempty"`
	Email  string `toml:"email,omitempty"`
	Plan   string `toml:"plan"`
}

// BudgetConfig holds the user's budget definition, in dollars.
type BudgetConfig struct {
	Incomes       []IncomeConfig  `toml:"incomes,omitempty"`
	FixedExpenses []ExpenseConfig `toml:"fixed_expenses,omitempty"`
	SaveRate      float64         `toml:"save_rate"`
	Splits        []SplitConfig   `toml:"splits,omitempty"`
	Goals         []GoalConfig    `toml:"goals,omitempty"`
}

// IncomeConfig is one income source entry.
type IncomeConfig struct {
	Source  string  `toml:"source"`
	Amount  float64 `toml:"amount"`
	Cadence string  `toml:"cadence"`
}

// ExpenseConfig is one fixed expense entry.
type ExpenseConfig struct {
	Name    string  `toml:"name"`
	Amount  float64 `toml:"amount"`
	Cadence string  `toml:"cadence"`
}

// SplitConfig is one variable category weight entry.
type SplitConfig struct {
	Name   string  `toml:"name"`
	Weight float64 `toml:"weight"`
}

// GoalConfig is one savings goal entry. Due uses YYYY-MM-DD.
type GoalConfig struct {
	Name   string  `toml:"name"`
	Target float64 `toml:"target"`
	Due    string  `toml:"due,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// FeedConfig holds the budget feed service settings.
type FeedConfig struct {
	Addr         string `toml:"addr,omitempty"`
	IntervalSecs int    `toml:"interval_secs,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Profile: ProfileConfig{Plan: "free"},
		Budget:  BudgetConfig{SaveRate: 0.20},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory. SALTI_CONFIG_DIR
// overrides it, which tests and multi-profile setups rely on.
func ConfigDir() string {
	if dir := os.Getenv("SALTI_CONFIG_DIR"); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "salti")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "salti")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory holding the budget db.
func DataDir() string {
	if dir := os.Getenv("SALTI_DATA_DIR"); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "salti")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "salti")
}

// DBPath returns the full path to the budget database.
func DBPath() string {
	return filepath.Join(DataDir(), "budgets.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// EnsureIdentity mints a user id on first run. Returns true when the
// config was modified and should be saved.
func EnsureIdentity(cfg *Config) bool {
	if cfg.Profile.UserID != "" {
		return false
	}
	cfg.Profile.UserID = uuid.NewString()
	return true
}
