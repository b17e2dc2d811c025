// Package cmd implements the salti CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/livinsalti/salti/internal/config"
	"github.com/livinsalti/salti/internal/model"
	"github.com/livinsalti/salti/internal/store"
)

var (
	flagDBPath string
	flagQuiet  bool
)

var rootCmd = &cobra.Command{
	Use:   "salti",
	Short: "Weekly budget planner",
	Long:  "Plan your week: income, fixed costs, Save n Stack, and spending splits.",
	RunE:  runPlan,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", config.DBPath(), "Budget database path")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// session bundles everything the budget commands need from config.
type session struct {
	cfg   config.Config
	input model.BudgetInput
	tier  model.Tier
}

// loadSession is the shared config loading path used by all commands.
// It mints a user id on first run and converts the budget definition
// into engine input.
func loadSession() (session, error) {
	cfg, err := config.Load()
	if err != nil {
		return session{}, err
	}

	if config.EnsureIdentity(&cfg) {
		if err := config.Save(cfg); err != nil {
			return session{}, fmt.Errorf("saving new identity: %w", err)
		}
	}

	input, err := cfg.Budget.Input()
	if err != nil {
		return session{}, err
	}

	return session{
		cfg:   cfg,
		input: input,
		tier:  cfg.Profile.Tier(),
	}, nil
}

// openStore opens the budget database. Storage being unavailable is a
// warning, not a failure: plan rendering must keep working without it.
func openStore() *store.Store {
	st, err := store.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "  warning: budget db unavailable: %v\n", err)
		return nil
	}
	return st
}

// loadDefaultPrefs reads the profile's saved default preferences, if any.
func loadDefaultPrefs(st *store.Store, userID string) *model.Preferences {
	if st == nil {
		return nil
	}
	p, found, err := st.GetProfile(userID)
	if err != nil || !found {
		return nil
	}
	return p.DefaultPrefs
}
