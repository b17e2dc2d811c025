package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/livinsalti/salti/internal/budget"
	"github.com/livinsalti/salti/internal/cli"
	"github.com/livinsalti/salti/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Printf("  Budget db:   %s\n", flagDBPath)
	fmt.Println()

	fmt.Println("  [Profile]")
	if cfg.Profile.UserID != "" {
		fmt.Printf("    User id: %s\n", cfg.Profile.UserID)
	} else {
		fmt.Println("    User id: not created yet")
	}
	if cfg.Profile.Email != "" {
		fmt.Printf("    Email:   %s\n", cfg.Profile.Email)
	}
	fmt.Printf("    Plan:    %s\n", cfg.Profile.Plan)
	fmt.Println()

	caps := budget.Resolve(cfg.Profile.Tier())
	fmt.Println("  [Budget]")
	fmt.Printf("    Incomes:        %d (max %s)\n", len(cfg.Budget.Incomes), capLabel(caps.MaxIncomes))
	fmt.Printf("    Fixed expenses: %d (max %s)\n", len(cfg.Budget.FixedExpenses), capLabel(caps.MaxFixedExpenses))
	fmt.Printf("    Goals:          %d (max %s)\n", len(cfg.Budget.Goals), capLabel(caps.MaxGoals))
	if caps.CanCustomizeSaveRate {
		fmt.Printf("    Save rate:      %s\n", cli.FormatPercent(cfg.Budget.SaveRate))
	} else {
		fmt.Printf("    Save rate:      %s (fixed on free plan)\n", cli.FormatPercent(budget.DefaultSaveRate))
	}
	if len(cfg.Budget.Splits) > 0 && caps.CanCustomizeSplits {
		fmt.Println("    Splits:")
		for _, s := range cfg.Budget.Splits {
			fmt.Printf("      %-12s %s\n", cli.FormatCategory(s.Name), cli.FormatPercent(s.Weight))
		}
	} else {
		fmt.Println("    Splits:         standard table")
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `salti wizard` to reconfigure.")
	return nil
}

func capLabel(n int) string {
	if n == 0 {
		return "unlimited"
	}
	return fmt.Sprintf("%d", n)
}
