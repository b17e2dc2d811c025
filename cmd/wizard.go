package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/livinsalti/salti/internal/budget"
	"github.com/livinsalti/salti/internal/config"
	"github.com/livinsalti/salti/internal/model"
)

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Set up or edit your budget interactively",
	RunE:  runWizard,
}

func init() {
	rootCmd.AddCommand(wizardCmd)
}

func runWizard(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	config.EnsureIdentity(&cfg)

	caps := budget.Resolve(cfg.Profile.Tier())

	incomes, err := collectIncomes(caps)
	if err != nil {
		return err
	}
	cfg.Budget.Incomes = incomes

	expenses, err := collectExpenses(caps)
	if err != nil {
		return err
	}
	cfg.Budget.FixedExpenses = expenses

	if caps.CanCustomizeSaveRate {
		rate, err := askPercent("Savings rate", "Share of leftover income to Save n Stack (0-100).", cfg.Budget.SaveRate)
		if err != nil {
			return err
		}
		cfg.Budget.SaveRate = rate
	} else {
		cfg.Budget.SaveRate = budget.DefaultSaveRate
		fmt.Printf("  Free plan saves a fixed %.0f%% of leftover income. Upgrade to Pro to customize.\n",
			budget.DefaultSaveRate*100)
	}

	if caps.CanCustomizeSplits {
		splits, err := collectSplits(cfg.Budget.Splits)
		if err != nil {
			return err
		}
		cfg.Budget.Splits = splits
	} else {
		cfg.Budget.Splits = nil
		fmt.Println("  Free plan uses the standard spending splits. Upgrade to Pro to customize.")
	}

	goals, err := collectGoals(caps)
	if err != nil {
		return err
	}
	cfg.Budget.Goals = goals

	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println("\n  Budget saved.")
	fmt.Println("  Run `salti` to see your weekly plan.")
	return nil
}

func collectIncomes(caps model.Capabilities) ([]config.IncomeConfig, error) {
	var incomes []config.IncomeConfig
	for {
		var (
			source  string
			amount  string
			cadence string
		)

		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Income source").
				Placeholder("e.g. Paycheck").
				Validate(notEmpty).
				Value(&source),
			huh.NewInput().
				Title("Amount ($)").
				Validate(positiveDollars).
				Value(&amount),
			cadenceSelect(&cadence),
		))
		if err := form.Run(); err != nil {
			return nil, err
		}

		dollars, _ := strconv.ParseFloat(strings.TrimSpace(amount), 64)
		incomes = append(incomes, config.IncomeConfig{
			Source:  source,
			Amount:  dollars,
			Cadence: cadence,
		})

		if !caps.Allows(caps.MaxIncomes, len(incomes)+1) {
			fmt.Printf("  Free plan tracks %d income source. Upgrade to Pro for more.\n", caps.MaxIncomes)
			break
		}
		more, err := askConfirm("Add another income source?")
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}
	return incomes, nil
}

func collectExpenses(caps model.Capabilities) ([]config.ExpenseConfig, error) {
	have, err := askConfirm("Do you have fixed expenses to track (rent, insurance, subscriptions)?")
	if err != nil || !have {
		return nil, err
	}

	var expenses []config.ExpenseConfig
	for {
		var (
			name    string
			amount  string
			cadence string
		)

		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Expense name").
				Placeholder("e.g. Rent").
				Validate(notEmpty).
				Value(&name),
			huh.NewInput().
				Title("Amount ($)").
				Validate(positiveDollars).
				Value(&amount),
			cadenceSelect(&cadence),
		))
		if err := form.Run(); err != nil {
			return nil, err
		}

		dollars, _ := strconv.ParseFloat(strings.TrimSpace(amount), 64)
		expenses = append(expenses, config.ExpenseConfig{
			Name:    name,
			Amount:  dollars,
			Cadence: cadence,
		})

		if !caps.Allows(caps.MaxFixedExpenses, len(expenses)+1) {
			fmt.Printf("  Free plan tracks up to %d fixed expenses. Upgrade to Pro for more.\n", caps.MaxFixedExpenses)
			break
		}
		more, err := askConfirm("Add another fixed expense?")
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}
	return expenses, nil
}

func collectSplits(existing []config.SplitConfig) ([]config.SplitConfig, error) {
	current := make(map[string]float64, len(existing))
	for _, s := range existing {
		current[s.Name] = s.Weight
	}

	var splits []config.SplitConfig
	for _, def := range budget.DefaultSplits() {
		weight := def.Weight
		if w, ok := current[def.Name]; ok {
			weight = w
		}

		value := strconv.FormatFloat(weight*100, 'f', 0, 64)
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Share for %s (%%)", strings.ReplaceAll(def.Name, "_", " "))).
				Validate(percent).
				Value(&value),
		))
		if err := form.Run(); err != nil {
			return nil, err
		}

		pct, _ := strconv.ParseFloat(strings.TrimSpace(value), 64)
		splits = append(splits, config.SplitConfig{Name: def.Name, Weight: pct / 100})
	}
	return splits, nil
}

func collectGoals(caps model.Capabilities) ([]config.GoalConfig, error) {
	want, err := askConfirm("Set a savings goal?")
	if err != nil || !want {
		return nil, err
	}

	var goals []config.GoalConfig
	for {
		var (
			name   string
			target string
			due    string
		)

		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Goal name").
				Placeholder("e.g. Emergency fund").
				Validate(notEmpty).
				Value(&name),
			huh.NewInput().
				Title("Target amount ($)").
				Validate(positiveDollars).
				Value(&target),
			huh.NewInput().
				Title("Due date (YYYY-MM-DD, optional)").
				Value(&due),
		))
		if err := form.Run(); err != nil {
			return nil, err
		}

		dollars, _ := strconv.ParseFloat(strings.TrimSpace(target), 64)
		goals = append(goals, config.GoalConfig{
			Name:   name,
			Target: dollars,
			Due:    strings.TrimSpace(due),
		})

		if !caps.Allows(caps.MaxGoals, len(goals)+1) {
			fmt.Printf("  Free plan tracks %d goal. Upgrade to Pro for more.\n", caps.MaxGoals)
			break
		}
		more, err := askConfirm("Add another goal?")
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}
	return goals, nil
}

func cadenceSelect(value *string) *huh.Select[string] {
	return huh.NewSelect[string]().
		Title("How often?").
		Options(
			huh.NewOption("Weekly", "weekly"),
			huh.NewOption("Every two weeks", "biweekly"),
			huh.NewOption("Monthly", "monthly"),
			huh.NewOption("Yearly", "annual"),
		).
		Value(value)
}

func askConfirm(title string) (bool, error) {
	var ok bool
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title(title).Value(&ok),
	)).Run()
	return ok, err
}

func askPercent(title, description string, current float64) (float64, error) {
	value := strconv.FormatFloat(current*100, 'f', 0, 64)
	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(title + " (%)").
			Description(description).
			Validate(percent).
			Value(&value),
	)).Run()
	if err != nil {
		return 0, err
	}
	pct, _ := strconv.ParseFloat(strings.TrimSpace(value), 64)
	return pct / 100, nil
}

func notEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("cannot be empty")
	}
	return nil
}

func positiveDollars(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("enter a dollar amount")
	}
	if v <= 0 {
		return fmt.Errorf("must be greater than zero")
	}
	return nil
}

func percent(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("enter a percentage")
	}
	if v < 0 || v > 100 {
		return fmt.Errorf("must be between 0 and 100")
	}
	return nil
}
