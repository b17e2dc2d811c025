package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/livinsalti/salti/internal/budget"
	"github.com/livinsalti/salti/internal/cli"
	"github.com/livinsalti/salti/internal/model"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Compute and show this week's budget",
	RunE:  runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(_ *cobra.Command, _ []string) error {
	sess, err := loadSession()
	if err != nil {
		return err
	}

	if len(sess.input.Incomes) == 0 {
		fmt.Println("\n  No budget yet.")
		fmt.Println("  Run `salti wizard` to set one up.")
		return nil
	}

	st := openStore()
	if st != nil {
		defer st.Close()
	}

	userID := sess.cfg.Profile.UserID
	defaults := loadDefaultPrefs(st, userID)

	res, err := budget.Compute(sess.input, sess.tier, defaults)
	if err != nil {
		return err
	}

	now := time.Now()
	weekStart := budget.WeekStart(now)

	fmt.Println()
	fmt.Println(cli.RenderTitle("WEEKLY PLAN  " + cli.FormatWeekRange(weekStart)))
	fmt.Println()
	fmt.Printf("  Status: %s\n\n", cli.RenderStatus(res.Status))

	rows := [][]string{
		{"Income", cli.FormatCents(res.Income)},
		{"Fixed costs", cli.FormatCents(res.Fixed)},
		{"Save n Stack", cli.FormatCents(res.SaveNStack)},
		{"Variable spending", cli.FormatCents(res.VariableTotal)},
		{"---"},
	}
	for _, a := range res.Allocations {
		rows = append(rows, []string{"  " + cli.FormatCategory(a.Category), cli.FormatCents(a.Weekly)})
	}
	if res.Remainder > 0 {
		rows = append(rows, []string{"  Unallocated", cli.FormatCents(res.Remainder)})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Line", "Weekly"},
		Rows:    rows,
	}))

	if len(res.Tips) > 0 {
		fmt.Println()
		fmt.Print(cli.RenderTips(res.Tips))
	}

	printGoals(sess.input.Goals)

	// Persist the recompute; a failed save is reported, never fatal.
	if st != nil {
		if _, err := st.UpsertWeekly(userID, weekStart, res); err != nil {
			fmt.Fprintf(os.Stderr, "\n  warning: could not save weekly budget: %v\n", err)
		} else if !flagQuiet {
			fmt.Printf("\n  Saved for week of %s.\n", weekStart.Format("Jan 2"))
		}

		profile := model.Profile{
			UserID:       userID,
			Email:        sess.cfg.Profile.Email,
			Plan:         sess.tier,
			DefaultPrefs: defaults,
		}
		if err := st.UpsertProfile(profile); err != nil && !flagQuiet {
			fmt.Fprintf(os.Stderr, "  warning: could not update profile: %v\n", err)
		}
	}

	return nil
}

func printGoals(goals []model.Goal) {
	if len(goals) == 0 {
		return
	}
	fmt.Println()
	for _, g := range goals {
		line := fmt.Sprintf("  Goal: %s (%s)", g.Name, cli.FormatCents(g.TargetAmount))
		if !g.DueDate.IsZero() {
			line += " by " + g.DueDate.Format("Jan 2, 2006")
		}
		fmt.Println(line)
	}
}
