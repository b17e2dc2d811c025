package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/livinsalti/salti/internal/budget"
	"github.com/livinsalti/salti/internal/cli"
)

var flagWeeks int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past weekly budgets",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagWeeks, "weeks", "n", 12, "Number of weeks to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	sess, err := loadSession()
	if err != nil {
		return err
	}

	caps := budget.Resolve(sess.tier)
	if !caps.CanViewHistory {
		fmt.Println("\n  Budget history is a Pro feature.")
		fmt.Println("  Upgrade your plan to see how your weeks stack up.")
		return nil
	}

	st := openStore()
	if st == nil {
		return fmt.Errorf("history requires the budget db")
	}
	defer st.Close()

	recs, err := st.ListWeekly(sess.cfg.Profile.UserID, flagWeeks)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Println("\n  No saved weeks yet. Run `salti plan` first.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("BUDGET HISTORY  Last %d weeks", len(recs))))
	fmt.Println()

	rows := make([][]string, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, []string{
			rec.WeekStart.Format("2006-01-02"),
			cli.FormatCents(rec.Result.Income),
			cli.FormatCents(rec.Result.Fixed),
			cli.FormatCents(rec.Result.SaveNStack),
			cli.FormatCents(rec.Result.VariableTotal),
			string(rec.Result.Status),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Week", "Income", "Fixed", "Save n Stack", "Variable", "Status"},
		Rows:    rows,
	}))

	// Sparkline of savings, oldest week first
	values := make([]float64, 0, len(recs))
	for i := len(recs) - 1; i >= 0; i-- {
		values = append(values, float64(recs[i].Result.SaveNStack))
	}
	fmt.Printf("\n  Save n Stack trend: %s\n", cli.RenderSparkline(values))

	return nil
}
