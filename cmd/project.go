package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/livinsalti/salti/internal/cli"
	"github.com/livinsalti/salti/internal/projection"
)

var (
	flagRate    float64
	flagPeriods string
)

var projectCmd = &cobra.Command{
	Use:   "project AMOUNT",
	Short: "Project the long-term growth of a recurring save",
	Long: "Show what a recurring (or one-time) save grows into over the years\n" +
		"at a fixed annual return.",
	Args: cobra.ExactArgs(1),
	RunE: runProject,
}

func init() {
	projectCmd.Flags().Float64VarP(&flagRate, "rate", "r", 0.08, "Annual return rate")
	projectCmd.Flags().StringVarP(&flagPeriods, "every", "e", "daily", "Contribution cadence: daily, weekly, monthly, or once")
	rootCmd.AddCommand(projectCmd)
}

var projectionHorizons = []int{1, 5, 10, 20, 30}

func runProject(_ *cobra.Command, args []string) error {
	amount, err := strconv.ParseFloat(args[0], 64)
	if err != nil || amount <= 0 {
		return fmt.Errorf("amount must be a positive dollar value, got %q", args[0])
	}

	periodsPerYear, label, err := parsePeriods(flagPeriods)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%s %s AT %.0f%%", cli.FormatDollars(amount), label, flagRate*100)))
	fmt.Println()

	rows := make([][]string, 0, len(projectionHorizons))
	for _, years := range projectionHorizons {
		var fv float64
		if periodsPerYear == 0 {
			fv = projection.FutureValue(amount, flagRate, float64(years))
		} else {
			fv = projection.FutureValueOfRecurring(amount, periodsPerYear, flagRate, float64(years))
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d years", years),
			cli.FormatDollars(fv),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Horizon", "Future value"},
		Rows:    rows,
	}))

	fmt.Println("\n  Every save counts. Stack it and let time do the rest.")
	return nil
}

func parsePeriods(s string) (int, string, error) {
	switch s {
	case "daily":
		return 365, "DAILY", nil
	case "weekly":
		return 52, "WEEKLY", nil
	case "monthly":
		return 12, "MONTHLY", nil
	case "once":
		return 0, "ONE-TIME", nil
	}
	return 0, "", fmt.Errorf("unknown cadence %q: use daily, weekly, monthly, or once", s)
}
