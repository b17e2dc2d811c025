package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/livinsalti/salti/internal/budget"
)

var flagExportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export weekly budget history as CSV",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "", "Write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	sess, err := loadSession()
	if err != nil {
		return err
	}

	caps := budget.Resolve(sess.tier)
	if !caps.CanExport {
		fmt.Println("\n  CSV export is a Pro feature.")
		fmt.Println("  Upgrade your plan to take your data with you.")
		return nil
	}

	st := openStore()
	if st == nil {
		return fmt.Errorf("export requires the budget db")
	}
	defer st.Close()

	recs, err := st.ListWeekly(sess.cfg.Profile.UserID, 0)
	if err != nil {
		return err
	}

	out := os.Stdout
	if flagExportOut != "" {
		f, err := os.Create(flagExportOut)
		if err != nil {
			return fmt.Errorf("creating export file: %w", err)
		}
		defer f.Close()
		out = f
	}

	w := csv.NewWriter(out)
	header := []string{"week_start", "income", "fixed", "save_n_stack", "variable", "remainder", "status"}
	if err := w.Write(header); err != nil {
		return err
	}

	// Oldest week first so spreadsheets chart naturally
	for i := len(recs) - 1; i >= 0; i-- {
		rec := recs[i]
		row := []string{
			rec.WeekStart.Format("2006-01-02"),
			dollarsCSV(rec.Result.Income.Dollars()),
			dollarsCSV(rec.Result.Fixed.Dollars()),
			dollarsCSV(rec.Result.SaveNStack.Dollars()),
			dollarsCSV(rec.Result.VariableTotal.Dollars()),
			dollarsCSV(rec.Result.Remainder.Dollars()),
			string(rec.Result.Status),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	if flagExportOut != "" && !flagQuiet {
		fmt.Printf("  Exported %d weeks to %s\n", len(recs), flagExportOut)
	}
	return nil
}

func dollarsCSV(d float64) string {
	return strconv.FormatFloat(d, 'f', 2, 64)
}
