package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/livinsalti/salti/internal/tui"
	"github.com/livinsalti/salti/internal/tui/theme"
)

var dashCmd = &cobra.Command{
	Use:   "dash",
	Short: "Launch the interactive budget dashboard",
	RunE:  runDash,
}

func init() {
	rootCmd.AddCommand(dashCmd)
}

func runDash(_ *cobra.Command, _ []string) error {
	sess, err := loadSession()
	if err != nil {
		return err
	}

	if len(sess.input.Incomes) == 0 {
		fmt.Println("\n  No budget yet.")
		fmt.Println("  Run `salti wizard` first, then come back.")
		return nil
	}

	theme.SetActive(sess.cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes.
	// Without this, lipgloss may default to Ascii profile (no colors).
	lipgloss.SetColorProfile(termenv.TrueColor)

	st := openStore()
	if st != nil {
		defer st.Close()
	}

	app := tui.NewApp(sess.cfg, sess.input, sess.tier, st)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard error: %w", err)
	}

	return nil
}
