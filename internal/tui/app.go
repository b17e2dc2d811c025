// Package tui provides the interactive Bubble Tea dashboard for salti.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/livinsalti/salti/internal/budget"
	"github.com/livinsalti/salti/internal/cli"
	"github.com/livinsalti/salti/internal/config"
	"github.com/livinsalti/salti/internal/model"
	"github.com/livinsalti/salti/internal/projection"
	"github.com/livinsalti/salti/internal/store"
	"github.com/livinsalti/salti/internal/tui/components"
	"github.com/livinsalti/salti/internal/tui/theme"
)

// saveTickMsg fires after the debounce window following a save-rate
// change. seq identifies which edit scheduled it.
type saveTickMsg struct {
	seq int
}

// historyLoadedMsg is sent when the background history load finishes.
type historyLoadedMsg struct {
	records []store.WeeklyRecord
	err     error
}

const (
	minSaveRate = 0.0
	maxSaveRate = 0.95
	rateStep    = 0.01

	// saveDebounce delays persistence while the user is still dragging
	// the save rate, so only the settled value hits the database.
	saveDebounce = 600 * time.Millisecond

	maxContentWidth = 100
)

// App is the root Bubble Tea model for the dashboard.
type App struct {
	cfg      config.Config
	input    model.BudgetInput
	tier     model.Tier
	caps     model.Capabilities
	st       *store.Store
	defaults *model.Preferences

	saveRate   float64
	result     model.WeeklyBudgetResult
	computeErr error

	history        []store.WeeklyRecord
	historyLoading bool
	spinner        spinner.Model

	width  int
	height int

	statusMsg string
	saveSeq   int
}

// NewApp creates the dashboard model. st may be nil when the budget
// database could not be opened; the dashboard then runs without
// persistence.
func NewApp(cfg config.Config, input model.BudgetInput, tier model.Tier, st *store.Store) App {
	caps := budget.Resolve(tier)

	var defaults *model.Preferences
	if st != nil {
		if prof, ok, err := st.GetProfile(cfg.Profile.UserID); err == nil && ok {
			defaults = prof.DefaultPrefs
		}
	}

	rate := budget.DefaultSaveRate
	if caps.CanCustomizeSaveRate && input.Preferences.SaveRate > 0 {
		rate = input.Preferences.SaveRate
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	a := App{
		cfg:            cfg,
		input:          input,
		tier:           tier,
		caps:           caps,
		st:             st,
		defaults:       defaults,
		saveRate:       rate,
		spinner:        sp,
		historyLoading: st != nil && caps.CanViewHistory,
	}
	a.recompute()
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if !a.historyLoading {
		return nil
	}
	return tea.Batch(a.spinner.Tick, loadHistoryCmd(a.st, a.cfg.Profile.UserID))
}

// loadHistoryCmd loads recent stored weeks off the UI goroutine.
func loadHistoryCmd(st *store.Store, userID string) tea.Cmd {
	return func() tea.Msg {
		recs, err := st.ListWeekly(userID, 12)
		return historyLoadedMsg{records: recs, err: err}
	}
}

func (a *App) recompute() {
	in := a.input
	in.Preferences.SaveRate = a.saveRate
	a.result, a.computeErr = budget.Compute(in, a.tier, a.defaults)
}

// scheduleSave bumps the edit sequence and arms a fresh debounce timer.
func (a *App) scheduleSave() tea.Cmd {
	a.saveSeq++
	seq := a.saveSeq
	return tea.Tick(saveDebounce, func(time.Time) tea.Msg {
		return saveTickMsg{seq: seq}
	})
}

func (a *App) adjustRate(delta float64) tea.Cmd {
	if !a.caps.CanCustomizeSaveRate {
		a.statusMsg = "Custom save rate is a Pro feature"
		return nil
	}

	rate := a.saveRate + delta
	if rate < minSaveRate {
		rate = minSaveRate
	}
	if rate > maxSaveRate {
		rate = maxSaveRate
	}
	if rate == a.saveRate {
		return nil
	}

	a.saveRate = rate
	a.statusMsg = ""
	a.recompute()
	return a.scheduleSave()
}

func (a *App) persist() {
	if a.st == nil || a.computeErr != nil {
		a.statusMsg = "Not saved (no database)"
		return
	}

	weekStart := budget.WeekStart(time.Now())
	if _, err := a.st.UpsertWeekly(a.cfg.Profile.UserID, weekStart, a.result); err != nil {
		a.statusMsg = "Save failed: " + err.Error()
		return
	}
	a.statusMsg = "Saved"
}

func (a *App) saveDefaults() {
	if !a.caps.CanCustomizeSaveRate {
		a.statusMsg = "Saved defaults are a Pro feature"
		return
	}
	if a.st == nil {
		a.statusMsg = "Not saved (no database)"
		return
	}

	prefs := model.Preferences{
		SaveRate: a.saveRate,
		Splits:   a.input.Preferences.Splits,
	}
	prof := model.Profile{
		UserID:       a.cfg.Profile.UserID,
		Email:        a.cfg.Profile.Email,
		Plan:         a.tier,
		DefaultPrefs: &prefs,
	}
	if err := a.st.UpsertProfile(prof); err != nil {
		a.statusMsg = "Save failed: " + err.Error()
		return
	}
	a.defaults = &prefs
	a.statusMsg = "Defaults saved"
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case saveTickMsg:
		// A newer edit re-armed the timer; let that one win.
		if msg.seq != a.saveSeq {
			return a, nil
		}
		a.persist()
		return a, nil

	case historyLoadedMsg:
		a.historyLoading = false
		if msg.err == nil {
			a.history = msg.records
		}
		return a, nil

	case spinner.TickMsg:
		if !a.historyLoading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return a, tea.Quit
		case "left", "h":
			return a, a.adjustRate(-rateStep)
		case "right", "l":
			return a, a.adjustRate(rateStep)
		case "d":
			a.saveDefaults()
			return a, nil
		case "s":
			a.persist()
			return a, nil
		}
	}

	return a, nil
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	t := theme.Active
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
	weekStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	b.WriteString(" " + titleStyle.Render("SALTI") + "  " +
		weekStyle.Render(cli.FormatWeekRange(budget.WeekStart(time.Now()))) + "\n\n")

	if a.computeErr != nil {
		errStyle := lipgloss.NewStyle().Foreground(t.Red)
		b.WriteString(errStyle.Render("  " + a.computeErr.Error()))
		b.WriteString("\n\n")
		b.WriteString(components.RenderStatusBar(cw, "[q]uit", ""))
		return b.String()
	}

	res := a.result

	cards := []components.MetricCard{
		{Label: "Income", Value: cli.FormatCents(res.Income)},
		{Label: "Fixed", Value: cli.FormatCents(res.Fixed)},
		{Label: "Save n Stack", Value: cli.FormatCents(res.SaveNStack), Color: t.Green},
		{Label: "Status", Value: strings.ToUpper(string(res.Status)), Color: t.Health(res.Status)},
	}
	b.WriteString(components.RenderMetricRow(cards, cw))
	b.WriteString("\n")

	b.WriteString(a.renderSaveRateCard(cw))
	b.WriteString("\n")

	b.WriteString(a.renderAllocationsCard(cw))
	b.WriteString("\n")

	if a.caps.CanViewHistory {
		b.WriteString(a.renderHistoryCard(cw))
		b.WriteString("\n")
	}

	if len(res.Tips) > 0 {
		tipStyle := lipgloss.NewStyle().Foreground(t.Yellow)
		var tips strings.Builder
		for _, tip := range res.Tips {
			tips.WriteString(tipStyle.Render("• ") + tip + "\n")
		}
		b.WriteString(components.RenderContentCard("Tips", strings.TrimRight(tips.String(), "\n"), cw))
		b.WriteString("\n")
	}

	hints := "[←/→]save rate  [d]efaults  [s]ave  [q]uit"
	if !a.caps.CanCustomizeSaveRate {
		hints = "[s]ave  [q]uit"
	}
	b.WriteString(components.RenderStatusBar(cw, hints, a.statusMsg))

	return b.String()
}

func (a App) renderSaveRateCard(cw int) string {
	t := theme.Active
	res := a.result

	innerW := cw - 4
	sliderW := innerW - 10
	if sliderW < 10 {
		sliderW = 10
	}

	rateStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var body strings.Builder
	body.WriteString(components.RenderSlider(a.saveRate, minSaveRate, maxSaveRate, sliderW))
	body.WriteString("  " + rateStyle.Render(cli.FormatPercent(a.saveRate)))
	body.WriteString("\n")

	fv := projection.FutureValueOfRecurring(res.SaveNStack.Dollars(), 52, 0.08, 10)
	body.WriteString(dimStyle.Render(fmt.Sprintf("%s/week is %s in 10 years at 8%%",
		cli.FormatCents(res.SaveNStack), cli.FormatDollars(fv))))
	if !a.caps.CanCustomizeSaveRate {
		body.WriteString("\n")
		body.WriteString(dimStyle.Render("Rate fixed at 20% on the free plan"))
	}

	return components.RenderContentCard("Save Rate", body.String(), cw)
}

func (a App) renderAllocationsCard(cw int) string {
	t := theme.Active
	res := a.result

	labelW := 0
	var maxAmount model.Cents
	for _, alloc := range res.Allocations {
		if n := len(cli.FormatCategory(alloc.Category)); n > labelW {
			labelW = n
		}
		if alloc.Weekly > maxAmount {
			maxAmount = alloc.Weekly
		}
	}

	barMax := cw - 4 - labelW - 14
	if barMax < 8 {
		barMax = 8
	}

	var body strings.Builder
	for _, alloc := range res.Allocations {
		body.WriteString(components.RenderProportionBar(
			cli.FormatCategory(alloc.Category),
			cli.FormatCents(alloc.Weekly),
			float64(alloc.Weekly), float64(maxAmount),
			labelW, barMax, t.Blue))
		body.WriteString("\n")
	}

	footer := lipgloss.NewStyle().Foreground(t.TextMuted).
		Render(fmt.Sprintf("Variable total %s", cli.FormatCents(res.VariableTotal)))
	body.WriteString(footer)

	title := "Weekly Spending"
	return components.RenderContentCard(title, body.String(), cw)
}

func (a App) renderHistoryCard(cw int) string {
	t := theme.Active

	if a.historyLoading {
		return components.RenderContentCard("Recent Weeks", a.spinner.View()+" loading", cw)
	}
	if len(a.history) == 0 {
		dim := lipgloss.NewStyle().Foreground(t.TextDim)
		return components.RenderContentCard("Recent Weeks", dim.Render("No saved weeks yet"), cw)
	}

	// Records arrive most recent first; the sparkline reads oldest first.
	vals := make([]float64, len(a.history))
	for i, rec := range a.history {
		vals[len(a.history)-1-i] = float64(rec.Result.SaveNStack)
	}

	sparkStyle := lipgloss.NewStyle().Foreground(t.Green)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var body strings.Builder
	body.WriteString(sparkStyle.Render(cli.RenderSparkline(vals)))
	body.WriteString("\n")
	body.WriteString(dimStyle.Render(fmt.Sprintf("Save n Stack over the last %d saved weeks", len(a.history))))

	return components.RenderContentCard("Recent Weeks", body.String(), cw)
}
