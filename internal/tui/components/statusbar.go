package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/livinsalti/salti/internal/tui/theme"
)

// RenderStatusBar renders the bottom status bar with key hints on the
// left and an optional transient message on the right.
func RenderStatusBar(width int, hints, message string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := " " + hints
	right := ""
	if message != "" {
		right = message + " "
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return style.Render(left + strings.Repeat(" ", padding) + right)
}

// RenderSlider renders a horizontal slider track with a handle at the
// given position. value is in [min, max].
func RenderSlider(value, min, max float64, width int) string {
	t := theme.Active

	if width < 10 {
		width = 10
	}
	span := max - min
	pos := 0
	if span > 0 {
		pos = int((value - min) / span * float64(width-1))
	}
	if pos < 0 {
		pos = 0
	}
	if pos > width-1 {
		pos = width - 1
	}

	trackStyle := lipgloss.NewStyle().Foreground(t.Border)
	handleStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)

	var b strings.Builder
	b.WriteString(trackStyle.Render(strings.Repeat("─", pos)))
	b.WriteString(handleStyle.Render("●"))
	b.WriteString(trackStyle.Render(strings.Repeat("─", width-1-pos)))
	return b.String()
}

// RenderProportionBar renders a labeled horizontal bar scaled against
// the largest value in the group.
func RenderProportionBar(label, amount string, value, max float64, labelWidth, barMax int, color lipgloss.Color) string {
	t := theme.Active

	barLen := 0
	if max > 0 {
		barLen = int(value / max * float64(barMax))
	}
	if barLen < 0 {
		barLen = 0
	}
	if barLen > barMax {
		barLen = barMax
	}

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	amtStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	barStyle := lipgloss.NewStyle().Foreground(color)

	return fmt.Sprintf("%s %s %s",
		nameStyle.Render(fmt.Sprintf("%-*s", labelWidth, label)),
		amtStyle.Render(fmt.Sprintf("%10s", amount)),
		barStyle.Render(strings.Repeat("█", barLen)))
}
