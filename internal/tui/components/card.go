// Package components provides reusable TUI widgets for the salti dashboard.
package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/livinsalti/salti/internal/tui/theme"
)

// LayoutRow distributes totalWidth into n widths that sum to exactly totalWidth.
// First items absorb the remainder from integer division.
func LayoutRow(totalWidth, n int) []int {
	if n <= 0 {
		return nil
	}
	base := totalWidth / n
	remainder := totalWidth % n
	widths := make([]int, n)
	for i := range widths {
		widths[i] = base
		if i < remainder {
			widths[i]++
		}
	}
	return widths
}

// MetricCard is one labeled figure in the dashboard header row.
type MetricCard struct {
	Label string
	Value string
	// Color overrides the value color when set (health signaling).
	Color lipgloss.Color
}

// RenderMetricCard renders a small bordered card with a label and value.
// outerWidth is the total rendered width including border.
func RenderMetricCard(c MetricCard, outerWidth int) string {
	t := theme.Active

	contentWidth := outerWidth - 2 // subtract border
	if contentWidth < 10 {
		contentWidth = 10
	}

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Width(contentWidth).
		Padding(0, 1)

	valueColor := t.TextPrimary
	if c.Color != "" {
		valueColor = c.Color
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(valueColor).Bold(true)

	return cardStyle.Render(labelStyle.Render(c.Label) + "\n" + valueStyle.Render(c.Value))
}

// RenderMetricRow renders metric cards side by side, summing to totalWidth.
func RenderMetricRow(cards []MetricCard, totalWidth int) string {
	if len(cards) == 0 {
		return ""
	}

	widths := LayoutRow(totalWidth, len(cards))

	rendered := make([]string, 0, len(cards))
	for i, c := range cards {
		rendered = append(rendered, RenderMetricCard(c, widths[i]))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// RenderContentCard renders a bordered content card with an optional title.
func RenderContentCard(title, body string, outerWidth int) string {
	t := theme.Active

	contentWidth := outerWidth - 2 // subtract border chars
	if contentWidth < 10 {
		contentWidth = 10
	}

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Width(contentWidth).
		Padding(0, 1)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Bold(true)

	content := ""
	if title != "" {
		content = titleStyle.Render(title) + "\n"
	}
	content += body

	return cardStyle.Render(content)
}
