// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/livinsalti/salti/internal/model"
)

// FormatCents formats a cent amount as dollars with comma separators.
// e.g., 123456 -> "$1,234.56"
func FormatCents(c model.Cents) string {
	if c < 0 {
		return "-" + FormatCents(-c)
	}
	return fmt.Sprintf("$%s.%02d", FormatNumber(int64(c)/100), int64(c)%100)
}

// FormatDollars formats a dollar float for projection output, dropping
// cents above $1,000 where they stop being meaningful.
// e.g., 215.892 -> "$215.89", 12345.67 -> "$12,346"
func FormatDollars(d float64) string {
	if d >= 1000 {
		return "$" + FormatNumber(int64(math.Round(d)))
	}
	return fmt.Sprintf("$%.2f", d)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatDelta formats a cent delta with an explicit sign.
func FormatDelta(current, previous model.Cents) string {
	delta := current - previous
	if delta >= 0 {
		return "+" + FormatCents(delta)
	}
	return "-" + FormatCents(-delta)
}

// FormatWeekRange formats a week as "Jan 2 - Jan 8, 2006" given its
// Monday start date.
func FormatWeekRange(weekStart time.Time) string {
	end := weekStart.AddDate(0, 0, 6)
	if weekStart.Year() == end.Year() {
		return fmt.Sprintf("%s - %s, %d",
			weekStart.Format("Jan 2"), end.Format("Jan 2"), end.Year())
	}
	return fmt.Sprintf("%s - %s",
		weekStart.Format("Jan 2, 2006"), end.Format("Jan 2, 2006"))
}

// FormatCategory turns a snake_case category name into a display label.
// e.g., "eating_out" -> "Eating out"
func FormatCategory(name string) string {
	label := strings.ReplaceAll(name, "_", " ")
	if label == "" {
		return label
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
