package util

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// TrendIcon maps a numeric trend to the glyph used in status reports.
func TrendIcon(trend int) string {
	if trend > 0 {
		return "⬆️"
	} else if trend < 0 {
		return "⬇️"
	}
	return "↔️"
}

// Percent formats a [0,1] fraction as a percentage with one decimal place.
func Percent(fraction float64) string {
	return fmt.Sprintf("%.1f%%", fraction*100)
}

// TimeAgo renders a timestamp as a human-relative string ("3 hours ago").
func TimeAgo(t time.Time) string {
	return humanize.Time(t)
}

// TickTimestamp formats a tick instant as "HH:mm UTC - Do Mon",
// e.g. "15:29 UTC - 2nd Jul".
func TickTimestamp(t time.Time) string {
	utc := t.UTC()
	return fmt.Sprintf("%s UTC - %s %s", utc.Format("15:04"), Ordinal(utc.Day()), utc.Format("Jan"))
}

// Ordinal returns n with its English ordinal suffix (1st, 2nd, 3rd, 4th...).
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
