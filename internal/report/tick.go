package report

import (
	"time"

	"bgsbot/pkg/util"
)

// TickPage renders the most recent tick as a single-field page. The page
// timestamp carries the raw instant; the field body is the human form.
func TickPage(tick time.Time) Page {
	return Page{
		Title:     "Tick",
		Color:     EmbedColor,
		Timestamp: tick,
		Fields: []Field{
			{Title: "Last Tick", Body: util.TickTimestamp(tick)},
		},
	}
}
