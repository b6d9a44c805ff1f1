// Package report turns fetched game-state records into ordered, paginated
// embed pages.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// PageCapacity is the platform ceiling on fields per structured message.
const PageCapacity = 24

// EmbedColor is the accent color used on all report pages.
const EmbedColor = 0xff00ff

// Field is one titled block on a page.
type Field struct {
	Title  string
	Body   string
	Inline bool
}

// FieldRecord is the ephemeral view model joining a presence to its resolved
// system status.
type FieldRecord struct {
	Title       string
	Description string
	Name        string // lowercase-compared for name sort
	Influence   float64
}

// SortKey selects the record attribute reports are ordered by.
type SortKey string

const (
	SortNone      SortKey = ""
	SortName      SortKey = "name"
	SortInfluence SortKey = "influence"
)

// SortSpec is a guild's configured sort policy. Order -1 is descending,
// 0 disabled, 1 ascending.
type SortSpec struct {
	Key   SortKey
	Order int
}

// Page is one outbound structured message.
type Page struct {
	Title     string
	Color     int
	Timestamp time.Time
	Fields    []Field
}

// Sort orders records in place per spec. Disabled specs keep fetch order.
// The sort is stable: ties preserve the original relative order.
func Sort(records []FieldRecord, spec SortSpec) {
	if spec.Order == 0 || spec.Key == SortNone {
		return
	}

	sort.SliceStable(records, func(i, j int) bool {
		switch spec.Key {
		case SortName:
			a, b := strings.ToLower(records[i].Name), strings.ToLower(records[j].Name)
			if spec.Order < 0 {
				return a > b
			}
			return a < b
		case SortInfluence:
			if spec.Order < 0 {
				return records[i].Influence > records[j].Influence
			}
			return records[i].Influence < records[j].Influence
		default:
			return false
		}
	})
}

// Assemble sorts records per spec and slices them into pages of at most
// PageCapacity fields. Page 0 carries the primary title and the header
// field; continued pages carry a numbered title and records only. At least
// one page is produced even with zero records, so the header is always
// reported.
func Assemble(title string, header Field, records []FieldRecord, spec SortSpec, ts time.Time) []Page {
	Sort(records, spec)

	numPages := (len(records) + PageCapacity - 1) / PageCapacity
	if numPages == 0 {
		numPages = 1
	}

	pages := make([]Page, 0, numPages)
	for index := 0; index < numPages; index++ {
		page := Page{
			Title:     title,
			Color:     EmbedColor,
			Timestamp: ts,
		}
		if index == 0 {
			page.Fields = append(page.Fields, header)
		} else {
			page.Title = fmt.Sprintf("%s - continued - Pg %d", title, index+1)
		}

		limit := index*PageCapacity + PageCapacity
		if limit > len(records) {
			limit = len(records)
		}
		for _, rec := range records[index*PageCapacity : limit] {
			page.Fields = append(page.Fields, Field{Title: rec.Title, Body: rec.Description})
		}
		pages = append(pages, page)
	}
	return pages
}
