// Package filter narrows extracted tournament records down to the ones that can
// be shown today.
//
// Records are already venue-matched when they are built, so the filter is mostly
// about the calendar: only records dated today (in the venue's local calendar,
// in the same YYYY/MM/DD form used during extraction) survive. Records without a
// date cannot be confirmed as today's and are dropped.
//
// Example usage:
//
//	f := filter.ForToday(now, loc, venue.Label())
//	todays := f.Apply(records)
package filter

import (
	"time"

	"github.com/pfrederiksen/tournament-monitor/internal/tournament"
)

// Filter represents record filtering criteria
type Filter struct {
	// Date a record must carry, YYYY/MM/DD.
	Date string

	// Venue label a record must carry. Empty accepts any venue.
	Venue string
}

// ForToday builds a filter for the current calendar day at the venue.
func ForToday(now time.Time, loc *time.Location, venue string) *Filter {
	return &Filter{
		Date:  tournament.Today(now, loc),
		Venue: venue,
	}
}

// Matches reports whether a single record passes the filter.
func (f *Filter) Matches(rec tournament.Record) bool {
	if !rec.HasDate() || rec.Date != f.Date {
		return false
	}
	if f.Venue != "" && rec.Venue != f.Venue {
		return false
	}
	return true
}

// Apply returns the records that pass the filter, preserving their order.
func (f *Filter) Apply(records []tournament.Record) []tournament.Record {
	filtered := make([]tournament.Record, 0, len(records))
	for _, rec := range records {
		if f.Matches(rec) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}
