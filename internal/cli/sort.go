package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pfrederiksen/tournament-monitor/internal/tournament"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByPage  SortOrder = "page"
	SortByDate  SortOrder = "date"
	SortByStart SortOrder = "start"
	SortByName  SortOrder = "name"
)

// ParseSortOrder validates a --sort value.
func ParseSortOrder(s string) (SortOrder, error) {
	switch order := SortOrder(strings.ToLower(strings.TrimSpace(s))); order {
	case "", SortByPage:
		return SortByPage, nil
	case SortByDate, SortByStart, SortByName:
		return order, nil
	}
	return "", fmt.Errorf("invalid sort order: %s (must be 'page', 'date', 'start' or 'name')", s)
}

// sortRecords sorts records for display. SortByPage keeps listing order.
func sortRecords(records []tournament.Record, order SortOrder) {
	switch order {
	case SortByDate:
		sort.SliceStable(records, func(i, j int) bool {
			return compareByDate(records[i], records[j])
		})
	case SortByStart:
		sort.SliceStable(records, func(i, j int) bool {
			if records[i].StartMinutes() != records[j].StartMinutes() {
				return records[i].StartMinutes() < records[j].StartMinutes()
			}
			return compareByDate(records[i], records[j])
		})
	case SortByName:
		sort.SliceStable(records, func(i, j int) bool {
			if records[i].Name != records[j].Name {
				return strings.ToLower(records[i].Name) < strings.ToLower(records[j].Name)
			}
			return compareByDate(records[i], records[j])
		})
	}
}

// compareByDate compares two records by their date
// Returns true if record i should come before record j
func compareByDate(i, j tournament.Record) bool {
	if cmp, ok := tournament.CompareDates(i.Date, j.Date); ok {
		if cmp != 0 {
			return cmp < 0
		}
		return i.StartMinutes() < j.StartMinutes()
	}

	// Dated records come before undated ones
	if i.HasDate() != j.HasDate() {
		return i.HasDate()
	}
	return strings.ToLower(i.Name) < strings.ToLower(j.Name)
}
