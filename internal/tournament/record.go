package tournament

import (
	"fmt"
	"time"
)

// Status is the lifecycle status of a tournament as reported by the listing page.
// The string values are written verbatim to the persisted display record.
type Status string

const (
	StatusInProgress Status = "In Progress"
	StatusUpcoming   Status = "Upcoming"
	StatusCompleted  Status = "Completed"
	StatusUnknown    Status = "Unknown"
)

// ParseStatus maps a persisted status string back to a Status.
// Anything unrecognized, including the empty string, is StatusUnknown.
func ParseStatus(s string) Status {
	switch Status(s) {
	case StatusInProgress, StatusUpcoming, StatusCompleted:
		return Status(s)
	}
	return StatusUnknown
}

// Record represents one tournament found on the listing page
type Record struct {
	Name         string    `json:"name"`
	Venue        string    `json:"venue"`                       // "VenueName, City"
	Date         string    `json:"date,omitempty"`              // YYYY/MM/DD, empty when absent
	StartTimeRaw string    `json:"start_time,omitempty"`        // time string as matched on the card
	StartTime    *Clock    `json:"start_time_parsed,omitempty"` // nil when StartTimeRaw is absent or unparseable
	Status       Status    `json:"status"`
	URL          string    `json:"url,omitempty"`
	DiscoveredAt time.Time `json:"found_at"`
}

// VenueLabel composes the venue label stored on every record.
func VenueLabel(name, city string) string {
	return fmt.Sprintf("%s, %s", name, city)
}

// HasDate reports whether the card carried a date.
func (r Record) HasDate() bool {
	return r.Date != ""
}

// StartMinutes returns the normalized start time in minutes after midnight.
// Records without a normalized time sort as 00:00.
func (r Record) StartMinutes() int {
	if r.StartTime == nil {
		return 0
	}
	return r.StartTime.Minutes()
}

// SameTournament reports whether two records describe the same listing.
// The detail URL is preferred; records without one fall back to name and date.
func (r Record) SameTournament(other Record) bool {
	if r.URL != "" && other.URL != "" {
		return r.URL == other.URL
	}
	return r.Name == other.Name && r.Date == other.Date
}
