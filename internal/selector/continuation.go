package selector

import (
	"github.com/pfrederiksen/tournament-monitor/internal/display"
	"github.com/pfrederiksen/tournament-monitor/internal/tournament"
)

// Continuation identifies a tournament from an earlier calendar day that was on
// the display and In Progress at the last write. It may still be running past
// midnight, so it has to be looked up on the source again before it can be
// considered finished.
type Continuation struct {
	Name string
	URL  string
	Date string
}

// CheckContinuation returns the prior tournament when the previous state was
// displaying an In Progress tournament dated strictly before today. It never
// changes the candidate set on its own.
func CheckContinuation(prev *display.PersistedState, today string) (*Continuation, bool) {
	if prev == nil || !prev.DisplayTournament {
		return nil, false
	}
	if tournament.ParseStatus(deref(prev.Status)) != tournament.StatusInProgress {
		return nil, false
	}

	date := deref(prev.Date)
	cmp, ok := tournament.CompareDates(date, today)
	if !ok || cmp >= 0 {
		return nil, false
	}

	return &Continuation{
		Name: prev.TournamentName,
		URL:  deref(prev.TournamentURL),
		Date: date,
	}, true
}

// Query is the search text used to re-verify the tournament on the source.
func (c *Continuation) Query() string {
	return c.Name
}

// Matches reports whether rec is the continued tournament.
func (c *Continuation) Matches(rec tournament.Record) bool {
	if c == nil {
		return false
	}
	if c.URL != "" && rec.URL == c.URL {
		return true
	}
	return rec.Name == c.Name && rec.Date == c.Date
}

// Admit returns the records that are the continued tournament. Absence from
// the source means the tournament is no longer displayable.
func (c *Continuation) Admit(records []tournament.Record) []tournament.Record {
	var out []tournament.Record
	for _, rec := range records {
		if c.Matches(rec) {
			out = append(out, rec)
		}
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
