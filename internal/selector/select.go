package selector

import (
	"sort"

	"github.com/pfrederiksen/tournament-monitor/internal/tournament"
)

// Reason records which rule produced an Outcome.
type Reason string

const (
	ReasonOnlyInProgress   Reason = "only-in-progress"
	ReasonLatestInProgress Reason = "latest-in-progress"
	ReasonFirstScheduled   Reason = "first-scheduled"
	ReasonAllCompleted     Reason = "all-completed"
	ReasonNoCandidates     Reason = "no-candidates"
)

// Outcome is the result of one selection: a record, or none.
type Outcome struct {
	Selected *tournament.Record
	Reason   Reason
}

// None reports whether nothing was selected.
func (o Outcome) None() bool {
	return o.Selected == nil
}

// Select picks at most one record to display:
//
//  1. If any record is In Progress, the one with the latest start time wins.
//  2. Otherwise Completed records are dropped and the earliest start time wins.
//  3. If nothing remains, the outcome is none.
//
// Records without a normalized start time sort as 00:00. Ties keep page order.
func Select(records []tournament.Record) Outcome {
	if len(records) == 0 {
		return Outcome{Reason: ReasonNoCandidates}
	}

	var inProgress, open []tournament.Record
	for _, rec := range records {
		switch rec.Status {
		case tournament.StatusInProgress:
			inProgress = append(inProgress, rec)
		case tournament.StatusCompleted:
		default:
			open = append(open, rec)
		}
	}

	switch {
	case len(inProgress) == 1:
		return outcome(inProgress[0], ReasonOnlyInProgress)
	case len(inProgress) > 1:
		sort.SliceStable(inProgress, func(i, j int) bool {
			return inProgress[i].StartMinutes() > inProgress[j].StartMinutes()
		})
		return outcome(inProgress[0], ReasonLatestInProgress)
	case len(open) == 0:
		return Outcome{Reason: ReasonAllCompleted}
	}

	sort.SliceStable(open, func(i, j int) bool {
		return open[i].StartMinutes() < open[j].StartMinutes()
	})
	return outcome(open[0], ReasonFirstScheduled)
}

func outcome(rec tournament.Record, reason Reason) Outcome {
	return Outcome{Selected: &rec, Reason: reason}
}
