// Package engine runs extraction, filtering, continuation and selection over one
// poll cycle's worth of cards and produces the record to persist.
//
// The engine does no I/O and keeps no state between calls: identical cards,
// previous state and clock reading always produce the same result.
package engine

import (
	"fmt"
	"time"

	"github.com/pfrederiksen/tournament-monitor/internal/display"
	"github.com/pfrederiksen/tournament-monitor/internal/extract"
	"github.com/pfrederiksen/tournament-monitor/internal/filter"
	"github.com/pfrederiksen/tournament-monitor/internal/logger"
	"github.com/pfrederiksen/tournament-monitor/internal/selector"
	"github.com/pfrederiksen/tournament-monitor/internal/tournament"
)

// Engine holds the per-venue collaborators of a cycle.
type Engine struct {
	extractor *extract.Extractor
	builder   *display.Builder
	loc       *time.Location
	log       *logger.Logger
}

// Result is everything one cycle decided.
type Result struct {
	State        display.PersistedState
	Outcome      selector.Outcome
	Records      []tournament.Record // distinct venue matches, page order
	Candidates   []tournament.Record // today's records plus any continued tournament
	Continuation *selector.Continuation
}

// New creates an Engine. loc is the venue's time zone.
func New(extractor *extract.Extractor, builder *display.Builder, loc *time.Location, log *logger.Logger) (*Engine, error) {
	if extractor == nil || builder == nil {
		return nil, fmt.Errorf("engine needs an extractor and a builder")
	}
	if loc == nil {
		loc = time.Local
	}
	return &Engine{extractor: extractor, builder: builder, loc: loc, log: log}, nil
}

// Today returns the venue-local date for now.
func (e *Engine) Today(now time.Time) string {
	return tournament.Today(now, e.loc)
}

// Continuation runs the continuation check against the previous state.
func (e *Engine) Continuation(previous *display.PersistedState, now time.Time) (*selector.Continuation, bool) {
	return selector.CheckContinuation(previous, e.Today(now))
}

// ExtractAndSelect extracts a record from every card, keeps today's records for
// the venue (plus the previous tournament when it may have run past midnight),
// picks one and builds the record to persist.
func (e *Engine) ExtractAndSelect(cards []extract.Card, now time.Time, previous *display.PersistedState) Result {
	records := distinct(e.extractor.ExtractAll(cards, now))

	f := filter.ForToday(now, e.loc, e.extractor.Venue().Label())
	candidates := f.Apply(records)

	cont, continued := e.Continuation(previous, now)
	if continued {
		admitted := cont.Admit(records)
		e.log.Info("Previous tournament may still be active", logger.Fields{
			"name":     cont.Name,
			"date":     cont.Date,
			"reported": len(admitted) > 0,
		})
		candidates = append(candidates, admitted...)
	}

	outcome := selector.Select(candidates)
	state := e.builder.Build(outcome.Selected, now)

	fields := logger.Fields{
		"cards":      len(cards),
		"records":    len(records),
		"candidates": len(candidates),
		"today":      f.Date,
		"reason":     string(outcome.Reason),
		"display":    state.DisplayTournament,
	}
	if !outcome.None() {
		fields["name"] = outcome.Selected.Name
		fields["status"] = string(outcome.Selected.Status)
		fields["start_time"] = outcome.Selected.StartTimeRaw
	}
	e.log.Info("Tournament selection", fields)

	return Result{
		State:        state,
		Outcome:      outcome,
		Records:      records,
		Candidates:   candidates,
		Continuation: cont,
	}
}

// distinct drops repeated listings of the same tournament, keeping the first.
// A re-verification fetch usually returns cards the venue search already had.
func distinct(records []tournament.Record) []tournament.Record {
	out := make([]tournament.Record, 0, len(records))
	for _, rec := range records {
		seen := false
		for _, kept := range out {
			if kept.SameTournament(rec) {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, rec)
		}
	}
	return out
}
