// Package monitor runs poll cycles: read the previous record, fetch the
// listing, re-verify a tournament that may have run past midnight, select,
// and persist.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pfrederiksen/tournament-monitor/internal/engine"
	"github.com/pfrederiksen/tournament-monitor/internal/logger"
	"github.com/pfrederiksen/tournament-monitor/internal/scraper"
	"github.com/pfrederiksen/tournament-monitor/internal/storage"
)

// Monitor wires a card source, the engine and the state sinks together.
type Monitor struct {
	source scraper.Source
	engine *engine.Engine
	reader *storage.Reader
	writer *storage.Writer
	query  string
	log    *logger.Logger
	now    func() time.Time
}

// Option customizes a Monitor.
type Option func(*Monitor)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Monitor) {
		m.now = now
	}
}

// New creates a Monitor. query is the search text for the regular fetch.
func New(source scraper.Source, eng *engine.Engine, reader *storage.Reader, writer *storage.Writer, query string, log *logger.Logger, opts ...Option) *Monitor {
	m := &Monitor{
		source: source,
		engine: eng,
		reader: reader,
		writer: writer,
		query:  query,
		log:    log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Cycle runs one poll. A fetch failure aborts the cycle before anything is
// written. Sink failures are logged; the cycle fails only when no sink took
// the record.
func (m *Monitor) Cycle(ctx context.Context) (engine.Result, error) {
	start := m.now()
	metrics := logger.NewMetrics()

	previous, err := m.reader.Load(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrNoState) {
			m.log.Warn("Could not read previous state", logger.Fields{"error": err.Error()})
		}
		previous = nil
	}

	cards, err := m.source.Cards(ctx, m.query)
	if err != nil {
		metrics.IncrCounter("fetch_failures")
		m.log.Error("Fetch failed", logger.Fields{"query": m.query}, err)
		return engine.Result{}, fmt.Errorf("fetching cards: %w", err)
	}
	metrics.AddCounter("cards", int64(len(cards)))

	res := m.engine.ExtractAndSelect(cards, start, previous)

	if cont := res.Continuation; cont != nil && len(cont.Admit(res.Records)) == 0 {
		m.log.Info("Re-verifying previous tournament", logger.Fields{"query": cont.Query(), "date": cont.Date})
		metrics.IncrCounter("reverify_fetches")

		extra, err := m.source.Cards(ctx, cont.Query())
		if err != nil {
			m.log.Warn("Re-verification fetch failed", logger.Fields{"query": cont.Query(), "error": err.Error()})
		} else {
			metrics.AddCounter("cards", int64(len(extra)))
			cards = append(cards, extra...)
			res = m.engine.ExtractAndSelect(cards, start, previous)
		}
	}

	metrics.AddCounter("records", int64(len(res.Records)))
	metrics.AddCounter("candidates", int64(len(res.Candidates)))
	if res.State.DisplayTournament {
		metrics.SetGauge("displayable", 1)
	} else {
		metrics.SetGauge("displayable", 0)
	}

	written, err := m.writer.Write(ctx, res.State)
	metrics.AddCounter("sinks_written", int64(written))
	if err != nil {
		metrics.AddCounter("sink_failures", int64(len(m.writer.Sinks())-written))
	}

	metrics.RecordTiming("cycle", m.now().Sub(start))
	m.log.Info("Cycle complete", logger.Fields{
		"tournament": res.State.TournamentName,
		"display":    res.State.DisplayTournament,
		"reason":     string(res.Outcome.Reason),
		"metrics":    metrics.Snapshot(),
	})

	if written == 0 && len(m.writer.Sinks()) > 0 {
		return res, fmt.Errorf("no sink accepted the record: %w", err)
	}
	return res, nil
}

// Watch runs a cycle immediately and then every interval until ctx is
// cancelled. Failed cycles are logged and retried on the next tick.
func (m *Monitor) Watch(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %v", interval)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	m.log.Info("Watching for tournaments", logger.Fields{"interval": interval.String(), "query": m.query})
	for {
		if _, err := m.Cycle(ctx); err != nil && ctx.Err() == nil {
			m.log.Warn("Cycle failed, retrying next interval", logger.Fields{"error": err.Error()})
		}

		select {
		case <-ctx.Done():
			m.log.Info("Stopped watching", nil)
			return nil
		case <-ticker.C:
		}
	}
}
