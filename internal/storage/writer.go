package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/pfrederiksen/tournament-monitor/internal/display"
	"github.com/pfrederiksen/tournament-monitor/internal/logger"
)

// Writer fans a record out to every sink.
type Writer struct {
	sinks []Sink
	log   *logger.Logger
}

// NewWriter creates a Writer over sinks, written in order.
func NewWriter(log *logger.Logger, sinks ...Sink) *Writer {
	return &Writer{sinks: sinks, log: log}
}

// Sinks returns the configured sinks.
func (w *Writer) Sinks() []Sink {
	return w.sinks
}

// Write saves state to every sink. A failing sink does not stop the others;
// the failures are logged and returned joined. The count of successful
// writes is returned alongside.
func (w *Writer) Write(ctx context.Context, state display.PersistedState) (int, error) {
	var (
		errs    []error
		written int
	)
	for _, sink := range w.sinks {
		if err := sink.Save(ctx, state); err != nil {
			w.log.Error("Failed to write state", logger.Fields{"sink": sink.Name()}, err)
			errs = append(errs, fmt.Errorf("%s: %w", sink.Name(), err))
			continue
		}
		written++
		w.log.Debug("Wrote state", logger.Fields{"sink": sink.Name()})
	}
	return written, errors.Join(errs...)
}

// Reader recovers the previous record.
type Reader struct {
	sinks []Sink
	log   *logger.Logger
}

// NewReader creates a Reader that tries sinks in order.
func NewReader(log *logger.Logger, sinks ...Sink) *Reader {
	return &Reader{sinks: sinks, log: log}
}

// Load returns the record from the first sink that yields a valid one.
// Unreadable or corrupt locations are logged and skipped; when none yields a
// record the result is ErrNoState.
func (r *Reader) Load(ctx context.Context) (*display.PersistedState, error) {
	for _, sink := range r.sinks {
		state, err := sink.Load(ctx)
		if err == nil {
			r.log.Debug("Loaded previous state", logger.Fields{
				"sink":    sink.Name(),
				"name":    state.TournamentName,
				"display": state.DisplayTournament,
			})
			return state, nil
		}
		if !errors.Is(err, ErrNoState) {
			r.log.Warn("Skipping unreadable state", logger.Fields{"sink": sink.Name(), "error": err.Error()})
		}
	}
	return nil, ErrNoState
}
