package storage

import (
	"context"
	"errors"

	"github.com/pfrederiksen/tournament-monitor/internal/display"
)

// ErrNoState is returned when a location holds no previous record.
var ErrNoState = errors.New("no previous state")

// Sink is one place the display record is written to and read back from.
type Sink interface {
	Name() string
	Save(ctx context.Context, state display.PersistedState) error
	Load(ctx context.Context) (*display.PersistedState, error)
}
