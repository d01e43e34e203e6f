package cast

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/pfrederiksen/tournament-monitor/internal/display"
	"github.com/pfrederiksen/tournament-monitor/internal/logger"
	"github.com/pfrederiksen/tournament-monitor/internal/storage"
	"github.com/pfrederiksen/tournament-monitor/internal/tournament"
)

// switchDelay gives the device time to drop the previous cast.
const switchDelay = 2 * time.Second

// StateLoader returns the current display record.
type StateLoader interface {
	Load(ctx context.Context) (*display.PersistedState, error)
}

// ShouldDisplay reports whether the record asks for the tournament page: the
// display flag is set, it is not the "no tournaments" placeholder, and the
// status is In Progress or Upcoming.
func ShouldDisplay(s *display.PersistedState) bool {
	if s == nil || !s.DisplayTournament {
		return false
	}
	if s.IsSentinel() || strings.Contains(strings.ToLower(s.TournamentName), "no tournament") {
		return false
	}
	if s.Status == nil {
		return false
	}
	switch tournament.ParseStatus(*s.Status) {
	case tournament.StatusInProgress, tournament.StatusUpcoming:
		return true
	}
	return false
}

// Agent casts the display site while a tournament is displayable.
type Agent struct {
	caster    Caster
	loader    StateLoader
	statePath string
	siteURL   string
	log       *logger.Logger
	now       func() time.Time
	delay     time.Duration
}

// NewAgent creates an Agent. siteURL is the page to cast; when empty it is
// http://<local IP>/, resolved on every poll.
func NewAgent(caster Caster, loader StateLoader, statePath, siteURL string, log *logger.Logger) *Agent {
	return &Agent{
		caster:    caster,
		loader:    loader,
		statePath: statePath,
		siteURL:   siteURL,
		log:       log,
		now:       time.Now,
		delay:     switchDelay,
	}
}

// Step runs one poll.
func (a *Agent) Step(ctx context.Context) error {
	record, err := a.loader.Load(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNoState) {
			a.log.Debug("No tournament data found", nil)
			return nil
		}
		return fmt.Errorf("loading tournament data: %w", err)
	}

	state, err := LoadState(a.statePath)
	if err != nil {
		a.log.Warn("Starting from empty cast state", logger.Fields{"error": err.Error()})
		state = State{}
	}

	show := ShouldDisplay(record)
	a.log.Debug("Checked tournament", logger.Fields{
		"name":           record.TournamentName,
		"should_display": show,
		"casting":        state.IsCastingTournament,
	})

	switch {
	case show && !state.IsCastingTournament:
		return a.start(ctx, record)
	case !show && state.IsCastingTournament:
		a.log.Info("Tournament no longer displayable, resetting cast state", logger.Fields{"name": record.TournamentName})
		return SaveState(a.statePath, State{})
	}
	return nil
}

func (a *Agent) start(ctx context.Context, record *display.PersistedState) error {
	site, err := a.site()
	if err != nil {
		return err
	}

	a.log.Info("Tournament ready to display", logger.Fields{
		"name":   record.TournamentName,
		"status": deref(record.Status),
		"site":   site,
	})

	if err := a.caster.Stop(ctx); err != nil {
		a.log.Warn("Stopping current cast failed", logger.Fields{"error": err.Error()})
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(a.delay):
	}

	if err := a.caster.CastSite(ctx, site); err != nil {
		return fmt.Errorf("casting %s: %w", site, err)
	}

	started := a.now().Format(time.RFC3339)
	state := State{
		IsCastingTournament: true,
		LastTournamentURL:   record.TournamentURL,
		LastStatus:          record.Status,
		CastStartedAt:       &started,
	}
	if err := SaveState(a.statePath, state); err != nil {
		return err
	}
	a.log.Info("Started casting tournament display", logger.Fields{"site": site})
	return nil
}

func (a *Agent) site() (string, error) {
	if a.siteURL != "" {
		return a.siteURL, nil
	}
	ip, err := LocalIP()
	if err != nil {
		return "", fmt.Errorf("determining local IP address: %w", err)
	}
	return fmt.Sprintf("http://%s/", ip), nil
}

// Run polls every interval until ctx is cancelled. Failed polls are logged.
func (a *Agent) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("cast interval must be positive, got %v", interval)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	a.log.Info("Cast agent starting", logger.Fields{"interval": interval.String(), "state_file": a.statePath})
	for {
		if err := a.Step(ctx); err != nil && ctx.Err() == nil {
			a.log.Error("Cast poll failed", nil, err)
		}

		select {
		case <-ctx.Done():
			a.log.Info("Cast agent stopped", nil)
			return nil
		case <-ticker.C:
		}
	}
}

// LocalIP returns the address of the interface used for outbound traffic.
// No packets are sent.
func LocalIP() (string, error) {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "", err
	}
	defer conn.Close()

	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return "", fmt.Errorf("unexpected local address %v", conn.LocalAddr())
	}
	return addr.IP.String(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
