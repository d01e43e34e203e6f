package cast

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/pfrederiksen/tournament-monitor/internal/display"
	"github.com/pfrederiksen/tournament-monitor/internal/storage"
)

func strPtr(s string) *string { return &s }

func record(name, status string, show bool) *display.PersistedState {
	s := &display.PersistedState{
		TournamentName:    name,
		TournamentURL:     strPtr("https://digitalpool.com/tournaments/20261017-friday-night-9-ball/"),
		LastUpdated:       "2026-10-17 20:00:00",
		DisplayTournament: show,
	}
	if status != "" {
		s.Status = strPtr(status)
	}
	return s
}

func TestShouldDisplay(t *testing.T) {
	tests := []struct {
		name  string
		state *display.PersistedState
		want  bool
	}{
		{"nil", nil, false},
		{"in progress flagged", record("Friday Night 9-Ball", "In Progress", true), true},
		{"upcoming flagged", record("Friday Night 9-Ball", "Upcoming", true), true},
		{"flag off", record("Friday Night 9-Ball", "In Progress", false), false},
		{"completed flagged", record("Friday Night 9-Ball", "Completed", true), false},
		{"no status", record("Friday Night 9-Ball", "", true), false},
		{"sentinel", record(display.NoTournamentName, "In Progress", true), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldDisplay(tt.state); got != tt.want {
				t.Errorf("ShouldDisplay() = %v, want %v", got, tt.want)
			}
		})
	}
}

type fakeCaster struct {
	calls   []string
	castErr error
}

func (f *fakeCaster) Stop(_ context.Context) error {
	f.calls = append(f.calls, "stop")
	return nil
}

func (f *fakeCaster) CastSite(_ context.Context, url string) error {
	f.calls = append(f.calls, "cast "+url)
	return f.castErr
}

type fakeLoader struct {
	state *display.PersistedState
	err   error
}

func (f *fakeLoader) Load(_ context.Context) (*display.PersistedState, error) {
	return f.state, f.err
}

func newTestAgent(t *testing.T, caster Caster, loader StateLoader) (*Agent, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cast_state.json")
	a := NewAgent(caster, loader, path, "http://192.168.1.50/", nil)
	a.delay = 0
	a.now = func() time.Time { return time.Date(2026, 10, 17, 19, 5, 0, 0, time.UTC) }
	return a, path
}

func TestAgent_StartsAndResets(t *testing.T) {
	caster := &fakeCaster{}
	loader := &fakeLoader{state: record("Friday Night 9-Ball", "In Progress", true)}
	a, path := newTestAgent(t, caster, loader)

	if err := a.Step(context.Background()); err != nil {
		t.Fatalf("Step() error: %v", err)
	}
	if diff := cmp.Diff([]string{"stop", "cast http://192.168.1.50/"}, caster.calls); diff != "" {
		t.Errorf("caster calls mismatch (-want +got):\n%s", diff)
	}

	state, err := LoadState(path)
	if err != nil {
		t.Fatalf("LoadState() error: %v", err)
	}
	want := State{
		IsCastingTournament: true,
		LastTournamentURL:   strPtr("https://digitalpool.com/tournaments/20261017-friday-night-9-ball/"),
		LastStatus:          strPtr("In Progress"),
		CastStartedAt:       strPtr("2026-10-17T19:05:00Z"),
	}
	if diff := cmp.Diff(want, state); diff != "" {
		t.Errorf("cast state mismatch (-want +got):\n%s", diff)
	}

	// Already casting: nothing to do.
	if err := a.Step(context.Background()); err != nil {
		t.Fatalf("Step() error: %v", err)
	}
	if len(caster.calls) != 2 {
		t.Errorf("caster called again while casting: %v", caster.calls)
	}

	loader.state = record(display.NoTournamentName, "", false)
	if err := a.Step(context.Background()); err != nil {
		t.Fatalf("Step() error: %v", err)
	}
	state, _ = LoadState(path)
	if diff := cmp.Diff(State{}, state); diff != "" {
		t.Errorf("cast state not reset (-want +got):\n%s", diff)
	}
}

func TestAgent_CastFailureKeepsState(t *testing.T) {
	caster := &fakeCaster{castErr: errors.New("no device")}
	loader := &fakeLoader{state: record("Friday Night 9-Ball", "Upcoming", true)}
	a, path := newTestAgent(t, caster, loader)

	if err := a.Step(context.Background()); err == nil {
		t.Fatal("Step() expected error")
	}
	state, err := LoadState(path)
	if err != nil {
		t.Fatalf("LoadState() error: %v", err)
	}
	if state.IsCastingTournament {
		t.Error("state should not record a failed cast")
	}
}

func TestAgent_NoData(t *testing.T) {
	caster := &fakeCaster{}
	a, _ := newTestAgent(t, caster, &fakeLoader{err: storage.ErrNoState})

	if err := a.Step(context.Background()); err != nil {
		t.Fatalf("Step() error: %v", err)
	}
	if len(caster.calls) != 0 {
		t.Errorf("caster called without data: %v", caster.calls)
	}

	a.loader = &fakeLoader{err: errors.New("permission denied")}
	if err := a.Step(context.Background()); err == nil {
		t.Error("Step() expected error for unreadable data")
	}
}

func TestAgent_Run(t *testing.T) {
	a, _ := newTestAgent(t, &fakeCaster{}, &fakeLoader{err: storage.ErrNoState})
	if err := a.Run(context.Background(), 0); err == nil {
		t.Error("Run() expected error for zero interval")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := a.Run(ctx, 5*time.Millisecond); err != nil {
		t.Errorf("Run() error: %v", err)
	}
}

func TestDryRunCaster(t *testing.T) {
	var buf bytes.Buffer
	c := NewDryRunCaster(&buf)
	_ = c.Stop(context.Background())
	_ = c.CastSite(context.Background(), "http://10.0.0.2/")

	want := "[dry-run] catt stop\n[dry-run] catt cast_site http://10.0.0.2/\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestCattCaster(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true not available")
	}
	if err := NewCattCaster("true").CastSite(context.Background(), "http://10.0.0.2/"); err != nil {
		t.Errorf("CastSite() error: %v", err)
	}
	if err := NewCattCaster("false").Stop(context.Background()); err == nil {
		t.Error("Stop() expected error from failing command")
	}
	if NewCattCaster("").command != "catt" {
		t.Error("default command should be catt")
	}
}

func TestLoadState_Missing(t *testing.T) {
	state, err := LoadState(filepath.Join(t.TempDir(), "none.json"))
	if err != nil {
		t.Fatalf("LoadState() error: %v", err)
	}
	if state.IsCastingTournament {
		t.Error("missing file should load as not casting")
	}
}
