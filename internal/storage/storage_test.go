package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pfrederiksen/tournament-monitor/internal/display"
)

func strPtr(s string) *string { return &s }

func sampleState() display.PersistedState {
	return display.PersistedState{
		TournamentName:    "Friday Night 9-Ball",
		TournamentURL:     strPtr("https://digitalpool.com/tournaments/20261017-friday-night-9-ball/"),
		Venue:             strPtr("Bankshot Billiards, Hilliard"),
		Date:              strPtr("2026/10/17"),
		StartTime:         strPtr("7:00 PM"),
		Status:            strPtr("In Progress"),
		PayoutData:        strPtr("payouts15.json"),
		LastUpdated:       "2026-10-17 20:00:00",
		DisplayTournament: true,
	}
}

func TestFileSink_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "www", "tournament_data.json")
	sink, err := NewFileSink(path)
	if err != nil {
		t.Fatalf("NewFileSink() error: %v", err)
	}

	if _, err := sink.Load(context.Background()); !errors.Is(err, ErrNoState) {
		t.Fatalf("Load() on missing file = %v, want ErrNoState", err)
	}

	want := sampleState()
	if err := sink.Save(context.Background(), want); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, err := sink.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if diff := cmp.Diff(want, *got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if !strings.HasPrefix(string(data), "{\n  \"tournament_name\"") {
		t.Errorf("file is not two-space indented:\n%s", data)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir() error: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want only the state file", len(entries))
	}
}

func TestFileSink_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	sink, _ := NewFileSink(path)

	_, err := sink.Load(context.Background())
	if err == nil || errors.Is(err, ErrNoState) {
		t.Errorf("Load() = %v, want parse error", err)
	}
}

func TestNewFileSink(t *testing.T) {
	if _, err := NewFileSink(""); err == nil {
		t.Error("NewFileSink(\"\") expected error")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	sink, err := NewFileSink("~/tournament_data.json")
	if err != nil {
		t.Fatalf("NewFileSink() error: %v", err)
	}
	if want := filepath.Join(home, "tournament_data.json"); sink.Name() != want {
		t.Errorf("Name() = %q, want %q", sink.Name(), want)
	}
}

type fakeSink struct {
	name    string
	saveErr error
	state   *display.PersistedState
	loadErr error
	saved   int
}

func (f *fakeSink) Name() string { return f.name }

func (f *fakeSink) Save(_ context.Context, state display.PersistedState) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved++
	f.state = &state
	return nil
}

func (f *fakeSink) Load(_ context.Context) (*display.PersistedState, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.state == nil {
		return nil, ErrNoState
	}
	return f.state, nil
}

func TestWriter_Write(t *testing.T) {
	boom := errors.New("disk full")
	first := &fakeSink{name: "first", saveErr: boom}
	second := &fakeSink{name: "second"}

	w := NewWriter(nil, first, second)
	written, err := w.Write(context.Background(), sampleState())

	if written != 1 {
		t.Errorf("written = %d, want 1", written)
	}
	if !errors.Is(err, boom) {
		t.Errorf("Write() error = %v, want it to wrap %v", err, boom)
	}
	if second.saved != 1 {
		t.Error("a failing sink should not stop later sinks")
	}
	if len(w.Sinks()) != 2 {
		t.Errorf("Sinks() = %d, want 2", len(w.Sinks()))
	}
}

func TestWriter_AllSucceed(t *testing.T) {
	a, b := &fakeSink{name: "a"}, &fakeSink{name: "b"}
	written, err := NewWriter(nil, a, b).Write(context.Background(), sampleState())
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if written != 2 {
		t.Errorf("written = %d, want 2", written)
	}
}

func TestReader_Load(t *testing.T) {
	state := sampleState()
	other := sampleState()
	other.TournamentName = "Late Night 8-Ball"

	tests := []struct {
		name     string
		sinks    []Sink
		wantName string
		wantErr  error
	}{
		{
			name:     "first location wins",
			sinks:    []Sink{&fakeSink{name: "a", state: &state}, &fakeSink{name: "b", state: &other}},
			wantName: "Friday Night 9-Ball",
		},
		{
			name:     "missing first location falls through",
			sinks:    []Sink{&fakeSink{name: "a"}, &fakeSink{name: "b", state: &other}},
			wantName: "Late Night 8-Ball",
		},
		{
			name:     "corrupt first location falls through",
			sinks:    []Sink{&fakeSink{name: "a", loadErr: errors.New("bad json")}, &fakeSink{name: "b", state: &state}},
			wantName: "Friday Night 9-Ball",
		},
		{
			name:    "nothing anywhere",
			sinks:   []Sink{&fakeSink{name: "a"}, &fakeSink{name: "b", loadErr: errors.New("bad json")}},
			wantErr: ErrNoState,
		},
		{
			name:    "no locations",
			wantErr: ErrNoState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewReader(nil, tt.sinks...).Load(context.Background())
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if got.TournamentName != tt.wantName {
				t.Errorf("TournamentName = %q, want %q", got.TournamentName, tt.wantName)
			}
		})
	}
}

func TestRedisSink(t *testing.T) {
	if _, err := NewRedisSink("http://localhost:6379", ""); err == nil {
		t.Error("NewRedisSink() expected error for non-redis scheme")
	}

	sink, err := NewRedisSink("redis://localhost:6379/2", "")
	if err != nil {
		t.Fatalf("NewRedisSink() error: %v", err)
	}
	defer sink.Close()

	if want := "redis:localhost:6379/" + DefaultRedisKey; sink.Name() != want {
		t.Errorf("Name() = %q, want %q", sink.Name(), want)
	}
}

func TestRedisSink_Unreachable(t *testing.T) {
	sink, err := NewRedisSink("redis://127.0.0.1:1/0", "test:state")
	if err != nil {
		t.Fatalf("NewRedisSink() error: %v", err)
	}
	defer sink.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := sink.Save(ctx, sampleState()); err == nil {
		t.Error("Save() expected error for unreachable server")
	}
	if _, err := sink.Load(ctx); err == nil || errors.Is(err, ErrNoState) {
		t.Errorf("Load() = %v, want connection error", err)
	}
}
