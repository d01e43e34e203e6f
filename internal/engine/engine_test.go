package engine

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pfrederiksen/tournament-monitor/internal/display"
	"github.com/pfrederiksen/tournament-monitor/internal/extract"
	"github.com/pfrederiksen/tournament-monitor/internal/selector"
)

var evening = time.Date(2026, 10, 17, 20, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T, policy display.Policy) *Engine {
	t.Helper()
	ex, err := extract.New(extract.Venue{Name: "Bankshot Billiards", City: "Hilliard"},
		"https://digitalpool.com/tournaments/", time.UTC, nil)
	if err != nil {
		t.Fatalf("extract.New() error: %v", err)
	}
	e, err := New(ex, display.NewBuilder(policy, display.DefaultPayouts, time.UTC), time.UTC, nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return e
}

func card(lines ...string) extract.Card {
	return extract.Card{Lines: lines}
}

func strPtr(s string) *string { return &s }

func todaysCards() []extract.Card {
	return []extract.Card{
		card("Friday Night 9-Ball", "Bankshot Billiards", "Hilliard, OH", "2026/10/17", "Start Time: 7:00 PM", "In Progress"),
		card("Late Night 8-Ball", "Bankshot Billiards", "Hilliard, OH", "2026/10/17", "Start Time: 10:00 PM", "Upcoming"),
		card("Dayton Open", "Other Hall", "Dayton, OH", "2026/10/17", "Start Time: 6:00 PM", "In Progress"),
		card("Thursday 9-Ball", "Bankshot Billiards", "Hilliard, OH", "2026/10/16", "Start Time: 7:00 PM", "Completed"),
	}
}

func TestNew_RequiresCollaborators(t *testing.T) {
	if _, err := New(nil, nil, time.UTC, nil); err == nil {
		t.Error("New() expected error, got nil")
	}
}

func TestExtractAndSelect_PicksInProgress(t *testing.T) {
	e := newTestEngine(t, display.InProgressOnly)

	res := e.ExtractAndSelect(todaysCards(), evening, nil)

	if len(res.Records) != 3 {
		t.Errorf("Records = %d, want 3", len(res.Records))
	}
	if len(res.Candidates) != 2 {
		t.Errorf("Candidates = %d, want 2", len(res.Candidates))
	}
	if res.Outcome.Reason != selector.ReasonOnlyInProgress {
		t.Errorf("Reason = %q, want %q", res.Outcome.Reason, selector.ReasonOnlyInProgress)
	}

	want := display.PersistedState{
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
	if diff := cmp.Diff(want, res.State); diff != "" {
		t.Errorf("State mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractAndSelect_Policy(t *testing.T) {
	cards := []extract.Card{
		card("Late Night 8-Ball", "Bankshot Billiards", "Hilliard, OH", "2026/10/17", "Start Time: 10:00 PM", "Upcoming"),
	}

	tests := []struct {
		name   string
		policy display.Policy
		want   bool
	}{
		{"in progress only", display.InProgressOnly, false},
		{"in progress or upcoming", display.InProgressOrUpcoming, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := newTestEngine(t, tt.policy).ExtractAndSelect(cards, evening, nil)
			if res.State.TournamentName != "Late Night 8-Ball" {
				t.Fatalf("TournamentName = %q", res.State.TournamentName)
			}
			if res.State.DisplayTournament != tt.want {
				t.Errorf("DisplayTournament = %v, want %v", res.State.DisplayTournament, tt.want)
			}
			if got := *res.State.PayoutData; got != "payouts20.json" {
				t.Errorf("PayoutData = %q, want payouts20.json", got)
			}
		})
	}
}

func TestExtractAndSelect_NothingToday(t *testing.T) {
	e := newTestEngine(t, display.InProgressOnly)
	cards := []extract.Card{
		card("Thursday 9-Ball", "Bankshot Billiards", "Hilliard, OH", "2026/10/16", "Completed"),
		card("No date here", "Bankshot Billiards", "Hilliard, OH", "In Progress"),
	}

	res := e.ExtractAndSelect(cards, evening, nil)

	if !res.Outcome.None() {
		t.Fatalf("expected no selection, got %+v", res.Outcome.Selected)
	}
	if !res.State.IsSentinel() || res.State.DisplayTournament {
		t.Errorf("State = %+v, want sentinel", res.State)
	}
	if res.State.TournamentURL != nil || res.State.Status != nil {
		t.Error("sentinel state should leave optional fields null")
	}
}

func TestExtractAndSelect_Continuation(t *testing.T) {
	afterMidnight := time.Date(2026, 10, 18, 0, 30, 0, 0, time.UTC)
	prev := &display.PersistedState{
		TournamentName:    "Friday Night 9-Ball",
		TournamentURL:     strPtr("https://digitalpool.com/tournaments/20261017-friday-night-9-ball/"),
		Date:              strPtr("2026/10/17"),
		Status:            strPtr("In Progress"),
		LastUpdated:       "2026-10-17 23:59:00",
		DisplayTournament: true,
	}

	t.Run("still reported in progress", func(t *testing.T) {
		e := newTestEngine(t, display.InProgressOnly)
		res := e.ExtractAndSelect(todaysCards(), afterMidnight, prev)

		if res.Continuation == nil {
			t.Fatal("Continuation = nil, want prior tournament")
		}
		if res.State.TournamentName != "Friday Night 9-Ball" || !res.State.DisplayTournament {
			t.Errorf("State = %+v, want continued tournament displayed", res.State)
		}
		if got := res.State.LastUpdated; got != "2026-10-18 00:30:00" {
			t.Errorf("LastUpdated = %q", got)
		}
	})

	t.Run("absent from source", func(t *testing.T) {
		e := newTestEngine(t, display.InProgressOnly)
		cards := []extract.Card{
			card("Thursday 9-Ball", "Bankshot Billiards", "Hilliard, OH", "2026/10/16", "Completed"),
		}
		res := e.ExtractAndSelect(cards, afterMidnight, prev)

		if res.Continuation == nil {
			t.Fatal("Continuation = nil, want prior tournament")
		}
		if !res.State.IsSentinel() {
			t.Errorf("State = %+v, want sentinel", res.State)
		}
	})

	t.Run("same day is not a continuation", func(t *testing.T) {
		e := newTestEngine(t, display.InProgressOnly)
		res := e.ExtractAndSelect(todaysCards(), evening, prev)
		if res.Continuation != nil {
			t.Errorf("Continuation = %+v, want nil", res.Continuation)
		}
	})
}

func TestExtractAndSelect_Idempotent(t *testing.T) {
	e := newTestEngine(t, display.InProgressOnly)

	first := e.ExtractAndSelect(todaysCards(), evening, nil).State
	second := e.ExtractAndSelect(todaysCards(), evening.Add(90*time.Second), &first).State

	if first.LastUpdated == second.LastUpdated {
		t.Fatal("LastUpdated should track the clock")
	}
	first.LastUpdated, second.LastUpdated = "", ""

	a, err := first.Encode()
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	b, err := second.Encode()
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Errorf("repeated cycles differ:\n%s\n---\n%s", a, b)
	}
}

func TestExtractAndSelect_DropsRepeatedListings(t *testing.T) {
	e := newTestEngine(t, display.InProgressOnly)
	cards := append(todaysCards(), todaysCards()[0])

	res := e.ExtractAndSelect(cards, evening, nil)
	if len(res.Records) != 3 {
		t.Errorf("Records = %d, want 3 after dropping the repeat", len(res.Records))
	}
	if res.Outcome.Reason != selector.ReasonOnlyInProgress {
		t.Errorf("Reason = %q, want %q", res.Outcome.Reason, selector.ReasonOnlyInProgress)
	}
}
