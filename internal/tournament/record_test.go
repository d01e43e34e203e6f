package tournament

import (
	"testing"
	"time"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input string
		want  Status
	}{
		{"In Progress", StatusInProgress},
		{"Upcoming", StatusUpcoming},
		{"Completed", StatusCompleted},
		{"Unknown", StatusUnknown},
		{"in_progress", StatusUnknown},
		{"", StatusUnknown},
	}

	for _, tt := range tests {
		if got := ParseStatus(tt.input); got != tt.want {
			t.Errorf("ParseStatus(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRecord_StartMinutes(t *testing.T) {
	r := Record{Name: "Friday 9-Ball"}
	if got := r.StartMinutes(); got != 0 {
		t.Errorf("StartMinutes() without time = %d, want 0", got)
	}

	r.StartTime = &Clock{Hour: 19, Minute: 0}
	if got := r.StartMinutes(); got != 1140 {
		t.Errorf("StartMinutes() = %d, want 1140", got)
	}
}

func TestRecord_SameTournament(t *testing.T) {
	a := Record{Name: "Friday 9-Ball", Date: "2026/10/16", URL: "https://digitalpool.com/tournaments/20261016-friday-9-ball/"}

	tests := []struct {
		name  string
		other Record
		want  bool
	}{
		{"same url", Record{Name: "renamed", URL: a.URL}, true},
		{"different url", Record{Name: a.Name, Date: a.Date, URL: "https://digitalpool.com/tournaments/x/"}, false},
		{"no url, same name and date", Record{Name: a.Name, Date: a.Date}, true},
		{"no url, different date", Record{Name: a.Name, Date: "2026/10/17"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.SameTournament(tt.other); got != tt.want {
				t.Errorf("SameTournament() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVenueLabel(t *testing.T) {
	if got := VenueLabel("Bankshot Billiards", "Hilliard"); got != "Bankshot Billiards, Hilliard" {
		t.Errorf("VenueLabel() = %q", got)
	}
}

func TestToday(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	// 02:30 UTC on the 18th is still the evening of the 17th in Ohio.
	now := time.Date(2026, 10, 18, 2, 30, 0, 0, time.UTC)
	if got := Today(now, loc); got != "2026/10/17" {
		t.Errorf("Today() = %q, want 2026/10/17", got)
	}
	if got := Today(now, time.UTC); got != "2026/10/18" {
		t.Errorf("Today(UTC) = %q, want 2026/10/18", got)
	}
}

func TestCompareDates(t *testing.T) {
	tests := []struct {
		a, b   string
		want   int
		wantOK bool
	}{
		{"2026/10/16", "2026/10/17", -1, true},
		{"2026/10/17", "2026/10/17", 0, true},
		{"2026/10/18", "2026/10/17", 1, true},
		{"", "2026/10/17", 0, false},
		{"2026/13/45", "2026/10/17", 0, false},
	}

	for _, tt := range tests {
		got, ok := CompareDates(tt.a, tt.b)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("CompareDates(%q, %q) = %d, %v, want %d, %v", tt.a, tt.b, got, ok, tt.want, tt.wantOK)
		}
	}
}
