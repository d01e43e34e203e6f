package display

import (
	"encoding/json"
	"fmt"
)

// NoTournamentName is the tournament_name written when nothing is selected.
const NoTournamentName = "No tournaments to display"

// LastUpdatedLayout formats last_updated in venue-local time.
const LastUpdatedLayout = "2006-01-02 15:04:05"

// PersistedState is the JSON record written for the display page and casting agent.
// Pointer fields are written as null when absent.
type PersistedState struct {
	TournamentName    string  `json:"tournament_name"`
	TournamentURL     *string `json:"tournament_url"`
	Venue             *string `json:"venue"`
	Date              *string `json:"date"`
	StartTime         *string `json:"start_time"`
	Status            *string `json:"status"`
	PayoutData        *string `json:"payout_data"`
	LastUpdated       string  `json:"last_updated"`
	DisplayTournament bool    `json:"display_tournament"`
}

// IsSentinel reports whether this is the "nothing to display" record.
func (s *PersistedState) IsSentinel() bool {
	return s.TournamentName == NoTournamentName
}

// Encode renders the state as indented JSON with a trailing newline.
func (s *PersistedState) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding state: %w", err)
	}
	return append(data, '\n'), nil
}

// Decode parses a persisted state document.
func Decode(data []byte) (*PersistedState, error) {
	var s PersistedState
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing state: %w", err)
	}
	if s.TournamentName == "" {
		return nil, fmt.Errorf("parsing state: missing tournament_name")
	}
	return &s, nil
}

// optional returns nil for the empty string.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
