package cast

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// State is what the agent remembers between polls.
type State struct {
	IsCastingTournament bool    `json:"is_casting_tournament"`
	LastTournamentURL   *string `json:"last_tournament_url"`
	LastStatus          *string `json:"last_status"`
	CastStartedAt       *string `json:"cast_started_at"`
}

// LoadState reads the state file. A missing file is the zero State.
func LoadState(path string) (State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return State{}, nil
		}
		return State{}, fmt.Errorf("reading cast state: %w", err)
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return State{}, fmt.Errorf("parsing cast state: %w", err)
	}
	return s, nil
}

// SaveState writes the state file.
func SaveState(path string, s State) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding cast state: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing cast state: %w", err)
	}
	return nil
}
