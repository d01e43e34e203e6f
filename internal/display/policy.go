package display

import (
	"fmt"
	"strings"

	"github.com/pfrederiksen/tournament-monitor/internal/tournament"
)

// Policy decides whether a selected tournament is flagged for display.
type Policy struct {
	name        string
	displayable func(tournament.Status) bool
}

var (
	// InProgressOnly displays a tournament only once play has started.
	InProgressOnly = Policy{
		name: "in-progress",
		displayable: func(s tournament.Status) bool {
			return s == tournament.StatusInProgress
		},
	}

	// InProgressOrUpcoming also displays a tournament that is scheduled for today.
	InProgressOrUpcoming = Policy{
		name: "in-progress-or-upcoming",
		displayable: func(s tournament.Status) bool {
			return s == tournament.StatusInProgress || s == tournament.StatusUpcoming
		},
	}
)

var policies = []Policy{InProgressOnly, InProgressOrUpcoming}

// ParsePolicy looks a policy up by name.
func ParsePolicy(name string) (Policy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, p := range policies {
		if p.name == name {
			return p, nil
		}
	}
	return Policy{}, fmt.Errorf("unknown display policy %q (want %s or %s)", name, InProgressOnly.name, InProgressOrUpcoming.name)
}

// Name returns the configuration name of the policy.
func (p Policy) Name() string {
	return p.name
}

// Displayable reports whether a tournament with status s should be shown.
func (p Policy) Displayable(s tournament.Status) bool {
	if p.displayable == nil {
		return false
	}
	return p.displayable(s)
}
