package display

import (
	"strings"
	"time"

	"github.com/pfrederiksen/tournament-monitor/internal/tournament"
)

// Payouts names the payout datasets the display page loads.
type Payouts struct {
	Default   string // 15 paid places
	EightBall string // 20 paid places, used for 8-ball events
}

// DefaultPayouts are the dataset file names served next to the display page.
var DefaultPayouts = Payouts{
	Default:   "payouts15.json",
	EightBall: "payouts20.json",
}

// PayoutData picks the payout dataset for a tournament name.
func (p Payouts) PayoutData(name string) string {
	if strings.Contains(strings.ToLower(name), "8-ball") {
		return p.EightBall
	}
	return p.Default
}

// Builder turns a selected record into a PersistedState.
type Builder struct {
	policy  Policy
	payouts Payouts
	loc     *time.Location
}

// NewBuilder creates a Builder. loc is used to format last_updated.
func NewBuilder(policy Policy, payouts Payouts, loc *time.Location) *Builder {
	if loc == nil {
		loc = time.Local
	}
	return &Builder{policy: policy, payouts: payouts, loc: loc}
}

// Policy returns the display policy in use.
func (b *Builder) Policy() Policy {
	return b.policy
}

// Build maps a selected record, or nil for none, to the persisted record.
func (b *Builder) Build(rec *tournament.Record, now time.Time) PersistedState {
	updated := now.In(b.loc).Format(LastUpdatedLayout)

	if rec == nil {
		return PersistedState{
			TournamentName:    NoTournamentName,
			LastUpdated:       updated,
			DisplayTournament: false,
		}
	}

	return PersistedState{
		TournamentName:    rec.Name,
		TournamentURL:     optional(rec.URL),
		Venue:             optional(rec.Venue),
		Date:              optional(rec.Date),
		StartTime:         optional(rec.StartTimeRaw),
		Status:            optional(string(rec.Status)),
		PayoutData:        optional(b.payouts.PayoutData(rec.Name)),
		LastUpdated:       updated,
		DisplayTournament: b.policy.Displayable(rec.Status),
	}
}
