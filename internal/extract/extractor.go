package extract

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/pfrederiksen/tournament-monitor/internal/logger"
	"github.com/pfrederiksen/tournament-monitor/internal/tournament"
)

// Venue identifies the one venue whose tournaments are extracted.
type Venue struct {
	Name string
	City string
}

// Label returns "Name, City".
func (v Venue) Label() string {
	return tournament.VenueLabel(v.Name, v.City)
}

// Extractor builds tournament records from cards for a single venue.
type Extractor struct {
	venue          Venue
	baseURL        string
	tournamentPath string
	loc            *time.Location
	log            *logger.Logger
}

// New creates an Extractor. baseURL is the absolute tournament listing base
// (e.g. "https://digitalpool.com/tournaments/"); its path is the segment a
// card link must contain to be trusted as a detail link. loc is the venue's
// time zone, used to decide what "today" is.
func New(venue Venue, baseURL string, loc *time.Location, log *logger.Logger) (*Extractor, error) {
	if venue.Name == "" || venue.City == "" {
		return nil, fmt.Errorf("venue name and city are required")
	}
	u, err := url.Parse(baseURL)
	if err != nil || !u.IsAbs() {
		return nil, fmt.Errorf("invalid tournament base URL %q", baseURL)
	}
	if loc == nil {
		loc = time.Local
	}
	path := strings.TrimSuffix(u.Path, "/") + "/"
	return &Extractor{
		venue:          venue,
		baseURL:        baseURL,
		tournamentPath: path,
		loc:            loc,
		log:            log,
	}, nil
}

// Venue returns the configured venue.
func (e *Extractor) Venue() Venue {
	return e.venue
}

// Matches reports whether the card text names both the venue and its city.
// Both checks are plain, case-sensitive substring tests.
func (e *Extractor) Matches(card Card) bool {
	text := card.Text()
	return strings.Contains(text, e.venue.Name) && strings.Contains(text, e.venue.City)
}

// Extract builds a record from one card. ok is false when the card is not for
// the configured venue. now is recorded as the discovery time and decides
// "today" in the venue's time zone.
func (e *Extractor) Extract(card Card, now time.Time) (rec tournament.Record, ok bool) {
	if !e.Matches(card) {
		return tournament.Record{}, false
	}

	text := card.Text()
	in := input{
		card:  card,
		text:  text,
		venue: e.venue,
		date:  extractDate(text),
		today: tournament.Today(now, e.loc),
	}

	name, nameBy, found := firstMatch(nameStrategies, in)
	if !found {
		name, nameBy = placeholderName(e.venue), "placeholder"
	}
	in.name = name

	rec = tournament.Record{
		Name:         name,
		Venue:        e.venue.Label(),
		Date:         in.date,
		Status:       tournament.StatusUnknown,
		DiscoveredAt: now,
	}

	startRaw, startBy, _ := firstMatch(startTimeStrategies, in)
	if startRaw != "" {
		rec.StartTimeRaw = startRaw
		if c, ok := tournament.ParseClock(startRaw); ok {
			rec.StartTime = &c
		}
	}

	status, statusBy, found := firstMatch(statusStrategies, in)
	if found {
		rec.Status = status
	}

	rec.URL, _, _ = firstMatch(e.urlStrategies(), in)

	e.log.Debug("Extracted tournament", logger.Fields{
		"name":       rec.Name,
		"name_by":    nameBy,
		"date":       rec.Date,
		"start_time": rec.StartTimeRaw,
		"start_by":   startBy,
		"status":     string(rec.Status),
		"status_by":  statusBy,
		"url":        rec.URL,
	})

	return rec, true
}

// ExtractAll runs Extract over every card, keeping cards for the venue in page order.
func (e *Extractor) ExtractAll(cards []Card, now time.Time) []tournament.Record {
	records := make([]tournament.Record, 0, len(cards))
	for _, card := range cards {
		if rec, ok := e.Extract(card, now); ok {
			records = append(records, rec)
		}
	}
	return records
}
