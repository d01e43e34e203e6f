package tournament

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Clock is a time of day with minute precision on a 24-hour clock.
type Clock struct {
	Hour   int
	Minute int
}

// Minutes returns the number of minutes after midnight.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

// String formats the clock as HH:MM.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// MarshalText encodes the clock as HH:MM.
func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes an HH:MM clock.
func (c *Clock) UnmarshalText(text []byte) error {
	t, err := time.Parse("15:04", string(text))
	if err != nil {
		return fmt.Errorf("parsing clock %q: %w", text, err)
	}
	c.Hour, c.Minute = t.Hour(), t.Minute()
	return nil
}

// clockLayouts are tried in order; the first full match wins.
var clockLayouts = []string{
	"3:04 PM",
	"3:04PM",
	"3 PM",
	"3PM",
}

// meridiemPattern matches a trailing meridiem marker with any punctuation,
// e.g. "pm", "P.M.", "p. m".
var meridiemPattern = regexp.MustCompile(`(?i)([ap])\s*\.?\s*m\.?$`)

// zeroHour matches a leading hour of 0 or 00, which a 12-hour clock never shows.
var zeroHour = regexp.MustCompile(`^0{1,2}\D`)

// ParseClock parses loosely formatted clock times such as "7:00 PM", "7:00PM",
// "7 PM", "7PM" or "7:00 p.m.". ok is false for anything else; malformed input
// is expected and never an error.
func ParseClock(s string) (Clock, bool) {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" || zeroHour.MatchString(s) {
		return Clock{}, false
	}
	s = meridiemPattern.ReplaceAllStringFunc(s, func(m string) string {
		return strings.ToUpper(m[:1]) + "M"
	})

	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return Clock{Hour: t.Hour(), Minute: t.Minute()}, true
		}
	}
	return Clock{}, false
}
