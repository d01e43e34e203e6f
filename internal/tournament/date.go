package tournament

import "time"

// DateLayout is the slash-delimited calendar date used on the listing page
// and in the persisted record.
const DateLayout = "2006/01/02"

// FormatDate renders t's calendar date in DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the current calendar date at the venue.
func Today(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return FormatDate(now.In(loc))
}

// ParseDate parses a DateLayout date.
// Returns time.Time{} (zero value) if parsing fails.
func ParseDate(dateText string) time.Time {
	if dateText == "" {
		return time.Time{}
	}
	t, err := time.Parse(DateLayout, dateText)
	if err != nil {
		return time.Time{}
	}
	return t
}

// CompareDates orders two DateLayout dates. ok is false when either date
// cannot be parsed, in which case the order is meaningless.
func CompareDates(a, b string) (cmp int, ok bool) {
	ta, tb := ParseDate(a), ParseDate(b)
	if ta.IsZero() || tb.IsZero() {
		return 0, false
	}
	switch {
	case ta.Before(tb):
		return -1, true
	case ta.After(tb):
		return 1, true
	}
	return 0, true
}
