package extract

import (
	"regexp"
	"strconv"

	"github.com/pfrederiksen/tournament-monitor/internal/tournament"
)

// statusKeywords are checked in order; the first category with any hit wins.
var statusKeywords = []struct {
	status  tournament.Status
	pattern *regexp.Regexp
}{
	{tournament.StatusInProgress, regexp.MustCompile(`\b(?:In Progress|Live|Active|Playing)\b`)},
	{tournament.StatusUpcoming, regexp.MustCompile(`\b(?:Upcoming|Scheduled|Future)\b`)},
	{tournament.StatusCompleted, regexp.MustCompile(`\b(?:Completed|Finished|Final|Ended)\b`)},
}

var percentComplete = regexp.MustCompile(`(?i)\b(\d{1,3})\s*%\s*complete\b`)

var statusStrategies = []strategy[tournament.Status]{
	{name: "keyword", try: statusFromKeywords},
	{name: "percent-complete", try: statusFromPercent},
	{name: "date", try: statusFromDate},
}

func statusFromKeywords(in input) (tournament.Status, bool) {
	for _, kw := range statusKeywords {
		if kw.pattern.MatchString(in.text) {
			return kw.status, true
		}
	}
	return "", false
}

func statusFromPercent(in input) (tournament.Status, bool) {
	m := percentComplete.FindStringSubmatch(in.text)
	if m == nil {
		return "", false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n > 100 {
		return "", false
	}
	switch n {
	case 100:
		return tournament.StatusCompleted, true
	case 0:
		return tournament.StatusUpcoming, true
	}
	return tournament.StatusInProgress, true
}

// statusFromDate compares the card date with today at the venue. Future or
// unreadable dates do not match, leaving the status Unknown.
func statusFromDate(in input) (tournament.Status, bool) {
	cmp, ok := tournament.CompareDates(in.date, in.today)
	if !ok {
		return "", false
	}
	switch {
	case cmp == 0:
		return tournament.StatusUpcoming, true
	case cmp < 0:
		return tournament.StatusCompleted, true
	}
	return "", false
}
