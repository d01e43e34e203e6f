package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// timeToken matches "7:00 PM", "7PM", "7 p.m." and similar.
const timeToken = `\d{1,2}(?::\d{2})?\s*[ap]\.?\s?m\b\.?`

// contextWindow is how many characters on each side of a time are inspected
// when deciding whether it is a check-in time.
const contextWindow = 50

var anyTime = regexp.MustCompile(`(?i)\b` + timeToken)

// excludedTerms mark times that belong to registration rather than play.
var excludedTerms = []string{
	"registration",
	"check-in",
	"check in",
	"checkin",
	"sign-in",
	"sign in",
	"signin",
	"doors",
	"door open",
	"door-open",
	"door:",
}

// labelled builds a strategy for a start-time label followed by an optional
// colon and a time.
func labelled(name, label string) strategy[string] {
	re := regexp.MustCompile(`(?i)` + label + `\s*:?\s*(` + timeToken + `)`)
	return strategy[string]{
		name: name,
		try: func(in input) (string, bool) {
			m := re.FindStringSubmatch(in.text)
			if m == nil {
				return "", false
			}
			return strings.TrimSpace(m[1]), true
		},
	}
}

// startTimeStrategies run in priority order. Labelled phrases win outright;
// otherwise the last time outside a check-in context is used, and failing
// that the last time on the card at all.
var startTimeStrategies = []strategy[string]{
	labelled("tournament-start", `\btournament\s+start(?:s|ing)?(?:\s+time)?(?:\s+at)?`),
	labelled("play-start", `\bplay\s+starts?(?:\s+at)?`),
	labelled("start-time", `\bstart\s+time`),
	labelled("begins", `\bbegins?(?:\s+at)?`),
	{name: "last-unexcluded", try: lastUnexcludedTime},
	{name: "last-any", try: lastAnyTime},
}

type timeCandidate struct {
	raw    string
	window string
}

// timeCandidates collects every time token with the surrounding text.
func timeCandidates(text string) []timeCandidate {
	locs := anyTime.FindAllStringIndex(text, -1)
	out := make([]timeCandidate, 0, len(locs))
	for _, loc := range locs {
		from := backRunes(text, loc[0], contextWindow)
		to := forwardRunes(text, loc[1], contextWindow)
		out = append(out, timeCandidate{
			raw:    strings.TrimSpace(text[loc[0]:loc[1]]),
			window: strings.ToLower(text[from:to]),
		})
	}
	return out
}

// backRunes steps n runes back from byte offset i.
func backRunes(s string, i, n int) int {
	for ; n > 0 && i > 0; n-- {
		_, size := utf8.DecodeLastRuneInString(s[:i])
		i -= size
	}
	return i
}

// forwardRunes steps n runes forward from byte offset i.
func forwardRunes(s string, i, n int) int {
	for ; n > 0 && i < len(s); n-- {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return i
}

func (c timeCandidate) excluded() bool {
	for _, term := range excludedTerms {
		if strings.Contains(c.window, term) {
			return true
		}
	}
	return false
}

func lastUnexcludedTime(in input) (string, bool) {
	candidates := timeCandidates(in.text)
	for i := len(candidates) - 1; i >= 0; i-- {
		if !candidates[i].excluded() {
			return candidates[i].raw, true
		}
	}
	return "", false
}

func lastAnyTime(in input) (string, bool) {
	candidates := timeCandidates(in.text)
	if len(candidates) == 0 {
		return "", false
	}
	return candidates[len(candidates)-1].raw, true
}
