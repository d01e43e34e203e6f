package extract

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const minNameLength = 5

// boilerplatePrefixes are page chrome lines that are never tournament names.
var boilerplatePrefixes = []string{
	"showing tournaments",
	"search results",
	"load more",
	"no tournaments found",
	"view tournament",
}

// progressLine matches lines that only carry status or progress text.
var progressLine = regexp.MustCompile(`(?i)^(?:in progress|upcoming|completed|scheduled|finished|\d{1,3}\s*%\s*complete)$`)

var nameStrategies = []strategy[string]{
	{name: "nested-title", try: nameFromTitle},
	{name: "name-field", try: nameFromField},
	{name: "first-line", try: nameFromLines},
}

func nameFromTitle(in input) (string, bool) {
	title := strings.TrimSpace(in.card.Title)
	if title == "" || strings.Contains(title, in.venue.Name) {
		return "", false
	}
	return title, true
}

func nameFromField(in input) (string, bool) {
	name := strings.TrimSpace(in.card.NameField)
	return name, name != ""
}

func nameFromLines(in input) (string, bool) {
	for _, line := range in.card.Lines {
		line = strings.TrimSpace(line)
		if utf8.RuneCountInString(line) <= minNameLength {
			continue
		}
		if strings.Contains(line, in.venue.Name) || strings.Contains(line, in.venue.City) {
			continue
		}
		if d, _ := leadingDate(line); d != "" {
			continue
		}
		if isBoilerplate(line) {
			continue
		}
		return line, true
	}
	return "", false
}

func isBoilerplate(line string) bool {
	lower := strings.ToLower(line)
	for _, prefix := range boilerplatePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return progressLine.MatchString(line)
}

// placeholderName is used when no strategy finds a name.
func placeholderName(venue Venue) string {
	return fmt.Sprintf("Tournament at %s", venue.Name)
}
