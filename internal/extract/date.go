package extract

import (
	"regexp"
	"strings"
)

// datePattern matches YYYY/MM/DD with any slash-like separator.
var datePattern = regexp.MustCompile(`\b\d{4}[/⁄∕／]\d{2}[/⁄∕／]\d{2}\b`)

// dateSeparators maps slash look-alikes to "/".
var dateSeparators = strings.NewReplacer("⁄", "/", "∕", "/", "／", "/")

// extractDate returns the first YYYY/MM/DD date in text, or "" if there is none.
func extractDate(text string) string {
	return dateSeparators.Replace(datePattern.FindString(text))
}

// leadingDate returns the date token text starts with, normalized, and its length.
func leadingDate(text string) (string, int) {
	loc := datePattern.FindStringIndex(text)
	if loc == nil || loc[0] != 0 {
		return "", 0
	}
	return dateSeparators.Replace(text[:loc[1]]), loc[1]
}
