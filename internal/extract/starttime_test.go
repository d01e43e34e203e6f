package extract

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTimeCandidates_WindowCountsCharacters(t *testing.T) {
	text := "Registration " + strings.Repeat("é", 30) + " 6:00 PM"

	candidates := timeCandidates(text)
	if len(candidates) != 1 {
		t.Fatalf("timeCandidates() returned %d candidates, want 1", len(candidates))
	}
	c := candidates[0]
	if !utf8.ValidString(c.window) {
		t.Errorf("window %q is not valid UTF-8", c.window)
	}
	if !c.excluded() {
		t.Errorf("excluded() = false for window %q, want true", c.window)
	}
}

func TestTimeCandidates_WindowNeverSplitsRunes(t *testing.T) {
	for n := 0; n < 4; n++ {
		text := strings.Repeat("x", n) + strings.Repeat("ñ", 60) + " 7 PM " + strings.Repeat("ü", 60)
		for _, c := range timeCandidates(text) {
			if !utf8.ValidString(c.window) {
				t.Errorf("offset %d: window %q is not valid UTF-8", n, c.window)
			}
		}
	}
}
