package extract

// input is everything a strategy may look at.
type input struct {
	card  Card
	text  string
	venue Venue
	date  string // extracted date, empty when absent
	name  string // resolved name, set before URL strategies run
	today string
}

// strategy is one named extraction attempt.
type strategy[T any] struct {
	name string
	try  func(in input) (T, bool)
}

// firstMatch evaluates strategies in order and stops at the first match.
func firstMatch[T any](strategies []strategy[T], in input) (value T, matched string, ok bool) {
	for _, s := range strategies {
		if v, ok := s.try(in); ok {
			return v, s.name, true
		}
	}
	var zero T
	return zero, "", false
}
