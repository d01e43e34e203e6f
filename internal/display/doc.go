// Package display maps a selection outcome to the record the casting agent reads.
//
// The persisted record has a fixed JSON shape shared with the display page and
// the casting agent. Whether a selected tournament is flagged for display is
// decided by a named Policy so the eligibility rule can be swapped through
// configuration.
package display
