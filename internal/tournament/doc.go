// Package tournament provides the tournament record extracted from a listing card.
//
// A Record is an immutable value describing one tournament at the configured venue:
// its name, calendar date, posted start time, lifecycle status and detail-page URL.
// Fields the source page did not provide are left at their zero value (or nil for
// the normalized start time) rather than reported as errors.
package tournament
