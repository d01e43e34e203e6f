// Package cli implements the command-line interface for tournament-monitor.
//
// The cli package provides the Cobra-based commands: run (one poll cycle), watch
// (poll until interrupted), parse (offline extraction over a saved page) and cast
// (the Chromecast agent). Output can be text or JSON, and verbose listings can be
// sorted by page order, date, start time or name. run and parse exit 0 when a
// tournament is displayable and 2 when nothing is.
package cli
