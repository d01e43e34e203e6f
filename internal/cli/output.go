package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pfrederiksen/tournament-monitor/internal/display"
	"github.com/pfrederiksen/tournament-monitor/internal/engine"
	"github.com/pfrederiksen/tournament-monitor/internal/tournament"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult contains data to be output
type OutputResult struct {
	CheckedAt  time.Time              `json:"checked_at"`
	State      display.PersistedState `json:"state"`
	Reason     string                 `json:"reason"`
	Continued  string                 `json:"continued,omitempty"`
	Records    []tournament.Record    `json:"records"`
	Candidates int                    `json:"candidate_count"`
}

// newOutputResult summarizes an engine result.
func newOutputResult(res engine.Result, checkedAt time.Time, order SortOrder) *OutputResult {
	records := append([]tournament.Record(nil), res.Records...)
	sortRecords(records, order)

	out := &OutputResult{
		CheckedAt:  checkedAt,
		State:      res.State,
		Reason:     string(res.Outcome.Reason),
		Records:    records,
		Candidates: len(res.Candidates),
	}
	if res.Continuation != nil {
		out.Continued = res.Continuation.Name
	}
	return out
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	s := result.State
	if s.IsSentinel() {
		fmt.Fprintln(w, "No tournaments to display.")
	} else {
		fmt.Fprintf(w, "Tournament: %s\n", s.TournamentName)
		fmt.Fprintf(w, "  Date:    %s\n", valueOr(s.Date, "-"))
		fmt.Fprintf(w, "  Start:   %s\n", valueOr(s.StartTime, "-"))
		fmt.Fprintf(w, "  Status:  %s\n", valueOr(s.Status, "-"))
		fmt.Fprintf(w, "  URL:     %s\n", valueOr(s.TournamentURL, "-"))
		fmt.Fprintf(w, "  Payouts: %s\n", valueOr(s.PayoutData, "-"))
		fmt.Fprintf(w, "  Display: %s\n", yesNo(s.DisplayTournament))
	}
	if result.Continued != "" {
		fmt.Fprintf(w, "Checked overnight continuation of %q\n", result.Continued)
	}

	if verbose {
		fmt.Fprintf(w, "\nSelection: %s (%d candidates)\n", result.Reason, result.Candidates)
		if len(result.Records) == 0 {
			fmt.Fprintln(w, "No venue tournaments on the page.")
		}
		for _, rec := range result.Records {
			fmt.Fprintf(w, "  %s  %-8s  %-11s  %s\n", orDash(rec.Date), orDash(rec.StartTimeRaw), rec.Status, rec.Name)
			if rec.URL != "" {
				fmt.Fprintf(w, "       %s\n", rec.URL)
			}
		}
	}

	fmt.Fprintf(w, "\nUpdated: %s\n", s.LastUpdated)
	return nil
}

func valueOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
