package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/tournament-monitor/internal/cast"
	"github.com/pfrederiksen/tournament-monitor/internal/display"
	"github.com/pfrederiksen/tournament-monitor/internal/logger"
	"github.com/pfrederiksen/tournament-monitor/internal/monitor"
	"github.com/pfrederiksen/tournament-monitor/internal/scraper"
	"github.com/pfrederiksen/tournament-monitor/internal/storage"
)

const (
	ExitSuccess      = 0
	ExitError        = 1
	ExitNoTournament = 2
)

// atLayout is the --at clock format, read in the venue time zone.
const atLayout = "2006-01-02 15:04"

var (
	flagConfigFile string
	flagEnvFile    string
	flagSource     string
	flagFormat     string
	flagSort       string
	flagVerbose    bool
	flagAt         string
	flagPrevious   string
	flagDryRun     bool
	flagOnce       bool
)

// exitError carries a process exit code through cobra.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tournament-monitor",
		Short: "Pick the pool tournament to show on the venue display",
		Long: `Finds today's tournaments for one venue on the DigitalPool listing, picks the
one to show on the venue's display and writes it to the display's JSON file.
A companion cast agent switches a Chromecast to the display page while a
tournament is running.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flagConfigFile, "config", "", "Config file (YAML, JSON or TOML)")
	pf.StringVar(&flagEnvFile, "env-file", ".env", "Environment file loaded before TOURNEY_* variables")
	pf.String("log-level", "", "Log level: debug, info, warn, error (default info)")
	pf.String("log-file", "", "Also append logs to this file")
	pf.String("venue", "", "Venue name as printed on the listing (default \"Bankshot Billiards\")")
	pf.String("city", "", "Venue city (default \"Hilliard\")")
	pf.String("timezone", "", "Venue time zone (default \"America/New_York\")")
	pf.String("policy", "", "Display policy: in-progress or in-progress-or-upcoming (default in-progress)")
	pf.StringSlice("output", nil, "State file paths (default /home/pi/tournament_data.json,/var/www/html/tournament_data.json)")
	pf.String("redis-url", "", "Also store the state in Redis (redis://host:port/db)")

	cmd.AddCommand(newRunCmd(), newWatchCmd(), newParseCmd(), newCastCmd())
	return cmd
}

func addSourceFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&flagSource, "source", "browser", "Card source: browser or http")
	f.String("source-url", "", "Tournament listing URL")
	f.String("query", "", "Search text (default venue name)")
	f.Bool("headless", true, "Run Chrome headless")
	f.String("chrome-path", "", "Chrome executable")
}

func addOutputFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&flagFormat, "format", "text", "Output format: text or json")
	f.StringVar(&flagSort, "sort", "page", "Record order in verbose output: page, date, start or name")
	f.BoolVarP(&flagVerbose, "verbose", "v", false, "List every venue tournament found")
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one poll cycle and write the display state",
		Long: `Runs one poll cycle. Exits 0 when a tournament is displayable, 2 when the
cycle succeeded but nothing is displayable, and 1 on errors.`,
		Args: cobra.NoArgs,
		RunE: runOnce,
	}
	addSourceFlags(cmd)
	addOutputFlags(cmd)
	return cmd
}

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run poll cycles until interrupted",
		Args:  cobra.NoArgs,
		RunE:  runWatch,
	}
	addSourceFlags(cmd)
	cmd.Flags().Duration("interval", 0, "Time between cycles (default 1m)")
	return cmd
}

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Run extraction and selection on a saved listing page",
		Long: `Parses a saved HTML listing page and prints the state a poll cycle would
write, without a browser and without writing anything.`,
		Args: cobra.ExactArgs(1),
		RunE: runParse,
	}
	addOutputFlags(cmd)
	cmd.Flags().StringVar(&flagAt, "at", "", "Evaluate as of this venue-local time ("+atLayout+")")
	cmd.Flags().StringVar(&flagPrevious, "previous", "", "Previous state file for the overnight continuation check")
	cmd.Flags().String("source-url", "", "URL the page was saved from, for relative links")
	return cmd
}

func newCastCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cast",
		Short: "Cast the display page while a tournament is displayable",
		Args:  cobra.NoArgs,
		RunE:  runCast,
	}
	f := cmd.Flags()
	f.BoolVar(&flagDryRun, "dry-run", false, "Print catt commands instead of running them")
	f.BoolVar(&flagOnce, "once", false, "Check once and exit")
	f.String("cast-command", "", "catt executable (default catt)")
	f.String("cast-state", "", "Cast state file (default /var/www/html/cast_state.json)")
	f.String("site-url", "", "Page to cast (default http://<local IP>/)")
	f.Duration("cast-interval", 0, "Time between checks (default 30s)")
	return cmd
}

func parseFormat() (OutputFormat, SortOrder, error) {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return "", "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}
	order, err := ParseSortOrder(flagSort)
	if err != nil {
		return "", "", err
	}
	return format, order, nil
}

// newMonitor wires a Monitor from configuration.
func newMonitor(a *app) (*monitor.Monitor, error) {
	eng, err := a.engine()
	if err != nil {
		return nil, err
	}
	src, err := a.source(flagSource)
	if err != nil {
		return nil, err
	}
	sinks, err := a.sinks()
	if err != nil {
		return nil, err
	}
	return monitor.New(src, eng,
		storage.NewReader(a.log, sinks...),
		storage.NewWriter(a.log, sinks...),
		a.cfg.Source.Query, a.log), nil
}

// exitFor maps a persisted state to the run exit code.
func exitFor(state display.PersistedState) error {
	if state.DisplayTournament {
		return nil
	}
	return &exitError{code: ExitNoTournament}
}

func runOnce(cmd *cobra.Command, _ []string) error {
	format, order, err := parseFormat()
	if err != nil {
		return err
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	m, err := newMonitor(a)
	if err != nil {
		return err
	}

	res, err := m.Cycle(cmd.Context())
	if err != nil {
		return err
	}

	if err := WriteOutput(cmd.OutOrStdout(), newOutputResult(res, time.Now().UTC(), order), format, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return exitFor(res.State)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	m, err := newMonitor(a)
	if err != nil {
		return err
	}
	return m.Watch(cmd.Context(), a.cfg.Poll.Interval)
}

func runParse(cmd *cobra.Command, args []string) error {
	format, order, err := parseFormat()
	if err != nil {
		return err
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	now := time.Now()
	if flagAt != "" {
		now, err = time.ParseInLocation(atLayout, flagAt, a.cfg.Location())
		if err != nil {
			return fmt.Errorf("invalid --at: %w", err)
		}
	}

	var previous *display.PersistedState
	if flagPrevious != "" {
		sink, err := storage.NewFileSink(flagPrevious)
		if err != nil {
			return err
		}
		previous, err = sink.Load(cmd.Context())
		if err != nil && !errors.Is(err, storage.ErrNoState) {
			return fmt.Errorf("loading previous state: %w", err)
		}
	}

	cards, err := scraper.NewFileSource(args[0], a.cfg.Source.URL, a.cfg.Source.CardSelector).Cards(cmd.Context(), "")
	if err != nil {
		return err
	}

	eng, err := a.engine()
	if err != nil {
		return err
	}
	res := eng.ExtractAndSelect(cards, now, previous)

	if err := WriteOutput(cmd.OutOrStdout(), newOutputResult(res, now.UTC(), order), format, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return exitFor(res.State)
}

func runCast(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	sinks, err := a.sinks()
	if err != nil {
		return err
	}

	var caster cast.Caster = cast.NewCattCaster(a.cfg.Cast.Command)
	if flagDryRun {
		caster = cast.NewDryRunCaster(cmd.OutOrStdout())
	}

	agent := cast.NewAgent(caster, storage.NewReader(a.log, sinks...), a.cfg.Cast.StateFile, a.cfg.Cast.SiteURL,
		a.log.With(logger.Fields{"component": "cast"}))
	if flagOnce {
		return agent.Step(cmd.Context())
	}
	return agent.Run(cmd.Context(), a.cfg.Cast.Interval)
}

// Run executes the CLI with args and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			return exit.code
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitError
	}
	return ExitSuccess
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
