// Package config loads the monitor's settings from an optional config file, a
// .env file, TOURNEY_* environment variables and command line flags, in
// increasing order of precedence.
//
// Keys are dotted ("venue.city"); the matching environment variable upper-cases
// the key and replaces dots with underscores (TOURNEY_VENUE_CITY).
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
	_ "time/tzdata" // venue zones resolve on hosts without a zoneinfo database

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pfrederiksen/tournament-monitor/internal/display"
	"github.com/pfrederiksen/tournament-monitor/internal/logger"
)

const envPrefix = "TOURNEY"

// Config holds all application configuration.
type Config struct {
	Venue      VenueConfig
	Source     SourceConfig
	Tournament TournamentConfig
	Output     OutputConfig
	Display    DisplayConfig
	Payouts    display.Payouts
	Poll       PollConfig
	Cast       CastConfig
	Log        LogConfig

	loc *time.Location
}

type VenueConfig struct {
	Name     string
	City     string
	Timezone string
}

type SourceConfig struct {
	URL          string
	Query        string // search text, defaults to the venue name
	Timeout      time.Duration
	Headless     bool
	ChromePath   string
	UserAgent    string
	CardSelector string
}

type TournamentConfig struct {
	BaseURL string
}

type OutputConfig struct {
	Paths    []string
	RedisURL string
	RedisKey string
}

type DisplayConfig struct {
	Policy string
}

type PollConfig struct {
	Interval time.Duration
}

type CastConfig struct {
	Command   string
	StateFile string
	SiteURL   string // empty means http://<local IP>/
	Interval  time.Duration
}

type LogConfig struct {
	Level string
	File  string
}

// Options says where Load looks.
type Options struct {
	File    string         // config file, optional
	EnvFile string         // .env file, ".env" when empty; a missing file is fine
	Flags   *pflag.FlagSet // flags named in FlagKeys override everything else
}

// FlagKeys maps command line flag names to config keys.
var FlagKeys = map[string]string{
	"log-level":     "log.level",
	"log-file":      "log.file",
	"venue":         "venue.name",
	"city":          "venue.city",
	"timezone":      "venue.timezone",
	"source-url":    "source.url",
	"query":         "source.query",
	"headless":      "source.headless",
	"chrome-path":   "source.chrome_path",
	"policy":        "display.policy",
	"output":        "output.paths",
	"redis-url":     "output.redis_url",
	"interval":      "poll.interval",
	"cast-command":  "cast.command",
	"cast-state":    "cast.state_file",
	"site-url":      "cast.site_url",
	"cast-interval": "cast.interval",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("venue.name", "Bankshot Billiards")
	v.SetDefault("venue.city", "Hilliard")
	v.SetDefault("venue.timezone", "America/New_York")

	v.SetDefault("source.url", "https://www.digitalpool.com/tournaments")
	v.SetDefault("source.query", "")
	v.SetDefault("source.timeout", 90*time.Second)
	v.SetDefault("source.headless", true)
	v.SetDefault("source.chrome_path", "")
	v.SetDefault("source.user_agent", "")
	v.SetDefault("source.card_selector", ".ant-card")

	v.SetDefault("tournament.base_url", "https://digitalpool.com/tournaments/")

	v.SetDefault("output.paths", []string{"/home/pi/tournament_data.json", "/var/www/html/tournament_data.json"})
	v.SetDefault("output.redis_url", "")
	v.SetDefault("output.redis_key", "tournament:display")

	v.SetDefault("display.policy", display.InProgressOnly.Name())

	v.SetDefault("payouts.default", display.DefaultPayouts.Default)
	v.SetDefault("payouts.eight_ball", display.DefaultPayouts.EightBall)

	v.SetDefault("poll.interval", 60*time.Second)

	v.SetDefault("cast.command", "catt")
	v.SetDefault("cast.state_file", "/var/www/html/cast_state.json")
	v.SetDefault("cast.site_url", "")
	v.SetDefault("cast.interval", 30*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

// Load reads and validates the configuration.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.File != "" {
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	if opts.Flags != nil {
		for name, key := range FlagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag --%s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{
		Venue: VenueConfig{
			Name:     strings.TrimSpace(v.GetString("venue.name")),
			City:     strings.TrimSpace(v.GetString("venue.city")),
			Timezone: v.GetString("venue.timezone"),
		},
		Source: SourceConfig{
			URL:          v.GetString("source.url"),
			Query:        strings.TrimSpace(v.GetString("source.query")),
			Timeout:      v.GetDuration("source.timeout"),
			Headless:     v.GetBool("source.headless"),
			ChromePath:   v.GetString("source.chrome_path"),
			UserAgent:    v.GetString("source.user_agent"),
			CardSelector: v.GetString("source.card_selector"),
		},
		Tournament: TournamentConfig{
			BaseURL: v.GetString("tournament.base_url"),
		},
		Output: OutputConfig{
			Paths:    stringList(v, "output.paths"),
			RedisURL: v.GetString("output.redis_url"),
			RedisKey: v.GetString("output.redis_key"),
		},
		Display: DisplayConfig{
			Policy: v.GetString("display.policy"),
		},
		Payouts: display.Payouts{
			Default:   v.GetString("payouts.default"),
			EightBall: v.GetString("payouts.eight_ball"),
		},
		Poll: PollConfig{
			Interval: v.GetDuration("poll.interval"),
		},
		Cast: CastConfig{
			Command:   v.GetString("cast.command"),
			StateFile: v.GetString("cast.state_file"),
			SiteURL:   v.GetString("cast.site_url"),
			Interval:  v.GetDuration("cast.interval"),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
			File:  v.GetString("log.file"),
		},
	}
	if cfg.Source.Query == "" {
		cfg.Source.Query = cfg.Venue.Name
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration and resolves the venue time zone.
func (c *Config) Validate() error {
	if c.Venue.Name == "" {
		return fmt.Errorf("config: venue.name must be set")
	}
	if c.Venue.City == "" {
		return fmt.Errorf("config: venue.city must be set")
	}

	loc, err := time.LoadLocation(c.Venue.Timezone)
	if err != nil {
		return fmt.Errorf("config: venue.timezone: %w", err)
	}
	c.loc = loc

	if _, err := display.ParsePolicy(c.Display.Policy); err != nil {
		return fmt.Errorf("config: display.policy: %w", err)
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}

	u, err := url.Parse(c.Tournament.BaseURL)
	if err != nil || !u.IsAbs() {
		return fmt.Errorf("config: tournament.base_url must be an absolute URL, got %q", c.Tournament.BaseURL)
	}

	if len(c.Output.Paths) == 0 && c.Output.RedisURL == "" {
		return fmt.Errorf("config: at least one of output.paths or output.redis_url must be set")
	}
	if c.Poll.Interval <= 0 {
		return fmt.Errorf("config: poll.interval must be positive")
	}
	if c.Cast.Interval <= 0 {
		return fmt.Errorf("config: cast.interval must be positive")
	}
	if c.Source.Timeout <= 0 {
		return fmt.Errorf("config: source.timeout must be positive")
	}
	return nil
}

// Location returns the venue time zone. Valid after Validate.
func (c *Config) Location() *time.Location {
	if c.loc == nil {
		return time.Local
	}
	return c.loc
}

// stringList reads a list key that may also arrive as one comma-separated
// string from the environment.
func stringList(v *viper.Viper, key string) []string {
	if raw, ok := v.Get(key).(string); ok {
		return splitTrimmed(raw)
	}
	return splitTrimmed(strings.Join(v.GetStringSlice(key), ","))
}

func splitTrimmed(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
