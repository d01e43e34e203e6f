package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/tournament-monitor/internal/config"
	"github.com/pfrederiksen/tournament-monitor/internal/display"
	"github.com/pfrederiksen/tournament-monitor/internal/engine"
	"github.com/pfrederiksen/tournament-monitor/internal/extract"
	"github.com/pfrederiksen/tournament-monitor/internal/logger"
	"github.com/pfrederiksen/tournament-monitor/internal/scraper"
	"github.com/pfrederiksen/tournament-monitor/internal/storage"
)

// app holds what every command builds from configuration.
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	closers []io.Closer
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(config.Options{
		File:    flagConfigFile,
		EnvFile: flagEnvFile,
		Flags:   cmd.Flags(),
	})
	if err != nil {
		return nil, err
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}
	var out io.Writer = cmd.ErrOrStderr()
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		a.closers = append(a.closers, f)
		out = io.MultiWriter(out, f)
	}
	a.log = logger.New(level, out)
	return a, nil
}

func (a *app) Close() error {
	_ = a.log.Sync()
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i].Close())
	}
	return errors.Join(errs...)
}

func (a *app) engine() (*engine.Engine, error) {
	venue := extract.Venue{Name: a.cfg.Venue.Name, City: a.cfg.Venue.City}
	ex, err := extract.New(venue, a.cfg.Tournament.BaseURL, a.cfg.Location(), a.log.With(logger.Fields{"component": "extract"}))
	if err != nil {
		return nil, fmt.Errorf("creating extractor: %w", err)
	}

	policy, err := display.ParsePolicy(a.cfg.Display.Policy)
	if err != nil {
		return nil, err
	}
	builder := display.NewBuilder(policy, a.cfg.Payouts, a.cfg.Location())

	return engine.New(ex, builder, a.cfg.Location(), a.log.With(logger.Fields{"component": "engine"}))
}

// sinks returns the configured state locations, files first.
func (a *app) sinks() ([]storage.Sink, error) {
	sinks := make([]storage.Sink, 0, len(a.cfg.Output.Paths)+1)
	for _, path := range a.cfg.Output.Paths {
		sink, err := storage.NewFileSink(path)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, sink)
	}
	if a.cfg.Output.RedisURL != "" {
		sink, err := storage.NewRedisSink(a.cfg.Output.RedisURL, a.cfg.Output.RedisKey)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, sink)
		sinks = append(sinks, sink)
	}
	return sinks, nil
}

// source builds the card source named by --source.
func (a *app) source(kind string) (scraper.Source, error) {
	s := a.cfg.Source
	switch kind {
	case "", "browser":
		return scraper.NewBrowser(scraper.BrowserOptions{
			URL:          s.URL,
			ChromePath:   s.ChromePath,
			UserAgent:    s.UserAgent,
			Headless:     s.Headless,
			Timeout:      s.Timeout,
			CardSelector: s.CardSelector,
		}, a.log.With(logger.Fields{"component": "browser"})), nil
	case "http":
		return scraper.NewHTTPSource(s.URL, s.CardSelector, s.UserAgent), nil
	}
	return nil, fmt.Errorf("invalid source: %s (must be 'browser' or 'http')", kind)
}
