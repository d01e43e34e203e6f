package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"

	"github.com/pfrederiksen/tournament-monitor/internal/extract"
	"github.com/pfrederiksen/tournament-monitor/internal/logger"
)

const (
	searchInputSelector = `input.ant-input`
	bodySelector        = `body`
	pageSettleDelay     = 3 * time.Second
	resultsDelay        = 8 * time.Second
	scrollDelay         = 2 * time.Second
)

// BrowserOptions configures the headless browser.
type BrowserOptions struct {
	URL          string
	ChromePath   string // empty uses the chromedp default lookup
	UserAgent    string
	Headless     bool
	Timeout      time.Duration
	CardSelector string
}

// Browser searches the listing site in a fresh Chrome instance per call.
type Browser struct {
	opts BrowserOptions
	log  *logger.Logger
}

// NewBrowser creates a Browser.
func NewBrowser(opts BrowserOptions, log *logger.Logger) *Browser {
	if opts.URL == "" {
		opts.URL = ListingURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = Timeout
	}
	return &Browser{opts: opts, log: log}
}

func (b *Browser) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", b.opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.NoSandbox,
		chromedp.WindowSize(1920, 1080),
	)
	if b.opts.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(b.opts.ChromePath))
	}
	if b.opts.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(b.opts.UserAgent))
	}
	return opts
}

// Cards loads the listing, types query into the search box, submits it,
// scrolls so lazy results render, and parses the resulting page.
func (b *Browser) Cards(ctx context.Context, query string) ([]extract.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, b.opts.Timeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, b.allocatorOptions()...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	b.log.Info("Searching listing", logger.Fields{"url": b.opts.URL, "query": query})

	var page string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(b.opts.URL),
		chromedp.WaitVisible(searchInputSelector, chromedp.ByQuery),
		chromedp.Sleep(pageSettleDelay),
		chromedp.Click(searchInputSelector, chromedp.ByQuery),
		chromedp.Clear(searchInputSelector, chromedp.ByQuery),
		chromedp.SendKeys(searchInputSelector, query+kb.Enter, chromedp.ByQuery),
		chromedp.Sleep(resultsDelay),
		chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
		chromedp.Sleep(scrollDelay),
		chromedp.Evaluate(`window.scrollTo(0, 0)`, nil),
		chromedp.Sleep(scrollDelay),
		chromedp.OuterHTML(bodySelector, &page, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("searching %s for %q: %w", b.opts.URL, query, err)
	}

	cards, err := ParseCards(strings.NewReader(page), b.opts.URL, b.opts.CardSelector)
	if err != nil {
		return nil, err
	}
	b.log.Debug("Captured listing", logger.Fields{"cards": len(cards), "bytes": len(page)})
	return cards, nil
}
