package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pfrederiksen/tournament-monitor/internal/extract"
)

// HTTPSource fetches a server-rendered listing page. The query, when set, is
// sent as the "search" parameter.
type HTTPSource struct {
	client       *http.Client
	url          string
	cardSelector string
	userAgent    string
}

// NewHTTPSource creates an HTTPSource for pageURL.
func NewHTTPSource(pageURL, cardSelector, userAgent string) *HTTPSource {
	if userAgent == "" {
		userAgent = UserAgent
	}
	return &HTTPSource{
		client: &http.Client{
			Timeout: Timeout,
		},
		url:          pageURL,
		cardSelector: cardSelector,
		userAgent:    userAgent,
	}
}

// Cards fetches the page and parses its cards.
func (s *HTTPSource) Cards(ctx context.Context, query string) ([]extract.Card, error) {
	u, err := url.Parse(s.url)
	if err != nil {
		return nil, fmt.Errorf("parsing source URL: %w", err)
	}
	if query != "" {
		q := u.Query()
		q.Set("search", query)
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return ParseCards(resp.Body, s.url, s.cardSelector)
}
