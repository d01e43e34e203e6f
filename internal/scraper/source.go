package scraper

import (
	"context"
	"time"

	"github.com/pfrederiksen/tournament-monitor/internal/extract"
)

const (
	ListingURL          = "https://www.digitalpool.com/tournaments"
	DefaultCardSelector = ".ant-card"
	UserAgent           = "tournament-monitor/1.0 (github.com/pfrederiksen/tournament-monitor)"
	Timeout             = 90 * time.Second
)

// Source returns the cards the listing shows for a search query.
type Source interface {
	Cards(ctx context.Context, query string) ([]extract.Card, error)
}
