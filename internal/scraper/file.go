package scraper

import (
	"context"
	"fmt"
	"os"

	"github.com/pfrederiksen/tournament-monitor/internal/extract"
)

// FileSource reads a saved listing page. The query is ignored; the page is
// whatever the site showed when it was saved.
type FileSource struct {
	path         string
	pageURL      string
	cardSelector string
}

// NewFileSource creates a FileSource. pageURL resolves relative links.
func NewFileSource(path, pageURL, cardSelector string) *FileSource {
	return &FileSource{path: path, pageURL: pageURL, cardSelector: cardSelector}
}

// Cards parses the saved page.
func (s *FileSource) Cards(_ context.Context, _ string) ([]extract.Card, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening page: %w", err)
	}
	defer f.Close()

	return ParseCards(f, s.pageURL, s.cardSelector)
}
