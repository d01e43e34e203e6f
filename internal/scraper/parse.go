package scraper

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/pfrederiksen/tournament-monitor/internal/extract"
)

const (
	titleSelector     = "h1, h2, h3, h4, h5, h6, .ant-card-meta-title, .ant-card-head-title"
	nameFieldSelector = "[class*='title'], [class*='name']"
	linkPathHint      = "/tournaments/"
)

// inlineTags do not start a new visible line.
var inlineTags = map[string]bool{
	"a": true, "abbr": true, "b": true, "bdi": true, "cite": true, "code": true,
	"em": true, "font": true, "i": true, "label": true, "mark": true, "q": true,
	"s": true, "small": true, "span": true, "strong": true, "sub": true,
	"sup": true, "time": true, "u": true,
}

// hiddenTags never contribute visible text.
var hiddenTags = map[string]bool{
	"script": true, "style": true, "noscript": true, "template": true,
	"svg": true, "head": true,
}

// ParseCards splits an HTML page into cards. Every element matching
// cardSelector becomes one card; nested cards are skipped so a card is never
// reported twice. Relative links are resolved against pageURL.
func ParseCards(r io.Reader, pageURL, cardSelector string) ([]extract.Card, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parsing page URL: %w", err)
	}
	if cardSelector == "" {
		cardSelector = DefaultCardSelector
	}

	cards := make([]extract.Card, 0)
	doc.Find(cardSelector).Each(func(_ int, sel *goquery.Selection) {
		if sel.ParentsFiltered(cardSelector).Length() > 0 {
			return
		}
		card := extract.Card{
			Lines:     visibleLines(sel),
			Title:     firstText(sel.Find(titleSelector)),
			NameField: firstText(sel.Find(nameFieldSelector).Not(titleSelector)),
			Link:      cardLink(sel, base),
		}
		if len(card.Lines) == 0 {
			return
		}
		cards = append(cards, card)
	})

	return cards, nil
}

// visibleLines approximates rendered text: block elements and <br> break
// lines, inline elements join, whitespace runs collapse to one space.
func visibleLines(sel *goquery.Selection) []string {
	var (
		lines []string
		buf   strings.Builder
	)
	flush := func() {
		if line := strings.Join(strings.Fields(buf.String()), " "); line != "" {
			lines = append(lines, line)
		}
		buf.Reset()
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			buf.WriteString(n.Data)
			return
		case html.CommentNode:
			return
		case html.ElementNode:
			if hiddenTags[n.Data] {
				return
			}
			if n.Data == "br" {
				flush()
				return
			}
		}

		block := n.Type == html.ElementNode && !inlineTags[n.Data]
		if block {
			flush()
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			flush()
		}
	}

	for _, n := range sel.Nodes {
		walk(n)
	}
	flush()
	return lines
}

// firstText returns the first non-empty collapsed text in sel.
func firstText(sel *goquery.Selection) string {
	var text string
	sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text = strings.Join(strings.Fields(s.Text()), " ")
		return text == ""
	})
	return text
}

// cardLink prefers a link into the tournament listing and falls back to the
// first link in the card.
func cardLink(sel *goquery.Selection, base *url.URL) string {
	var first, tournament string
	sel.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		u, err := base.Parse(strings.TrimSpace(href))
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return true
		}
		if first == "" {
			first = u.String()
		}
		if strings.Contains(u.Path, linkPathHint) {
			tournament = u.String()
			return false
		}
		return true
	})
	if tournament != "" {
		return tournament
	}
	return first
}
