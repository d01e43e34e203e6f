package extract

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonSlugChar   = regexp.MustCompile(`[^a-z0-9-]`)
	hyphenRun     = regexp.MustCompile(`-+`)
)

// urlStrategies prefer a link found on the card over a synthesized one.
func (e *Extractor) urlStrategies() []strategy[string] {
	return []strategy[string]{
		{name: "nested-link", try: e.urlFromLink},
		{name: "synthesized", try: e.urlFromName},
	}
}

func (e *Extractor) urlFromLink(in input) (string, bool) {
	link := strings.TrimSpace(in.card.Link)
	if link == "" {
		return "", false
	}
	u, err := url.Parse(link)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return "", false
	}
	if !strings.Contains(u.Path, e.tournamentPath) {
		return "", false
	}
	return link, true
}

func (e *Extractor) urlFromName(in input) (string, bool) {
	u := TournamentURL(e.baseURL, in.date, in.name)
	return u, u != ""
}

// TournamentURL synthesizes a detail-page URL from a date and a name:
// {base}{YYYYMMDD}-{slug}/. It returns "" when either part is missing.
func TournamentURL(base, date, name string) string {
	if date == "" || name == "" {
		return ""
	}
	slug := Slug(date, name)
	if slug == "" {
		return ""
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + strings.ReplaceAll(date, "/", "") + "-" + slug + "/"
}

// Slug lower-cases name, drops a leading copy of date, and reduces it to
// [a-z0-9-] with single hyphens and no hyphen at either end.
func Slug(date, name string) string {
	if d, n := leadingDate(name); d != "" && d == date {
		name = name[n:]
	}
	s := strings.ToLower(strings.TrimSpace(name))
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = nonSlugChar.ReplaceAllString(s, "")
	s = hyphenRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
