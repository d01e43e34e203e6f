package extract

import "strings"

// Card is the raw text of one listing card plus any nested hints the page
// source could find inside it.
type Card struct {
	Lines     []string `json:"lines"`                // visible lines in document order
	Title     string   `json:"title,omitempty"`      // heading-like title element
	NameField string   `json:"name_field,omitempty"` // element labelled as the title/name
	Link      string   `json:"link,omitempty"`       // absolute link found in the card
}

// Text joins the card's lines with newlines.
func (c Card) Text() string {
	return strings.Join(c.Lines, "\n")
}
