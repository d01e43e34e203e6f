// Package scraper supplies tournament cards from the listing site.
//
// A Source returns the cards shown for a search query. Browser drives a headless
// Chrome through the site's search box, HTTPSource fetches a static page, and
// FileSource reads a saved page from disk. All three hand the HTML to ParseCards,
// which splits it into cards made of visible text lines plus the optional title,
// name and link hints found inside each card.
package scraper
