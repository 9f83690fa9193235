// Package scraper extracts raw event records from venue listing pages.
//
// Each configured source gets a Scraper that tries embedded JSON-LD event
// metadata first and falls back to an ordered list of markup heuristics
// when a page carries none. The source registry is immutable and built at
// startup; unknown source names are a caller error.
package scraper
