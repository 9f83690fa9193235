package scraper

import (
	"context"
	"time"

	"github.com/technical-communicator/central-florida-events/internal/event"
	"github.com/technical-communicator/central-florida-events/internal/fetch"
	"github.com/technical-communicator/central-florida-events/internal/logger"
)

// Extractor is the capability a configured source exposes to the pipeline.
type Extractor interface {
	Source() Source
	Scrape(ctx context.Context) ([]event.RawExtraction, error)
}

// Scraper extracts raw event records from one source's pages using the
// structured-data-then-heuristic fallback chain.
type Scraper struct {
	source  Source
	fetcher fetch.Fetcher
}

// New creates a Scraper for the given source configuration.
func New(source Source, fetcher fetch.Fetcher) *Scraper {
	return &Scraper{
		source:  source,
		fetcher: fetcher,
	}
}

// Source returns the configuration this scraper was built from.
func (s *Scraper) Source() Source {
	return s.source
}

// Scrape fetches every page of the source and extracts raw records.
// A page that fails to fetch yields zero records; the remaining pages
// still run. The returned error is reserved for context cancellation.
func (s *Scraper) Scrape(ctx context.Context) ([]event.RawExtraction, error) {
	var raws []event.RawExtraction

	for _, page := range s.source.Pages {
		if err := ctx.Err(); err != nil {
			return raws, err
		}

		started := time.Now()
		doc, err := s.fetcher.Fetch(ctx, page.URL)
		logger.RecordTiming("fetch.page", time.Since(started))

		if err != nil {
			logger.IncrCounter("fetch.failures")
			logger.Error("Fetch failed, skipping page", logger.Fields{
				"source": s.source.Key,
				"url":    page.URL,
			}, err)
			continue
		}

		// Structured metadata first; heuristic markup scan only when the
		// page carries no usable metadata blocks.
		pageRaws := extractStructured(doc, page)
		if len(pageRaws) == 0 {
			pageRaws = extractHeuristic(doc, page)
		}

		logger.Info("Page scraped", logger.Fields{
			"source":  s.source.Key,
			"venue":   page.Venue,
			"records": len(pageRaws),
		})

		raws = append(raws, pageRaws...)
	}

	return raws, nil
}
