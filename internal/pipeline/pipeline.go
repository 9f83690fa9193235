package pipeline

import (
	"context"
	"time"

	"github.com/technical-communicator/central-florida-events/internal/event"
	"github.com/technical-communicator/central-florida-events/internal/fetch"
	"github.com/technical-communicator/central-florida-events/internal/integrate"
	"github.com/technical-communicator/central-florida-events/internal/logger"
	"github.com/technical-communicator/central-florida-events/internal/normalize"
	"github.com/technical-communicator/central-florida-events/internal/scraper"
)

// Options configure a pipeline run.
type Options struct {
	Profile normalize.ThresholdProfile
	BaseID  int
	Clock   event.Clock
}

// DefaultBaseID is the first event id of a run when no base is configured.
const DefaultBaseID = 1000

// Result is the outcome of one run: the canonical events in source order
// and the aggregated statistics. A failed page or source never removes
// the other sources' events.
type Result struct {
	Events []event.Event
	Stats  *event.Stats
}

// Pipeline drives the scrape-integrate sequence over configured sources.
// Sources run sequentially in the order given; with a fixed source list
// and base id, two runs over identical pages assign identical ids.
type Pipeline struct {
	fetcher fetch.Fetcher
	opts    Options
}

// New creates a Pipeline. Zero-value options get the standard threshold
// profile, the default id base, and the wall clock. A base id of zero
// means "unset"; config validation rejects it before it reaches here.
func New(fetcher fetch.Fetcher, opts Options) *Pipeline {
	if opts.Profile.Name == "" {
		opts.Profile = normalize.ProfileStandard
	}
	if opts.BaseID == 0 {
		opts.BaseID = DefaultBaseID
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Pipeline{fetcher: fetcher, opts: opts}
}

// Run scrapes each source in order and integrates the survivors. A
// source that fails or yields nothing is recorded and skipped; only
// context cancellation aborts the run.
func (p *Pipeline) Run(ctx context.Context, sources []scraper.Source) (*Result, error) {
	integrator := integrate.New(p.opts.BaseID, p.opts.Profile, p.opts.Clock)
	result := &Result{}

	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		started := time.Now()
		raws, err := scraper.New(source, p.fetcher).Scrape(ctx)
		logger.RecordTiming("pipeline.source", time.Since(started))

		if err != nil {
			// Scrape only errors on context cancellation; partial
			// records from the aborted source are discarded.
			return result, err
		}

		events := integrator.Integrate(source, raws)
		if len(events) == 0 {
			logger.Warn("Source yielded no events", logger.Fields{
				"source": source.Key,
			})
		}

		logger.Info("Source processed", logger.Fields{
			"source": source.Key,
			"raw":    len(raws),
			"events": len(events),
		})

		result.Events = append(result.Events, events...)
	}

	result.Stats = integrator.Stats()
	return result, nil
}
