package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"
	gocache "github.com/patrickmn/go-cache"

	"github.com/technical-communicator/central-florida-events/internal/logger"
)

const (
	// UserAgent identifies the scraper to venue sites.
	UserAgent = "CentralFloridaEventsBot/1.0 (+https://github.com/technical-communicator/central-florida-events)"

	// DefaultTimeout bounds a single page request.
	DefaultTimeout = 30 * time.Second

	maxBodyBytes = 4 << 20
)

// Fetcher retrieves parsed markup documents by URL. The pipeline treats a
// fetch error as "no document" for that source and moves on.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// Options configures the HTTP fetcher.
type Options struct {
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	MaxRetries        uint64
	RespectRobots     bool
}

// DefaultOptions returns the politeness settings used by the CLI.
func DefaultOptions() Options {
	return Options{
		Timeout:           DefaultTimeout,
		RequestsPerSecond: 0.66, // ~1.5s between requests to one host
		Burst:             1,
		MaxRetries:        2,
		RespectRobots:     true,
	}
}

// HTTPFetcher fetches pages over HTTP with bounded retries, a per-domain
// rate limit, robots.txt checks, and an in-run response cache so a venue
// page shared by several sources is fetched once.
type HTTPFetcher struct {
	client     *http.Client
	limiter    *Limiter
	robots     *RobotsChecker
	cache      *gocache.Cache
	maxRetries uint64
}

// New creates an HTTPFetcher with the given options.
func New(opts Options) *HTTPFetcher {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	f := &HTTPFetcher{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		limiter:    NewLimiter(opts.RequestsPerSecond, opts.Burst),
		cache:      gocache.New(15*time.Minute, 30*time.Minute),
		maxRetries: opts.MaxRetries,
	}

	if opts.RespectRobots {
		f.robots = NewRobotsChecker(UserAgent, timeout)
	}

	return f
}

// Fetch retrieves and parses the page at url. Results are cached for the
// remainder of the run keyed by URL.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	if cached, ok := f.cache.Get(url); ok {
		return goquery.NewDocumentFromReader(strings.NewReader(cached.(string)))
	}

	if f.robots != nil {
		allowed, crawlDelay, err := f.robots.CanFetch(ctx, url)
		if err != nil {
			logger.Warn("robots.txt check failed, proceeding", logger.Fields{"url": url})
		}
		if !allowed {
			return nil, fmt.Errorf("disallowed by robots.txt: %s", url)
		}
		if crawlDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(crawlDelay):
			}
		}
	}

	if err := f.limiter.Wait(ctx, url); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	body, err := f.get(ctx, url)
	if err != nil {
		return nil, err
	}

	f.cache.Set(url, body, gocache.DefaultExpiration)
	return goquery.NewDocumentFromReader(strings.NewReader(body))
}

// get performs the HTTP request with bounded exponential backoff. Client
// errors (4xx) are permanent; transport failures and 5xx are retried.
func (f *HTTPFetcher) get(ctx context.Context, url string) (string, error) {
	var body string

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		req.Header.Set("User-Agent", UserAgent)
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")

		resp, err := f.client.Do(req)
		if err != nil {
			return fmt.Errorf("fetching page: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return backoff.Permanent(fmt.Errorf("unexpected status code: %d", resp.StatusCode))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return fmt.Errorf("reading body: %w", err)
		}

		body = string(data)
		return nil
	}

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), f.maxRetries)
	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		return "", err
	}

	return body, nil
}
