// Package fetch retrieves venue pages for the extraction pipeline. The
// HTTP fetcher owns everything the pipeline is not responsible for:
// retries with exponential backoff, per-domain politeness delays,
// robots.txt compliance, and an in-run response cache.
package fetch
