// Package pipeline orchestrates a run: each configured source is scraped
// and integrated sequentially, and the surviving events are collected in
// source order for the serializers.
package pipeline
