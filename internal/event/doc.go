// Package event defines the data model for the extraction pipeline.
//
// RawExtraction is the transient, source-specific bag of optional fields
// produced by the extractors. Event is the canonical, validated record the
// integrator builds from it. Events are immutable once serialized;
// corrections require re-running the pipeline.
package event
