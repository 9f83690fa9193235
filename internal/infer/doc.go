// Package infer derives secondary descriptive attributes — personality
// affinity, vibes, group-size fit, and interactivity — from an event's
// normalized category, capacity, price tier, and tag hints. The rules are
// heuristic, deterministic, and never consult free text.
package infer
