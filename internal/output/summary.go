package output

import (
	"fmt"
	"io"
	"sort"

	"github.com/technical-communicator/central-florida-events/internal/event"
)

// WriteSummary writes a human-readable run summary.
func WriteSummary(w io.Writer, stats *event.Stats) {
	if stats.TotalEvents == 0 {
		fmt.Fprintln(w, "No events found.")
		if stats.Dropped > 0 {
			fmt.Fprintf(w, "Dropped %d incomplete record(s).\n", stats.Dropped)
		}
		return
	}

	fmt.Fprintf(w, "Found %d event(s)", stats.TotalEvents)
	if stats.Dropped > 0 {
		fmt.Fprintf(w, " (%d incomplete record(s) dropped)", stats.Dropped)
	}
	fmt.Fprintln(w)

	if stats.EarliestDate != "" {
		fmt.Fprintf(w, "Date range: %s to %s\n", stats.EarliestDate, stats.LatestDate)
	}

	writeCounts(w, "By source", stats.BySource)
	writeCounts(w, "By category", stats.ByCategory)
	writeCounts(w, "By price", stats.ByPriceCategory)
}

func writeCounts(w io.Writer, label string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}

	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fmt.Fprintf(w, "\n%s:\n", label)
	for _, key := range keys {
		fmt.Fprintf(w, "  %-20s %d\n", key, counts[key])
	}
}
