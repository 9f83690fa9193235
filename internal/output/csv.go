package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/technical-communicator/central-florida-events/internal/event"
)

var csvHeader = []string{
	"id", "name", "venue", "category", "date", "time", "price",
	"priceCategory", "capacity", "tags", "externalLink", "source",
}

// WriteCSV writes a flat tabular view of the events. Tags are joined
// with ", "; the nested attribute fields are not represented.
func WriteCSV(w io.Writer, events []event.Event) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, e := range events {
		record := []string{
			strconv.Itoa(e.ID),
			e.Name,
			e.Venue,
			string(e.Category),
			e.Date,
			e.Time,
			strconv.FormatFloat(e.Price, 'f', -1, 64),
			string(e.PriceCategory),
			string(e.Capacity),
			strings.Join(e.Tags, ", "),
			e.ExternalLink,
			e.Source,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv record %d: %w", e.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
