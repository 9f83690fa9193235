package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/technical-communicator/central-florida-events/internal/event"
)

// Document is the canonical JSON envelope. Field declaration order fixes
// the key order in the serialized form.
type Document struct {
	GeneratedAt string        `json:"generatedAt"`
	TotalEvents int           `json:"totalEvents"`
	Events      []event.Event `json:"events"`
}

// WriteJSON serializes events into the canonical JSON document form.
func WriteJSON(w io.Writer, events []event.Event, generatedAt string) error {
	if events == nil {
		events = []event.Event{}
	}

	doc := Document{
		GeneratedAt: generatedAt,
		TotalEvents: len(events),
		Events:      events,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling events: %w", err)
	}
	data = append(data, '\n')

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing events: %w", err)
	}
	return nil
}

// ParseJSON reads a canonical JSON document back into memory.
func ParseJSON(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing events document: %w", err)
	}
	return &doc, nil
}
