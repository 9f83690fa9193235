package scraper

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/technical-communicator/central-florida-events/internal/event"
	"github.com/technical-communicator/central-florida-events/internal/logger"
)

// descriptionExtractLimit bounds descriptions at extraction time. The
// integrator applies the final 300-char canonical limit.
const descriptionExtractLimit = 500

// extractStructured scans the document for JSON-LD event-metadata blocks
// and builds a RawExtraction per Event-typed object. A malformed block is
// skipped and counted; it never aborts its siblings.
func extractStructured(doc *goquery.Document, page Page) []event.RawExtraction {
	var raws []event.RawExtraction

	doc.Find(`script[type="application/ld+json"]`).Each(func(i int, sel *goquery.Selection) {
		var payload interface{}
		if err := json.Unmarshal([]byte(sel.Text()), &payload); err != nil {
			logger.IncrCounter("extract.jsonld.blocks_skipped")
			logger.Debug("Skipping malformed JSON-LD block", logger.Fields{
				"url":   page.URL,
				"block": i,
			})
			return
		}

		// A block holds either one object or a list of them.
		items, ok := payload.([]interface{})
		if !ok {
			items = []interface{}{payload}
		}

		for _, item := range items {
			obj, ok := item.(map[string]interface{})
			if !ok || stringField(obj, "@type") != "Event" {
				continue
			}
			if raw, ok := parseStructuredEvent(obj, page); ok {
				raws = append(raws, raw)
			}
		}
	})

	return raws
}

// parseStructuredEvent maps one JSON-LD Event object onto a RawExtraction.
func parseStructuredEvent(obj map[string]interface{}, page Page) (event.RawExtraction, bool) {
	name := strings.TrimSpace(stringField(obj, "name"))
	if name == "" {
		return event.RawExtraction{}, false
	}

	raw := event.RawExtraction{
		Name:         name,
		Link:         stringField(obj, "url"),
		VenueHint:    page.Venue,
		LocationHint: page.Location,
	}

	if desc := stringField(obj, "description"); desc != "" {
		raw.DescriptionText = truncate(desc, descriptionExtractLimit)
	}

	// startDate carries both date and time around the T separator.
	if start := stringField(obj, "startDate"); start != "" {
		if idx := strings.Index(start, "T"); idx > 0 {
			raw.DateText = start[:idx]
			clock := start[idx+1:]
			if len(clock) >= 5 {
				clock = clock[:5]
			}
			raw.TimeText = clock
		} else {
			raw.DateText = start
		}
	}

	raw.PriceText = offerPrice(obj["offers"])
	raw.Artists = performerNames(obj["performer"])

	if loc, ok := obj["location"].(map[string]interface{}); ok {
		if venueName := stringField(loc, "name"); venueName != "" {
			raw.VenueHint = venueName
		}
	}

	return raw, true
}

// offerPrice pulls a price out of an offers value, which appears both as
// a single offer object and as a list of offers.
func offerPrice(offers interface{}) string {
	switch v := offers.(type) {
	case map[string]interface{}:
		if price, ok := v["price"]; ok {
			return scalarString(price)
		}
		if price, ok := v["lowPrice"]; ok {
			return scalarString(price)
		}
	case []interface{}:
		if len(v) > 0 {
			if first, ok := v[0].(map[string]interface{}); ok {
				if price, ok := first["price"]; ok {
					return scalarString(price)
				}
			}
		}
	}
	return ""
}

// performerNames flattens a performer object or list into a display string.
func performerNames(performer interface{}) string {
	switch v := performer.(type) {
	case map[string]interface{}:
		return stringField(v, "name")
	case []interface{}:
		var names []string
		for _, item := range v {
			if obj, ok := item.(map[string]interface{}); ok {
				if name := stringField(obj, "name"); name != "" {
					names = append(names, name)
				}
			}
		}
		return strings.Join(names, ", ")
	}
	return ""
}

func stringField(obj map[string]interface{}, key string) string {
	if s, ok := obj[key].(string); ok {
		return s
	}
	return ""
}

// scalarString renders a JSON string or number value as text.
func scalarString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	}
	return ""
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
