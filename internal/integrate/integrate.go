package integrate

import (
	"strings"
	"time"

	"github.com/technical-communicator/central-florida-events/internal/event"
	"github.com/technical-communicator/central-florida-events/internal/infer"
	"github.com/technical-communicator/central-florida-events/internal/logger"
	"github.com/technical-communicator/central-florida-events/internal/normalize"
	"github.com/technical-communicator/central-florida-events/internal/scraper"
)

// descriptionLimit is the canonical description length. Extractors carry
// up to 500 chars; the final truncation happens here.
const descriptionLimit = 300

// maxTags caps the tag set on a canonical event.
const maxTags = 5

// venueGlyphs maps exact venue names to their presentation glyph. The
// category table is the fallback, then the generic glyph.
var venueGlyphs = map[string]string{
	"Will's Pub":     "🎸",
	"Lil Indies":     "🎤",
	"Dirty Laundry":  "🎧",
	"The Plaza Live": "🎭",
	"The Beacham":    "🎪",
	"The Social":     "🎵",
}

var categoryGlyphs = map[event.Category]string{
	event.CategoryMusic:     "🎵",
	event.CategoryArts:      "🎨",
	event.CategoryFood:      "🍔",
	event.CategorySports:    "⚽",
	event.CategoryOutdoor:   "🌳",
	event.CategoryEducation: "📚",
	event.CategoryCommunity: "🤝",
	event.CategoryFamily:    "👨‍👩‍👧‍👦",
}

const genericGlyph = "🎉"

// categoryDurations gives the default free-text duration per category.
var categoryDurations = map[event.Category]string{
	event.CategoryMusic:     "2-3 hours",
	event.CategoryArts:      "1-2 hours",
	event.CategoryFood:      "1-2 hours",
	event.CategorySports:    "2-3 hours",
	event.CategoryOutdoor:   "2-4 hours",
	event.CategoryEducation: "1-2 hours",
	event.CategoryCommunity: "2-3 hours",
	event.CategoryFamily:    "2-4 hours",
}

const defaultDuration = "2-3 hours"

// Integrator merges raw extractions into canonical Events: it rejects
// records missing required fields, runs normalization and inference,
// assigns run-unique ids, and stamps lifecycle fields. It does not
// deduplicate across sources by content; records are distinguished purely
// by source and id.
type Integrator struct {
	profile normalize.ThresholdProfile
	nextID  int
	clock   event.Clock
	stats   *event.Stats
}

// New creates an Integrator assigning ids monotonically from baseID.
func New(baseID int, profile normalize.ThresholdProfile, clock event.Clock) *Integrator {
	if clock == nil {
		clock = time.Now
	}
	return &Integrator{
		profile: profile,
		nextID:  baseID,
		clock:   clock,
		stats:   event.NewStats(),
	}
}

// Integrate converts the raw records of one source into canonical Events,
// in input order. Records missing a name or a normalizable date are
// dropped and counted; they never appear in the output.
func (it *Integrator) Integrate(source scraper.Source, raws []event.RawExtraction) []event.Event {
	events := make([]event.Event, 0, len(raws))

	for _, raw := range raws {
		evt, ok := it.convert(source, raw)
		if !ok {
			it.stats.Dropped++
			logger.IncrCounter("integrate.records_dropped")
			logger.Warn("Dropping record with missing required fields", logger.Fields{
				"source": source.Key,
				"name":   raw.Name,
			})
			continue
		}

		events = append(events, evt)
		it.stats.Record(&evt)
	}

	return events
}

// Stats returns the statistics accumulated across all Integrate calls.
func (it *Integrator) Stats() *event.Stats {
	return it.stats
}

func (it *Integrator) convert(source scraper.Source, raw event.RawExtraction) (event.Event, bool) {
	name := strings.TrimSpace(raw.Name)
	if name == "" {
		return event.Event{}, false
	}

	date, ok := normalize.Date(raw.DateText)
	if !ok {
		return event.Event{}, false
	}

	category := source.Category
	if category == "" {
		category = normalize.Category(name + " " + raw.DescriptionText)
	}

	clock := normalize.Time(raw.TimeText)
	if clock == "" {
		clock = source.DefaultTime
	}

	priceText := raw.PriceText
	if priceText == "" {
		priceText = source.DefaultPrice
	}
	price := normalize.Price(priceText)
	priceCategory := normalize.CategorizePrice(price, it.profile)

	tags := mergeTags(source.BaseTags, raw.TagHints)
	traits := infer.Derive(category, source.Capacity, priceCategory, tags)

	venue := raw.VenueHint
	if venue == "" {
		venue = source.Name
	}

	link := raw.Link
	if link == "" && len(source.Pages) > 0 {
		link = source.Pages[0].URL
	}

	now := it.clock().UTC().Format(time.RFC3339)

	evt := event.Event{
		ID:              it.nextID,
		Name:            name,
		Venue:           venue,
		Category:        category,
		Description:     strings.TrimSpace(truncate(raw.DescriptionText, descriptionLimit)),
		Location:        raw.LocationHint,
		Date:            date,
		Time:            clock,
		Duration:        durationFor(category),
		Price:           price,
		PriceCategory:   priceCategory,
		Capacity:        source.Capacity,
		VenueType:       source.VenueType,
		Image:           glyphFor(venue, category),
		PersonalityTags: traits.PersonalityTags,
		Vibes:           traits.Vibes,
		GroupSizes:      traits.GroupSizes,
		Interactivity:   traits.Interactivity,
		Tags:            tags,
		Artists:         raw.Artists,
		ExternalLink:    link,
		Source:          source.Name,
		SourceURL:       sourceURL(source),
		ScrapedAt:       now,
		SubmittedAt:     now,
		Status:          event.StatusPending,
	}

	it.nextID++
	return evt, true
}

// mergeTags combines source base tags with extracted hints, collapsing
// duplicates in first-seen order and capping at maxTags.
func mergeTags(base, hints []string) []string {
	seen := make(map[string]bool, len(base)+len(hints))
	tags := make([]string, 0, maxTags)

	for _, tag := range append(append([]string{}, base...), hints...) {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if seen[key] {
			continue
		}
		seen[key] = true
		tags = append(tags, tag)
		if len(tags) == maxTags {
			break
		}
	}

	return tags
}

// glyphFor selects the presentation glyph by two-level lookup: exact
// venue name first, category second, generic last.
func glyphFor(venue string, category event.Category) string {
	if glyph, ok := venueGlyphs[venue]; ok {
		return glyph
	}
	if glyph, ok := categoryGlyphs[category]; ok {
		return glyph
	}
	return genericGlyph
}

func durationFor(category event.Category) string {
	if d, ok := categoryDurations[category]; ok {
		return d
	}
	return defaultDuration
}

func sourceURL(source scraper.Source) string {
	if len(source.Pages) > 0 {
		return source.Pages[0].URL
	}
	return ""
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
