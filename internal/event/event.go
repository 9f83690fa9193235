package event

import "time"

// Category is the canonical event category.
type Category string

const (
	CategoryMusic     Category = "music"
	CategoryArts      Category = "arts"
	CategoryFood      Category = "food"
	CategorySports    Category = "sports"
	CategoryOutdoor   Category = "outdoor"
	CategoryEducation Category = "education"
	CategoryCommunity Category = "community"
	CategoryFamily    Category = "family"
)

// Categories lists every canonical category value.
func Categories() []Category {
	return []Category{
		CategoryMusic,
		CategoryArts,
		CategoryFood,
		CategorySports,
		CategoryOutdoor,
		CategoryEducation,
		CategoryCommunity,
		CategoryFamily,
	}
}

// PriceCategory is the derived price tier. It is a pure function of the
// numeric price and the active threshold profile; nothing else sets it.
type PriceCategory string

const (
	PriceFree     PriceCategory = "free"
	PriceBudget   PriceCategory = "budget"
	PriceModerate PriceCategory = "moderate"
	PricePremium  PriceCategory = "premium"
)

// Capacity is the coarse venue size.
type Capacity string

const (
	CapacitySmall  Capacity = "small"
	CapacityMedium Capacity = "medium"
	CapacityLarge  Capacity = "large"
)

// Interactivity is the inferred participation level.
type Interactivity string

const (
	InteractivityHigh   Interactivity = "high"
	InteractivityMedium Interactivity = "medium"
	InteractivityLow    Interactivity = "low"
)

// Lifecycle status values for an event record.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// RawExtraction is the unvalidated, source-specific intermediate record
// produced by either extractor. Every field is optional; records missing
// a name or a normalizable date are dropped by the integrator.
type RawExtraction struct {
	Name            string
	DateText        string
	TimeText        string
	PriceText       string
	DescriptionText string
	Link            string
	VenueHint       string
	LocationHint    string
	Artists         string
	TagHints        []string
}

// Event is the canonical, validated record crossing the system boundary.
// JSON field names match the events-data.js schema consumed downstream;
// struct declaration order fixes the key order in serialized output.
type Event struct {
	ID              int           `json:"id"`
	Name            string        `json:"name"`
	Venue           string        `json:"venue"`
	Category        Category      `json:"category"`
	Description     string        `json:"description"`
	Location        string        `json:"location"`
	Date            string        `json:"date"`
	Time            string        `json:"time"`
	Duration        string        `json:"duration"`
	Price           float64       `json:"price"`
	PriceCategory   PriceCategory `json:"priceCategory"`
	Capacity        Capacity      `json:"capacity"`
	VenueType       string        `json:"venueType"`
	Image           string        `json:"image"`
	PersonalityTags []string      `json:"personalityTags"`
	Vibes           []string      `json:"vibes"`
	GroupSizes      []string      `json:"groupSizes"`
	Interactivity   Interactivity `json:"interactivity"`
	Tags            []string      `json:"tags"`
	Artists         string        `json:"artists,omitempty"`
	ExternalLink    string        `json:"externalLink"`
	Source          string        `json:"source"`
	SourceURL       string        `json:"sourceUrl"`
	ScrapedAt       string        `json:"scrapedAt"`
	SubmittedAt     string        `json:"submittedAt"`
	Status          string        `json:"status"`
}

// Stats summarizes one integration run. Dropped counts records rejected
// for missing required fields; they never reach the output set.
type Stats struct {
	TotalEvents     int            `json:"total_events"`
	Dropped         int            `json:"dropped"`
	BySource        map[string]int `json:"by_source"`
	ByCategory      map[string]int `json:"by_category"`
	ByPriceCategory map[string]int `json:"by_price_category"`
	EarliestDate    string         `json:"earliest_date,omitempty"`
	LatestDate      string         `json:"latest_date,omitempty"`
}

// NewStats returns an empty Stats with initialized counters.
func NewStats() *Stats {
	return &Stats{
		BySource:        make(map[string]int),
		ByCategory:      make(map[string]int),
		ByPriceCategory: make(map[string]int),
	}
}

// Record counts a finished event into the run statistics.
func (s *Stats) Record(e *Event) {
	s.TotalEvents++
	s.BySource[e.Source]++
	s.ByCategory[string(e.Category)]++
	s.ByPriceCategory[string(e.PriceCategory)]++
	if e.Date != "" {
		if s.EarliestDate == "" || e.Date < s.EarliestDate {
			s.EarliestDate = e.Date
		}
		if s.LatestDate == "" || e.Date > s.LatestDate {
			s.LatestDate = e.Date
		}
	}
}

// Clock supplies timestamps so integration runs are reproducible in tests.
type Clock func() time.Time
