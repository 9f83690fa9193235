package scraper

import (
	"sort"

	"github.com/technical-communicator/central-florida-events/internal/event"
)

// Page is one venue listing page belonging to a source.
type Page struct {
	Venue    string
	URL      string
	Location string
}

// Source describes a configured event source: the pages to scan and the
// defaults applied when a page doesn't state a field. Category left empty
// means "infer from text".
type Source struct {
	Key          string
	Name         string
	Pages        []Page
	Category     event.Category
	Capacity     event.Capacity
	VenueType    string
	DefaultTime  string
	DefaultPrice string
	BaseTags     []string
}

// sources is the immutable registry of configured sources, built once at
// startup. Selection happens by key; iteration order is fixed by this
// declaration.
var sources = []Source{
	{
		Key:  "wills-pub",
		Name: "Will's Pub Venues",
		Pages: []Page{
			{Venue: "Will's Pub", URL: "https://willspub.org/tm-venue/wills-pub/", Location: "1042 N Mills Ave, Orlando, FL 32803"},
			{Venue: "Lil Indies", URL: "https://willspub.org/tm-venue/lil-indies/", Location: "1036 N Mills Ave, Orlando, FL 32803"},
			{Venue: "Dirty Laundry", URL: "https://willspub.org/tm-venue/dirty-laundry/", Location: "1028 N Mills Ave, Orlando, FL 32803"},
		},
		Category:  event.CategoryMusic,
		Capacity:  event.CapacityMedium,
		VenueType: "indoor",
		BaseTags:  []string{"Music", "Live Music"},
	},
	{
		Key:  "plaza-live",
		Name: "The Plaza Live",
		Pages: []Page{
			{Venue: "The Plaza Live", URL: "https://plazaliveorlando.com/events/", Location: "425 N Bumby Ave, Orlando, FL 32803"},
		},
		Category:    event.CategoryMusic,
		Capacity:    event.CapacityLarge,
		VenueType:   "indoor",
		DefaultTime: "20:00",
		BaseTags:    []string{"live music", "concert", "venue"},
	},
	{
		Key:  "beacham-social",
		Name: "The Beacham & The Social",
		Pages: []Page{
			{Venue: "The Beacham", URL: "https://thebeacham.com/events/", Location: "46 N Orange Ave, Orlando, FL 32801"},
		},
		Category:    event.CategoryMusic,
		Capacity:    event.CapacityLarge,
		VenueType:   "indoor",
		DefaultTime: "21:00",
		BaseTags:    []string{"live music", "nightlife", "downtown"},
	},
	{
		Key:  "orange-county-parks",
		Name: "Orange County Parks",
		Pages: []Page{
			{Venue: "Orange County Parks", URL: "https://www.ocfl.net/CivicAlerts.aspx?AID=2467", Location: "Orange County, FL"},
		},
		Capacity:     event.CapacityLarge,
		VenueType:    "outdoor",
		DefaultTime:  "afternoon",
		DefaultPrice: "Free",
		BaseTags:     []string{"parks", "outdoor", "community"},
	},
	{
		Key:  "mycfl-family",
		Name: "MyCentralFloridaFamily",
		Pages: []Page{
			{Venue: "Various Locations", URL: "https://mycentralfloridafamily.com/things-to-do/events/", Location: "Central Florida"},
		},
		Category:    event.CategoryFamily,
		Capacity:    event.CapacityMedium,
		VenueType:   "indoor",
		DefaultTime: "afternoon",
		BaseTags:    []string{"family", "kids", "community"},
	},
}

// Sources returns every configured source in registry order.
func Sources() []Source {
	out := make([]Source, len(sources))
	copy(out, sources)
	return out
}

// Lookup resolves a source by registry key.
func Lookup(key string) (Source, bool) {
	for _, s := range sources {
		if s.Key == key {
			return s, true
		}
	}
	return Source{}, false
}

// Names lists the registry keys, sorted for display.
func Names() []string {
	names := make([]string, 0, len(sources))
	for _, s := range sources {
		names = append(names, s.Key)
	}
	sort.Strings(names)
	return names
}
