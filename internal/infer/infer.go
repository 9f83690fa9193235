package infer

import (
	"strings"

	"github.com/technical-communicator/central-florida-events/internal/event"
)

// Traits holds the derived affinity attributes for one event.
type Traits struct {
	PersonalityTags []string
	Vibes           []string
	GroupSizes      []string
	Interactivity   event.Interactivity
}

// Derive computes every inferred attribute from already-normalized
// fields. It never looks at free text beyond the extracted tag hints, and
// identical inputs always produce identical outputs.
func Derive(category event.Category, capacity event.Capacity, priceCategory event.PriceCategory, tags []string) Traits {
	return Traits{
		PersonalityTags: PersonalityTags(category, capacity),
		Vibes:           Vibes(category, priceCategory, tags),
		GroupSizes:      GroupSizes(category, capacity),
		Interactivity:   Interactivity(category),
	}
}

// PersonalityTags maps an event onto the four MBTI dichotomies, exactly
// one letter per opposing pair, in E/I, S/N, T/F, J/P order.
func PersonalityTags(category event.Category, capacity event.Capacity) []string {
	tags := make([]string, 0, 4)

	// E/I: social, high-energy events lean extraverted.
	if category == event.CategoryMusic || category == event.CategorySports || capacity == event.CapacityLarge {
		tags = append(tags, "E")
	} else {
		tags = append(tags, "I")
	}

	// S/N: experiential, in-the-moment events lean sensing.
	switch category {
	case event.CategoryMusic, event.CategoryFood, event.CategorySports:
		tags = append(tags, "S")
	default:
		tags = append(tags, "N")
	}

	// T/F: structured, competitive events lean thinking.
	switch category {
	case event.CategoryEducation, event.CategorySports:
		tags = append(tags, "T")
	default:
		tags = append(tags, "F")
	}

	// J/P: planned, curated events lean judging.
	switch category {
	case event.CategoryEducation, event.CategoryArts:
		tags = append(tags, "J")
	default:
		tags = append(tags, "P")
	}

	return tags
}

// baseVibes is the category-keyed starting pair for vibe inference.
// Represented as an ordered rule table so output order never depends on
// map iteration.
var baseVibes = []struct {
	category event.Category
	vibes    []string
}{
	{event.CategoryMusic, []string{"energetic", "social"}},
	{event.CategoryArts, []string{"cultural", "relaxed"}},
	{event.CategoryFood, []string{"casual", "social"}},
	{event.CategorySports, []string{"energetic", "competitive"}},
	{event.CategoryOutdoor, []string{"adventurous", "relaxed"}},
	{event.CategoryEducation, []string{"educational", "intellectual"}},
	{event.CategoryCommunity, []string{"social", "meaningful"}},
	{event.CategoryFamily, []string{"casual", "wholesome"}},
}

var tagVibes = []struct {
	vibe     string
	keywords []string
}{
	{"edgy", []string{"indie", "alternative", "punk"}},
	{"romantic", []string{"romantic", "date"}},
	{"party", []string{"party", "dance", "club"}},
}

// Vibes derives up to three descriptive vibes from category, price tier,
// and tag hints. Duplicates collapse in first-seen order.
func Vibes(category event.Category, priceCategory event.PriceCategory, tags []string) []string {
	candidates := []string{"casual"}
	for _, base := range baseVibes {
		if base.category == category {
			candidates = base.vibes
			break
		}
	}

	switch priceCategory {
	case event.PriceFree:
		candidates = append(candidates, "accessible")
	case event.PricePremium:
		candidates = append(candidates, "upscale")
	}

	lowered := make(map[string]bool, len(tags))
	for _, tag := range tags {
		lowered[strings.ToLower(tag)] = true
	}
	for _, rule := range tagVibes {
		for _, kw := range rule.keywords {
			if lowered[kw] {
				candidates = append(candidates, rule.vibe)
				break
			}
		}
	}

	seen := make(map[string]bool, len(candidates))
	vibes := make([]string, 0, 3)
	for _, v := range candidates {
		if seen[v] {
			continue
		}
		seen[v] = true
		vibes = append(vibes, v)
		if len(vibes) == 3 {
			break
		}
	}

	return vibes
}

// GroupSizes lists the group sizes an event suits. Solo always applies.
func GroupSizes(category event.Category, capacity event.Capacity) []string {
	sizes := []string{"solo"}

	switch category {
	case event.CategoryFood, event.CategoryArts, event.CategoryOutdoor:
		sizes = append(sizes, "couple")
	}

	switch category {
	case event.CategoryMusic, event.CategorySports, event.CategoryCommunity, event.CategoryFamily:
		sizes = append(sizes, "small")
	}

	if capacity == event.CapacityLarge {
		sizes = append(sizes, "large")
	}

	return sizes
}

// Interactivity rates how participatory an event is.
func Interactivity(category event.Category) event.Interactivity {
	switch category {
	case event.CategorySports, event.CategoryEducation, event.CategoryFamily, event.CategoryCommunity:
		return event.InteractivityHigh
	case event.CategoryArts, event.CategoryMusic:
		return event.InteractivityLow
	default:
		return event.InteractivityMedium
	}
}
