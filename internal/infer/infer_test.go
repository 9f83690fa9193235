package infer

import (
	"reflect"
	"testing"

	"github.com/technical-communicator/central-florida-events/internal/event"
)

func TestPersonalityTagsAlwaysCompleteDichotomies(t *testing.T) {
	pairs := [][2]string{{"E", "I"}, {"S", "N"}, {"T", "F"}, {"J", "P"}}
	capacities := []event.Capacity{event.CapacitySmall, event.CapacityMedium, event.CapacityLarge}

	for _, category := range event.Categories() {
		for _, capacity := range capacities {
			tags := PersonalityTags(category, capacity)
			if len(tags) != 4 {
				t.Fatalf("PersonalityTags(%s, %s) has %d tags, want 4", category, capacity, len(tags))
			}
			for i, pair := range pairs {
				if tags[i] != pair[0] && tags[i] != pair[1] {
					t.Errorf("PersonalityTags(%s, %s)[%d] = %q, want %q or %q",
						category, capacity, i, tags[i], pair[0], pair[1])
				}
			}
		}
	}
}

func TestPersonalityTagsRules(t *testing.T) {
	tests := []struct {
		name     string
		category event.Category
		capacity event.Capacity
		want     []string
	}{
		{"Music is ESFP", event.CategoryMusic, event.CapacityMedium, []string{"E", "S", "F", "P"}},
		{"Sports is ESTP", event.CategorySports, event.CapacityMedium, []string{"E", "S", "T", "P"}},
		{"Education is INTJ", event.CategoryEducation, event.CapacityMedium, []string{"I", "N", "T", "J"}},
		{"Arts is INFJ", event.CategoryArts, event.CapacityMedium, []string{"I", "N", "F", "J"}},
		{"Large capacity forces E", event.CategoryArts, event.CapacityLarge, []string{"E", "N", "F", "J"}},
		{"Community is INFP", event.CategoryCommunity, event.CapacitySmall, []string{"I", "N", "F", "P"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PersonalityTags(tt.category, tt.capacity)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PersonalityTags(%s, %s) = %v, want %v", tt.category, tt.capacity, got, tt.want)
			}
		})
	}
}

func TestVibes(t *testing.T) {
	tests := []struct {
		name          string
		category      event.Category
		priceCategory event.PriceCategory
		tags          []string
		want          []string
	}{
		{"Music base pair", event.CategoryMusic, event.PriceModerate, nil, []string{"energetic", "social"}},
		{"Free appends accessible", event.CategoryArts, event.PriceFree, nil, []string{"cultural", "relaxed", "accessible"}},
		{"Premium appends upscale", event.CategoryFood, event.PricePremium, nil, []string{"casual", "social", "upscale"}},
		{"Punk tag adds edgy", event.CategoryMusic, event.PriceBudget, []string{"Punk", "Live Music"}, []string{"energetic", "social", "edgy"}},
		{"Cap at three", event.CategoryMusic, event.PriceFree, []string{"indie", "date", "party"}, []string{"energetic", "social", "accessible"}},
		{"Dance tag adds party", event.CategoryFood, event.PriceBudget, []string{"dance"}, []string{"casual", "social", "party"}},
		{"Unknown category gets casual", "festival", event.PriceBudget, nil, []string{"casual"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Vibes(tt.category, tt.priceCategory, tt.tags)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Vibes(%s, %s, %v) = %v, want %v",
					tt.category, tt.priceCategory, tt.tags, got, tt.want)
			}
		})
	}
}

// Identical inputs must yield identical vibe ordering across calls.
func TestVibesDeterministic(t *testing.T) {
	first := Vibes(event.CategoryMusic, event.PriceFree, []string{"indie", "club"})
	for i := 0; i < 50; i++ {
		again := Vibes(event.CategoryMusic, event.PriceFree, []string{"indie", "club"})
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("vibe order changed between runs: %v vs %v", first, again)
		}
	}
}

func TestGroupSizes(t *testing.T) {
	tests := []struct {
		name     string
		category event.Category
		capacity event.Capacity
		want     []string
	}{
		{"Solo always present", event.CategoryEducation, event.CapacitySmall, []string{"solo"}},
		{"Food adds couple", event.CategoryFood, event.CapacityMedium, []string{"solo", "couple"}},
		{"Music adds small", event.CategoryMusic, event.CapacityMedium, []string{"solo", "small"}},
		{"Large capacity adds large", event.CategoryMusic, event.CapacityLarge, []string{"solo", "small", "large"}},
		{"Outdoor large", event.CategoryOutdoor, event.CapacityLarge, []string{"solo", "couple", "large"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GroupSizes(tt.category, tt.capacity)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("GroupSizes(%s, %s) = %v, want %v", tt.category, tt.capacity, got, tt.want)
			}
		})
	}
}

func TestInteractivity(t *testing.T) {
	tests := []struct {
		category event.Category
		want     event.Interactivity
	}{
		{event.CategorySports, event.InteractivityHigh},
		{event.CategoryEducation, event.InteractivityHigh},
		{event.CategoryFamily, event.InteractivityHigh},
		{event.CategoryCommunity, event.InteractivityHigh},
		{event.CategoryArts, event.InteractivityLow},
		{event.CategoryMusic, event.InteractivityLow},
		{event.CategoryFood, event.InteractivityMedium},
		{event.CategoryOutdoor, event.InteractivityMedium},
	}

	for _, tt := range tests {
		got := Interactivity(tt.category)
		if got != tt.want {
			t.Errorf("Interactivity(%s) = %q, want %q", tt.category, got, tt.want)
		}
	}
}

func TestDerive(t *testing.T) {
	traits := Derive(event.CategoryMusic, event.CapacityLarge, event.PriceFree, []string{"Indie"})

	if len(traits.PersonalityTags) != 4 {
		t.Errorf("expected 4 personality tags, got %v", traits.PersonalityTags)
	}
	if len(traits.Vibes) == 0 || len(traits.Vibes) > 3 {
		t.Errorf("expected 1-3 vibes, got %v", traits.Vibes)
	}
	if traits.GroupSizes[0] != "solo" {
		t.Errorf("expected solo first in group sizes, got %v", traits.GroupSizes)
	}
	if traits.Interactivity != event.InteractivityLow {
		t.Errorf("expected low interactivity for music, got %s", traits.Interactivity)
	}
}
