package normalize

import (
	"strings"

	"github.com/technical-communicator/central-florida-events/internal/event"
)

// categoryRules is a priority-ordered rule table: the first keyword set
// with a member present in the text decides the category. Behavior must
// not depend on map iteration order, so this is a slice.
var categoryRules = []struct {
	category event.Category
	keywords []string
}{
	{event.CategoryMusic, []string{"concert", "music", "band", "dj", "jazz", "rock"}},
	{event.CategoryFood, []string{"food", "restaurant", "dining", "tasting", "brunch"}},
	{event.CategoryArts, []string{"art", "gallery", "exhibit", "museum", "theater", "play"}},
	{event.CategorySports, []string{"sports", "game", "match", "race", "tournament"}},
	{event.CategoryOutdoor, []string{"outdoor", "park", "hike", "nature", "trail"}},
	{event.CategoryEducation, []string{"workshop", "class", "seminar", "education", "learning"}},
}

// Category infers an event category from free text by keyword membership.
// Ties break in favor of the earlier rule; text matching nothing is
// community.
func Category(text string) event.Category {
	lower := strings.ToLower(text)

	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}

	return event.CategoryCommunity
}
