package normalize

import (
	"regexp"
	"strconv"

	"github.com/technical-communicator/central-florida-events/internal/event"
)

var (
	freePattern  = regexp.MustCompile(`(?i)\b(free|no charge|complimentary)\b`)
	pricePattern = regexp.MustCompile(`[$€£]?\s*(\d+(?:\.\d{1,2})?)`)
)

// Price extracts a numeric price from raw text. Text matching a
// free/no charge/complimentary whole word returns 0, as does text with
// no extractable number.
func Price(text string) float64 {
	if text == "" || freePattern.MatchString(text) {
		return 0
	}

	match := pricePattern.FindStringSubmatch(text)
	if match == nil {
		return 0
	}

	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0
	}
	return value
}

// ThresholdProfile names a price-tier boundary scheme. BudgetMax and
// ModerateMax are the upper bounds of the budget and moderate tiers;
// InclusiveBounds puts a price sitting exactly on a bound into the
// lower tier.
type ThresholdProfile struct {
	Name            string
	BudgetMax       float64
	ModerateMax     float64
	InclusiveBounds bool
}

// The two boundary schemes observed across sources. Neither is more
// correct than the other; callers select one by name.
var (
	// ProfileStandard: budget < 20, moderate < 50.
	ProfileStandard = ThresholdProfile{Name: "standard", BudgetMax: 20, ModerateMax: 50}

	// ProfileClassic: budget <= 15, moderate <= 40.
	ProfileClassic = ThresholdProfile{Name: "classic", BudgetMax: 15, ModerateMax: 40, InclusiveBounds: true}
)

// ProfileByName resolves a threshold profile by its configured name.
func ProfileByName(name string) (ThresholdProfile, bool) {
	switch name {
	case ProfileStandard.Name, "":
		return ProfileStandard, true
	case ProfileClassic.Name:
		return ProfileClassic, true
	}
	return ThresholdProfile{}, false
}

// CategorizePrice maps a non-negative price onto the four named tiers under
// the given profile. The four tiers partition [0, inf) totally and
// without overlap.
func CategorizePrice(price float64, profile ThresholdProfile) event.PriceCategory {
	if price == 0 {
		return event.PriceFree
	}

	if profile.InclusiveBounds {
		switch {
		case price <= profile.BudgetMax:
			return event.PriceBudget
		case price <= profile.ModerateMax:
			return event.PriceModerate
		default:
			return event.PricePremium
		}
	}

	switch {
	case price < profile.BudgetMax:
		return event.PriceBudget
	case price < profile.ModerateMax:
		return event.PriceModerate
	default:
		return event.PricePremium
	}
}
