package normalize

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// datePatterns pair a locating regexp with the time layout that parses the
// matched text. The order is load-bearing: an ISO-looking string must never
// be reinterpreted by a later, looser pattern, so ISO comes first and the
// datetime split comes last.
var datePatterns = []struct {
	re     *regexp.Regexp
	layout string
}{
	{regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`), "2006-01-02"},
	{regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`), "1/2/2006"},
	{regexp.MustCompile(`\b(January|February|March|April|May|June|July|August|September|October|November|December)\s+(\d{1,2}),?\s+(\d{4})\b`), "January 2 2006"},
	{regexp.MustCompile(`\b(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+(\d{1,2}),?\s+(\d{4})\b`), "Jan 2 2006"},
}

// Date normalizes raw date text to an ISO calendar date (YYYY-MM-DD).
// Patterns are tried in a fixed order and the first one that both matches
// and parses wins. Returns false when nothing parses.
func Date(text string) (string, bool) {
	if text == "" {
		return "", false
	}

	for _, p := range datePatterns {
		match := p.re.FindString(text)
		if match == "" {
			continue
		}
		// Commas are stripped so one layout covers "Jan 2, 2006" and "Jan 2 2006".
		parsed, err := time.Parse(p.layout, strings.ReplaceAll(match, ",", ""))
		if err != nil {
			continue
		}
		return parsed.Format("2006-01-02"), true
	}

	// An ISO datetime carries its date before the separator.
	if idx := strings.Index(text, "T"); idx > 0 {
		if date, ok := Date(text[:idx]); ok {
			return date, true
		}
	}

	return "", false
}

var (
	canonicalTime = regexp.MustCompile(`^\d{2}:\d{2}$`)
	twelveHour    = regexp.MustCompile(`(?i)\b(\d{1,2}):(\d{2})\s*(AM|PM)\b`)
)

// Time normalizes raw time text to 24-hour HH:MM. Already-canonical input
// and daypart tokens (morning/afternoon/evening/night) pass through
// verbatim; only a parseable 12-hour clock is converted.
func Time(text string) string {
	text = strings.TrimSpace(text)
	if text == "" || canonicalTime.MatchString(text) {
		return text
	}

	match := twelveHour.FindStringSubmatch(text)
	if match == nil {
		return text
	}

	hour := 0
	minute := 0
	fmt.Sscanf(match[1], "%d", &hour)
	fmt.Sscanf(match[2], "%d", &minute)

	switch strings.ToUpper(match[3]) {
	case "PM":
		if hour != 12 {
			hour += 12
		}
	case "AM":
		if hour == 12 {
			hour = 0
		}
	}

	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// DisplayTime renders a canonical HH:MM as a 12-hour clock for text
// summaries. Non-canonical input (dayparts, empty) is returned unchanged.
func DisplayTime(hhmm string) string {
	if !canonicalTime.MatchString(hhmm) {
		return hhmm
	}

	hour := 0
	minute := 0
	fmt.Sscanf(hhmm, "%d:%d", &hour, &minute)

	meridiem := "AM"
	if hour >= 12 {
		meridiem = "PM"
	}
	display := hour
	if display > 12 {
		display -= 12
	}
	if display == 0 {
		display = 12
	}

	return fmt.Sprintf("%d:%02d %s", display, minute, meridiem)
}
