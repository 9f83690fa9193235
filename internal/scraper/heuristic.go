package scraper

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/technical-communicator/central-florida-events/internal/event"
	"github.com/technical-communicator/central-florida-events/internal/logger"
	"github.com/technical-communicator/central-florida-events/internal/normalize"
)

// maxContainers caps how many candidate containers one page contributes.
const maxContainers = 20

// minDescriptionLen filters out short labels masquerading as descriptions.
const minDescriptionLen = 50

// containerPatterns is the ordered fallback list for locating event
// containers. The first pattern matching at least one element wins and
// later patterns are not tried.
var containerPatterns = []struct {
	name    string
	matches func(*goquery.Selection) bool
}{
	{"class~event", classMatcher(regexp.MustCompile(`(?i)event`))},
	{"class~tm-event", classMatcher(regexp.MustCompile(`(?i)tm-event`))},
	{"class~tribe-event", classMatcher(regexp.MustCompile(`(?i)tribe-event`))},
	{"class~post", classMatcher(regexp.MustCompile(`(?i)post`))},
	{"class~entry", classMatcher(regexp.MustCompile(`(?i)entry`))},
	{"itemtype~Event", func(s *goquery.Selection) bool {
		return regexp.MustCompile(`(?i)Event`).MatchString(s.AttrOr("itemtype", ""))
	}},
}

func classMatcher(re *regexp.Regexp) func(*goquery.Selection) bool {
	return func(s *goquery.Selection) bool {
		return re.MatchString(s.AttrOr("class", ""))
	}
}

var (
	titleClassPattern = regexp.MustCompile(`(?i)title|name`)
	dateClassPattern  = regexp.MustCompile(`(?i)date|when`)
	timeClassPattern  = regexp.MustCompile(`(?i)time`)
	priceClassPattern = regexp.MustCompile(`(?i)price|cost|ticket|admission`)
	descClassPattern  = regexp.MustCompile(`(?i)description|excerpt|content|summary`)
	tagClassPattern   = regexp.MustCompile(`(?i)tag|genre|category`)
	dateTextPattern   = regexp.MustCompile(`(?i)\b(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec|Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday)\b`)
	freeWordPattern   = regexp.MustCompile(`(?i)\bfree\b`)
)

// extractHeuristic scans generic markup for event containers. It runs only
// when the structured-data pass yields nothing for a page. Containers
// without a title or without a normalizable date are discarded.
func extractHeuristic(doc *goquery.Document, page Page) []event.RawExtraction {
	containers := findContainers(doc)
	if containers == nil {
		logger.Debug("No event containers matched", logger.Fields{"url": page.URL})
		return nil
	}

	var raws []event.RawExtraction

	containers.EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if i >= maxContainers {
			return false
		}

		raw, ok := extractContainer(sel, page)
		if !ok {
			logger.IncrCounter("extract.heuristic.containers_discarded")
			return true
		}

		raws = append(raws, raw)
		return true
	})

	return raws
}

// findContainers applies the ordered container patterns, returning the
// matches of the first pattern that finds anything. A match that wraps
// other matches (a list element classed like its children) is dropped;
// the records live in the innermost containers.
func findContainers(doc *goquery.Document) *goquery.Selection {
	candidates := doc.Find("article, div, li, section")

	for _, pattern := range containerPatterns {
		matched := candidates.FilterFunction(func(i int, s *goquery.Selection) bool {
			return pattern.matches(s)
		})
		if matched.Length() == 0 {
			continue
		}

		return matched.FilterFunction(func(i int, s *goquery.Selection) bool {
			inner := s.Find("article, div, li, section").FilterFunction(func(j int, d *goquery.Selection) bool {
				return pattern.matches(d)
			})
			return inner.Length() == 0
		})
	}

	return nil
}

// extractContainer performs priority-ordered sub-extraction on one
// candidate container.
func extractContainer(sel *goquery.Selection, page Page) (event.RawExtraction, bool) {
	title, titleLink := extractTitle(sel)
	if title == "" {
		return event.RawExtraction{}, false
	}

	dateText := extractDateText(sel)
	if _, ok := normalize.Date(dateText); !ok {
		// The pipeline requires a date to proceed.
		return event.RawExtraction{}, false
	}

	raw := event.RawExtraction{
		Name:         title,
		DateText:     dateText,
		TimeText:     classText(sel, "time, span", timeClassPattern),
		PriceText:    extractPriceText(sel),
		VenueHint:    page.Venue,
		LocationHint: page.Location,
		TagHints:     extractTags(sel),
	}

	raw.DescriptionText = extractDescription(sel)

	link := titleLink
	if link == "" {
		link = sel.Find("a[href]").First().AttrOr("href", "")
	}
	raw.Link = resolveLink(page.URL, link)

	return raw, true
}

// extractTitle locates the container's title by priority: a heading or
// link whose class hints title/name, then any heading, strong text, or
// titled link.
func extractTitle(sel *goquery.Selection) (title, href string) {
	candidate := sel.Find("h1, h2, h3, h4, a").FilterFunction(func(i int, s *goquery.Selection) bool {
		return titleClassPattern.MatchString(s.AttrOr("class", ""))
	}).First()

	if candidate.Length() == 0 {
		candidate = sel.Find("h1, h2, h3, h4, strong").First()
	}
	if candidate.Length() == 0 {
		return "", ""
	}

	title = strings.TrimSpace(candidate.Text())

	if candidate.Is("a") {
		href = candidate.AttrOr("href", "")
	} else if link := candidate.Find("a[href]").First(); link.Length() > 0 {
		href = link.AttrOr("href", "")
	}

	return title, href
}

// extractDateText locates date text by priority: a machine-readable
// datetime attribute, then visible text of date-classed elements, then any
// descendant text carrying a month or weekday token.
func extractDateText(sel *goquery.Selection) string {
	if dt := sel.Find("time[datetime]").First().AttrOr("datetime", ""); dt != "" {
		return dt
	}

	if text := classText(sel, "time, span, div", dateClassPattern); text != "" {
		return text
	}

	var fallback string
	sel.Find("span, div, p").EachWithBreak(func(i int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if dateTextPattern.MatchString(text) {
			fallback = text
			return false
		}
		return true
	})

	return fallback
}

// extractPriceText locates price text: price-classed elements first, then
// any descendant text containing a currency symbol or the word "free".
func extractPriceText(sel *goquery.Selection) string {
	if text := classText(sel, "span, div, p", priceClassPattern); text != "" {
		return text
	}

	var fallback string
	sel.Find("span, div, p").EachWithBreak(func(i int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if strings.Contains(text, "$") || freeWordPattern.MatchString(text) {
			fallback = text
			return false
		}
		return true
	})

	return fallback
}

// extractDescription prefers description-classed elements, then the first
// paragraph long enough to not be a label.
func extractDescription(sel *goquery.Selection) string {
	if text := classText(sel, "div, p", descClassPattern); text != "" {
		return truncate(text, descriptionExtractLimit)
	}

	var fallback string
	sel.Find("p").EachWithBreak(func(i int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if len(text) >= minDescriptionLen {
			fallback = text
			return false
		}
		return true
	})

	return truncate(fallback, descriptionExtractLimit)
}

// extractTags collects genre/category labels from tag-classed elements.
func extractTags(sel *goquery.Selection) []string {
	var tags []string
	sel.Find("a, span").FilterFunction(func(i int, s *goquery.Selection) bool {
		return tagClassPattern.MatchString(s.AttrOr("class", ""))
	}).Each(func(i int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			tags = append(tags, text)
		}
	})
	return tags
}

// classText returns the trimmed text of the first element matching the
// selector whose class attribute matches the pattern.
func classText(sel *goquery.Selection, selector string, pattern *regexp.Regexp) string {
	found := sel.Find(selector).FilterFunction(func(i int, s *goquery.Selection) bool {
		return pattern.MatchString(s.AttrOr("class", ""))
	}).First()

	if found.Length() == 0 {
		return ""
	}
	return strings.TrimSpace(found.Text())
}

// resolveLink resolves href against the page URL, tolerating relative links.
func resolveLink(pageURL, href string) string {
	if href == "" {
		return pageURL
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return pageURL
	}

	return base.ResolveReference(ref).String()
}
