package scraper

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func loadFixture(t *testing.T, name string) *goquery.Document {
	t.Helper()

	data, err := os.ReadFile("../../testdata/fixtures/" + name)
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}

	return doc
}

func testPage() Page {
	return Page{
		Venue:    "Will's Pub",
		URL:      "https://willspub.org/tm-venue/wills-pub/",
		Location: "1042 N Mills Ave, Orlando, FL 32803",
	}
}

func TestExtractStructured(t *testing.T) {
	doc := loadFixture(t, "jsonld_events.html")

	raws := extractStructured(doc, testPage())
	if len(raws) != 3 {
		t.Fatalf("expected 3 raw extractions, got %d", len(raws))
	}

	jazz := raws[0]
	if jazz.Name != "Jazz Night" {
		t.Errorf("expected Jazz Night, got %q", jazz.Name)
	}
	if jazz.DateText != "2025-03-01" {
		t.Errorf("expected date text 2025-03-01, got %q", jazz.DateText)
	}
	if jazz.TimeText != "20:00" {
		t.Errorf("expected time text 20:00, got %q", jazz.TimeText)
	}
	if jazz.PriceText != "15" {
		t.Errorf("expected price text 15, got %q", jazz.PriceText)
	}
	if jazz.Artists != "The Mills Ave Quartet" {
		t.Errorf("expected performer name, got %q", jazz.Artists)
	}
	if jazz.Link != "https://willspub.org/event/jazz-night/" {
		t.Errorf("unexpected link %q", jazz.Link)
	}

	flea := raws[1]
	if flea.DateText != "2025-03-08" || flea.TimeText != "" {
		t.Errorf("date-only startDate should not produce a time, got %q / %q", flea.DateText, flea.TimeText)
	}
	if flea.PriceText != "5" {
		t.Errorf("expected first offer price 5, got %q", flea.PriceText)
	}
	if flea.Artists != "DJ Static, The Locals" {
		t.Errorf("expected joined performer names, got %q", flea.Artists)
	}

	gala := raws[2]
	if gala.PriceText != "75" {
		t.Errorf("expected lowPrice fallback 75, got %q", gala.PriceText)
	}
	if gala.VenueHint != "The Grand Hall" {
		t.Errorf("expected location name to override venue hint, got %q", gala.VenueHint)
	}
}

// A malformed metadata block must not abort its siblings.
func TestExtractStructuredSkipsMalformedBlocks(t *testing.T) {
	html := `<html><head>
	<script type="application/ld+json">{broken</script>
	<script type="application/ld+json">{"@type":"Event","name":"Survivor","startDate":"2025-01-01"}</script>
	</head><body></body></html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}

	raws := extractStructured(doc, testPage())
	if len(raws) != 1 || raws[0].Name != "Survivor" {
		t.Fatalf("expected the valid sibling to survive, got %+v", raws)
	}
}

func TestExtractHeuristic(t *testing.T) {
	doc := loadFixture(t, "heuristic_events.html")
	page := Page{
		Venue:    "The Plaza Live",
		URL:      "https://plazaliveorlando.com/events/",
		Location: "425 N Bumby Ave, Orlando, FL 32803",
	}

	raws := extractHeuristic(doc, page)
	if len(raws) != 2 {
		t.Fatalf("expected 2 raw extractions (no-title and no-date containers discarded), got %d", len(raws))
	}

	soul := raws[0]
	if soul.Name != "Soul Revue" {
		t.Errorf("expected Soul Revue, got %q", soul.Name)
	}
	if soul.DateText != "2025-05-10T20:00:00" {
		t.Errorf("expected machine-readable datetime attribute, got %q", soul.DateText)
	}
	if soul.TimeText != "8:00 PM" {
		t.Errorf("expected visible time text, got %q", soul.TimeText)
	}
	if soul.PriceText != "$32.50" {
		t.Errorf("expected price-classed text, got %q", soul.PriceText)
	}
	if soul.Link != "https://plazaliveorlando.com/event/soul-revue" {
		t.Errorf("expected relative link resolved against base, got %q", soul.Link)
	}
	if len(soul.TagHints) != 2 || soul.TagHints[0] != "Soul" || soul.TagHints[1] != "Funk" {
		t.Errorf("expected tag hints [Soul Funk], got %v", soul.TagHints)
	}
	if !strings.Contains(soul.DescriptionText, "soul revue") {
		t.Errorf("expected description text, got %q", soul.DescriptionText)
	}

	comedy := raws[1]
	if comedy.Name != "Community Comedy Open Mic" {
		t.Errorf("expected comedy title, got %q", comedy.Name)
	}
	if comedy.DateText != "June 2, 2025" {
		t.Errorf("expected visible date text fallback, got %q", comedy.DateText)
	}
	if comedy.PriceText != "Free" {
		t.Errorf(`expected "Free" via currency/free-word scan, got %q`, comedy.PriceText)
	}
	if comedy.DescriptionText != "" {
		t.Errorf("short labels must not become descriptions, got %q", comedy.DescriptionText)
	}
	if comedy.Link != page.URL {
		t.Errorf("linkless container should fall back to the page URL, got %q", comedy.Link)
	}
}

// The first container pattern that matches wins; later ones are not tried.
func TestFindContainersOrderedFallback(t *testing.T) {
	html := `<html><body>
	<div class="tribe-event">tribe</div>
	<div class="post">post</div>
	</body></html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}

	containers := findContainers(doc)
	if containers == nil {
		t.Fatal("expected containers")
	}
	// "event" appears as a substring of class "tribe-event", so the first
	// pattern matches exactly that one container and "post" is never tried.
	if containers.Length() != 1 {
		t.Fatalf("expected 1 container from the winning pattern, got %d", containers.Length())
	}
	if text := strings.TrimSpace(containers.First().Text()); text != "tribe" {
		t.Errorf("expected the tribe-event container, got %q", text)
	}
}

func TestFindContainersItemtypeFallback(t *testing.T) {
	html := `<html><body>
	<div itemtype="https://schema.org/Event">structured</div>
	<div class="unrelated">nope</div>
	</body></html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}

	containers := findContainers(doc)
	if containers == nil || containers.Length() != 1 {
		t.Fatalf("expected the itemtype pattern to match one container, got %v", containers)
	}
}

func TestFindContainersSkipsListWrappers(t *testing.T) {
	// The wrapper's class also matches the "event" pattern; only its
	// children carry records and the wrapper must not become a duplicate.
	html := `<html><body>
	<div class="events-list">
		<article class="event-item"><h3 class="event-title">First Show</h3><time datetime="2025-06-01">June 1</time></article>
		<article class="event-item"><h3 class="event-title">Second Show</h3><time datetime="2025-06-02">June 2</time></article>
	</div>
	</body></html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}

	containers := findContainers(doc)
	if containers == nil || containers.Length() != 2 {
		t.Fatalf("expected the 2 inner containers, got %v", containers)
	}

	raws := extractHeuristic(doc, testPage())
	if len(raws) != 2 {
		t.Fatalf("expected 2 records, got %d", len(raws))
	}
	if raws[0].Name != "First Show" || raws[1].Name != "Second Show" {
		t.Errorf("records = %q, %q", raws[0].Name, raws[1].Name)
	}
}

func TestExtractHeuristicContainerLimit(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<html><body>")
	for i := 0; i < 30; i++ {
		sb.WriteString(`<article class="event-item"><h3 class="event-title">Show ` +
			fmt.Sprintf("%d", i) + `</h3><time datetime="2025-07-01">July 1</time></article>`)
	}
	sb.WriteString("</body></html>")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatal(err)
	}

	raws := extractHeuristic(doc, testPage())
	if len(raws) != maxContainers {
		t.Fatalf("expected extraction capped at %d containers, got %d", maxContainers, len(raws))
	}
}

type stubFetcher struct {
	docs map[string]*goquery.Document
}

func (f *stubFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	doc, ok := f.docs[url]
	if !ok {
		return nil, fmt.Errorf("no document for %s", url)
	}
	return doc, nil
}

func TestScrapeContinuesPastFailedPages(t *testing.T) {
	source, ok := Lookup("wills-pub")
	if !ok {
		t.Fatal("wills-pub source missing from registry")
	}

	doc := loadFixture(t, "jsonld_events.html")
	fetcher := &stubFetcher{docs: map[string]*goquery.Document{
		// Only the first of the three venue pages resolves.
		source.Pages[0].URL: doc,
	}}

	s := New(source, fetcher)
	raws, err := s.Scrape(context.Background())
	if err != nil {
		t.Fatalf("Scrape returned error: %v", err)
	}

	if len(raws) != 3 {
		t.Fatalf("expected 3 records from the surviving page, got %d", len(raws))
	}
}

func TestRegistry(t *testing.T) {
	if _, ok := Lookup("no-such-source"); ok {
		t.Error("Lookup should fail for unknown source names")
	}

	names := Names()
	if len(names) != len(Sources()) {
		t.Fatalf("Names() returned %d entries, want %d", len(names), len(Sources()))
	}

	for _, key := range []string{"wills-pub", "plaza-live", "beacham-social", "orange-county-parks", "mycfl-family"} {
		if _, ok := Lookup(key); !ok {
			t.Errorf("expected source %q in registry", key)
		}
	}
}
