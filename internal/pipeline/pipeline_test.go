package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/technical-communicator/central-florida-events/internal/event"
	"github.com/technical-communicator/central-florida-events/internal/normalize"
	"github.com/technical-communicator/central-florida-events/internal/scraper"
)

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

var fixedClock = func() time.Time {
	return time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
}

func testSources() []scraper.Source {
	return []scraper.Source{
		{
			Key:          "test-pub",
			Name:         "Test Pub",
			Category:     event.CategoryMusic,
			Capacity:     event.CapacityMedium,
			VenueType:    "indoor",
			DefaultTime:  "19:00",
			DefaultPrice: "$10",
			BaseTags:     []string{"Music"},
			Pages: []scraper.Page{
				{Venue: "Test Pub", URL: "https://test-pub.example/events", Location: "Orlando, FL"},
			},
		},
		{
			Key:      "down-venue",
			Name:     "Down Venue",
			Category: event.CategoryMusic,
			Capacity: event.CapacityLarge,
			Pages: []scraper.Page{
				{Venue: "Down Venue", URL: "https://down.example/events"},
			},
		},
	}
}

func TestRunEndToEnd(t *testing.T) {
	doc := loadFixture(t, "jsonld_events.html")
	fetcher := &stubFetcher{docs: map[string]*goquery.Document{
		"https://test-pub.example/events": doc,
	}}

	p := New(fetcher, Options{
		Profile: normalize.ProfileStandard,
		BaseID:  1000,
		Clock:   fixedClock,
	})

	result, err := p.Run(context.Background(), testSources())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// The fixture carries three event blocks; the failing source adds none.
	if len(result.Events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(result.Events))
	}

	jazz := result.Events[0]
	if jazz.Name != "Jazz Night" {
		t.Fatalf("first event = %q, want Jazz Night", jazz.Name)
	}
	if jazz.ID != 1000 {
		t.Errorf("ID = %d, want 1000", jazz.ID)
	}
	if jazz.Date != "2025-03-01" {
		t.Errorf("Date = %q, want 2025-03-01", jazz.Date)
	}
	if jazz.Time != "20:00" {
		t.Errorf("Time = %q, want 20:00", jazz.Time)
	}
	if jazz.Price != 15 {
		t.Errorf("Price = %v, want 15", jazz.Price)
	}
	if jazz.PriceCategory != event.PriceBudget {
		t.Errorf("PriceCategory = %q, want budget", jazz.PriceCategory)
	}
	if jazz.Status != event.StatusPending {
		t.Errorf("Status = %q, want pending", jazz.Status)
	}

	for i := 1; i < len(result.Events); i++ {
		if result.Events[i].ID != result.Events[i-1].ID+1 {
			t.Errorf("ids not consecutive: %d after %d", result.Events[i].ID, result.Events[i-1].ID)
		}
	}

	if result.Stats.TotalEvents != 3 {
		t.Errorf("Stats.TotalEvents = %d, want 3", result.Stats.TotalEvents)
	}
	if result.Stats.BySource["Test Pub"] != 3 {
		t.Errorf("BySource = %v", result.Stats.BySource)
	}
}

func TestRunDeterministicIDs(t *testing.T) {
	doc := loadFixture(t, "jsonld_events.html")
	fetcher := &stubFetcher{docs: map[string]*goquery.Document{
		"https://test-pub.example/events": doc,
	}}

	opts := Options{Profile: normalize.ProfileStandard, BaseID: 500, Clock: fixedClock}

	first, err := New(fetcher, opts).Run(context.Background(), testSources())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := New(fetcher, opts).Run(context.Background(), testSources())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if len(first.Events) != len(second.Events) {
		t.Fatalf("run sizes differ: %d vs %d", len(first.Events), len(second.Events))
	}
	for i := range first.Events {
		if first.Events[i].ID != second.Events[i].ID {
			t.Errorf("id mismatch at %d: %d vs %d", i, first.Events[i].ID, second.Events[i].ID)
		}
	}
	if first.Events[0].ID != 500 {
		t.Errorf("base id = %d, want 500", first.Events[0].ID)
	}
}

func TestRunUnsetBaseIDUsesDefault(t *testing.T) {
	doc := loadFixture(t, "jsonld_events.html")
	fetcher := &stubFetcher{docs: map[string]*goquery.Document{
		"https://test-pub.example/events": doc,
	}}

	result, err := New(fetcher, Options{Clock: fixedClock}).Run(context.Background(), testSources())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Events) == 0 {
		t.Fatal("expected events")
	}
	if result.Events[0].ID != DefaultBaseID {
		t.Errorf("first id = %d, want %d", result.Events[0].ID, DefaultBaseID)
	}
}

func TestRunEmptySources(t *testing.T) {
	p := New(&stubFetcher{docs: map[string]*goquery.Document{}}, Options{Clock: fixedClock})

	result, err := p.Run(context.Background(), testSources())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Events) != 0 {
		t.Errorf("expected no events, got %d", len(result.Events))
	}
	if result.Stats.TotalEvents != 0 {
		t.Errorf("Stats.TotalEvents = %d", result.Stats.TotalEvents)
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(&stubFetcher{docs: map[string]*goquery.Document{}}, Options{Clock: fixedClock})
	if _, err := p.Run(ctx, testSources()); err == nil {
		t.Error("expected context error")
	}
}
