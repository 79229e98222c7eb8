package wpharvest

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"sync"
)

// HarvestConfig holds the knobs for a harvest run.
type HarvestConfig struct {
	// PageLimit stops each endpoint's walk once the page counter reaches
	// this value. -1 means unbounded -- the walk runs until the API serves
	// an empty or non-list page.
	PageLimit int

	// StopWords are substrings that disqualify a query URL. A page whose
	// constructed URL contains any of them is skipped without fetching.
	StopWords []string

	// Endpoints are the WordPress document types to collect. Defaults to
	// DefaultEndpoints when empty.
	Endpoints []string
}

// DefaultHarvestConfig returns an unbounded harvest over the default
// endpoints.
func DefaultHarvestConfig() *HarvestConfig {
	return &HarvestConfig{
		PageLimit: -1,
		Endpoints: DefaultEndpoints,
	}
}

// Harvester walks a WordPress site's paginated search results and collects
// normalized article records.
type Harvester struct {
	fetcher Fetcher
	config  *HarvestConfig
}

// NewHarvester creates a harvester using the given fetcher. A nil config
// gets the defaults.
func NewHarvester(fetcher Fetcher, config *HarvestConfig) *Harvester {
	if config == nil {
		config = DefaultHarvestConfig()
	}
	return &Harvester{fetcher: fetcher, config: config}
}

// Harvest queries the site's search API for the term, one walk per endpoint.
// Endpoints are independent, so each walk runs on its own goroutine; results
// are gathered per endpoint and merged in endpoint order, so output order is
// deterministic: endpoint, then page, then within-page order.
//
// stops is the caller-owned set of already-collected URLs. The harvester
// inserts the URL of every record it emits, and the mutation is visible to
// the caller after return -- carrying the same set across calls is the
// dedup mechanism. A nil stops gets a fresh empty set.
//
// Returns the collected records and a count of articles skipped during the
// pre-skip phase. Per-endpoint failures are logged, never fatal: the worst
// case is an incomplete result set for one endpoint.
func (h *Harvester) Harvest(ctx context.Context, baseURL, term string, stops *StopSet) ([]HarvestRecord, int) {
	if stops == nil {
		stops = NewStopSet()
	}
	endpoints := h.config.Endpoints
	if len(endpoints) == 0 {
		endpoints = DefaultEndpoints
	}

	// One walk per endpoint; indexed results keep merge order stable.
	perEndpoint := make([][]HarvestRecord, len(endpoints))
	perSkipped := make([]int, len(endpoints))

	var wg sync.WaitGroup
	for i, endpoint := range endpoints {
		wg.Add(1)
		go func(i int, endpoint string) {
			defer wg.Done()
			perEndpoint[i], perSkipped[i] = h.harvestEndpoint(ctx, baseURL, term, endpoint, stops)
		}(i, endpoint)
	}
	wg.Wait()

	var results []HarvestRecord
	skipped := 0
	for i := range endpoints {
		results = append(results, perEndpoint[i]...)
		skipped += perSkipped[i]
	}

	log.Printf("INFO: Collected %d responses, %d skipped from %s.", len(results), skipped, baseURL)
	return results, skipped
}

// pageItem is the subset of a WordPress search result item we care about.
type pageItem struct {
	Date    string   `json:"date"`
	Link    string   `json:"link"`
	Content rendered `json:"content"`
	Title   rendered `json:"title"`
}

// rendered matches WordPress's {"rendered": "..."} wrapper.
type rendered struct {
	Rendered string `json:"rendered"`
}

// harvestEndpoint walks one endpoint's result pages. Returns the records
// collected and the number of articles skipped before fetching started.
func (h *Harvester) harvestEndpoint(ctx context.Context, baseURL, term, endpoint string, stops *StopSet) ([]HarvestRecord, int) {
	var results []HarvestRecord
	skipped := 0

	// Pre-skip phase: advance past pages whose query URL is already in the
	// stop set or contains a stop word. No network traffic here -- the
	// check runs against the constructed URL string only. Note the stop-set
	// half of this check compares query URLs against collected article
	// URLs, so it rarely fires; the stop-word half is the one doing work.
	page := 1
	url := BuildURL(baseURL, term, page, endpoint)
	for (h.config.PageLimit == -1 || page < h.config.PageLimit) &&
		(stops.Contains(url) || containsStopWord(url, h.config.StopWords)) {
		page++
		skipped += ArticlesPerPage
		url = BuildURL(baseURL, term, page, endpoint)
	}

	for h.config.PageLimit == -1 || page < h.config.PageLimit {
		url = BuildURL(baseURL, term, page, endpoint)

		body, err := h.fetcher.Fetch(ctx, url)
		if err != nil {
			// A failed fetch ends this endpoint's walk; other endpoints
			// and already-collected records are unaffected.
			log.Printf("WARN: Fetch failed for %s: %v", url, err)
			break
		}

		var items []pageItem
		if err := json.Unmarshal([]byte(body), &items); err != nil {
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) {
				// Valid JSON but not a list: the API's way of saying
				// there are no more pages. Not an error.
				log.Printf("INFO: Out of pages or no content at %s.", url)
				page++
				break
			}
			log.Printf("WARN: Could not decode JSON response from %s.", url)
			break
		}

		// The fetch and decode succeeded, so the page counts even when it
		// turns out to be the empty end-of-results page.
		page++

		if len(items) == 0 {
			log.Printf("INFO: Out of pages or no content at %s.", url)
			break
		}

		for _, item := range items {
			results = append(results, HarvestRecord{
				PubDate:           ParseDate(item.Date),
				ContentUnscrubbed: item.Content.Rendered,
				Title:             item.Title.Rendered,
				URL:               item.Link,
			})
			stops.Add(item.Link)
		}
	}

	return results, skipped
}

// containsStopWord reports whether the URL contains any stop word as a
// substring.
func containsStopWord(url string, stopWords []string) bool {
	for _, w := range stopWords {
		if strings.Contains(url, w) {
			return true
		}
	}
	return false
}
