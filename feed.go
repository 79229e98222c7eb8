package wpharvest

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// FeedSuffix is appended to a site URL to reach its syndication feed.
// WordPress serves RSS here even on sites whose REST API is locked down.
const FeedSuffix = "feed"

// HarvestFeed collects matching articles from a site's RSS/Atom feed. This
// is the fallback path for sites where APIAvailable returns false: the feed
// carries no search parameter, so the term filter runs locally against each
// item's title and content (case-insensitive substring; an empty term
// matches everything).
//
// Deduplication works the same as the API path: items whose link is already
// in stops are skipped, and every emitted record's URL is added to stops.
func HarvestFeed(ctx context.Context, fetcher Fetcher, baseURL, term string, stops *StopSet) ([]HarvestRecord, error) {
	if stops == nil {
		stops = NewStopSet()
	}

	feedURL := normalizeBase(baseURL) + "/" + FeedSuffix
	body, err := fetcher.Fetch(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed %s: %w", feedURL, err)
	}

	feed, err := gofeed.NewParser().ParseString(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %w", feedURL, err)
	}

	var results []HarvestRecord
	for _, item := range feed.Items {
		if !matchesTerm(item, term) {
			continue
		}
		if stops.Contains(item.Link) {
			continue
		}

		content := item.Content
		if content == "" {
			content = item.Description
		}

		var pubDate *time.Time
		if item.PublishedParsed != nil {
			pubDate = item.PublishedParsed
		} else {
			pubDate = ParseDate(item.Published)
		}

		results = append(results, HarvestRecord{
			PubDate:           pubDate,
			ContentUnscrubbed: content,
			Title:             item.Title,
			URL:               item.Link,
		})
		stops.Add(item.Link)
	}

	log.Printf("INFO: Collected %d responses from feed at %s.", len(results), feedURL)
	return results, nil
}

// matchesTerm reports whether the feed item's title or content contains the
// term, ignoring case. An empty term matches everything.
func matchesTerm(item *gofeed.Item, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(item.Title), term) ||
		strings.Contains(strings.ToLower(item.Content), term) ||
		strings.Contains(strings.ToLower(item.Description), term)
}
