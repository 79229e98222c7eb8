package wpharvest

import "time"

// HarvestRecord represents a single article collected from a WordPress site.
// Records are immutable once created; ownership passes to the caller with the
// returned slice.
type HarvestRecord struct {
	// PubDate is the article's publish date, or nil when the date string
	// could not be parsed.
	PubDate *time.Time `json:"pub_date"`

	// ContentUnscrubbed is the raw rendered HTML content, untouched. Any
	// scrubbing or sanitizing is downstream work.
	ContentUnscrubbed string `json:"content_unscrubbed"`

	Title string `json:"title"`
	URL   string `json:"url"`
}
