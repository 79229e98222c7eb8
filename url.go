package wpharvest

import (
	"fmt"
	"strings"
)

const (
	// APISuffix is appended to a site URL to reach the WordPress REST API.
	APISuffix = "wp-json/wp/v2"

	// ArticlesPerPage is the number of articles in one page of API results.
	ArticlesPerPage = 10
)

// DefaultEndpoints lists the WordPress document types collected when the
// caller doesn't specify any.
var DefaultEndpoints = []string{"pages", "posts"}

// BuildURL creates a query URL for a WordPress API search. The base URL is
// normalized by trimming whitespace and any trailing "/" or "?" characters.
// The term is passed through as-is; encoding it is the caller's
// responsibility. sentence=1 requests phrase-level rather than token-level
// matching.
func BuildURL(baseURL, term string, page int, endpoint string) string {
	return fmt.Sprintf(
		"%s/%s/%s?search=%s&sentence=1&page=%d",
		normalizeBase(baseURL), APISuffix, endpoint, term, page,
	)
}

// normalizeBase strips whitespace and trailing "/" and "?" from a site URL.
func normalizeBase(baseURL string) string {
	return strings.TrimRight(strings.TrimSpace(baseURL), "/?")
}
