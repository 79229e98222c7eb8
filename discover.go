package wpharvest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// apiLinkRel is the rel value WordPress uses to advertise its REST API root
// in page HTML.
const apiLinkRel = "https://api.w.org/"

// ErrNoAPILink indicates the site's HTML doesn't advertise a REST API root.
var ErrNoAPILink = errors.New("no REST API link found in page HTML")

// DiscoverAPIRoot fetches a site's homepage and extracts the REST API root
// advertised in its <link rel="https://api.w.org/"> tag. This finds sites
// whose API lives somewhere other than <base>/wp-json, and is a cheap
// pre-check before the full probe.
func DiscoverAPIRoot(ctx context.Context, fetcher Fetcher, siteURL string) (string, error) {
	body, err := fetcher.Fetch(ctx, siteURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", siteURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML from %s: %w", siteURL, err)
	}

	href, ok := doc.Find(`link[rel="` + apiLinkRel + `"]`).First().Attr("href")
	if !ok || href == "" {
		return "", ErrNoAPILink
	}

	return strings.TrimRight(href, "/"), nil
}
