package wpharvest

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// BrowserFetcher fetches URLs through a headless Chrome instance. Some sites
// front their API with bot checks that block plain HTTP clients; driving a
// real browser gets past most of them at the cost of speed.
type BrowserFetcher struct {
	timeout time.Duration
}

// NewBrowserFetcher creates a browser-backed fetcher with the given per-fetch
// timeout. A zero or negative timeout falls back to DefaultFetchTimeout.
func NewBrowserFetcher(timeout time.Duration) *BrowserFetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &BrowserFetcher{timeout: timeout}
}

// Fetch navigates a headless browser to the URL and returns the rendered body
// text. For JSON endpoints the body text is the JSON payload itself.
func (f *BrowserFetcher) Fetch(ctx context.Context, url string) (string, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(
		ctx, chromedp.DefaultExecAllocatorOptions[:]...,
	)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	fetchCtx, cancelFetch := context.WithTimeout(browserCtx, f.timeout)
	defer cancelFetch()

	var body string
	err := chromedp.Run(fetchCtx,
		chromedp.Navigate(url),
		chromedp.Text("body", &body, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("browser fetch failed: %w", err)
	}

	return body, nil
}
