package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/pevans/wpharvest"
	"github.com/pevans/wpharvest/config"
)

func handleProbe(configPath string, args []string) {
	fs := flag.NewFlagSet("probe", flag.ExitOnError)
	useBrowser := fs.Bool("browser", false, "Fetch through a headless browser")
	fs.Parse(args)

	if len(fs.Args()) < 1 {
		fmt.Fprintln(os.Stderr, "Error: site URL is required")
		os.Exit(1)
	}
	siteURL := fs.Args()[0]

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	fetcher := newFetcher(cfg, *useBrowser)
	ctx := context.Background()

	if wpharvest.APIAvailable(ctx, fetcher, siteURL, cfg.Endpoints) {
		fmt.Printf("Search-capable Wordpress API available at %s\n", siteURL)
		return
	}

	// The declared API root sometimes lives elsewhere; check the homepage
	// link tag before giving up entirely.
	apiRoot, err := wpharvest.DiscoverAPIRoot(ctx, fetcher, siteURL)
	switch {
	case errors.Is(err, wpharvest.ErrNoAPILink):
		fmt.Printf("No Wordpress API found at %s\n", siteURL)
	case err != nil:
		fmt.Printf("No search-capable API at %s (discovery failed: %v)\n", siteURL, err)
	default:
		fmt.Printf("No search-capable API at %s, but the site advertises a REST root at %s\n", siteURL, apiRoot)
	}
	os.Exit(1)
}
