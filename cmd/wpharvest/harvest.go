package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pevans/wpharvest"
	"github.com/pevans/wpharvest/config"
	"github.com/pevans/wpharvest/store"
)

func handleHarvest(dbPath, configPath string, args []string) {
	fs := flag.NewFlagSet("harvest", flag.ExitOnError)
	term := fs.String("term", "", "Search term (required when a site URL is given)")
	limit := fs.Int("limit", 0, "Page limit per endpoint (overrides config; -1 for unbounded)")
	useBrowser := fs.Bool("browser", false, "Fetch through a headless browser")
	noFallback := fs.Bool("no-fallback", false, "Skip the RSS feed fallback when the API is unavailable")
	fs.Parse(args)

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *limit != 0 {
		cfg.PageLimit = *limit
	}

	// With a site URL the term flag drives a single run; without one, every
	// configured site is harvested for every configured term.
	type job struct{ site, term string }
	var jobs []job
	if len(fs.Args()) > 0 {
		if *term == "" {
			fmt.Fprintln(os.Stderr, "Error: -term is required")
			fs.Usage()
			os.Exit(1)
		}
		jobs = append(jobs, job{site: fs.Args()[0], term: *term})
	} else {
		if len(cfg.Sites) == 0 || len(cfg.Terms) == 0 {
			fmt.Fprintln(os.Stderr, "Error: no site URL given and no sites/terms configured")
			os.Exit(1)
		}
		for _, site := range cfg.Sites {
			for _, t := range cfg.Terms {
				jobs = append(jobs, job{site: site.URL, term: t})
			}
		}
	}

	db, err := store.New(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open store: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	stops, err := db.LoadStops()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load stop URLs: %v\n", err)
		os.Exit(1)
	}

	fetcher := newFetcher(cfg, *useBrowser)
	ctx := context.Background()

	collected, saved, skipped := 0, 0, 0
	for _, j := range jobs {
		records, jobSkipped := runHarvest(ctx, fetcher, cfg, j.site, j.term, *noFallback, stops)

		jobSaved, err := db.SaveRecords(j.site, j.term, records)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to save records: %v\n", err)
			os.Exit(1)
		}

		collected += len(records)
		saved += jobSaved
		skipped += jobSkipped
	}

	if err := db.SaveStops(stops); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to save stop URLs: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("Harvest completed:")
	fmt.Printf("  Records collected: %d\n", collected)
	fmt.Printf("  Records saved:     %d\n", saved)
	fmt.Printf("  Articles skipped:  %d\n", skipped)
	fmt.Printf("  Stop URLs known:   %d\n", stops.Len())
}

// runHarvest collects one site/term pair, falling back to the site's RSS feed
// when the API isn't search-capable. Failures are reported and skipped so one
// bad site doesn't sink a configured batch.
func runHarvest(ctx context.Context, fetcher wpharvest.Fetcher, cfg *config.Config, siteURL, term string, noFallback bool, stops *wpharvest.StopSet) ([]wpharvest.HarvestRecord, int) {
	if wpharvest.APIAvailable(ctx, fetcher, siteURL, cfg.Endpoints) {
		harvester := wpharvest.NewHarvester(fetcher, &wpharvest.HarvestConfig{
			PageLimit: cfg.PageLimit,
			StopWords: cfg.StopWords,
			Endpoints: cfg.Endpoints,
		})
		return harvester.Harvest(ctx, siteURL, term, stops)
	}

	if noFallback {
		fmt.Fprintf(os.Stderr, "Warning: no search-capable API at %s, skipping\n", siteURL)
		return nil, 0
	}

	fmt.Printf("No search-capable API at %s; falling back to the RSS feed.\n", siteURL)
	records, err := wpharvest.HarvestFeed(ctx, fetcher, siteURL, term, stops)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: feed fallback failed for %s: %v\n", siteURL, err)
		return nil, 0
	}
	return records, 0
}

// newFetcher picks the transport from flags and config.
func newFetcher(cfg *config.Config, useBrowser bool) wpharvest.Fetcher {
	if useBrowser || cfg.Fetcher == "browser" {
		return wpharvest.NewBrowserFetcher(cfg.FetchTimeout())
	}
	return wpharvest.NewHTTPFetcher(cfg.FetchTimeout())
}
