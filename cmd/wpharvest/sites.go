package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/pevans/wpharvest/store"
)

func handleSitesCommand(action, dbPath string, args []string) {
	db, err := store.New(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open store: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	switch action {
	case "list":
		handleSitesList(db)
	case "add":
		handleSitesAdd(db, args)
	case "delete":
		handleSitesDelete(db, args)
	case "help", "--help", "-h":
		printSitesUsage()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown sites command: %s\n\n", action)
		printSitesUsage()
		os.Exit(1)
	}
}

func handleSitesList(db *store.Store) {
	sites, err := db.ListSites()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to list sites: %v\n", err)
		os.Exit(1)
	}

	if len(sites) == 0 {
		fmt.Println("No sites registered.")
		return
	}

	fmt.Printf("%-36s  %-24s  %s\n", "ID", "NAME", "URL")
	for _, site := range sites {
		fmt.Printf("%-36s  %-24s  %s\n", site.SiteID, site.Name, site.URL)
	}
}

func handleSitesAdd(db *store.Store, args []string) {
	fs := flag.NewFlagSet("sites add", flag.ExitOnError)
	name := fs.String("name", "", "Display name for the site (required)")
	fs.Parse(args)

	if *name == "" || len(fs.Args()) < 1 {
		fmt.Fprintln(os.Stderr, "Error: usage: wpharvest sites add -name <name> <url>")
		os.Exit(1)
	}

	site, err := db.CreateSite(*name, fs.Args()[0])
	if errors.Is(err, store.ErrDuplicateURL) {
		fmt.Fprintln(os.Stderr, "Error: a site with this URL already exists")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to add site: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Added site %s (%s)\n", site.Name, site.SiteID)
}

func handleSitesDelete(db *store.Store, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: usage: wpharvest sites delete <site-id>")
		os.Exit(1)
	}

	siteID, err := uuid.Parse(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid site ID: %v\n", err)
		os.Exit(1)
	}

	err = db.DeleteSite(siteID)
	if errors.Is(err, store.ErrSiteNotFound) {
		fmt.Fprintln(os.Stderr, "Error: site not found")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to delete site: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Site deleted.")
}
