package main

import (
	"fmt"
	"os"

	"github.com/pevans/wpharvest/config"
)

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	dbPath := getEnv("WPHARVEST_DB", "wpharvest.db")
	configPath := os.Getenv("WPHARVEST_CONFIG")
	if configPath == "" {
		if path, err := config.DefaultPath(); err == nil {
			configPath = path
		}
	}

	subcommand := os.Args[1]

	switch subcommand {
	case "harvest":
		handleHarvest(dbPath, configPath, os.Args[2:])
	case "probe":
		handleProbe(configPath, os.Args[2:])
	case "sites":
		if len(os.Args) < 3 {
			printSitesUsage()
			os.Exit(1)
		}
		handleSitesCommand(os.Args[2], dbPath, os.Args[3:])
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command: %s\n\n", subcommand)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("wpharvest - Wordpress REST API harvester")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  wpharvest <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  harvest    Collect search results from a site's API")
	fmt.Println("  probe      Check whether a site exposes a search-capable API")
	fmt.Println("  sites      Manage registered sites")
	fmt.Println("  help       Show this help message")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  WPHARVEST_DB      Path to results database (default: wpharvest.db)")
	fmt.Println("  WPHARVEST_CONFIG  Path to config file (default: ~/.wpharvest/config.yaml)")
}

func printSitesUsage() {
	fmt.Println("wpharvest sites - Manage registered sites")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  wpharvest sites <action> [arguments]")
	fmt.Println()
	fmt.Println("Actions:")
	fmt.Println("  list       List all sites")
	fmt.Println("  add        Add a new site")
	fmt.Println("  delete     Delete a site")
	fmt.Println("  help       Show this help message")
}
