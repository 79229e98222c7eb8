package wpharvest

import (
	"context"
	"encoding/json"
	"log"
)

// apiDescription is the root document a WordPress REST API serves at
// /wp-json/wp/v2, trimmed to the parts the probe inspects.
type apiDescription struct {
	Routes map[string]apiRoute `json:"routes"`
}

type apiRoute struct {
	Methods   []string      `json:"methods"`
	Endpoints []apiEndpoint `json:"endpoints"`
}

type apiEndpoint struct {
	Methods []string                   `json:"methods"`
	Args    map[string]json.RawMessage `json:"args"`
}

// APIAvailable checks, without scraping, whether a site exposes a
// search-capable WordPress REST API for every requested endpoint. It fetches
// the API description document and requires each endpoint's route to list
// GET among its methods and to declare a "search" argument on its first GET
// sub-endpoint.
//
// Any failure -- network, decode, missing route, missing argument -- means
// "no API found" and returns false; the probe never surfaces an error.
// A nil endpoints slice checks DefaultEndpoints.
func APIAvailable(ctx context.Context, fetcher Fetcher, baseURL string, endpoints []string) bool {
	if len(endpoints) == 0 {
		endpoints = DefaultEndpoints
	}

	apiURL := normalizeBase(baseURL) + "/" + APISuffix
	body, err := fetcher.Fetch(ctx, apiURL)
	if err != nil {
		log.Printf("INFO: No Wordpress API found for %s: %v", baseURL, err)
		return false
	}

	var desc apiDescription
	if err := json.Unmarshal([]byte(body), &desc); err != nil {
		log.Printf("INFO: No Wordpress API found for %s.", baseURL)
		return false
	}

	for _, endpoint := range endpoints {
		route, ok := desc.Routes["/wp/v2/"+endpoint]
		if !ok || !containsString(route.Methods, "GET") {
			log.Printf("INFO: No Wordpress API found for %s.", baseURL)
			return false
		}

		if !searchAvailable(route) {
			log.Printf("INFO: Search not available for Wordpress API at %s.", baseURL)
			return false
		}
	}

	log.Printf("INFO: Found Wordpress API at %s.", apiURL)
	return true
}

// searchAvailable reports whether the route's first GET sub-endpoint declares
// a "search" argument.
func searchAvailable(route apiRoute) bool {
	for _, e := range route.Endpoints {
		if !containsString(e.Methods, "GET") {
			continue
		}
		_, ok := e.Args["search"]
		return ok
	}
	// No GET sub-endpoint at all.
	return false
}

// containsString reports whether the slice contains the string.
func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
