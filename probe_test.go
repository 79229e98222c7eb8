package wpharvest

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// descDoc builds an API description document from per-route fragments.
func descDoc(routes ...string) string {
	out := `{"routes":{`
	for i, r := range routes {
		if i > 0 {
			out += ","
		}
		out += r
	}
	return out + `}}`
}

// routeJSON builds one route entry with a GET sub-endpoint carrying the
// given args.
func routeJSON(endpoint string, methods []string, subMethods []string, args ...string) string {
	methodsJSON := `[`
	for i, m := range methods {
		if i > 0 {
			methodsJSON += ","
		}
		methodsJSON += fmt.Sprintf("%q", m)
	}
	methodsJSON += `]`

	subMethodsJSON := `[`
	for i, m := range subMethods {
		if i > 0 {
			subMethodsJSON += ","
		}
		subMethodsJSON += fmt.Sprintf("%q", m)
	}
	subMethodsJSON += `]`

	argsJSON := `{`
	for i, a := range args {
		if i > 0 {
			argsJSON += ","
		}
		argsJSON += fmt.Sprintf("%q:{}", a)
	}
	argsJSON += `}`

	return fmt.Sprintf(`"/wp/v2/%s":{"methods":%s,"endpoints":[{"methods":%s,"args":%s}]}`,
		endpoint, methodsJSON, subMethodsJSON, argsJSON)
}

func probeFetcher(apiBody string) *fakeFetcher {
	f := newFakeFetcher()
	f.responses["https://example.com/"+APISuffix] = apiBody
	return f
}

func TestAPIAvailable(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		endpoints []string
		expected  bool
	}{
		{
			name: "both endpoints searchable",
			body: descDoc(
				routeJSON("pages", []string{"GET", "POST"}, []string{"GET"}, "search", "page"),
				routeJSON("posts", []string{"GET", "POST"}, []string{"GET"}, "search", "page"),
			),
			endpoints: []string{"pages", "posts"},
			expected:  true,
		},
		{
			name: "one endpoint lacks search",
			body: descDoc(
				routeJSON("pages", []string{"GET"}, []string{"GET"}, "search"),
				routeJSON("posts", []string{"GET"}, []string{"GET"}, "page"),
			),
			endpoints: []string{"pages", "posts"},
			expected:  false,
		},
		{
			name: "route missing entirely",
			body: descDoc(
				routeJSON("posts", []string{"GET"}, []string{"GET"}, "search"),
			),
			endpoints: []string{"pages", "posts"},
			expected:  false,
		},
		{
			name: "GET not in route methods",
			body: descDoc(
				routeJSON("posts", []string{"POST"}, []string{"GET"}, "search"),
			),
			endpoints: []string{"posts"},
			expected:  false,
		},
		{
			name: "no GET sub-endpoint",
			body: descDoc(
				routeJSON("posts", []string{"GET"}, []string{"POST"}, "search"),
			),
			endpoints: []string{"posts"},
			expected:  false,
		},
		{
			name:      "not JSON",
			body:      "<html>definitely not an API</html>",
			endpoints: []string{"posts"},
			expected:  false,
		},
		{
			name:      "JSON but wrong shape",
			body:      `{"routes":"oops"}`,
			endpoints: []string{"posts"},
			expected:  false,
		},
		{
			name: "single endpoint searchable",
			body: descDoc(
				routeJSON("posts", []string{"GET"}, []string{"GET"}, "search"),
			),
			endpoints: []string{"posts"},
			expected:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := probeFetcher(tt.body)
			got := APIAvailable(context.Background(), fetcher, "https://example.com", tt.endpoints)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// TestAPIAvailable_FetchError verifies a failed fetch means "no API", not an
// error.
func TestAPIAvailable_FetchError(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.errs["https://example.com/"+APISuffix] = errors.New("connection refused")

	assert.False(t, APIAvailable(context.Background(), fetcher, "https://example.com", nil))
}

// TestAPIAvailable_DefaultEndpoints verifies a nil endpoint list requires
// both pages and posts to pass.
func TestAPIAvailable_DefaultEndpoints(t *testing.T) {
	// Only posts is searchable -- the default set requires pages too.
	fetcher := probeFetcher(descDoc(
		routeJSON("posts", []string{"GET"}, []string{"GET"}, "search"),
	))
	assert.False(t, APIAvailable(context.Background(), fetcher, "https://example.com", nil))

	fetcher = probeFetcher(descDoc(
		routeJSON("pages", []string{"GET"}, []string{"GET"}, "search"),
		routeJSON("posts", []string{"GET"}, []string{"GET"}, "search"),
	))
	assert.True(t, APIAvailable(context.Background(), fetcher, "https://example.com", nil))
}

// TestAPIAvailable_NormalizesBase verifies trailing slashes on the site URL
// don't break the description document URL.
func TestAPIAvailable_NormalizesBase(t *testing.T) {
	fetcher := probeFetcher(descDoc(
		routeJSON("pages", []string{"GET"}, []string{"GET"}, "search"),
		routeJSON("posts", []string{"GET"}, []string{"GET"}, "search"),
	))
	assert.True(t, APIAvailable(context.Background(), fetcher, "https://example.com/", nil))
}
