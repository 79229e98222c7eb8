package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)

	assert.Equal(t, -1, cfg.PageLimit)
	assert.Equal(t, []string{"pages", "posts"}, cfg.Endpoints)
	assert.Equal(t, "http", cfg.Fetcher)
	assert.Empty(t, cfg.Sites)
}

func TestLoad_ParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
page_limit: 5
stop_words:
  - "/tag/"
  - "/category/"
endpoints:
  - posts
fetcher: browser
timeout: 45s
terms:
  - climate
sites:
  - name: Example
    url: https://example.com
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.PageLimit)
	assert.Equal(t, []string{"/tag/", "/category/"}, cfg.StopWords)
	assert.Equal(t, []string{"posts"}, cfg.Endpoints)
	assert.Equal(t, "browser", cfg.Fetcher)
	assert.Equal(t, []string{"climate"}, cfg.Terms)
	require.Len(t, cfg.Sites, 1)
	assert.Equal(t, "Example", cfg.Sites[0].Name)
	assert.Equal(t, "https://example.com", cfg.Sites[0].URL)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("page_limit: 3\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.PageLimit)
	// Unset fields keep their defaults.
	assert.Equal(t, []string{"pages", "posts"}, cfg.Endpoints)
	assert.Equal(t, "http", cfg.Fetcher)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("page_limit: [not: valid"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestFetchTimeout(t *testing.T) {
	tests := []struct {
		name     string
		timeout  string
		expected time.Duration
	}{
		{name: "valid", timeout: "45s", expected: 45 * time.Second},
		{name: "empty falls back", timeout: "", expected: 30 * time.Second},
		{name: "garbage falls back", timeout: "soon", expected: 30 * time.Second},
		{name: "negative falls back", timeout: "-5s", expected: 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Timeout: tt.timeout}
			assert.Equal(t, tt.expected, cfg.FetchTimeout())
		})
	}
}
