package wpharvest

import (
	"sort"
	"sync"
)

// StopSet is a set of URLs that should not be collected again. The caller
// owns the set and may carry it across harvest calls; the harvester inserts
// the URL of every record it emits, so repeated runs against the same site
// skip articles already seen.
//
// The set is safe for concurrent use -- endpoint walks run in parallel and
// all write to the same set.
type StopSet struct {
	mu   sync.RWMutex
	urls map[string]struct{}
}

// NewStopSet creates a stop set, optionally seeded with URLs.
func NewStopSet(urls ...string) *StopSet {
	s := &StopSet{urls: make(map[string]struct{}, len(urls))}
	for _, u := range urls {
		s.urls[u] = struct{}{}
	}
	return s
}

// Add inserts a URL into the set.
func (s *StopSet) Add(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.urls[url] = struct{}{}
}

// Contains reports whether the exact URL is in the set.
func (s *StopSet) Contains(url string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.urls[url]
	return ok
}

// Len returns the number of URLs in the set.
func (s *StopSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.urls)
}

// URLs returns the set's contents sorted lexically.
func (s *StopSet) URLs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	urls := make([]string, 0, len(s.urls))
	for u := range s.urls {
		urls = append(urls, u)
	}
	sort.Strings(urls)
	return urls
}
