package wpharvest

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParseDate parses a date string in whatever format the site serves it.
// Returns nil rather than an error when the input is empty or unparseable --
// a missing publish date is not worth losing the article over.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	t, err := dateparse.ParseAny(s)
	if err != nil {
		return nil
	}
	return &t
}
