package loader

import (
	"strings"
	"time"
)

// header layouts accepted as date columns, most common first
var dateLayouts = []string{
	"1/2/06",
	"01/02/06",
	"1/2/2006",
	"01/02/2006",
	"2006-01-02",
}

// ParseDate parses a date column header into a UTC midnight.
func ParseDate(header string) (time.Time, bool) {
	h := strings.TrimSpace(strings.Trim(header, "\""))
	if h == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, h); err == nil {
			return Day(d), true
		}
	}

	return time.Time{}, false
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
