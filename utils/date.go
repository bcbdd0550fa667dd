package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var offsetZone = regexp.MustCompile(`^UTC([+-])(\d{1,2})(?::(\d{2}))?$`)

// LoadLocation resolves an IANA zone name. Empty and "Local" map to time.Local,
// "UTC+10" and "UTC+5:30" style names to a fixed offset.
func LoadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	switch {
	case name == "" || strings.EqualFold(name, "local"):
		return time.Local, nil
	case strings.HasPrefix(name, "UTC+") || strings.HasPrefix(name, "UTC-"):
		return parseOffsetZone(name)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load location %q: %w", name, err)
	}
	return loc, nil
}

func parseOffsetZone(name string) (*time.Location, error) {
	m := offsetZone.FindStringSubmatch(name)
	if m == nil {
		return nil, fmt.Errorf("invalid offset zone %q: want UTC±HH[:MM]", name)
	}
	hours, _ := strconv.Atoi(m[2])
	minutes := 0
	if m[3] != "" {
		minutes, _ = strconv.Atoi(m[3])
	}
	if hours > 14 || minutes > 59 {
		return nil, fmt.Errorf("invalid offset zone %q: out of range", name)
	}
	offset := hours*60*60 + minutes*60
	if m[1] == "-" {
		offset = -offset
	}
	return time.FixedZone(name, offset), nil
}

// Midnight returns the first instant of a calendar day in loc. Out of range
// days and months are normalised as time.Date does. Where a DST change skips
// midnight it is the instant the clocks jump forward.
func Midnight(year int, month time.Month, day int, loc *time.Location) time.Time {
	want := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	t := time.Date(want.Year(), want.Month(), want.Day(), 0, 0, 0, 0, loc)
	if y, m, d := t.Date(); y != want.Year() || m != want.Month() || d != want.Day() {
		if _, end := t.ZoneBounds(); !end.IsZero() {
			return end
		}
	}
	return t
}

// ParseISOTime parses RFC3339 timestamps and falls back to zone-less layouts,
// which are read as wall-clock time in loc.
func ParseISOTime(s string, loc *time.Location) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty time string")
	}

	// Try standard RFC3339 format (ISO 8601)
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return &t, nil
	}

	// Try with nanoseconds (e.g. 2025-10-13T09:30:00.123Z)
	t, err = time.Parse(time.RFC3339Nano, s)
	if err == nil {
		return &t, nil
	}

	// Try fallback common formats
	layouts := []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04",
		"2006-01-02T15:04",
	}
	for _, layout := range layouts {
		if tt, e := time.ParseInLocation(layout, s, loc); e == nil {
			return &tt, nil
		}
	}

	return nil, fmt.Errorf("failed to parse time: %v", s)
}
