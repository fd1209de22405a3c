package model

import (
	"fmt"
	"regexp"
	"time"
)

// Scene headers report acquisition times in several vendor formats: ESA
// day-month-year strings, compact digit runs, and two ISO 8601 variants. None
// of these adhere to a single standard, so we need lenient "multi-format"
// parsing functionality, implemented here. Every recognized value is rewritten
// to one compact canonical form.

// CompactTimeLayout is the canonical timestamp format used throughout parsed
// scene metadata and canonical artifact names.
const CompactTimeLayout = "20060102T150405"

var headerTimeLayouts = []string{
	"2-Jan-2006 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05.999999999Z",
}

// a compact numeric timestamp: YYYYMMDDHHMMSS plus an optional fraction
var compactTimePattern = regexp.MustCompile(`^[0-9]{14,23}$`)

// ParseHeaderTime is a drop-in replacement for time.Parse, matching against
// every header time format in turn. The first successful parse wins.
func ParseHeaderTime(value string) (time.Time, error) {
	for _, layout := range headerTimeLayouts {
		if output, err := time.Parse(layout, value); err == nil {
			return output, nil
		}
	}
	if compactTimePattern.MatchString(value) {
		if output, err := time.Parse("20060102150405", value[:14]); err == nil {
			return output, nil
		}
	}
	return time.Time{}, fmt.Errorf("time could not be parsed by any expected format: `%s`", value)
}

// NormalizeTime rewrites value to the compact canonical timestamp form. The
// second return reports whether value was recognized as a timestamp at all.
func NormalizeTime(value string) (string, bool) {
	parsed, err := ParseHeaderTime(value)
	if err != nil {
		return value, false
	}
	return parsed.Format(CompactTimeLayout), true
}
