package raster

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/venicegeo/bf-scene-id/model"
)

// Header metadata arrives as a flat string map with SECTION_FIELD keys and
// heterogeneous value encodings. Normalize coerces every value to its literal
// type, canonicalizes any recognized timestamp, and rescales fixed-point
// micro-degree coordinate fields to decimal degrees.

// coordinate fields are stored as micro-degree integers
var coordinateKeyPattern = regexp.MustCompile(`LAT|LONG`)

const microDegrees = 1000000.0

// Fields is a normalized header metadata map with typed values.
type Fields map[string]interface{}

// Normalize applies literal coercion, timestamp canonicalization and
// coordinate rescaling to a raw header metadata map.
func Normalize(metadata map[string]string) Fields {
	fields := make(Fields, len(metadata))
	for key, raw := range metadata {
		trimmed := strings.TrimSpace(raw)
		if canonical, ok := model.NormalizeTime(trimmed); ok {
			fields[key] = canonical
			continue
		}
		value := model.CoerceLiteral(trimmed)
		if coordinateKeyPattern.MatchString(key) {
			switch number := value.(type) {
			case int64:
				value = float64(number) / microDegrees
			case float64:
				value = number / microDegrees
			}
		}
		fields[key] = value
	}
	return fields
}

// MissingFieldError reports an expected header or filename field that is
// absent from the scene.
type MissingFieldError struct {
	Name string
}

func (e *MissingFieldError) Error() string {
	return "missing metadata field: " + e.Name
}

// String returns the named field rendered as a string.
func (f Fields) String(name string) (string, error) {
	value, ok := f[name]
	if !ok {
		return "", &MissingFieldError{Name: name}
	}
	return fmt.Sprintf("%v", value), nil
}

// Float returns the named field as a float64.
func (f Fields) Float(name string) (float64, error) {
	value, ok := f[name]
	if !ok {
		return 0, &MissingFieldError{Name: name}
	}
	switch number := value.(type) {
	case int64:
		return float64(number), nil
	case float64:
		return number, nil
	case string:
		parsed, err := strconv.ParseFloat(number, 64)
		if err != nil {
			return 0, fmt.Errorf("field %s is not numeric: %v", name, value)
		}
		return parsed, nil
	}
	return 0, fmt.Errorf("field %s is not numeric: %v", name, value)
}

// Keys returns the field names matching pattern, sorted.
func (f Fields) Keys(pattern *regexp.Regexp) []string {
	var keys []string
	for key := range f {
		if pattern.MatchString(key) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// FloatsMatching returns the numeric values of all fields whose names match
// pattern, skipping non-numeric ones.
func (f Fields) FloatsMatching(pattern *regexp.Regexp) []float64 {
	var values []float64
	for _, key := range f.Keys(pattern) {
		if value, err := f.Float(key); err == nil {
			values = append(values, value)
		}
	}
	return values
}
