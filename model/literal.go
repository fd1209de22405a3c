package model

import "strconv"

// CoerceLiteral converts a raw header value to its most specific literal type:
// int64, then float64, then the unmodified string.
func CoerceLiteral(raw string) interface{} {
	if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return parsed
	}
	if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
		return parsed
	}
	return raw
}
