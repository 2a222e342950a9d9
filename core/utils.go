package core

import (
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// ParseFloat parses a cleaned decimal string; ok is false when s is blank.
func ParseFloat(s string) (f float64, ok bool, err error) {
	s = CleanString(s)
	if s == "" {
		return 0, false, nil
	}
	f, err = strconv.ParseFloat(s, 64)
	return f, err == nil, err
}

// Now returns the current local time truncated to seconds, the precision timestamps are stored with.
var Now = func() time.Time {
	return time.Now().Truncate(time.Second)
}
