package dateutil

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// ErrInvalidDate is returned for any input that cannot be reduced to a
// YYYY-MM-DD calendar date.
var ErrInvalidDate = errors.New("invalid date format")

// All dates are rendered in a fixed UTC+6 offset (Bangladesh). Using the
// server's local zone shifts dates by a day for clients ahead of it.
var Location = time.FixedZone("UTC+6", 6*60*60)

var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
var monthRegex = regexp.MustCompile(`^\d{4}-\d{2}$`)

// Normalize canonicalizes a date to a YYYY-MM-DD string. It accepts a
// time.Time (formatted in the fixed zone) or a string with an optional
// time-of-day suffix ("T..." or space-separated). Anything else fails with
// ErrInvalidDate.
func Normalize(input any) (string, error) {
	var s string

	switch v := input.(type) {
	case time.Time:
		if v.IsZero() {
			return "", ErrInvalidDate
		}
		return v.In(Location).Format("2006-01-02"), nil
	case string:
		s = strings.TrimSpace(v)
		if i := strings.IndexByte(s, 'T'); i >= 0 {
			s = s[:i]
		}
		if i := strings.IndexByte(s, ' '); i >= 0 {
			s = s[:i]
		}
	default:
		return "", ErrInvalidDate
	}

	if !dateRegex.MatchString(s) {
		return "", ErrInvalidDate
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return "", ErrInvalidDate
	}
	return s, nil
}

// MonthOf returns the YYYY-MM prefix of a normalized date.
func MonthOf(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}

// IsValidMonth reports whether s is a YYYY-MM month key.
func IsValidMonth(s string) bool {
	if !monthRegex.MatchString(s) {
		return false
	}
	_, err := time.Parse("2006-01", s)
	return err == nil
}

// CurrentMonth returns the current YYYY-MM month key in the fixed zone.
func CurrentMonth() string {
	return time.Now().In(Location).Format("2006-01")
}
