package validator

import (
	"regexp"
	"strconv"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// User id validation: 3-20 chars, A-Z, a-z, 0-9, _, -
var userIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{3,20}$`)

func IsValidUserID(id string) bool {
	return userIDRegex.MatchString(id)
}

// ToNumber coerces a stored cell to a float. Unparseable input yields 0,
// matching how loosely typed rows have always been read.
func ToNumber(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

// FormatNumber renders a float as a cell value without trailing zeros.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
