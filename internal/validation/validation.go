// Package validation contains pure predicate checks for user-supplied
// strings and dates. Every function returns a boolean and has no side
// effects; request-level struct validation elsewhere uses
// go-playground/validator, while these predicates cover the domain rules
// that struct tags cannot express.
package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/novatech/taskflow/internal/dateutil"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// IsEmpty reports whether the value is empty after trimming whitespace.
func IsEmpty(value string) bool {
	return strings.TrimSpace(value) == ""
}

// IsNotEmpty reports whether the value has non-whitespace content.
func IsNotEmpty(value string) bool {
	return !IsEmpty(value)
}

// IsValidLength reports whether the trimmed value's length falls within
// [minLength, maxLength]. An empty value passes only when minLength is zero.
func IsValidLength(value string, minLength, maxLength int) bool {
	length := len(strings.TrimSpace(value))
	return length >= minLength && length <= maxLength
}

// IsValidEmail reports whether the value is a plausible email address:
// a local part, an @, and a domain with a TLD of at least two letters.
func IsValidEmail(email string) bool {
	if IsEmpty(email) {
		return false
	}
	return emailPattern.MatchString(email)
}

// IsNotPastDate reports whether the date is present and not before today.
// Comparison is date-only: both sides are stripped to local midnight first.
func IsNotPastDate(date time.Time) bool {
	if date.IsZero() {
		return false
	}

	today := dateutil.Today()
	return !dateutil.StripTime(date).Before(today)
}

// IsInteger reports whether the value parses as a base-10 integer.
// Surrounding whitespace is not tolerated: " 5" is not an integer.
func IsInteger(value string) bool {
	_, err := strconv.ParseInt(value, 10, 64)
	return err == nil
}

// IsPositiveInteger reports whether the value parses as an integer
// strictly greater than zero.
func IsPositiveInteger(value string) bool {
	n, err := strconv.ParseInt(value, 10, 64)
	return err == nil && n > 0
}
