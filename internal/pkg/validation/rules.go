package validation

import (
	"strings"
	"time"
	"unicode"
)

// Shared rule parameters
const (
	NameMaxLength     = 255
	PasswordMinLength = 6

	// DateLayout is the wire format of every calendar date
	DateLayout = "2006-01-02"
)

// Custom validation tags
const (
	dateTag         = "date"
	afterOrEqualTag = "after_or_equal"

	// Database-backed rules checked by the services
	UniqueTag = "unique"
	ExistsTag = "exists"
)

// ParseDate parses a YYYY-MM-DD value
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(value))
}

// IsDate reports whether value is a YYYY-MM-DD calendar date
func IsDate(value string) bool {
	_, err := ParseDate(value)
	return err == nil
}

// humanize turns "birth_date" and "StartDate" into "birth date" and "start date"
func humanize(name string) string {
	var b strings.Builder
	for i, r := range name {
		switch {
		case r == '_':
			b.WriteRune(' ')
		case unicode.IsUpper(r):
			if i > 0 {
				b.WriteRune(' ')
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
