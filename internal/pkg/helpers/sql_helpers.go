package helpers

import "strings"

// NilIfBlank maps a missing or whitespace-only string to NULL for nullable columns
func NilIfBlank(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// NormalizeEmail trims and lower-cases an address before it is compared or stored
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
