package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// YearsBetween returns the number of whole years from birth to now.
// The result is one less until the anniversary of birth's month and day is reached.
func YearsBetween(birth, now time.Time) int {
	by, bm, bd := birth.Date()
	ny, nm, nd := now.Date()

	years := ny - by
	if nm < bm || (nm == bm && nd < bd) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
