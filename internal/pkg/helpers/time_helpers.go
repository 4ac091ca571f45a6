package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// MonthLayout is the wire format for calendar months.
const MonthLayout = "2006-01"

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(DateLayout, dateStr)
}

// ParseMonth parses a YYYY-MM month string, falling back to the current
// month when the input is empty or unparsable.
func ParseMonth(monthStr string, now time.Time) string {
	if monthStr == "" {
		return now.Format(MonthLayout)
	}
	if _, err := time.Parse(MonthLayout, monthStr); err != nil {
		log.Warn().Str("month", monthStr).Msg("Unparsable month value, falling back to current month")
		return now.Format(MonthLayout)
	}
	return monthStr
}

// TruncateToDay strips the time-of-day component.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
