package reconcile

import (
	"strconv"
	"strings"
)

// fallbackDurationHours is what a class detail shows when its time-of-day
// strings cannot be parsed.
const fallbackDurationHours = 3.0

// DurationHours computes the elapsed hours between two wall-clock strings in
// "HH:MM" or "HH:MM:SS" form. An unparseable component yields the fixed
// fallback; an end before the start clamps to zero (and zero is returned
// as-is, not replaced by the fallback). Pure, never fails the caller.
func DurationHours(start, end string) float64 {
	startMin, err := clockMinutes(start)
	if err != nil {
		return fallbackDurationHours
	}
	endMin, err := clockMinutes(end)
	if err != nil {
		return fallbackDurationHours
	}

	minutes := endMin - startMin
	if minutes < 0 {
		minutes = 0
	}
	return float64(minutes) / 60
}

// clockMinutes parses "HH:MM" or "HH:MM:SS" into minutes since midnight.
func clockMinutes(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0, strconv.ErrSyntax
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, err
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, err
	}
	return hours*60 + minutes, nil
}
