package calculation

import "time"

// nowFunc returns the current time (override in tests for determinism).
var nowFunc = time.Now

// SetNowFunc overrides the time provider (use only in tests).
func SetNowFunc(f func() time.Time) { nowFunc = f }

// startYear resolves the first simulated calendar year.
func startYear(configured int) int {
	if configured > 0 {
		return configured
	}
	return nowFunc().Year()
}
