// Package report filters records by admission or discharge time and
// renders the console/transcript text of the periodic reports.
package report

import (
	"time"

	"patient-register/internal/domain/entity"
)

// Matches reports whether ts falls inside the timeframe as seen from now.
// Calendar fields are taken in now's location.
//
// Weekly compares day-of-year within the same calendar year, so it is not
// a rolling seven day window: a record from December 28 is not in the
// weekly report of January 2. Reports depend on this behaviour, keep it.
func Matches(tf entity.Timeframe, ts, now time.Time) bool {
	ts = ts.In(now.Location())
	switch tf {
	case entity.TimeframeDaily:
		// whole hours, truncated: 24h59m still counts as 24
		return int(now.Sub(ts)/time.Hour) <= 24
	case entity.TimeframeWeekly:
		return ts.Year() == now.Year() && now.YearDay()-ts.YearDay() < 7
	case entity.TimeframeMonthly:
		return ts.Year() == now.Year() && ts.Month() == now.Month()
	default:
		return false
	}
}

// FilterByTimeframe returns the items whose timestamp matches tf, in their
// original order. now is read once.
func FilterByTimeframe[T any](items []T, tf entity.Timeframe, stamp func(T) time.Time, now func() time.Time) []T {
	at := now()
	var out []T
	for _, item := range items {
		if Matches(tf, stamp(item), at) {
			out = append(out, item)
		}
	}
	return out
}

// CrossesYearBoundary reports whether a weekly report generated at now
// misses part of the previous seven days because they fall in last year.
func CrossesYearBoundary(now time.Time) bool {
	return now.YearDay() < 7
}
