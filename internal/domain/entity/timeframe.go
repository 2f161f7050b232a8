package entity

import (
	"fmt"
	"strings"
)

// Timeframe selects the window of a periodic report
type Timeframe int

const (
	TimeframeDaily Timeframe = iota + 1
	TimeframeWeekly
	TimeframeMonthly
)

// Timeframes lists every supported timeframe in menu order
var Timeframes = []Timeframe{TimeframeDaily, TimeframeWeekly, TimeframeMonthly}

func (t Timeframe) String() string {
	switch t {
	case TimeframeDaily:
		return "Daily"
	case TimeframeWeekly:
		return "Weekly"
	case TimeframeMonthly:
		return "Monthly"
	default:
		return fmt.Sprintf("Timeframe(%d)", int(t))
	}
}

// IsValid checks if the timeframe is one of the supported values
func (t Timeframe) IsValid() bool {
	return t >= TimeframeDaily && t <= TimeframeMonthly
}

// ParseTimeframe accepts "daily", "weekly", "monthly" (any case) or the
// menu numbers 1-3.
func ParseTimeframe(s string) (Timeframe, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily", "day", "1":
		return TimeframeDaily, nil
	case "weekly", "week", "2":
		return TimeframeWeekly, nil
	case "monthly", "month", "3":
		return TimeframeMonthly, nil
	}
	return 0, fmt.Errorf("unknown timeframe %q (want daily, weekly or monthly)", s)
}
