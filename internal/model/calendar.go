package model

import (
	"strings"
	"time"
)

// MonthNames lists months in calendar order; index 0 is January.
var MonthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthByName returns the 1-based month for a name, ignoring case.
func MonthByName(name string) (int, bool) {
	for i, n := range MonthNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return i + 1, true
		}
	}
	return 0, false
}

// DaysIn returns the number of days in month of year, or 0 for a month
// outside 1..12.
func DaysIn(month, year int) int {
	if month < 1 || month > 12 {
		return 0
	}
	// Day 0 of the following month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Years returns first..last inclusive; empty when first > last.
func Years(first, last int) []int {
	if first > last {
		return nil
	}
	out := make([]int, 0, last-first+1)
	for y := first; y <= last; y++ {
		out = append(out, y)
	}
	return out
}
