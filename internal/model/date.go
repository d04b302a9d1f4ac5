package model

import (
	"fmt"
	"hash/fnv"
	"time"
)

// DateKey identifies a calendar day. It is a comparable value and can be
// used directly as a map key.
type DateKey struct {
	day   int
	month int
	year  int
}

// NewDateKey builds a key from its parts. Values are taken as-is; use Valid
// to check them against the calendar.
func NewDateKey(day, month, year int) DateKey {
	return DateKey{day: day, month: month, year: year}
}

// ParseDateKey parses a YYYY-MM-DD date and rejects days that do not exist.
func ParseDateKey(s string) (DateKey, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return DateKey{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	k := NewDateKey(t.Day(), int(t.Month()), t.Year())
	if !k.Valid() {
		return DateKey{}, fmt.Errorf("invalid date %q: year must be 1 or later", s)
	}
	return k, nil
}

func (d DateKey) Day() int   { return d.day }
func (d DateKey) Month() int { return d.month }
func (d DateKey) Year() int  { return d.year }

// Equals reports whether both keys name the same day, month and year.
func (d DateKey) Equals(other DateKey) bool {
	return d.day == other.day && d.month == other.month && d.year == other.year
}

// CanonicalForm renders DDMMYYYY with day and month zero-padded and the year
// unpadded, e.g. 05032020.
func (d DateKey) CanonicalForm() string {
	return fmt.Sprintf("%02d%02d%d", d.day, d.month, d.year)
}

// HashKey is the FNV-1a hash of CanonicalForm.
func (d DateKey) HashKey() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(d.CanonicalForm()))
	return h.Sum64()
}

// Valid reports whether the key is a real Gregorian date.
func (d DateKey) Valid() bool {
	if d.year < 1 || d.month < 1 || d.month > 12 {
		return false
	}
	return d.day >= 1 && d.day <= DaysIn(d.month, d.year)
}

// Before orders keys by year, then month, then day.
func (d DateKey) Before(other DateKey) bool {
	if d.year != other.year {
		return d.year < other.year
	}
	if d.month != other.month {
		return d.month < other.month
	}
	return d.day < other.day
}

// String renders YYYY-MM-DD.
func (d DateKey) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
}
