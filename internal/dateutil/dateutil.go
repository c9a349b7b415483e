// Package dateutil converts between time.Time values and the compact
// YYYYMMDD integer encoding used throughout the debt notebook
// (e.g. 13 September 2023 -> 20230913).
package dateutil

import (
	"fmt"
	"time"
)

// Encode converts t to its YYYYMMDD integer form, using t's location.
func Encode(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}

// Today returns the current local date in YYYYMMDD integer form.
func Today() int {
	return Encode(time.Now())
}

// Decode converts a YYYYMMDD integer back to a time.Time at midnight UTC.
// It rejects values that do not denote a real calendar date.
func Decode(d int) (time.Time, error) {
	year := d / 10000
	month := (d / 100) % 100
	day := d % 100
	if year < 1 || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("invalid date encoding: %d", d)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (e.g. Feb 30 -> Mar 2); round-trip to catch it.
	if Encode(t) != d {
		return time.Time{}, fmt.Errorf("invalid date encoding: %d", d)
	}
	return t, nil
}

// Valid reports whether d is a well-formed YYYYMMDD date.
func Valid(d int) bool {
	_, err := Decode(d)
	return err == nil
}
