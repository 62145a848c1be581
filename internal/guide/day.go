// SPDX-License-Identifier: MIT

// Package guide turns a parsed XMLTV document into a per-channel timeline for
// one calendar day. The pipeline is pure: no I/O, deterministic output.
package guide

import (
	"fmt"
	"time"
)

// Day identifies one calendar date in local time. It is passed explicitly
// through the pipeline instead of living in shared mutable state.
type Day struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Day   int        `json:"day"`
}

// DayOf returns the calendar date t falls on.
func DayOf(t time.Time) Day {
	return Day{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// ParseDay parses a YYYY-MM-DD value.
func ParseDay(s string) (Day, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return Day{}, fmt.Errorf("parse day %q: %w", s, err)
	}
	return DayOf(t), nil
}

// Contains reports whether t falls on d: component-wise equality on year,
// month and day-of-month. A programme that started the previous day is not
// contained even if it is still airing after midnight.
func (d Day) Contains(t time.Time) bool {
	return t.Year() == d.Year && t.Month() == d.Month && t.Day() == d.Day
}

// Midnight returns 00:00 local time of d.
func (d Day) Midnight() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.Local)
}

// Next returns the following calendar day.
func (d Day) Next() Day { return DayOf(d.Midnight().AddDate(0, 0, 1)) }

// Prev returns the preceding calendar day.
func (d Day) Prev() Day { return DayOf(d.Midnight().AddDate(0, 0, -1)) }

// String renders d as YYYY-MM-DD.
func (d Day) String() string {
	return d.Midnight().Format("2006-01-02")
}

// Headline renders d for the guide page header, e.g. "Friday, 15 March 2024".
func (d Day) Headline() string {
	return d.Midnight().Format("Monday, 2 January 2006")
}
