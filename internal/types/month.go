// Package types implements special types for jbucks.
package types

import (
	"fmt"
	"time"
)

// Month is a month in a specific year. It is the aggregation window for all
// dashboard and payee summaries.
type Month time.Time

// NewMonth returns a new Month.
func NewMonth(year int, month time.Month) Month {
	return Month(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// MonthOf returns the Month in which a time occurs.
func MonthOf(t time.Time) Month {
	year, month, _ := t.Date()
	return NewMonth(year, month)
}

// Current returns the Month containing today.
func Current() Month {
	return MonthOf(time.Now())
}

// String returns the month formatted as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", time.Time(m).Year(), time.Time(m).Month())
}

// Next returns the following month, rolling December over to January of the
// next year.
func (m Month) Next() Month {
	return Month(time.Time(m).AddDate(0, 1, 0))
}

// Range returns the half-open interval [start, end) covering the month:
// start is the first day of the month, end the first day of the next.
func (m Month) Range() (start, end time.Time) {
	start = time.Time(m)
	end = time.Time(m.Next())
	return start, end
}

// Contains reports whether t falls inside the month's range.
func (m Month) Contains(t time.Time) bool {
	start, end := m.Range()
	return !t.Before(start) && t.Before(end)
}
