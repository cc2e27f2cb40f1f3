package utils

import (
	"booking-service/internal/pkg/constvars"
	"fmt"
	"time"
)

// MonthBounds returns the first and last calendar dates of the given month.
func MonthBounds(year, month int, loc *time.Location) (time.Time, time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, fmt.Errorf("month %d out of range", month)
	}
	if year < 1 || year > 9999 {
		return time.Time{}, time.Time{}, fmt.Errorf("year %d out of range", year)
	}
	if loc == nil {
		loc = time.UTC
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)
	return first, last, nil
}

// MonthOf returns the YYYY-MM month key of a YYYY-MM-DD date string.
func MonthOf(date string) string {
	if len(date) < len(constvars.MonthLayout) {
		return date
	}
	return date[:len(constvars.MonthLayout)]
}

// DaysInclusive counts calendar days between two dates, both ends included.
func DaysInclusive(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours()/24) + 1
}
