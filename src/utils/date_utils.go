package utils

import (
	"log"
	"time"
)

const ISODateFormat = "2006-01-02"

// ParseDate parses an ISO calendar date (YYYY-MM-DD).
// Logs an error and returns zero time if parsing fails.
func ParseDate(dateStr string) time.Time {
	t, err := time.Parse(ISODateFormat, dateStr)
	if err != nil {
		log.Printf("Error parsing date '%s' with format '%s': %v. Returning zero time.", dateStr, ISODateFormat, err)
		return time.Time{}
	}
	return t
}

// FiscalYearEnd returns March 31 of the Indian financial year that contains
// the given date. Dates in Jan-Mar belong to the FY ending that same year.
func FiscalYearEnd(now time.Time) time.Time {
	year := now.Year()
	if now.Month() > time.March {
		year++
	}
	return time.Date(year, time.March, 31, 0, 0, 0, 0, time.UTC)
}
