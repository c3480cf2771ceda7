package core

import (
	"time"
)

const (
	dateLayout      = "2006-01-02"
	yearMonthLayout = "2006-01"
)

// Date is a calendar day with no time-of-day component. The zero value
// means "not set" and is used for optional dates such as a recurring
// expense's end date.
type Date struct {
	time.Time
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO YYYY-MM-DD string. Impossible calendar days
// (2024-02-30) are rejected, not normalized.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, Validationf("invalid date %q: use YYYY-MM-DD", s)
	}
	return Date{Time: t}, nil
}

// ParseYearMonth parses a YYYY-MM month key.
func ParseYearMonth(s string) (year, month int, err error) {
	t, err := time.Parse(yearMonthLayout, s)
	if err != nil {
		return 0, 0, Validationf("invalid month %q: use YYYY-MM", s)
	}
	return t.Year(), int(t.Month()), nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// IsEmpty reports whether the date was never set.
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month as 1-12.
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the calendar year.
func (d Date) Year() int {
	return d.Time.Year()
}

// IsLeapYear reports whether year has 366 days.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year, month int) int {
	switch time.Month(month) {
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// MonthBounds returns the first and last calendar day of a month.
// Every month-window computation in the system goes through here so the
// boundary rule cannot drift between call sites.
func MonthBounds(year, month int) (start, end Date) {
	return NewDate(year, month, 1), NewDate(year, month, DaysInMonth(year, month))
}
