/*
holidays.go - Public-holiday calendar

PURPOSE:
  Decides whether a date is a French public holiday, combining the fixed
  list with the movable feasts derived from Easter. Easter Sunday comes
  from the anonymous Gregorian computus, so the calendar needs no lookup
  table and works for any year.

MOVABLE FEASTS:
  Easter Monday  = Easter + 1 day
  Ascension      = Easter + 39 days
  Whit Monday    = Easter + 50 days

SEE ALSO:
  - calculator.go: holiday premium application
*/
package payroll

import "time"

// fixedHolidays are the month/day pairs observed every year.
var fixedHolidays = [...]struct {
	month time.Month
	day   int
}{
	{time.January, 1},   // New Year's Day
	{time.May, 1},       // Labour Day
	{time.May, 8},       // Victory Day
	{time.July, 14},     // Bastille Day
	{time.August, 15},   // Assumption
	{time.November, 1},  // All Saints
	{time.November, 11}, // Armistice
	{time.December, 25}, // Christmas
}

// EasterSunday returns Easter Sunday for the given year (Gregorian
// calendar, anonymous computus).
func EasterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// IsPublicHoliday reports whether date is a public holiday.
func IsPublicHoliday(date time.Time) bool {
	for _, h := range fixedHolidays {
		if date.Month() == h.month && date.Day() == h.day {
			return true
		}
	}
	easter := EasterSunday(date.Year())
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	for _, offset := range [...]int{1, 39, 50} {
		if day.Equal(easter.AddDate(0, 0, offset)) {
			return true
		}
	}
	return false
}
