// Package datetime converts instants into the business calendar: every opening,
// sale and closure is dated by the wall clock of the business timezone.
package datetime

import (
	"fmt"
	"time"
	_ "time/tzdata" // containers often ship without zoneinfo
)

const (
	isoDateLayout = "2006-01-02"
	brDateLayout  = "02/01/2006"
	clockLayout   = "15:04"
	monthLayout   = "2006-01"
)

var monthNames = [...]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// Clock returns the current instant.
type Clock func() time.Time

// LoadLocation resolves an IANA zone name.
func LoadLocation(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", name, err)
	}
	return loc, nil
}

// BusinessDay is the calendar day of t in loc, expressed as midnight UTC.
func BusinessDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ClockTime is the HH:MM wall clock of t in loc.
func ClockTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(clockLayout)
}

// IsValidClockTime reports whether s is a HH:MM time.
func IsValidClockTime(s string) bool {
	_, err := time.Parse(clockLayout, s)
	return err == nil && len(s) == len(clockLayout)
}

func FormatISODate(d time.Time) string {
	return d.Format(isoDateLayout)
}

// ParseISODate parses YYYY-MM-DD as midnight UTC.
func ParseISODate(s string) (time.Time, error) {
	d, err := time.Parse(isoDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return d, nil
}

func FormatBRDate(d time.Time) string {
	return d.Format(brDateLayout)
}

// FormatBRDateTime renders t in loc as DD/MM/YYYY HH:MM.
func FormatBRDateTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(brDateLayout + " " + clockLayout)
}

// ParseBRDate parses a DD/MM/YYYY date, rejecting impossible days such as 31/02.
func ParseBRDate(s string) (time.Time, error) {
	d, err := time.Parse(brDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected DD/MM/YYYY", s)
	}
	return d, nil
}

// ParseMonth parses YYYY-MM.
func ParseMonth(s string) (int, time.Month, error) {
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q, expected YYYY-MM", s)
	}
	return t.Year(), t.Month(), nil
}

// FormatMonth renders year and month as YYYY-MM.
func FormatMonth(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// MonthBounds returns the first day of the month and the first day of the next one.
func MonthBounds(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// MonthName is the Portuguese name of m.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNames[m-1]
}
