package bisyaroh

import (
	"strconv"
	"time"
)

// =============================================================================
// PERIOD - a calendar month, the unit of every compensation run
// =============================================================================

// Period is one calendar month. Month and year are always explicit; the
// engine never infers a "current period".
type Period struct {
	Month int
	Year  int
}

// Validate enforces the accepted range: month 1-12, year 2020 onward.
func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return &ValidationError{Field: "month", Message: "must be between 1 and 12"}
	}
	if p.Year < 2020 {
		return &ValidationError{Field: "year", Message: "must be 2020 or later"}
	}
	return nil
}

// Start returns midnight on the 1st of the month, UTC.
func (p Period) Start() time.Time {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
}

// End returns midnight on the last day of the month, UTC.
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, -1)
}

// Contains reports whether the date falls inside the month.
func (p Period) Contains(t time.Time) bool {
	return t.Year() == p.Year && int(t.Month()) == p.Month
}

// Overlaps reports whether the [from, to] window intersects the month.
// A zero `to` is treated as a single-day window at `from`.
func (p Period) Overlaps(from, to time.Time) bool {
	if to.IsZero() {
		to = from
	}
	nextMonth := p.Start().AddDate(0, 1, 0)
	return from.Before(nextMonth) && !to.Before(p.Start())
}

// MonthName returns the Indonesian month name, used for default snapshot
// labels.
func (p Period) MonthName() string {
	names := [...]string{
		"Januari", "Februari", "Maret", "April", "Mei", "Juni",
		"Juli", "Agustus", "September", "Oktober", "November", "Desember",
	}
	if p.Month < 1 || p.Month > 12 {
		return ""
	}
	return names[p.Month-1]
}

func (p Period) String() string {
	return p.MonthName() + " " + strconv.Itoa(p.Year)
}

// TenureYears returns full years of service from start to the 1st of the
// period, capped at `cap`. Unknown or future start dates yield 0.
func (p Period) TenureYears(start time.Time, cap int) int {
	if start.IsZero() {
		return 0
	}
	anchor := p.Start()
	if start.After(anchor) {
		return 0
	}
	years := anchor.Year() - start.Year()
	anniversary := time.Date(start.Year()+years, start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	if anniversary.After(anchor) {
		years--
	}
	if years < 0 {
		return 0
	}
	if years > cap {
		return cap
	}
	return years
}
