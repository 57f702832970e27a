package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/money_managemet_app/internal/apperrors"
)

// DateKey identifies a date bucket: the year/month/day of a transaction date.
// Keys are timezone-normalized to UTC so that the same instant always lands
// in the same bucket regardless of the wall clock it arrived with.
type DateKey struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Day   int        `json:"day"`
}

// DateKeyOf extracts the bucket key from a timestamp.
func DateKeyOf(t time.Time) DateKey {
	y, m, d := t.UTC().Date()
	return DateKey{Year: y, Month: m, Day: d}
}

// StartOfDay returns midnight UTC of the key's day.
func (k DateKey) StartOfDay() time.Time {
	return time.Date(k.Year, k.Month, k.Day, 0, 0, 0, 0, time.UTC)
}

// EndOfDay returns the last representable instant of the key's day.
func (k DateKey) EndOfDay() time.Time {
	return k.StartOfDay().Add(24*time.Hour - time.Nanosecond)
}

func (k DateKey) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", k.Year, int(k.Month), k.Day)
}

// PartialDate is a date query where any of year/month/day may be omitted.
// A nil field means "match any value for this component". At least one
// component must be supplied for the query to be valid.
type PartialDate struct {
	Year  *int `json:"year,omitempty"`
	Month *int `json:"month,omitempty"`
	Day   *int `json:"day,omitempty"`
}

// PartialDateOf builds a fully specified PartialDate from a timestamp.
func PartialDateOf(t time.Time) PartialDate {
	k := DateKeyOf(t)
	y, m, d := k.Year, int(k.Month), k.Day
	return PartialDate{Year: &y, Month: &m, Day: &d}
}

// Validate rejects empty or out-of-range date details.
func (p PartialDate) Validate() error {
	if p.Year == nil && p.Month == nil && p.Day == nil {
		return fmt.Errorf("%w: no date fields supplied", apperrors.ErrInvalidDate)
	}
	if p.Month != nil && (*p.Month < 1 || *p.Month > 12) {
		return fmt.Errorf("%w: month %d out of range", apperrors.ErrInvalidDate, *p.Month)
	}
	if p.Day != nil && (*p.Day < 1 || *p.Day > 31) {
		return fmt.Errorf("%w: day %d out of range", apperrors.ErrInvalidDate, *p.Day)
	}
	return nil
}

// Matches reports whether a bucket key agrees with every supplied component.
func (p PartialDate) Matches(k DateKey) bool {
	if p.Year != nil && *p.Year != k.Year {
		return false
	}
	if p.Month != nil && *p.Month != int(k.Month) {
		return false
	}
	if p.Day != nil && *p.Day != k.Day {
		return false
	}
	return true
}

// LowerBound expands the partial date to the earliest instant it can mean:
// missing month/day default to January 1st, at start of day.
func (p PartialDate) LowerBound() (time.Time, error) {
	if err := p.Validate(); err != nil {
		return time.Time{}, err
	}
	if p.Year == nil {
		return time.Time{}, fmt.Errorf("%w: range bound requires a year", apperrors.ErrInvalidDate)
	}
	month := time.January
	if p.Month != nil {
		month = time.Month(*p.Month)
	}
	day := 1
	if p.Day != nil {
		day = *p.Day
	}
	return time.Date(*p.Year, month, day, 0, 0, 0, 0, time.UTC), nil
}

// UpperBound expands the partial date to the latest instant it can mean:
// missing month/day default to December 31st, at end of day.
func (p PartialDate) UpperBound() (time.Time, error) {
	if err := p.Validate(); err != nil {
		return time.Time{}, err
	}
	if p.Year == nil {
		return time.Time{}, fmt.Errorf("%w: range bound requires a year", apperrors.ErrInvalidDate)
	}
	month := time.December
	if p.Month != nil {
		month = time.Month(*p.Month)
	}
	var day int
	if p.Day != nil {
		day = *p.Day
	} else {
		// Last day of the month: day zero of the following month.
		day = time.Date(*p.Year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	}
	end := time.Date(*p.Year, month, day, 0, 0, 0, 0, time.UTC)
	return end.Add(24*time.Hour - time.Nanosecond), nil
}
