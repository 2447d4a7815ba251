package calendar

import (
	"fmt"
	"sort"
	"time"
)

// Location is the civil timezone every business rule is evaluated in.
// Colombia observes no daylight saving, so a fixed offset is exact. If that
// ever changes this must become a tzdata lookup (time.LoadLocation).
var Location = time.FixedZone("America/Bogota", -5*60*60)

// ToCivil reinterprets an absolute instant as civil Bogota time.
func ToCivil(instant time.Time) time.Time {
	return instant.In(Location)
}

// ToInstant converts a civil time back to its UTC instant. ToCivil and
// ToInstant are exact inverses for all representable times.
func ToInstant(civil time.Time) time.Time {
	return civil.UTC()
}

// Date is a calendar date with no time component, used for holiday
// membership tests.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf extracts the civil calendar date of t.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// HolidaySet is a set of non-working calendar dates beyond weekends.
// Membership is exact date equality in civil-calendar terms.
type HolidaySet map[Date]struct{}

// NewHolidaySet builds a set from explicit dates.
func NewHolidaySet(dates ...Date) HolidaySet {
	set := make(HolidaySet, len(dates))
	for _, d := range dates {
		set[d] = struct{}{}
	}
	return set
}

// ParseHolidaySet builds a set from YYYY-MM-DD strings. Any unparseable
// entry fails the whole set; a partially valid payload is not trusted.
func ParseHolidaySet(dates []string) (HolidaySet, error) {
	set := make(HolidaySet, len(dates))
	for _, s := range dates {
		d, err := ParseDate(s)
		if err != nil {
			return nil, err
		}
		set[d] = struct{}{}
	}
	return set, nil
}

// Contains reports whether d is in the set.
func (s HolidaySet) Contains(d Date) bool {
	_, ok := s[d]
	return ok
}

// Dates returns the set's dates in chronological order.
func (s HolidaySet) Dates() []Date {
	out := make([]Date, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}
		return out[i].Day < out[j].Day
	})
	return out
}

// Strings returns the set's dates in chronological order as YYYY-MM-DD.
func (s HolidaySet) Strings() []string {
	dates := s.Dates()
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.String()
	}
	return out
}
