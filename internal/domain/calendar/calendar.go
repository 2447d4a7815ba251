package calendar

import (
	"fmt"
	"time"
)

// WorkingHours defines the working-day window as hours of day.
// Invariant: Start < LunchStart < LunchEnd < End.
type WorkingHours struct {
	Start      int
	LunchStart int
	LunchEnd   int
	End        int
}

// DefaultWorkingHours returns the deployed schedule: 8:00-12:00 and
// 13:00-17:00.
func DefaultWorkingHours() WorkingHours {
	return WorkingHours{Start: 8, LunchStart: 12, LunchEnd: 13, End: 17}
}

// Validate checks the window ordering invariant.
func (w WorkingHours) Validate() error {
	if w.Start < 0 || w.End > 24 {
		return fmt.Errorf("working hours out of range: %+v", w)
	}
	if !(w.Start < w.LunchStart && w.LunchStart < w.LunchEnd && w.LunchEnd < w.End) {
		return fmt.Errorf("working hours not ordered: %+v", w)
	}
	return nil
}

// Calendar evaluates business-day and working-hours rules for a fixed
// schedule. It is stateless and safe for concurrent use.
type Calendar struct {
	hours WorkingHours
}

// New creates a Calendar with the given schedule.
func New(hours WorkingHours) (*Calendar, error) {
	if err := hours.Validate(); err != nil {
		return nil, err
	}
	return &Calendar{hours: hours}, nil
}

// NewDefault creates a Calendar with the default schedule.
func NewDefault() *Calendar {
	cal, err := New(DefaultWorkingHours())
	if err != nil {
		panic(err) // default schedule is statically valid
	}
	return cal
}

// Hours returns the configured schedule.
func (c *Calendar) Hours() WorkingHours {
	return c.hours
}

// IsHoliday reports whether the civil date of t is in the holiday set.
func (c *Calendar) IsHoliday(t time.Time, set HolidaySet) bool {
	return set.Contains(DateOf(t))
}

// IsBusinessDay reports whether t falls on a weekday that is not a holiday.
func (c *Calendar) IsBusinessDay(t time.Time, set HolidaySet) bool {
	if wd := t.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false
	}
	return !c.IsHoliday(t, set)
}

// IsWithinWorkingHours reports whether the time-of-day of t lies in
// [Start,LunchStart) or [LunchEnd,End).
func (c *Calendar) IsWithinWorkingHours(t time.Time) bool {
	mins := minutesOfDay(t)
	if mins >= c.hours.Start*60 && mins < c.hours.LunchStart*60 {
		return true
	}
	return mins >= c.hours.LunchEnd*60 && mins < c.hours.End*60
}

// Adjustment is the outcome of snapping an instant to the nearest prior
// valid business time.
type Adjustment struct {
	Result   time.Time
	Adjusted bool
	Reason   string
}

// AdjustToPrevBusinessTime snaps t backward to the nearest valid business
// instant. The operation is idempotent: every possible output is either
// within working hours or an end-of-day boundary, both fixed points.
func (c *Calendar) AdjustToPrevBusinessTime(t time.Time, set HolidaySet) Adjustment {
	cur := t
	stepped := false
	for !c.IsBusinessDay(cur, set) {
		cur = cur.AddDate(0, 0, -1)
		stepped = true
	}
	if stepped {
		return Adjustment{
			Result:   atHour(cur, c.hours.End),
			Adjusted: true,
			Reason:   "moved to previous business day",
		}
	}

	mins := minutesOfDay(cur)
	switch {
	case mins < c.hours.Start*60:
		// The previous day may itself be a weekend or holiday, so keep
		// stepping back until a business day is found.
		cur = cur.AddDate(0, 0, -1)
		for !c.IsBusinessDay(cur, set) {
			cur = cur.AddDate(0, 0, -1)
		}
		return Adjustment{
			Result:   atHour(cur, c.hours.End),
			Adjusted: true,
			Reason:   "previous business day end",
		}
	case mins >= c.hours.LunchStart*60 && mins < c.hours.LunchEnd*60:
		return Adjustment{
			Result:   atHour(cur, c.hours.LunchStart),
			Adjusted: true,
			Reason:   "moved to start of lunch break",
		}
	case mins >= c.hours.End*60:
		return Adjustment{
			Result:   atHour(cur, c.hours.End),
			Adjusted: true,
			Reason:   "moved to end of working hours",
		}
	default:
		return Adjustment{Result: cur, Adjusted: false}
	}
}

// AddBusinessDays advances t by n business days, preserving the original
// time-of-day. n=0 returns t unchanged, with no re-clamping.
func (c *Calendar) AddBusinessDays(t time.Time, n int, set HolidaySet) time.Time {
	if n <= 0 {
		return t
	}
	cur := t
	for counted := 0; counted < n; {
		cur = cur.AddDate(0, 0, 1)
		if c.IsBusinessDay(cur, set) {
			counted++
		}
	}
	return cur
}

// AddBusinessHours advances t by n business hours, skipping the lunch break
// and non-business days. A duration that would straddle lunch resumes
// exactly at LunchEnd. n=0 returns t unchanged.
func (c *Calendar) AddBusinessHours(t time.Time, n int, set HolidaySet) time.Time {
	if n <= 0 {
		return t
	}

	remaining := n * 60
	cur := t
	for {
		// Guards against positions left outside business time by a
		// day rollover.
		cur = c.AdjustToPrevBusinessTime(cur, set).Result

		mins := minutesOfDay(cur)
		beforeLunch := 0
		if mins < c.hours.LunchStart*60 {
			beforeLunch = c.hours.LunchStart*60 - mins
		}
		afterLunch := 0
		if mins < c.hours.End*60 {
			from := mins
			if from < c.hours.LunchEnd*60 {
				from = c.hours.LunchEnd * 60
			}
			afterLunch = c.hours.End*60 - from
		}

		if remaining <= beforeLunch+afterLunch {
			if remaining <= beforeLunch {
				return cur.Add(time.Duration(remaining) * time.Minute)
			}
			rest := remaining - beforeLunch
			return atHour(cur, c.hours.LunchEnd).Add(time.Duration(rest) * time.Minute)
		}

		remaining -= beforeLunch + afterLunch
		cur = atHour(cur.AddDate(0, 0, 1), c.hours.Start)
		for !c.IsBusinessDay(cur, set) {
			cur = cur.AddDate(0, 0, 1)
		}
	}
}

// minutesOfDay returns the civil minutes elapsed since midnight.
func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// atHour returns t with its time-of-day set to hour:00:00.
func atHour(t time.Time, hour int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, hour, 0, 0, 0, t.Location())
}
