package engine

import (
	"time"

	"github.com/habiltime/backend/internal/domain/calendar"
)

// Request describes one business-time calculation. Start is optional; when
// nil the current instant is used. Days and Hours must be non-negative,
// which is the validation layer's contract.
type Request struct {
	Start *time.Time
	Days  int
	Hours int
}

// Engine performs business-time arithmetic over a Calendar.
type Engine struct {
	cal *calendar.Calendar
	now func() time.Time
}

// New creates an Engine.
func New(cal *calendar.Calendar) *Engine {
	return &Engine{cal: cal, now: time.Now}
}

// WithClock overrides the time source, for tests.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Calculate resolves the resulting UTC instant for the request under the
// given holiday set. The start is always snapped backward into business
// time first, even when both Days and Hours are zero.
func (e *Engine) Calculate(req Request, set calendar.HolidaySet) time.Time {
	var cur time.Time
	if req.Start != nil {
		cur = calendar.ToCivil(*req.Start)
	} else {
		cur = calendar.ToCivil(e.now())
	}

	cur = e.cal.AdjustToPrevBusinessTime(cur, set).Result

	if req.Days > 0 {
		cur = e.cal.AddBusinessDays(cur, req.Days, set)
	}
	if req.Hours > 0 {
		cur = e.cal.AddBusinessHours(cur, req.Hours, set)
	}

	return calendar.ToInstant(cur)
}
