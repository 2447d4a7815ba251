package holidays

import (
	"time"

	"github.com/habiltime/backend/internal/domain/calendar"
	"github.com/habiltime/backend/internal/infrastructure/resilience"
)

// Status describes how healthy a provider answer is.
type Status int

const (
	StatusHealthy Status = iota
	StatusDegraded
	StatusFailed
)

// String returns the wire representation of the status.
func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "HEALTHY"
	case StatusDegraded:
		return "DEGRADED"
	case StatusFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// MarshalJSON encodes the status as its string form.
func (s Status) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// Source identifies where a holiday set came from.
type Source int

const (
	SourceCache Source = iota
	SourceAPI
	SourceFallback
)

// String returns the wire representation of the source.
func (s Source) String() string {
	switch s {
	case SourceCache:
		return "CACHE"
	case SourceAPI:
		return "API"
	case SourceFallback:
		return "FALLBACK"
	default:
		return "UNKNOWN"
	}
}

// MarshalJSON encodes the source as its string form.
func (s Source) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// Result is a holiday set with its provenance.
type Result struct {
	Set         calendar.HolidaySet
	Status      Status
	Source      Source
	LastUpdated *time.Time
}

// ServiceStatus is a non-blocking snapshot of the provider's health.
type ServiceStatus struct {
	Status       Status
	CircuitPhase resilience.State
	Failures     uint32
	LastFetch    *time.Time
	CacheAge     time.Duration
}

// IsHoliday reports whether the civil date is present in the holiday set.
func IsHoliday(d calendar.Date, set calendar.HolidaySet) bool {
	return set.Contains(d)
}
