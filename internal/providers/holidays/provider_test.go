package holidays

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/habiltime/backend/internal/domain/calendar"
	"github.com/habiltime/backend/internal/infrastructure/resilience"
)

var errSourceDown = errors.New("source down")

// fakeFetcher returns its current dates/err and counts calls.
type fakeFetcher struct {
	mu    sync.Mutex
	dates []string
	err   error
	calls int
}

func (f *fakeFetcher) Fetch(_ context.Context, _ string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.dates, nil
}

func (f *fakeFetcher) set(dates []string, err error) {
	f.mu.Lock()
	f.dates, f.err = dates, err
	f.mu.Unlock()
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// newTestProvider wires a provider with a fake clock and a zero-delay retry
// policy so failure episodes do not sleep through real backoff.
func newTestProvider(f *fakeFetcher) (*Provider, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 4, 8, 15, 0, 0, 0, time.UTC)}
	p := New(f, zap.NewNop()).
		WithClock(clock.Now).
		WithRetryPolicy(resilience.RetryPolicy{MaxAttempts: 4})
	return p, clock
}

func TestGetHolidaysFetchesAndCaches(t *testing.T) {
	f := &fakeFetcher{dates: []string{"2025-04-17", "2025-04-18"}}
	p, clock := newTestProvider(f)

	got := p.GetHolidays(context.Background(), "Colombia/general")
	assert.Equal(t, StatusHealthy, got.Status)
	assert.Equal(t, SourceAPI, got.Source)
	require.NotNil(t, got.LastUpdated)
	assert.True(t, got.Set.Contains(calendar.Date{Year: 2025, Month: 4, Day: 17}))
	assert.Equal(t, 1, f.callCount())

	// Within the TTL the cache answers without touching the source.
	clock.Advance(12 * time.Hour)
	got = p.GetHolidays(context.Background(), "Colombia/general")
	assert.Equal(t, StatusHealthy, got.Status)
	assert.Equal(t, SourceCache, got.Source)
	assert.Equal(t, 1, f.callCount())
}

func TestGetHolidaysRefreshesExpiredCache(t *testing.T) {
	f := &fakeFetcher{dates: []string{"2025-04-17"}}
	p, clock := newTestProvider(f)

	p.GetHolidays(context.Background(), "Colombia/general")
	clock.Advance(25 * time.Hour)

	f.set([]string{"2025-04-17", "2025-12-25"}, nil)
	got := p.GetHolidays(context.Background(), "Colombia/general")

	assert.Equal(t, SourceAPI, got.Source)
	assert.Len(t, got.Set, 2)
	assert.Equal(t, 2, f.callCount())
}

func TestGetHolidaysServesStaleCacheOnFailure(t *testing.T) {
	f := &fakeFetcher{dates: []string{"2025-04-17"}}
	p, clock := newTestProvider(f)

	p.GetHolidays(context.Background(), "Colombia/general")
	lastGood := clock.Now()
	clock.Advance(25 * time.Hour)
	f.set(nil, errSourceDown)

	got := p.GetHolidays(context.Background(), "Colombia/general")

	assert.Equal(t, StatusDegraded, got.Status)
	assert.Equal(t, SourceCache, got.Source)
	require.NotNil(t, got.LastUpdated)
	assert.True(t, got.LastUpdated.Equal(lastGood))
	assert.True(t, got.Set.Contains(calendar.Date{Year: 2025, Month: 4, Day: 17}))
}

func TestGetHolidaysFallsBackWithoutCache(t *testing.T) {
	f := &fakeFetcher{err: errSourceDown}
	p, _ := newTestProvider(f)

	got := p.GetHolidays(context.Background(), "Colombia/general")

	assert.Equal(t, StatusFailed, got.Status)
	assert.Equal(t, SourceFallback, got.Source)
	assert.Nil(t, got.LastUpdated)
	// Fallback is filtered to the current and next civil year.
	assert.True(t, got.Set.Contains(calendar.Date{Year: 2025, Month: 12, Day: 25}))
	assert.True(t, got.Set.Contains(calendar.Date{Year: 2026, Month: 1, Day: 1}))
	assert.False(t, got.Set.Contains(calendar.Date{Year: 2024, Month: 12, Day: 25}))
}

func TestGetHolidaysRetriesEachEpisode(t *testing.T) {
	f := &fakeFetcher{err: errSourceDown}
	p, _ := newTestProvider(f)

	p.GetHolidays(context.Background(), "Colombia/general")

	// One episode burns the whole retry budget.
	assert.Equal(t, 4, f.callCount())
}

func TestGetHolidaysMalformedPayloadIsFailure(t *testing.T) {
	f := &fakeFetcher{dates: []string{"2025-04-17", "garbage"}}
	p, _ := newTestProvider(f)

	got := p.GetHolidays(context.Background(), "Colombia/general")

	assert.Equal(t, SourceFallback, got.Source)
	assert.Equal(t, 4, f.callCount())
}

func TestBreakerOpensAfterThreeEpisodes(t *testing.T) {
	f := &fakeFetcher{err: errSourceDown}
	p, _ := newTestProvider(f)

	for i := 0; i < 3; i++ {
		p.GetHolidays(context.Background(), "Colombia/general")
	}
	assert.Equal(t, resilience.StateOpen, p.Status().CircuitPhase)
	assert.Equal(t, 12, f.callCount())

	// While open the source is not touched at all.
	got := p.GetHolidays(context.Background(), "Colombia/general")
	assert.Equal(t, SourceFallback, got.Source)
	assert.Equal(t, 12, f.callCount())
}

func TestBreakerRecoversAfterCooldown(t *testing.T) {
	f := &fakeFetcher{err: errSourceDown}
	p, clock := newTestProvider(f)

	for i := 0; i < 3; i++ {
		p.GetHolidays(context.Background(), "Colombia/general")
	}
	require.Equal(t, resilience.StateOpen, p.Status().CircuitPhase)

	// Past the cooldown a single trial is let through; it succeeds and the
	// circuit closes.
	clock.Advance(5 * time.Minute)
	f.set([]string{"2025-04-17"}, nil)

	got := p.GetHolidays(context.Background(), "Colombia/general")
	assert.Equal(t, StatusHealthy, got.Status)
	assert.Equal(t, SourceAPI, got.Source)
	assert.Equal(t, resilience.StateClosed, p.Status().CircuitPhase)
}

func TestBreakerHalfOpenFailureReopens(t *testing.T) {
	f := &fakeFetcher{err: errSourceDown}
	p, clock := newTestProvider(f)

	for i := 0; i < 3; i++ {
		p.GetHolidays(context.Background(), "Colombia/general")
	}
	clock.Advance(5 * time.Minute)

	got := p.GetHolidays(context.Background(), "Colombia/general")

	assert.Equal(t, SourceFallback, got.Source)
	status := p.Status()
	assert.Equal(t, resilience.StateOpen, status.CircuitPhase)
	assert.Equal(t, uint32(4), status.Failures)
}

func TestStatusReflectsCacheAge(t *testing.T) {
	f := &fakeFetcher{dates: []string{"2025-04-17"}}
	p, clock := newTestProvider(f)

	status := p.Status()
	assert.Equal(t, StatusHealthy, status.Status)
	assert.Nil(t, status.LastFetch)

	p.GetHolidays(context.Background(), "Colombia/general")
	clock.Advance(2 * time.Hour)

	status = p.Status()
	assert.Equal(t, StatusHealthy, status.Status)
	require.NotNil(t, status.LastFetch)
	assert.Equal(t, 2*time.Hour, status.CacheAge)

	clock.Advance(23 * time.Hour)
	status = p.Status()
	assert.Equal(t, StatusDegraded, status.Status)
}
