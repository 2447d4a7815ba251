package holidays

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/habiltime/backend/internal/domain/calendar"
	"github.com/habiltime/backend/internal/infrastructure/monitoring"
	"github.com/habiltime/backend/internal/infrastructure/resilience"
)

const (
	// DefaultCacheTTL is how long a successful fetch stays authoritative.
	DefaultCacheTTL = 24 * time.Hour
	// DefaultFetchTimeout bounds each individual fetch attempt.
	DefaultFetchTimeout = 10 * time.Second

	breakerName             = "holiday-source"
	breakerFailureThreshold = 3
	breakerCooldown         = 5 * time.Minute
)

// cacheEntry is the last successful fetch. Mutated only by the provider's
// fetch path.
type cacheEntry struct {
	set       calendar.HolidaySet
	fetchedAt time.Time
}

// Provider owns the process-wide holiday cache and circuit breaker state.
type Provider struct {
	fetcher Fetcher
	breaker *resilience.Breaker
	retry   resilience.RetryPolicy
	ttl     time.Duration
	timeout time.Duration
	logger  *zap.Logger
	metrics *monitoring.Metrics
	now     func() time.Time

	// fetchMu serializes live fetches so concurrent cache misses cannot
	// double-fetch or double-count breaker failures.
	fetchMu sync.Mutex

	// mu guards the cache entry. Never held across a fetch, so status
	// reads stay non-blocking.
	mu    sync.RWMutex
	cache *cacheEntry
}

// New creates a Provider over the given fetcher.
func New(fetcher Fetcher, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Provider{
		fetcher: fetcher,
		retry:   resilience.DefaultRetryPolicy(),
		ttl:     DefaultCacheTTL,
		timeout: DefaultFetchTimeout,
		logger:  logger,
		now:     time.Now,
	}
	p.breaker = p.newBreaker()
	return p
}

// WithClock overrides the time source for both the cache TTL and the
// circuit breaker cooldown, for tests.
func (p *Provider) WithClock(now func() time.Time) *Provider {
	p.now = now
	p.breaker = p.newBreaker()
	return p
}

// WithMetrics attaches a metrics collector.
func (p *Provider) WithMetrics(metrics *monitoring.Metrics) *Provider {
	p.metrics = metrics
	return p
}

// WithCacheTTL overrides the cache TTL.
func (p *Provider) WithCacheTTL(ttl time.Duration) *Provider {
	p.ttl = ttl
	return p
}

// WithFetchTimeout overrides the per-attempt fetch timeout.
func (p *Provider) WithFetchTimeout(timeout time.Duration) *Provider {
	p.timeout = timeout
	return p
}

// WithRetryPolicy overrides the retry policy, for tests that must not
// sleep through real backoff delays.
func (p *Provider) WithRetryPolicy(policy resilience.RetryPolicy) *Provider {
	p.retry = policy
	return p
}

func (p *Provider) newBreaker() *resilience.Breaker {
	return resilience.New(breakerName, resilience.Settings{
		FailureThreshold: breakerFailureThreshold,
		Cooldown:         breakerCooldown,
		Clock:            p.now,
		OnStateChange:    p.onBreakerChange,
	})
}

func (p *Provider) onBreakerChange(name string, from, to resilience.State) {
	p.logger.Warn("holiday source circuit state changed",
		zap.String("breaker", name),
		zap.Stringer("from", from),
		zap.Stringer("to", to),
	)
	if p.metrics != nil {
		p.metrics.SetBreakerState(float64(to))
	}
}

// GetHolidays returns the current best holiday set with provenance. It
// never fails: when the live source is unreachable it degrades to the
// stale cache and finally to the embedded fallback dataset.
func (p *Provider) GetHolidays(ctx context.Context, location string) Result {
	if entry := p.entry(); entry != nil && p.now().Sub(entry.fetchedAt) < p.ttl {
		return p.record(p.cacheResult(entry, StatusHealthy))
	}

	p.fetchMu.Lock()
	defer p.fetchMu.Unlock()

	// A concurrent caller may have completed a fetch while we waited.
	if entry := p.entry(); entry != nil && p.now().Sub(entry.fetchedAt) < p.ttl {
		return p.record(p.cacheResult(entry, StatusHealthy))
	}

	set, err := p.fetch(ctx, location)
	if err != nil {
		if errors.Is(err, resilience.ErrCircuitOpen) {
			p.logger.Warn("holiday source circuit open, serving fallback",
				zap.String("location", location))
			return p.record(p.fallbackResult())
		}

		p.logger.Warn("holiday fetch exhausted retries",
			zap.String("location", location),
			zap.Error(err))
		if entry := p.entry(); entry != nil {
			// Stale data beats static data.
			return p.record(p.cacheResult(entry, StatusDegraded))
		}
		return p.record(p.fallbackResult())
	}

	fetchedAt := p.now()
	p.store(&cacheEntry{set: set, fetchedAt: fetchedAt})
	p.logger.Info("holiday data refreshed",
		zap.String("location", location),
		zap.Int("holidays", len(set)))
	return p.record(Result{
		Set:         set,
		Status:      StatusHealthy,
		Source:      SourceAPI,
		LastUpdated: &fetchedAt,
	})
}

// fetch runs one breaker-guarded, retried fetch episode. The whole retry
// loop counts as a single breaker attempt, so consecutive failures grow by
// one per exhausted episode, not per network attempt.
func (p *Provider) fetch(ctx context.Context, location string) (calendar.HolidaySet, error) {
	result, err := p.breaker.Execute(func() (interface{}, error) {
		return p.fetchWithRetry(ctx, location)
	})
	if err != nil {
		return nil, err
	}
	return result.(calendar.HolidaySet), nil
}

// fetchWithRetry attempts the fetch under the retry policy, validating the
// payload structurally on each attempt. The last attempt's error is
// propagated when the budget is exhausted.
func (p *Provider) fetchWithRetry(ctx context.Context, location string) (calendar.HolidaySet, error) {
	var set calendar.HolidaySet
	err := resilience.Retry(ctx, p.retry, func(ctx context.Context) error {
		attemptCtx, cancel := context.WithTimeout(ctx, p.timeout)
		defer cancel()

		dates, err := p.fetcher.Fetch(attemptCtx, location)
		if err != nil {
			p.recordAttempt("error")
			return err
		}

		parsed, err := calendar.ParseHolidaySet(dates)
		if err != nil {
			p.recordAttempt("invalid")
			return err
		}

		p.recordAttempt("success")
		set = parsed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return set, nil
}

// Status returns a non-blocking health snapshot. It performs no I/O and
// never waits on an in-flight fetch.
func (p *Provider) Status() ServiceStatus {
	snap := p.breaker.Snapshot()
	entry := p.entry()

	status := ServiceStatus{
		CircuitPhase: snap.State,
		Failures:     snap.ConsecutiveFailures,
	}
	if entry != nil {
		fetchedAt := entry.fetchedAt
		status.LastFetch = &fetchedAt
		status.CacheAge = p.now().Sub(entry.fetchedAt)
	}

	switch {
	case snap.State == resilience.StateOpen:
		status.Status = StatusFailed
	case entry != nil && status.CacheAge > p.ttl:
		status.Status = StatusDegraded
	default:
		status.Status = StatusHealthy
	}
	return status
}

func (p *Provider) cacheResult(entry *cacheEntry, status Status) Result {
	fetchedAt := entry.fetchedAt
	return Result{
		Set:         entry.set,
		Status:      status,
		Source:      SourceCache,
		LastUpdated: &fetchedAt,
	}
}

// fallbackResult serves the embedded dataset filtered to the current and
// next civil year.
func (p *Provider) fallbackResult() Result {
	year := p.now().In(calendar.Location).Year()
	if p.metrics != nil {
		p.metrics.RecordFallbackServed()
	}
	return Result{
		Set:    FallbackSet(year, year+1),
		Status: StatusFailed,
		Source: SourceFallback,
	}
}

func (p *Provider) entry() *cacheEntry {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cache
}

func (p *Provider) store(entry *cacheEntry) {
	p.mu.Lock()
	p.cache = entry
	p.mu.Unlock()
}

func (p *Provider) record(r Result) Result {
	if p.metrics != nil {
		p.metrics.RecordHolidayResult(r.Source.String(), r.Status.String())
		if r.LastUpdated != nil {
			p.metrics.SetCacheAge(p.now().Sub(*r.LastUpdated))
		}
	}
	return r
}

func (p *Provider) recordAttempt(outcome string) {
	if p.metrics != nil {
		p.metrics.RecordFetchAttempt(outcome)
	}
}
