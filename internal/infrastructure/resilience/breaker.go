package resilience

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrCircuitOpen     = errors.New("circuit breaker is open")
	ErrTooManyRequests = errors.New("too many requests")
)

// State represents the circuit breaker state
type State int

const (
	StateClosed State = iota
	StateHalfOpen
	StateOpen
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateHalfOpen:
		return "HALF_OPEN"
	case StateOpen:
		return "OPEN"
	default:
		return "UNKNOWN"
	}
}

// MarshalJSON encodes the state as its string form.
func (s State) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// Settings configures the circuit breaker behavior
type Settings struct {
	// FailureThreshold is the number of consecutive failures that opens
	// the circuit
	FailureThreshold uint32
	// Cooldown is the period of the open state until a half-open trial
	// is allowed
	Cooldown time.Duration
	// OnStateChange is called whenever the state changes
	OnStateChange func(name string, from State, to State)
	// Clock overrides the time source, for tests
	Clock func() time.Time
}

// Snapshot is a point-in-time copy of the breaker's state, safe to read
// without further locking.
type Snapshot struct {
	State               State
	ConsecutiveFailures uint32
	LastFailure         time.Time
}

// Breaker implements the circuit breaker pattern. The circuit opens after
// FailureThreshold consecutive failures and stays open for Cooldown; a
// single half-open trial then resolves it back to closed on success or
// open on failure.
type Breaker struct {
	name     string
	settings Settings

	mu          sync.Mutex
	state       State
	failures    uint32
	lastFailure time.Time
	inFlight    bool
}

// New creates a new circuit breaker with the given settings
func New(name string, settings Settings) *Breaker {
	if settings.FailureThreshold == 0 {
		settings.FailureThreshold = 3
	}
	if settings.Cooldown == 0 {
		settings.Cooldown = 5 * time.Minute
	}
	if settings.Clock == nil {
		settings.Clock = time.Now
	}

	return &Breaker{
		name:     name,
		settings: settings,
		state:    StateClosed,
	}
}

// Name returns the name of the circuit breaker
func (b *Breaker) Name() string {
	return b.name
}

// State returns the current state of the circuit breaker. An open circuit
// stays open until an Execute call past the cooldown moves it to half-open;
// the cooldown elapsing alone does not transition it.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Snapshot returns a copy of the breaker's current state and counters.
func (b *Breaker) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Snapshot{
		State:               b.state,
		ConsecutiveFailures: b.failures,
		LastFailure:         b.lastFailure,
	}
}

// Execute runs the given request if the circuit breaker accepts it
func (b *Breaker) Execute(req func() (interface{}, error)) (interface{}, error) {
	if err := b.beforeRequest(); err != nil {
		return nil, err
	}

	defer func() {
		if e := recover(); e != nil {
			b.afterRequest(false)
			panic(e)
		}
	}()

	result, err := req()
	b.afterRequest(err == nil)
	return result, err
}

// beforeRequest decides whether a request may proceed
func (b *Breaker) beforeRequest() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.settings.Clock()

	switch b.state {
	case StateOpen:
		if now.Sub(b.lastFailure) < b.settings.Cooldown {
			return ErrCircuitOpen
		}
		b.setState(StateHalfOpen)
	case StateHalfOpen:
		// One trial at a time while probing.
		if b.inFlight {
			return ErrTooManyRequests
		}
	}

	b.inFlight = true
	return nil
}

// afterRequest records the outcome of a request
func (b *Breaker) afterRequest(success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.inFlight = false

	if success {
		b.failures = 0
		b.setState(StateClosed)
		return
	}

	b.failures++
	b.lastFailure = b.settings.Clock()
	if b.state == StateHalfOpen || b.failures >= b.settings.FailureThreshold {
		b.setState(StateOpen)
	}
}

// setState changes the state of the circuit breaker. Caller holds the lock.
func (b *Breaker) setState(state State) {
	if b.state == state {
		return
	}

	prev := b.state
	b.state = state

	if b.settings.OnStateChange != nil {
		b.settings.OnStateChange(b.name, prev, state)
	}
}
