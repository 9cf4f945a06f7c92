// Package circuitbreaker guards invocations of a single external binary.
//
// A storage tool that hangs on one drive (a wedged RAID controller, a smartctl waiting
// on a dead SATA link) usually hangs on every drive behind it. Once a binary has failed
// hard Threshold times in a row, the breaker opens and further invocations are rejected
// without spawning a process. After Cooldown one trial call is let through again.
//
// States:
//   - Closed: calls pass through
//   - Open: calls rejected with ErrCircuitOpen
//   - HalfOpen: a single trial call decides between Closed and Open
//
// Only failures for which the trip classifier returns true count. A tool that runs and
// exits non-zero is a normal answer, not a failure of the tool.
//
// A Breaker is not safe for concurrent use.
package circuitbreaker

import (
	"errors"
	"fmt"
	"time"
)

// ErrCircuitOpen is returned while the breaker rejects calls.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// State represents the current state of the breaker.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

// String returns the human-readable state name.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Config holds breaker configuration.
type Config struct {
	// Threshold is the number of consecutive tripping failures before the breaker opens.
	// Default: 3
	Threshold int

	// Cooldown is how long the breaker stays open before a trial call is allowed.
	// Default: 1m, i.e. longer than any single check run.
	Cooldown time.Duration
}

// DefaultConfig returns defaults suited to a single check run.
func DefaultConfig() Config {
	return Config{
		Threshold: 3,
		Cooldown:  time.Minute,
	}
}

// Breaker implements the circuit breaker pattern for one binary.
type Breaker struct {
	name  string
	cfg   Config
	trips func(error) bool

	state    State
	failures int
	openedAt time.Time
	nowFunc  func() time.Time
}

// New creates a Breaker named after the binary it guards. trips decides which errors
// count towards Threshold; nil counts every non-nil error.
// Zero-value Config fields fall back to DefaultConfig.
func New(name string, cfg Config, trips func(error) bool) *Breaker {
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultConfig().Threshold
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = DefaultConfig().Cooldown
	}
	if trips == nil {
		trips = func(err error) bool { return err != nil }
	}

	return &Breaker{
		name:    name,
		cfg:     cfg,
		trips:   trips,
		state:   StateClosed,
		nowFunc: time.Now,
	}
}

// Allow reports whether a call may proceed. The returned error wraps ErrCircuitOpen.
func (b *Breaker) Allow() error {
	if b.State() == StateOpen {
		return fmt.Errorf("%s: %w", b.name, ErrCircuitOpen)
	}
	return nil
}

// Record feeds the outcome of a call that Allow let through.
func (b *Breaker) Record(err error) {
	if err != nil && b.trips(err) {
		b.recordFailure()
		return
	}
	b.recordSuccess()
}

// Do runs fn if the breaker allows it and records the outcome.
func (b *Breaker) Do(fn func() error) error {
	if err := b.Allow(); err != nil {
		return err
	}

	err := fn()
	b.Record(err)
	return err
}

func (b *Breaker) recordFailure() {
	switch b.state {
	case StateClosed:
		b.failures++
		if b.failures >= b.cfg.Threshold {
			b.open()
		}

	case StateHalfOpen:
		b.open()
	}
}

func (b *Breaker) recordSuccess() {
	b.state = StateClosed
	b.failures = 0
}

func (b *Breaker) open() {
	b.state = StateOpen
	b.openedAt = b.nowFunc()
	b.failures = b.cfg.Threshold
}

// State returns the current state, moving Open to HalfOpen once Cooldown has elapsed.
func (b *Breaker) State() State {
	if b.state == StateOpen && b.nowFunc().Sub(b.openedAt) >= b.cfg.Cooldown {
		b.state = StateHalfOpen
	}
	return b.state
}

// Name returns the name of the guarded binary.
func (b *Breaker) Name() string {
	return b.name
}

// Failures returns the current consecutive failure count.
func (b *Breaker) Failures() int {
	return b.failures
}
