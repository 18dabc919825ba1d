// Package chronex is a cron-expression superset parser and in-process
// trigger engine: Vixie-Cron fields with L/W/# specials, @every/@once
// interval forms, TZ= prefixes, and {option} suffixes, paired with a
// concurrent tick-driven scheduler.
package chronex

import (
	"context"
	"time"

	"github.com/chronex/chronex/internal/cronx"
	"github.com/chronex/chronex/internal/scheduler"
	"github.com/chronex/chronex/internal/validate"
	"github.com/google/uuid"
)

// Expression is a parsed trigger expression: a cron schedule, an interval
// schedule, or a one-shot schedule, plus its options and timezone.
type Expression = cronx.Expression

// Options holds the parsed {key:value,...} suffix of an expression.
type Options = cronx.Options

// Parse parses raw into an Expression. now resolves relative @once offsets;
// it does not shift any absolute instant the expression itself specifies.
func Parse(raw string, now time.Time) (*Expression, error) {
	return cronx.Parse(raw, now)
}

// ValidationResult mirrors spec.md §6's external validation contract.
type ValidationResult = validate.Result

// Diagnostic is one validation error or warning.
type Diagnostic = validate.Diagnostic

// Validate runs the full diagnostic-collecting validator against raw
// without constructing an Expression, so malformed input never panics a
// caller that only wants diagnostics.
func Validate(raw string) ValidationResult {
	return validate.Validate(raw)
}

// Re-exported event and context types for callers subscribing to a
// Scheduler without importing internal/scheduler directly.
type (
	Event               = scheduler.Event
	EventKind           = scheduler.EventKind
	TriggerContext      = scheduler.Context
	Handler             = scheduler.Handler
	Subscriber          = scheduler.Subscriber
	TriggerRegistration = scheduler.TriggerRegistration
	Clock               = scheduler.Clock
)

const (
	EventFiring    = scheduler.EventFiring
	EventCompleted = scheduler.EventCompleted
	EventFailed    = scheduler.EventFailed
	EventSkipped   = scheduler.EventSkipped
)

const (
	SkipReasonDisabled       = scheduler.SkipReasonDisabled
	SkipReasonWindowExceeded = scheduler.SkipReasonWindowExceeded
	SkipReasonMaxReached     = scheduler.SkipReasonMaxReached
)

var (
	ErrAlreadyRegistered = scheduler.ErrAlreadyRegistered
	ErrDisposed          = scheduler.ErrDisposed
)

// Scheduler is a concurrent registry of triggers evaluated once per tick.
type Scheduler struct {
	inner *scheduler.Scheduler
}

// NewScheduler builds a Scheduler driven by the real system clock.
func NewScheduler() *Scheduler {
	return &Scheduler{inner: scheduler.New(scheduler.RealClock{})}
}

// NewSchedulerWithClock builds a Scheduler driven by a caller-supplied
// Clock, for deterministic testing of code that embeds a Scheduler.
func NewSchedulerWithClock(clock Clock) *Scheduler {
	return &Scheduler{inner: scheduler.New(clock)}
}

// Register adds a new trigger under id. If id is empty, a uuid is
// generated, per spec.md §4.12's id-generation note.
func (s *Scheduler) Register(id string, expr *Expression, handler Handler, metadata map[string]string) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if err := s.inner.Register(id, expr, handler, metadata); err != nil {
		return "", err
	}
	return id, nil
}

// Unregister removes a trigger, reporting whether it existed.
func (s *Scheduler) Unregister(id string) bool { return s.inner.Unregister(id) }

// GetTriggers returns a snapshot of the current registry.
func (s *Scheduler) GetTriggers() []*TriggerRegistration { return s.inner.GetTriggers() }

// Subscribe registers fn to receive every emitted Event.
func (s *Scheduler) Subscribe(fn Subscriber) { s.inner.Subscribe(fn) }

// Start begins the hosted tick loop. Calling it twice is a no-op.
func (s *Scheduler) Start(ctx context.Context) error {
	return s.inner.Start(ctx)
}

// StopAsync halts the tick loop and waits for it to exit. Idempotent.
func (s *Scheduler) StopAsync() error { return s.inner.StopAsync() }

// Dispose stops the scheduler and marks it unusable for further Start
// calls. Idempotent.
func (s *Scheduler) Dispose() error { return s.inner.Dispose() }

// Tick runs a single evaluation pass against now, for callers driving
// their own loop instead of using Start.
func (s *Scheduler) Tick(now time.Time) error { return s.inner.Tick(now) }
