package scheduler

import (
	"time"

	"github.com/chronex/chronex/internal/cronx"
)

// EventKind tags which lifecycle moment an Event reports, per spec.md §6.
type EventKind int

const (
	EventFiring EventKind = iota
	EventCompleted
	EventFailed
	EventSkipped
)

// Skip reasons, per spec.md §4.12.
const (
	SkipReasonDisabled       = "disabled"
	SkipReasonWindowExceeded = "window exceeded"
	SkipReasonMaxReached     = "max reached"
)

// Context is passed to a handler invocation and carried on Firing/Completed/
// Failed events.
type Context struct {
	ID         string
	Scheduled  time.Time // nominal instant, pre-jitter/stagger
	Actual     time.Time // the tick's "now"
	FireCount  int64     // 1-based
	Expression *cronx.Expression
	Metadata   map[string]string
}

// Event is one emitted occurrence of the scheduler's event fan-out.
type Event struct {
	Kind       EventKind
	Context    Context
	Err        error  // set on EventFailed
	SkipReason string // set on EventSkipped
}

// Subscriber receives every emitted Event. A panicking subscriber does not
// prevent other subscribers from being notified: Scheduler recovers the panic
// of each dispatch. Subscribers are called one after another on the emitting
// goroutine, so a slow subscriber delays the ones after it.
type Subscriber func(Event)
