// Package scheduler implements the concurrent, tick-driven trigger registry
// described in spec.md §4.12 and §5: registration, stagger/jitter,
// window/max/from/until enforcement, event fan-out, and idempotent
// start/stop/dispose lifecycle.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chronex/chronex/internal/cronx"
)

// ErrAlreadyRegistered is returned by Register when the id is already in use.
var ErrAlreadyRegistered = errors.New("scheduler: trigger already registered")

// ErrDisposed is returned by any operation attempted on a disposed
// scheduler.
var ErrDisposed = errors.New("scheduler: disposed")

const tickInterval = time.Second

// Scheduler is a concurrent registry of triggers evaluated once per tick.
type Scheduler struct {
	clock Clock

	rngMu sync.Mutex
	rng   *rand.Rand

	mu            sync.RWMutex
	registrations map[string]*TriggerRegistration

	subsMu sync.RWMutex
	subs   []Subscriber

	started  atomic.Int32
	disposed atomic.Int32
	cancel   context.CancelFunc
	loopDone chan struct{}

	// DiagnosticSink receives Failed events when no subscriber is
	// registered to observe them, per spec.md §4.12 step 11.
	DiagnosticSink func(Event)
}

// New builds a Scheduler driven by clock. Pass RealClock{} in production;
// tests inject a *FakeClock for deterministic tick-by-tick control.
func New(clock Clock) *Scheduler {
	return &Scheduler{
		clock:         clock,
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
		registrations: make(map[string]*TriggerRegistration),
	}
}

// Subscribe registers fn to receive every emitted Event. Not safe to call
// concurrently with event dispatch guarantees beyond normal mutex ordering;
// subscribe before Start for deterministic coverage.
func (s *Scheduler) Subscribe(fn Subscriber) {
	s.subsMu.Lock()
	s.subs = append(s.subs, fn)
	s.subsMu.Unlock()
}

// Register adds a new trigger. It fails if id is already registered or the
// scheduler has been disposed.
func (s *Scheduler) Register(id string, expr *cronx.Expression, handler Handler, metadata map[string]string) error {
	if s.disposed.Load() == 1 {
		return ErrDisposed
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.registrations[id]; exists {
		return fmt.Errorf("%w: %q", ErrAlreadyRegistered, id)
	}
	reg := newRegistration(id, expr, handler, metadata)

	s.rngMu.Lock()
	next, ok := expr.NextOccurrence(s.clock.Now(), s.rng)
	s.rngMu.Unlock()
	if ok {
		reg.setNextFire(&next)
	}
	s.registrations[id] = reg
	return nil
}

// Unregister removes a trigger, reporting whether it existed.
func (s *Scheduler) Unregister(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.registrations[id]; !exists {
		return false
	}
	delete(s.registrations, id)
	return true
}

// GetTriggers returns a snapshot of the current registry.
func (s *Scheduler) GetTriggers() []*TriggerRegistration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*TriggerRegistration, 0, len(s.registrations))
	for _, reg := range s.registrations {
		out = append(out, reg)
	}
	return out
}

func (s *Scheduler) emit(ev Event) {
	s.subsMu.RLock()
	subs := s.subs
	s.subsMu.RUnlock()

	if len(subs) == 0 {
		if ev.Kind == EventFailed && s.DiagnosticSink != nil {
			s.DiagnosticSink(ev)
		}
		return
	}
	for _, sub := range subs {
		dispatchIsolated(sub, ev)
	}
}

// dispatchIsolated invokes one subscriber, recovering a panic so that one
// misbehaving subscriber never prevents others from being notified.
func dispatchIsolated(sub Subscriber, ev Event) {
	defer func() { _ = recover() }()
	sub(ev)
}

func staggerOffset(id string, stagger *time.Duration) time.Duration {
	if stagger == nil || *stagger <= 0 {
		return 0
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(id))
	ms := int64(*stagger / time.Millisecond)
	if ms <= 0 {
		return 0
	}
	offset := int64(h.Sum64() % uint64(ms))
	return time.Duration(offset) * time.Millisecond
}

func (s *Scheduler) jitterDelay(jitter *time.Duration) time.Duration {
	if jitter == nil || *jitter <= 0 {
		return 0
	}
	ms := int64(*jitter / time.Millisecond)
	if ms <= 0 {
		return 0
	}
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return time.Duration(s.rng.Int63n(ms)) * time.Millisecond
}

// Tick is the single externally invokable evaluation step, per spec.md
// §4.12. now is the tick's reference instant. Returns a cancellation error
// if a handler's cancellation propagates; all other handler failures are
// captured as Failed events and never abort the tick.
func (s *Scheduler) Tick(now time.Time) error {
	for _, reg := range s.GetTriggers() {
		if err := s.tickOne(reg, now); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scheduler) tickOne(reg *TriggerRegistration, now time.Time) error {
	nextFire := reg.peekNextFire()
	if nextFire == nil {
		return nil
	}

	if !reg.Enabled() {
		if !now.Before(*nextFire) {
			s.emit(Event{Kind: EventSkipped, Context: s.contextFor(reg, *nextFire, now), SkipReason: SkipReasonDisabled})
		}
		return nil
	}

	opts := reg.Expression.Options
	effectiveFire := nextFire.Add(staggerOffset(reg.ID, opts.Stagger)).Add(s.jitterDelay(opts.Jitter))
	if now.Before(effectiveFire) {
		return nil
	}

	if opts.Max != nil && reg.FireCount() >= int64(*opts.Max) {
		s.emit(Event{Kind: EventSkipped, Context: s.contextFor(reg, *nextFire, now), SkipReason: SkipReasonMaxReached})
		reg.setNextFire(nil)
		return nil
	}

	scheduled := *nextFire
	reg.setNextFire(nil) // before invoking the handler: prevents double-fire from reentrancy

	if opts.Window != nil && now.After(scheduled.Add(*opts.Window)) {
		s.emit(Event{Kind: EventSkipped, Context: s.contextFor(reg, scheduled, now), SkipReason: SkipReasonWindowExceeded})
		s.rescheduleAfter(reg, scheduled)
		return nil
	}

	count := reg.fireCount.Add(1)
	reg.setLastFired(now)
	tctx := Context{ID: reg.ID, Scheduled: scheduled, Actual: now, FireCount: count, Expression: reg.Expression, Metadata: reg.Metadata}

	s.emit(Event{Kind: EventFiring, Context: tctx})
	err := reg.Handler(tctx)

	switch {
	case err == nil:
		s.emit(Event{Kind: EventCompleted, Context: tctx})
		s.recomputeNextFire(reg, scheduled, count)
		return nil
	case errors.Is(err, context.Canceled):
		// Cancellation restores next_fire and aborts the tick; it is the
		// only control flow that propagates out.
		s.rescheduleAfter(reg, scheduled)
		return err
	default:
		s.emit(Event{Kind: EventFailed, Context: tctx, Err: err})
		s.recomputeNextFire(reg, scheduled, count)
		return nil
	}
}

func (s *Scheduler) contextFor(reg *TriggerRegistration, scheduled, now time.Time) Context {
	return Context{ID: reg.ID, Scheduled: scheduled, Actual: now, FireCount: reg.FireCount(), Expression: reg.Expression, Metadata: reg.Metadata}
}

func (s *Scheduler) rescheduleAfter(reg *TriggerRegistration, from time.Time) {
	s.rngMu.Lock()
	next, ok := reg.Expression.NextOccurrence(from, s.rng)
	s.rngMu.Unlock()
	if ok {
		reg.setNextFire(&next)
	} else {
		reg.setNextFire(nil)
	}
}

func (s *Scheduler) recomputeNextFire(reg *TriggerRegistration, scheduled time.Time, count int64) {
	opts := reg.Expression.Options
	if opts.Max != nil && count >= int64(*opts.Max) {
		reg.setNextFire(nil)
		return
	}
	s.rescheduleAfter(reg, scheduled)
}

// Start begins the hosted tick loop, ticking once per second on the
// scheduler's clock. Calling Start twice is a no-op; calling it on a
// disposed scheduler fails.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.disposed.Load() == 1 {
		return ErrDisposed
	}
	if !s.started.CompareAndSwap(0, 1) {
		return nil
	}
	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.loopDone = make(chan struct{})
	go s.runLoop(loopCtx)
	return nil
}

func (s *Scheduler) runLoop(ctx context.Context) {
	defer close(s.loopDone)
	for {
		_ = s.Tick(s.clock.Now())
		if err := s.clock.Sleep(ctx, tickInterval); err != nil {
			return
		}
	}
}

// StopAsync halts the tick loop and waits for it to exit. Idempotent.
func (s *Scheduler) StopAsync() error {
	if !s.started.CompareAndSwap(1, 0) {
		return nil
	}
	if s.cancel != nil {
		s.cancel()
	}
	if s.loopDone != nil {
		<-s.loopDone
	}
	return nil
}

// Dispose stops the scheduler and marks it unusable for further Start
// calls. Idempotent.
func (s *Scheduler) Dispose() error {
	if !s.disposed.CompareAndSwap(0, 1) {
		return nil
	}
	return s.StopAsync()
}
