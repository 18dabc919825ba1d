package scheduler

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/chronex/chronex/internal/cronx"
)

// Handler is a trigger callback. Returning an error rooted in
// context.Canceled is treated as cancellation (the schedule resumes on the
// next tick); any other error is reported via Failed.
type Handler func(tctx Context) error

// TriggerRegistration is one registered trigger, owned by Scheduler.
// enabled/fireCount are atomics; nextFire/lastFired are guarded by mu so
// they update together. Per spec.md §3/§5.
type TriggerRegistration struct {
	ID         string
	Expression *cronx.Expression
	Handler    Handler
	Metadata   map[string]string

	enabled   atomic.Bool
	fireCount atomic.Int64

	mu        sync.Mutex
	nextFire  *time.Time
	lastFired *time.Time
}

func newRegistration(id string, expr *cronx.Expression, handler Handler, metadata map[string]string) *TriggerRegistration {
	reg := &TriggerRegistration{ID: id, Expression: expr, Handler: handler, Metadata: metadata}
	reg.enabled.Store(true)
	return reg
}

// Enabled reports whether the trigger currently fires on schedule.
func (r *TriggerRegistration) Enabled() bool { return r.enabled.Load() }

// SetEnabled toggles whether the trigger fires; a disabled trigger emits
// Skipped("disabled") instead of firing.
func (r *TriggerRegistration) SetEnabled(v bool) { r.enabled.Store(v) }

// FireCount returns the number of times this trigger has fired.
func (r *TriggerRegistration) FireCount() int64 { return r.fireCount.Load() }

// NextFire returns the next scheduled instant, or ok=false if none pending.
func (r *TriggerRegistration) NextFire() (time.Time, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.nextFire == nil {
		return time.Time{}, false
	}
	return *r.nextFire, true
}

// LastFired returns the instant of the most recent fire, or ok=false if the
// trigger has never fired.
func (r *TriggerRegistration) LastFired() (time.Time, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lastFired == nil {
		return time.Time{}, false
	}
	return *r.lastFired, true
}

func (r *TriggerRegistration) setNextFire(t *time.Time) {
	r.mu.Lock()
	r.nextFire = t
	r.mu.Unlock()
}

func (r *TriggerRegistration) peekNextFire() *time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.nextFire
}

func (r *TriggerRegistration) setLastFired(t time.Time) {
	r.mu.Lock()
	r.lastFired = &t
	r.mu.Unlock()
}
