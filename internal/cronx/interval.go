package cronx

import (
	"math/rand"
	"time"
)

// IntervalSchedule is an "@every" expression: fires every Min duration, or
// (when Max is set) every uniformly random duration in [Min, Max].
type IntervalSchedule struct {
	Min time.Duration
	Max *time.Duration
}

// NextAfter returns from+Min for a fixed interval, or from+U(Min,Max) for a
// randomized one. rng must be non-nil for the randomized case; callers
// inject it so the choice is reproducible in tests.
func (s *IntervalSchedule) NextAfter(from time.Time, rng *rand.Rand) (time.Time, bool) {
	if s.Max == nil {
		return from.Add(s.Min), true
	}
	span := *s.Max - s.Min
	if span <= 0 {
		return from.Add(s.Min), true
	}
	// Millisecond resolution per spec.md §4.6: draw a uniform offset within
	// the span in whole milliseconds, not full duration precision.
	spanMs := span.Milliseconds()
	offsetMs := rng.Int63n(spanMs + 1)
	return from.Add(s.Min).Add(time.Duration(offsetMs) * time.Millisecond), true
}
