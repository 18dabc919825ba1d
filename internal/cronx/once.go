package cronx

import "time"

// OnceSchedule is a single-shot "@once" expression: an absolute ISO-8601
// instant, or one resolved from a "+duration" offset at parse time.
type OnceSchedule struct {
	FireAt         time.Time
	WasRelative    bool
	RelativeOffset time.Duration
}

// NextAfter returns FireAt if it is strictly after from, otherwise ok=false:
// a once-schedule has at most one occurrence, ever.
func (s *OnceSchedule) NextAfter(from time.Time) (time.Time, bool) {
	if s.FireAt.After(from) {
		return s.FireAt, true
	}
	return time.Time{}, false
}
