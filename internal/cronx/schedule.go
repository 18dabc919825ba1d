package cronx

import "time"

// CronSchedule is six cron fields (second optional) plus optional DOM/DOW
// specials, composed per spec.md §4.4-§4.5. All matching and searching
// operates on naive wall-clock component values; CronSchedule never looks
// at a time.Time's Location, so callers (expression.go) are responsible for
// projecting into the schedule's target zone before calling in, and for
// reattaching a concrete offset to whatever NextAfter returns.
type CronSchedule struct {
	HasSeconds bool

	Second *Field
	Minute *Field
	Hour   *Field
	Month  *Field

	DOM        *Field
	DOMSpecial *SpecialEntry

	DOW        *Field
	DOWSpecial *SpecialEntry
}

// implicitSecondField is substituted for Second when the expression omits
// the seconds field: a schedule without seconds fires only at :00.
func implicitSecondField() *Field {
	return &Field{
		Kind:    FieldSecond,
		Min:     MinSecond,
		Max:     MaxSecond,
		Entries: []FieldEntry{{Kind: EntryValue, Low: 0}},
		Raw:     "0",
	}
}

func (s *CronSchedule) domWildcard() bool {
	return s.DOMSpecial == nil && s.DOM.IsWildcard()
}

func (s *CronSchedule) dowWildcard() bool {
	return s.DOWSpecial == nil && s.DOW.IsWildcard()
}

func (s *CronSchedule) domMatches(t time.Time) bool {
	if s.DOMSpecial != nil {
		return s.DOMSpecial.Matches(t)
	}
	return s.DOM.Contains(t.Day())
}

func (s *CronSchedule) dowMatches(t time.Time) bool {
	if s.DOWSpecial != nil {
		return s.DOWSpecial.Matches(t)
	}
	return s.DOW.Contains(int(t.Weekday()))
}

// dayMatches implements the Vixie-Cron DOM/DOW OR predicate of spec.md §4.4.
func (s *CronSchedule) dayMatches(t time.Time) bool {
	domWild := s.domWildcard()
	dowWild := s.dowWildcard()

	switch {
	case domWild && dowWild:
		return true
	case domWild:
		return s.dowMatches(t)
	case dowWild:
		return s.domMatches(t)
	default:
		return s.domMatches(t) || s.dowMatches(t)
	}
}

// Matches reports whether t (interpreted purely by its wall-clock fields)
// satisfies every field and the DOM/DOW OR predicate.
func (s *CronSchedule) Matches(t time.Time) bool {
	sec := t.Second()
	if s.HasSeconds {
		if !s.Second.Contains(sec) {
			return false
		}
	} else if sec != 0 {
		return false
	}
	if !s.Minute.Contains(t.Minute()) {
		return false
	}
	if !s.Hour.Contains(t.Hour()) {
		return false
	}
	if !s.Month.Contains(int(t.Month())) {
		return false
	}
	return s.dayMatches(t)
}

// maxSearchYears bounds NextAfter's search per spec.md §4.5.
const maxSearchYears = 4

// NextAfter returns the earliest naive-local instant strictly after from
// that satisfies Matches, or ok=false if none exists within
// maxSearchYears of from's year. from is re-anchored to time.UTC so its
// Location never influences the search; only its wall-clock fields matter.
func (s *CronSchedule) NextAfter(from time.Time) (result time.Time, ok bool) {
	secField := s.Second
	if !s.HasSeconds {
		secField = implicitSecondField()
	}

	base := time.Date(from.Year(), from.Month(), from.Day(), from.Hour(), from.Minute(), from.Second(), 0, time.UTC)
	cur := base.Add(time.Second)
	maxYear := from.Year() + maxSearchYears

	const iterationBound = 5_000_000
	for i := 0; i < iterationBound; i++ {
		if cur.Year() > maxYear {
			return time.Time{}, false
		}

		if !s.Month.Contains(int(cur.Month())) {
			nextMonth, wrapped := nextInDomain(s.Month, int(cur.Month()))
			year := cur.Year()
			if wrapped {
				year++
			}
			cur = time.Date(year, time.Month(nextMonth), 1, 0, 0, 0, 0, time.UTC)
			continue
		}

		if !s.dayMatches(cur) {
			cur = time.Date(cur.Year(), cur.Month(), cur.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
			continue
		}

		if !s.Hour.Contains(cur.Hour()) {
			nextHour, wrapped := nextInDomain(s.Hour, cur.Hour())
			if wrapped {
				cur = time.Date(cur.Year(), cur.Month(), cur.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
			} else {
				cur = time.Date(cur.Year(), cur.Month(), cur.Day(), nextHour, 0, 0, 0, time.UTC)
			}
			continue
		}

		if !s.Minute.Contains(cur.Minute()) {
			nextMinute, wrapped := nextInDomain(s.Minute, cur.Minute())
			if wrapped {
				cur = time.Date(cur.Year(), cur.Month(), cur.Day(), cur.Hour(), 0, 0, 0, time.UTC).Add(time.Hour)
			} else {
				cur = time.Date(cur.Year(), cur.Month(), cur.Day(), cur.Hour(), nextMinute, 0, 0, time.UTC)
			}
			continue
		}

		if !secField.Contains(cur.Second()) {
			nextSecond, wrapped := nextInDomain(secField, cur.Second())
			if wrapped {
				cur = time.Date(cur.Year(), cur.Month(), cur.Day(), cur.Hour(), cur.Minute(), 0, 0, time.UTC).Add(time.Minute)
			} else {
				cur = time.Date(cur.Year(), cur.Month(), cur.Day(), cur.Hour(), cur.Minute(), nextSecond, 0, time.UTC)
			}
			continue
		}

		return cur, true
	}
	return time.Time{}, false
}

// nextInDomain returns the smallest value in f's domain, greater than
// current, that f.Contains. If no such value exists before the domain
// maximum, it wraps and returns the smallest matching value from the
// domain minimum, with wrapped=true.
func nextInDomain(f *Field, current int) (value int, wrapped bool) {
	for v := current + 1; v <= f.Max; v++ {
		if f.Contains(v) {
			return v, false
		}
	}
	for v := f.Min; v <= current; v++ {
		if f.Contains(v) {
			return v, true
		}
	}
	return f.Min, true
}
