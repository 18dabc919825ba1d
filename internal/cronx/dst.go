package cronx

import "time"

// ZoneResolver attaches a real offset to a naive wall-clock time within a
// named zone. Production code uses RealZoneResolver (time.LoadLocation);
// ParseWithResolver accepts any other implementation.
type ZoneResolver interface {
	// Load returns the *time.Location for an IANA zone name.
	Load(name string) (*time.Location, error)
}

// RealZoneResolver resolves zones via the system/Go-embedded tzdata.
type RealZoneResolver struct{}

func (RealZoneResolver) Load(name string) (*time.Location, error) {
	return time.LoadLocation(name)
}

// ResolveNaive reattaches a concrete UTC offset to a naive wall-clock time
// (as produced by CronSchedule.NextAfter, carried in time.UTC purely as a
// field container) within loc, per spec.md §4.10:
//
//   - Normal case: the wall-clock time has exactly one valid offset in loc;
//     use it.
//   - Spring-forward gap: the wall-clock time never occurs (clocks jumped
//     past it). Resolve to the instant immediately after the gap, i.e. as
//     if the wall clock had continued to tick through the skipped period.
//   - Fall-back ambiguity: the wall-clock time occurs twice (clocks repeated
//     it). Resolve to the earlier occurrence, before the offset changed.
//
// This does not rely on how time.Date itself breaks ties for an ambiguous
// wall clock; it samples the zone's offset well outside the transition
// window and reasons about which offset(s) actually reproduce the
// requested wall-clock reading.
func ResolveNaive(naive time.Time, loc *time.Location) time.Time {
	year, month, day := naive.Date()
	hour, minute, sec := naive.Clock()
	nsec := naive.Nanosecond()
	utcNaive := time.Date(year, month, day, hour, minute, sec, nsec, time.UTC)

	const probeWindow = 26 * time.Hour
	_, offBefore := utcNaive.Add(-probeWindow).In(loc).Zone()
	_, offAfter := utcNaive.Add(probeWindow).In(loc).Zone()

	candBefore := utcNaive.Add(-time.Duration(offBefore) * time.Second)
	beforeValid := reproducesWallClock(candBefore, loc, year, month, day, hour, minute, sec)

	if offBefore == offAfter {
		// No transition in the surrounding window: unambiguous normal case.
		return candBefore.In(loc)
	}

	candAfter := utcNaive.Add(-time.Duration(offAfter) * time.Second)
	afterValid := reproducesWallClock(candAfter, loc, year, month, day, hour, minute, sec)

	switch {
	case beforeValid && afterValid:
		// Fall-back: both offsets reproduce this wall clock. Earliest wins.
		if candBefore.Before(candAfter) {
			return candBefore.In(loc)
		}
		return candAfter.In(loc)
	case beforeValid:
		return candBefore.In(loc)
	case afterValid:
		return candAfter.In(loc)
	default:
		// Spring-forward gap: neither offset's naive reattachment survives
		// round-tripping through loc. Reattaching with the pre-transition
		// offset lands past the transition, i.e. the instant immediately
		// after the gap.
		return candBefore.In(loc)
	}
}

func reproducesWallClock(t time.Time, loc *time.Location, year int, month time.Month, day, hour, minute, sec int) bool {
	lt := t.In(loc)
	y, m, d := lt.Date()
	h, mi, s := lt.Clock()
	return y == year && m == month && d == day && h == hour && mi == minute && s == sec
}
