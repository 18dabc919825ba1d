// Package duration parses and renders the compound duration literals used
// throughout a Chronex expression: inside "@every" bodies, relative
// "@once" bodies, and option values such as jitter/stagger/window.
package duration

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// unit is one recognized duration suffix, ordered largest-first so
// Canonical can walk it directly.
type unit struct {
	suffix string
	size   time.Duration
}

// units is ordered largest-to-smallest; Parse matches the full run of
// letters between two digit runs against this table, so "ms" and "m" never
// collide regardless of order here.
var units = []unit{
	{"d", 24 * time.Hour},
	{"h", time.Hour},
	{"m", time.Minute},
	{"s", time.Second},
	{"ms", time.Millisecond},
}

// orderedForRender lists the units largest-first for canonical rendering.
var orderedForRender = []unit{
	{"d", 24 * time.Hour},
	{"h", time.Hour},
	{"m", time.Minute},
	{"s", time.Second},
	{"ms", time.Millisecond},
}

// Parse parses a compound duration string such as "1h30m", "500ms", or
// "2d4h15m". Fails on empty input, trailing digits with no unit, an
// unknown unit, or arithmetic overflow. The result is never negative.
func Parse(raw string) (time.Duration, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("duration: empty input")
	}

	var total time.Duration
	i := 0
	for i < len(s) {
		start := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == start {
			return 0, fmt.Errorf("duration %q: expected digits at position %d", raw, start)
		}
		digits := s[start:i]

		unitStart := i
		for i < len(s) && (s[i] < '0' || s[i] > '9') {
			i++
		}
		if i == unitStart {
			return 0, fmt.Errorf("duration %q: missing unit after %q", raw, digits)
		}
		suffix := s[unitStart:i]

		u, ok := lookupUnit(suffix)
		if !ok {
			return 0, fmt.Errorf("duration %q: unknown unit %q", raw, suffix)
		}

		n, err := strconv.ParseInt(digits, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("duration %q: %w", raw, err)
		}

		component, overflow := multiplyOverflows(n, int64(u.size))
		if overflow {
			return 0, fmt.Errorf("duration %q: component %s%s overflows", raw, digits, suffix)
		}
		sum := total + time.Duration(component)
		if sum < total {
			return 0, fmt.Errorf("duration %q: total overflows", raw)
		}
		total = sum
	}

	if total < 0 {
		return 0, fmt.Errorf("duration %q: negative result", raw)
	}
	return total, nil
}

// lookupUnit resolves the full run of letters Parse already scanned for one
// component against the unit table; "500ms" and "1m30s" never collide
// because Parse scans the whole letter run before this is called.
func lookupUnit(suffix string) (unit, bool) {
	for _, u := range units {
		if u.suffix == suffix {
			return u, true
		}
	}
	return unit{}, false
}

func multiplyOverflows(n, size int64) (int64, bool) {
	if n == 0 || size == 0 {
		return 0, false
	}
	product := n * size
	if product/size != n {
		return 0, true
	}
	if product < 0 {
		return 0, true
	}
	return product, false
}

// Canonical renders d in largest-unit-first form, e.g. "1h30m", "2d",
// "500ms". Zero renders as "0ms". Canonical(Parse(Canonical(d))) ==
// Canonical(d) for any d.
func Canonical(d time.Duration) string {
	if d == 0 {
		return "0ms"
	}
	if d < 0 {
		d = -d
	}

	var b strings.Builder
	remaining := d
	for _, u := range orderedForRender {
		if remaining < u.size {
			continue
		}
		count := remaining / u.size
		remaining -= count * u.size
		fmt.Fprintf(&b, "%d%s", count, u.suffix)
	}
	if b.Len() == 0 {
		return "0ms"
	}
	return b.String()
}

// MaxRepresentable is the largest duration Parse can return without
// overflowing time.Duration (int64 nanoseconds).
const MaxRepresentable = time.Duration(math.MaxInt64)
