// Package diff compares two expressions' computed occurrence lists.
// Adapted from the teacher's crontab-vs-crontab diff into an
// expression-vs-expression diff, since chronex has no crontab-file concept.
package diff

import (
	"time"
)

// Row is one aligned comparison point: an occurrence present in A only, B
// only, or both (within Tolerance of each other).
type Row struct {
	A      *time.Time
	B      *time.Time
	InBoth bool
}

// Result is the full comparison between two occurrence lists.
type Result struct {
	ExpressionA string
	ExpressionB string
	Rows        []Row
	OnlyInA     int
	OnlyInB     int
	Shared      int
}

// Compare merges a and b, both already in chronological order, matching
// occurrences within tolerance as "shared".
func Compare(exprA, exprB string, a, b []time.Time, tolerance time.Duration) *Result {
	res := &Result{ExpressionA: exprA, ExpressionB: exprB}

	i, j := 0, 0
	for i < len(a) && j < len(b) {
		da, db := a[i], b[j]
		switch {
		case withinTolerance(da, db, tolerance):
			res.Rows = append(res.Rows, Row{A: &a[i], B: &b[j], InBoth: true})
			res.Shared++
			i++
			j++
		case da.Before(db):
			res.Rows = append(res.Rows, Row{A: &a[i]})
			res.OnlyInA++
			i++
		default:
			res.Rows = append(res.Rows, Row{B: &b[j]})
			res.OnlyInB++
			j++
		}
	}
	for ; i < len(a); i++ {
		res.Rows = append(res.Rows, Row{A: &a[i]})
		res.OnlyInA++
	}
	for ; j < len(b); j++ {
		res.Rows = append(res.Rows, Row{B: &b[j]})
		res.OnlyInB++
	}
	return res
}

func withinTolerance(a, b time.Time, tolerance time.Duration) bool {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return d <= tolerance
}
