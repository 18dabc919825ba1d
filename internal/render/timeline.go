// Package render formats a single expression's computed occurrences for
// the CLI's "timeline" command: a chronological table with inter-occurrence
// gaps. Adapted from the teacher's multi-job timeline grid down to a single
// schedule, since chronex evaluates one expression at a time rather than a
// crontab of many jobs.
package render

import (
	"fmt"
	"strings"
	"time"
)

// Timeline is an ordered list of occurrences for one expression.
type Timeline struct {
	Expression string
	Occurs     []time.Time
}

// NewTimeline builds a Timeline from a set of already-computed occurrences.
// occurs must already be in chronological order (Expression.Enumerate
// guarantees this).
func NewTimeline(expression string, occurs []time.Time) *Timeline {
	return &Timeline{Expression: expression, Occurs: occurs}
}

// Render produces a fixed-width table: index, timestamp, and the gap since
// the previous occurrence.
func (tl *Timeline) Render() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Timeline for %q\n\n", tl.Expression)
	if len(tl.Occurs) == 0 {
		sb.WriteString("  (no occurrences)\n")
		return sb.String()
	}

	fmt.Fprintf(&sb, "  %-4s %-30s %s\n", "#", "Occurrence", "Gap")
	var prev time.Time
	for i, t := range tl.Occurs {
		gap := "-"
		if i > 0 {
			gap = t.Sub(prev).String()
		}
		fmt.Fprintf(&sb, "  %-4d %-30s %s\n", i+1, t.Format("2006-01-02 15:04:05 MST"), gap)
		prev = t
	}
	return sb.String()
}

// RenderRow is one machine-readable entry, for JSON output.
type RenderRow struct {
	Number     int       `json:"number"`
	Occurrence time.Time `json:"occurrence"`
	GapSeconds float64   `json:"gap_seconds,omitempty"`
}

// Rows returns the same data as Render, structured for JSON encoding.
func (tl *Timeline) Rows() []RenderRow {
	rows := make([]RenderRow, len(tl.Occurs))
	var prev time.Time
	for i, t := range tl.Occurs {
		row := RenderRow{Number: i + 1, Occurrence: t}
		if i > 0 {
			row.GapSeconds = t.Sub(prev).Seconds()
		}
		rows[i] = row
		prev = t
	}
	return rows
}
