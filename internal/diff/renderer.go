package diff

import (
	"fmt"
	"io"
)

// RenderText writes a human-readable summary of a Result to w.
func RenderText(w io.Writer, res *Result) error {
	if _, err := fmt.Fprintf(w, "Diff: %q vs %q\n", res.ExpressionA, res.ExpressionB); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\n\n", "───────────────────────────────────────────────"); err != nil {
		return err
	}
	for _, row := range res.Rows {
		switch {
		case row.InBoth:
			if _, err := fmt.Fprintf(w, "  = %s\n", row.A.Format("2006-01-02 15:04:05 MST")); err != nil {
				return err
			}
		case row.A != nil:
			if _, err := fmt.Fprintf(w, "  - %s (only in A)\n", row.A.Format("2006-01-02 15:04:05 MST")); err != nil {
				return err
			}
		case row.B != nil:
			if _, err := fmt.Fprintf(w, "  + %s (only in B)\n", row.B.Format("2006-01-02 15:04:05 MST")); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(w, "\nshared=%d only_in_a=%d only_in_b=%d\n", res.Shared, res.OnlyInA, res.OnlyInB)
	return err
}
