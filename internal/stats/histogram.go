package stats

import (
	"fmt"
	"strings"
)

// RenderHistogram draws a text bar chart of an hour-of-day distribution.
func RenderHistogram(hours [24]int, width int) string {
	max := 0
	for _, v := range hours {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		return "no occurrences\n"
	}

	var sb strings.Builder
	sb.WriteString("Hour distribution:\n")
	for hour, count := range hours {
		barWidth := int(float64(count) / float64(max) * float64(width))
		bar := strings.Repeat("█", barWidth)
		fmt.Fprintf(&sb, "%02d:00 │%s %d\n", hour, bar, count)
	}
	return sb.String()
}
