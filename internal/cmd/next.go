package cmd

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/chronex/chronex/internal/cronx"
	"github.com/spf13/cobra"
)

// NextCommand wraps cobra.Command with next-specific flags.
type NextCommand struct {
	*cobra.Command
	count int
	seed  int64
	json  bool
	from  string
}

// NextRun is one computed occurrence.
type NextRun struct {
	Number    int    `json:"number"`
	Timestamp string `json:"timestamp"`
	Relative  string `json:"relative"`
}

// NextResult is the complete output for the next command.
type NextResult struct {
	Expression string    `json:"expression"`
	NextRuns   []NextRun `json:"next_runs"`
}

func init() {
	rootCmd.AddCommand(newNextCommand().Command)
}

func newNextCommand() *NextCommand {
	nc := &NextCommand{}
	nc.Command = &cobra.Command{
		Use:   "next <expression>",
		Short: "Show the next occurrences of an expression",
		Long: `Compute and print the next occurrences of a chronex expression.

Supports cron5/cron6 fields, L/W/# specials, @every, @once, aliases, TZ=
prefixes, and {option} suffixes.

Examples:
  chronex next "*/15 * * * *"
  chronex next "@daily" --count 5
  chronex next "@every 1m-5m" --seed 42 --json`,
		Args: cobra.ExactArgs(1),
		RunE: nc.run,
	}
	nc.Command.Flags().IntVarP(&nc.count, "count", "c", 10, "Number of occurrences to show (1-1000)")
	nc.Command.Flags().Int64Var(&nc.seed, "seed", 1, "Random seed for jitter/interval sampling")
	nc.Command.Flags().BoolVarP(&nc.json, "json", "j", false, "Output as JSON")
	nc.Command.Flags().StringVar(&nc.from, "from", "", "Reference instant (RFC3339); defaults to now")
	return nc
}

func (nc *NextCommand) run(_ *cobra.Command, args []string) error {
	if nc.count < 1 || nc.count > 1000 {
		return fmt.Errorf("count must be between 1 and 1000")
	}

	now := time.Now()
	if nc.from != "" {
		parsed, err := time.Parse(time.RFC3339, nc.from)
		if err != nil {
			return fmt.Errorf("failed to parse --from: %w", err)
		}
		now = parsed
	}

	expr, err := cronx.Parse(withDefaultTimezone(args[0]), now)
	if err != nil {
		return fmt.Errorf("failed to parse expression: %w", err)
	}

	rng := rand.New(rand.NewSource(nc.seed))
	times := expr.Enumerate(now, nc.count, rng)

	if nc.json {
		return nc.renderJSON(args[0], times, now)
	}
	return nc.renderText(args[0], times)
}

func (nc *NextCommand) renderText(expression string, times []time.Time) error {
	runWord := "runs"
	if len(times) == 1 {
		runWord = "run"
	}
	fmt.Fprintf(nc.OutOrStdout(), "Next %d %s for %q:\n\n", len(times), runWord, expression)
	for i, t := range times {
		fmt.Fprintf(nc.OutOrStdout(), "%d. %s\n", i+1, t.Format("2006-01-02 15:04:05 MST"))
	}
	return nil
}

func (nc *NextCommand) renderJSON(expression string, times []time.Time, now time.Time) error {
	runs := make([]NextRun, len(times))
	for i, t := range times {
		runs[i] = NextRun{Number: i + 1, Timestamp: t.Format(time.RFC3339), Relative: formatRelativeTime(now, t)}
	}
	result := NextResult{Expression: expression, NextRuns: runs}
	encoder := json.NewEncoder(nc.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// formatRelativeTime renders a coarse human-facing offset between two
// instants; this is purely a time-delta phrase, not a schedule-meaning
// description, so it doesn't reintroduce the humanization non-goal.
func formatRelativeTime(from, to time.Time) string {
	d := to.Sub(from)
	switch {
	case d < time.Minute:
		return "in less than a minute"
	case d < time.Hour:
		m := int(d.Minutes())
		if m == 1 {
			return "in 1 minute"
		}
		return fmt.Sprintf("in %d minutes", m)
	case d < 24*time.Hour:
		h := int(d.Hours())
		if h == 1 {
			return "in 1 hour"
		}
		return fmt.Sprintf("in %d hours", h)
	default:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "in 1 day"
		}
		return fmt.Sprintf("in %d days", days)
	}
}
