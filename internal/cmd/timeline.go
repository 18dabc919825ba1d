package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/chronex/chronex/internal/cronx"
	"github.com/chronex/chronex/internal/render"
	"github.com/spf13/cobra"
)

type TimelineCommand struct {
	*cobra.Command
	count int
	seed  int64
	from  string
}

func init() {
	rootCmd.AddCommand(newTimelineCommand().Command)
}

func newTimelineCommand() *TimelineCommand {
	tc := &TimelineCommand{}
	tc.Command = &cobra.Command{
		Use:   "timeline <expression>",
		Short: "Render an expression's occurrences as a chronological table",
		Long: `Compute an expression's next occurrences and render them as a table
with the gap since the previous occurrence. This lists computed instants;
it does not describe the schedule's meaning in prose.

Examples:
  chronex timeline "0 9 * * 1-5" --count 20`,
		Args: cobra.ExactArgs(1),
		RunE: tc.run,
	}
	tc.Command.Flags().IntVarP(&tc.count, "count", "c", 20, "Number of occurrences to render (1-1000)")
	tc.Command.Flags().Int64Var(&tc.seed, "seed", 1, "Random seed for jitter/interval sampling")
	tc.Command.Flags().StringVar(&tc.from, "from", "", "Reference instant (RFC3339); defaults to now")
	return tc
}

func (tc *TimelineCommand) run(_ *cobra.Command, args []string) error {
	if tc.count < 1 || tc.count > 1000 {
		return fmt.Errorf("count must be between 1 and 1000")
	}
	now := time.Now()
	if tc.from != "" {
		parsed, err := time.Parse(time.RFC3339, tc.from)
		if err != nil {
			return fmt.Errorf("failed to parse --from: %w", err)
		}
		now = parsed
	}
	expr, err := cronx.Parse(withDefaultTimezone(args[0]), now)
	if err != nil {
		return fmt.Errorf("failed to parse expression: %w", err)
	}
	rng := rand.New(rand.NewSource(tc.seed))
	times := expr.Enumerate(now, tc.count, rng)

	tl := render.NewTimeline(args[0], times)
	_, err = fmt.Fprint(tc.OutOrStdout(), tl.Render())
	return err
}
