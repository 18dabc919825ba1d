package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/chronex/chronex/internal/cronx"
	"github.com/chronex/chronex/internal/diff"
	"github.com/spf13/cobra"
)

type DiffCommand struct {
	*cobra.Command
	count     int
	seed      int64
	tolerance time.Duration
}

func init() {
	rootCmd.AddCommand(newDiffCommand().Command)
}

func newDiffCommand() *DiffCommand {
	dc := &DiffCommand{}
	dc.Command = &cobra.Command{
		Use:   "diff <expressionA> <expressionB>",
		Short: "Compare two expressions' occurrence lists",
		Long: `Compute both expressions' next occurrences and report which are
shared (within --tolerance of each other) and which appear in only one.

Examples:
  chronex diff "0 9 * * *" "0 9 * * 1-5" --count 30`,
		Args: cobra.ExactArgs(2),
		RunE: dc.run,
	}
	dc.Command.Flags().IntVarP(&dc.count, "count", "c", 20, "Number of occurrences per expression to compare (1-1000)")
	dc.Command.Flags().Int64Var(&dc.seed, "seed", 1, "Random seed for jitter/interval sampling")
	dc.Command.Flags().DurationVar(&dc.tolerance, "tolerance", time.Second, "Max gap between occurrences still counted as shared")
	return dc
}

func (dc *DiffCommand) run(_ *cobra.Command, args []string) error {
	if dc.count < 1 || dc.count > 1000 {
		return fmt.Errorf("count must be between 1 and 1000")
	}
	now := time.Now()

	exprA, err := cronx.Parse(withDefaultTimezone(args[0]), now)
	if err != nil {
		return fmt.Errorf("failed to parse first expression: %w", err)
	}
	exprB, err := cronx.Parse(withDefaultTimezone(args[1]), now)
	if err != nil {
		return fmt.Errorf("failed to parse second expression: %w", err)
	}

	rngA := rand.New(rand.NewSource(dc.seed))
	rngB := rand.New(rand.NewSource(dc.seed))
	timesA := exprA.Enumerate(now, dc.count, rngA)
	timesB := exprB.Enumerate(now, dc.count, rngB)

	result := diff.Compare(args[0], args[1], timesA, timesB, dc.tolerance)
	return diff.RenderText(dc.OutOrStdout(), result)
}
