package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/chronex/chronex/internal/validate"
	"github.com/spf13/cobra"
)

// ValidateCommand wraps cobra.Command with validate-specific flags.
type ValidateCommand struct {
	*cobra.Command
	json bool
}

func init() {
	rootCmd.AddCommand(newValidateCommand().Command)
}

func newValidateCommand() *ValidateCommand {
	vc := &ValidateCommand{}
	vc.Command = &cobra.Command{
		Use:   "validate <expression>",
		Short: "Validate a chronex expression and print diagnostics",
		Long: `Run the full diagnostic validator against an expression and print
every error and warning it collects, without requiring the expression to
parse cleanly.

Examples:
  chronex validate "*/15 * * * *"
  chronex validate "@every 5m {jitter:10m}"
  chronex validate "TZ=Nonexistent/Zone * * * * *" --json`,
		Args: cobra.ExactArgs(1),
		RunE: vc.run,
	}
	vc.Command.Flags().BoolVarP(&vc.json, "json", "j", false, "Output as JSON")
	return vc
}

func (vc *ValidateCommand) run(_ *cobra.Command, args []string) error {
	result := validate.Validate(args[0])

	if vc.json {
		encoder := json.NewEncoder(vc.OutOrStdout())
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result); err != nil {
			return err
		}
		if !result.IsValid {
			return fmt.Errorf("expression has %d error(s)", len(result.Errors))
		}
		return nil
	}

	if result.IsValid {
		fmt.Fprintf(vc.OutOrStdout(), "valid\n")
	} else {
		fmt.Fprintf(vc.OutOrStdout(), "invalid\n")
	}
	for _, e := range result.Errors {
		fmt.Fprintf(vc.OutOrStdout(), "  ERROR [%s] %s: %s\n", e.Code, e.Field, e.Message)
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(vc.OutOrStdout(), "  WARN  [%s] %s: %s\n", w.Code, w.Field, w.Message)
	}
	if !result.IsValid {
		return fmt.Errorf("expression has %d error(s)", len(result.Errors))
	}
	return nil
}
