package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartdoc/pkg/chart"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file...>",
		Short: "Validate chart documents against the canonical schema",
		Long: `Validate chart documents against the canonical schema.

Each file is checked in two phases: structural validation (required fields,
primitive types, enums) and cross-reference validation (series keys against
data rows). The first violation found is reported with its location.

Use "-" to read a single document from stdin.

Examples:
  chartdoc validate sales.json
  chartdoc validate charts/*.json
  cat sales.json | chartdoc validate -`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd.Context(), args)
		},
	}
}

// runValidate checks every file and reports per-file verdicts.
// A validation failure in one file does not stop the others from being
// checked; the command fails if any file was invalid.
func (c *CLI) runValidate(ctx context.Context, paths []string) error {
	invalid := 0
	for _, path := range paths {
		if err := validateOne(path); err != nil {
			if isUsageError(err) {
				return err
			}
			printError("%s: %v", displayName(path), err)
			invalid++
			continue
		}
		printSuccess("%s", displayName(path))
	}

	if invalid > 0 {
		printNewline()
		return fmt.Errorf("%d of %d documents invalid", invalid, len(paths))
	}
	return nil
}

func validateOne(path string) error {
	candidate, err := decodeFile(path)
	if err != nil {
		return err
	}
	_, err = chart.Validate(candidate)
	return err
}

func decodeFile(path string) (chart.Candidate, error) {
	if path == "-" {
		return chart.DecodeCandidate(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &usageError{err}
	}
	defer f.Close()
	return chart.DecodeCandidate(f)
}

func displayName(path string) string {
	if path == "-" {
		return "stdin"
	}
	return path
}

// usageError marks failures that should abort the whole command (e.g. a
// missing file) rather than count as one invalid document.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func isUsageError(err error) bool {
	var ue *usageError
	return errors.As(err, &ue)
}
