package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartdoc/pkg/chart"
	"github.com/matzehuels/chartdoc/pkg/pipeline"
	"github.com/matzehuels/chartdoc/pkg/transform"
)

// transformOpts holds the command-line flags for the transform command.
type transformOpts struct {
	targetsStr string // comma-separated target names
	output     string // output file (single target) or base path (multiple)
	noCache    bool   // disable the shape cache
	refresh    bool   // bypass cached shapes
}

// transformCommand creates the transform command.
func (c *CLI) transformCommand() *cobra.Command {
	opts := transformOpts{}

	cmd := &cobra.Command{
		Use:   "transform <document.json>",
		Short: "Project a valid chart document into renderer shapes",
		Long: fmt.Sprintf(`Project a valid chart document into renderer shapes.

The document is validated first; transformation only runs on valid documents.
Shapes are cached locally by content hash for faster subsequent runs.

Targets: %s

Examples:
  chartdoc transform sales.json                          # all targets to stdout
  chartdoc transform sales.json -t label-aligned         # one target
  chartdoc transform sales.json -t row-oriented -o out.json`, strings.Join(transform.Targets(), ", ")),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTransform(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.targetsStr, "target", "t", "", "target shape(s), comma-separated (default: all)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single target) or base path (multiple)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute shapes even if cached")

	return cmd
}

// runTransform validates the input document and writes the requested shapes.
func (c *CLI) runTransform(ctx context.Context, input string, opts transformOpts) error {
	targets := parseTargets(opts.targetsStr)
	if err := pipeline.ValidateTargets(targets); err != nil {
		return err
	}

	candidate, err := decodeFile(input)
	if err != nil {
		return err
	}

	runner, cleanup, err := c.newRunner(ctx, opts.noCache, false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer cleanup()

	result, err := runner.Execute(ctx, candidate, pipeline.Options{
		Targets: targets,
		Refresh: opts.refresh,
		Logger:  c.Logger,
	})
	if err != nil {
		printError("%s: %v", displayName(input), err)
		return fmt.Errorf("transform: %w", err)
	}

	cached := allCached(result.CacheInfo.ShapeHits)
	printSuccess("%s", displayName(input))
	printDocStats(result.Stats.SeriesCount, result.Stats.RowCount, cached)

	return writeShapes(result, input, opts.output)
}

// parseTargets parses a comma-separated target string into a slice.
// An empty string selects every target.
func parseTargets(s string) []string {
	if s == "" {
		return pipeline.DefaultTargets()
	}
	parts := strings.Split(s, ",")
	targets := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			targets = append(targets, p)
		}
	}
	return targets
}

func allCached(hits map[string]bool) bool {
	if len(hits) == 0 {
		return false
	}
	for _, hit := range hits {
		if !hit {
			return false
		}
	}
	return true
}

// writeShapes writes the transformed shapes. A single shape goes to the
// output file (or stdout); multiple shapes go to <base>.<target>.json files.
func writeShapes(result *pipeline.Result, input, output string) error {
	targets := make([]string, 0, len(result.Shapes))
	for target := range result.Shapes {
		targets = append(targets, target)
	}

	if len(targets) == 1 {
		return writeShape(result.Shapes[targets[0]], output)
	}

	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	}
	for _, target := range transform.Targets() {
		shape, ok := result.Shapes[target]
		if !ok {
			continue
		}
		path := fmt.Sprintf("%s.%s.json", base, target)
		if err := os.WriteFile(path, append(shape, '\n'), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

func writeShape(shape []byte, output string) error {
	if output == "" {
		_, err := os.Stdout.Write(append(shape, '\n'))
		return err
	}
	if err := os.WriteFile(output, append(shape, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printFile(output)
	return nil
}

// chartTitle extracts a display title from a validated document.
func chartTitle(doc *chart.Document) string {
	return doc.Meta().Title
}
