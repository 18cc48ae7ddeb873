package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartdoc/pkg/ingest"
	"github.com/matzehuels/chartdoc/pkg/pipeline"
)

// ingestOpts holds the command-line flags for the ingest command.
type ingestOpts struct {
	persist bool // store valid documents
	noCache bool // disable the shape cache
}

// ingestCommand creates the ingest command for extraction result batches.
func (c *CLI) ingestCommand() *cobra.Command {
	opts := ingestOpts{}

	cmd := &cobra.Command{
		Use:   "ingest <results.json|dir>",
		Short: "Validate a batch of extraction results",
		Long: `Validate a batch of extraction results.

The input is either a results file mapping source names to extracted chart
text (the format produced by OCR extraction runs), or a directory with one
JSON file per extraction. Markdown code fences around the JSON are stripped
automatically. Every entry is validated independently; one bad extraction
never blocks the rest of the batch.

With --store, valid documents are persisted to the configured store.

Examples:
  chartdoc ingest ocr_results.json
  chartdoc ingest extracted/ --store`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runIngest(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.persist, "store", false, "persist valid documents to the configured store")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runIngest validates every entry in the batch and prints per-source verdicts.
func (c *CLI) runIngest(ctx context.Context, path string, opts ingestOpts) error {
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Reading %s...", path))
	spinner.Start()

	items, err := readBatch(path)
	if err != nil {
		spinner.StopWithError("Ingest failed")
		return fmt.Errorf("read results %s: %w", path, err)
	}
	spinner.Stop()

	runner, cleanup, err := c.newRunner(ctx, opts.noCache, opts.persist)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer cleanup()

	prog := newProgress(c.Logger)
	valid, invalid := 0, 0
	for _, item := range items {
		if item.Err != nil {
			printError("%s: %v", item.Source, item.Err)
			invalid++
			continue
		}

		result, err := runner.Execute(ctx, item.Candidate, pipeline.Options{
			Persist: opts.persist,
			Logger:  c.Logger,
		})
		if err != nil {
			printError("%s: %v", item.Source, err)
			invalid++
			continue
		}

		valid++
		if result.Record != nil {
			printSuccess("%s %s %s", item.Source, StyleDim.Render(iconArrow), StyleHighlight.Render(result.Record.ID))
		} else {
			printSuccess("%s %s", item.Source, StyleDim.Render(chartTitle(result.Document)))
		}
	}
	prog.done(fmt.Sprintf("Validated %d documents", len(items)))

	printNewline()
	if invalid > 0 {
		printWarning("%d valid, %d invalid", valid, invalid)
		return fmt.Errorf("%d of %d extractions invalid", invalid, len(items))
	}
	printInfo("%d valid, %d invalid", valid, invalid)
	if opts.persist {
		printNextStep("Serve stored documents", "chartdoc serve")
	}
	return nil
}

// readBatch reads a results file, or every JSON file when path is a directory.
func readBatch(path string) ([]ingest.Item, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return ingest.ReadDir(path)
	}
	return ingest.ReadResultsFile(path)
}
