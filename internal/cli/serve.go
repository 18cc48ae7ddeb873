package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartdoc/internal/api"
	"github.com/matzehuels/chartdoc/pkg/pipeline"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the chartdoc HTTP API",
		Long: `Run the chartdoc HTTP API.

The server exposes validation and document storage endpoints:

  POST   /api/validate                        validate without storing
  POST   /api/documents                       validate and store
  GET    /api/documents                       list stored documents
  GET    /api/documents/{id}                  canonical document
  GET    /api/documents/{id}/shapes/{target}  transformed shape
  DELETE /api/documents/{id}                  delete a document

The store and cache backends come from the config file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, \":8080\")")

	return cmd
}

// runServe opens the configured backends and serves until the context is
// cancelled.
func (c *CLI) runServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = c.Config.Server.Addr
	}

	st, err := OpenStore(ctx, c.Config.Store)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	cch, err := OpenCache(ctx, c.Config.Cache)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer cch.Close()

	runner := pipeline.NewRunner(cch, nil, st, c.Logger)
	server := api.NewServer(runner, st, c.Logger)

	printInfo("Serving on %s", StyleHighlight.Render(addr))
	return server.ListenAndServe(ctx, addr)
}
