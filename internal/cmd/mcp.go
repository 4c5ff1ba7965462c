package cmd

import (
	"github.com/spf13/cobra"

	"github.com/salmonumbrella/grid-cli/internal/mcp"
)

func newMCPCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the job table over the Model Context Protocol",
		Long: `Run grid as a Model Context Protocol (MCP) server so agents can build and
inspect the job table.`,
	}
	cmd.AddCommand(newMCPServeCmd(app))
	return cmd
}

func newMCPServeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP requests on stdin/stdout",
		Long: `Serve MCP requests on stdin/stdout until the input closes or the process
is interrupted.

Tools:
  build_table      Build the table from a dataset file (or the sample) and
                   render it as json, ndjson, yaml, csv, table, grid or text.
  describe_schema  List the columns with accessor, formatter and group.

Logs and --debug traces go to stderr.`,
		Example: `  grid mcp serve
  grid mcp serve --debug`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := ConfigFromContext(ctx)

			var opts []mcp.Option
			if cfg.Padding != nil {
				opts = append(opts, mcp.WithPadding(*cfg.Padding))
			}
			srv := mcp.NewServer(app.Version, opts...)
			return srv.ServeStdio(ctx, stdinFromContext(ctx), stdoutFromContext(ctx))
		},
	}
}
