// Package mcp serves the job table over the Model Context Protocol so agents
// can build and inspect the sheet without shelling out to the CLI.
package mcp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/salmonumbrella/grid-cli/internal/cmdutil"
	"github.com/salmonumbrella/grid-cli/internal/dataset"
	"github.com/salmonumbrella/grid-cli/internal/debug"
	clierrors "github.com/salmonumbrella/grid-cli/internal/errors"
	"github.com/salmonumbrella/grid-cli/internal/jobs"
	"github.com/salmonumbrella/grid-cli/internal/output"
	"github.com/salmonumbrella/grid-cli/internal/table"
	"github.com/salmonumbrella/grid-cli/internal/validate"
)

const (
	serverName = "grid"

	ToolBuildTable     = "build_table"
	ToolDescribeSchema = "describe_schema"
)

// Loader reads the dataset a tool call names. An empty path means the
// bundled sample.
type Loader func(path string) (table.Dataset, error)

// Server wraps an mcp-go server with the grid tools registered.
type Server struct {
	inner   *server.MCPServer
	load    Loader
	padding *int
	sheet   jobs.Sheet
}

// Option configures a Server.
type Option func(*Server)

// WithLoader replaces the dataset loader.
func WithLoader(l Loader) Option {
	return func(s *Server) { s.load = l }
}

// WithPadding sets the blank rows appended when a call gives no "pad".
func WithPadding(n int) Option {
	return func(s *Server) { s.padding = &n }
}

// NewServer creates a server reporting version in its handshake.
func NewServer(version string, opts ...Option) *Server {
	s := &Server{
		load:  loadFile,
		sheet: jobs.DefaultSheet(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.inner = server.NewMCPServer(serverName, version, server.WithToolCapabilities(false))
	s.inner.AddTool(buildTableTool(), s.handleBuildTable)
	s.inner.AddTool(describeSchemaTool(), s.handleDescribeSchema)
	return s
}

// MCPServer exposes the underlying server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.inner
}

// ServeStdio answers requests read from in until ctx is done or in closes.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	return server.NewStdioServer(s.inner).Listen(ctx, in, out)
}

func loadFile(path string) (table.Dataset, error) {
	if path == "-" {
		return table.Dataset{}, fmt.Errorf("stdin is reserved for the protocol; pass a file path")
	}
	return jobs.Open(path, "", nil)
}

func buildTableTool() mcp.Tool {
	return mcp.NewTool(ToolBuildTable,
		mcp.WithDescription("Build the job-request table from a dataset file (or the bundled sample) and render it."),
		mcp.WithString("file",
			mcp.Description("Path to a YAML, JSON, NDJSON/JSONL or CSV dataset, detected by extension. Omit for the bundled sample."),
		),
		mcp.WithString("format",
			mcp.Description("Rendering of the built table. Defaults to json."),
			mcp.Enum("json", "ndjson", "yaml", "csv", "table", "grid", "text"),
		),
		mcp.WithNumber("pad",
			mcp.Description("Blank rows appended below the data."),
		),
		mcp.WithString("hide",
			mcp.Description("Comma-separated column IDs to hide."),
		),
		mcp.WithBoolean("grouped",
			mcp.Description("Add the Request/Assignment header row."),
		),
		mcp.WithString("query",
			mcp.Description("jq expression applied to the structured output."),
		),
	)
}

func describeSchemaTool() mcp.Tool {
	return mcp.NewTool(ToolDescribeSchema,
		mcp.WithDescription("List the table's columns with their accessor, formatter and header group."),
		mcp.WithBoolean("grouped",
			mcp.Description("Describe the grouped schema."),
		),
	)
}

func (s *Server) handleBuildTable(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := strings.TrimSpace(req.GetString("file", ""))
	format, err := output.ParseFormat(req.GetString("format", string(output.FormatJSON)))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	opts := jobs.Options{
		Grouped: req.GetBool("grouped", false),
		Hide:    cmdutil.SplitList(req.GetString("hide", "")),
	}
	slog.Debug("mcp tool call", "tool", ToolBuildTable, "file", path, "format", format)

	done := debug.Span(ctx, nil, "load", "file", path)
	ds, err := s.load(path)
	done(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	pad := req.GetInt("pad", s.defaultPadding(path))
	if err := validate.Padding(pad); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ds = dataset.Pad(ds, pad)

	done = debug.Span(ctx, nil, "build", "rows", ds.Len())
	model, err := jobs.Build(ds, opts)
	done(err)
	if err != nil {
		return mcp.NewToolResultError(clierrors.FromTableError(err).Error()), nil
	}

	view := &output.View{Breadcrumb: s.sheet.Breadcrumb(), Title: s.sheet.Title, Model: model}
	if q := strings.TrimSpace(req.GetString("query", "")); q != "" {
		ctx = output.WithQuery(ctx, q)
	}

	var buf bytes.Buffer
	if err := output.NewPrinter(&buf, format).Print(ctx, view); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}

func (s *Server) handleDescribeSchema(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	schema, err := jobs.SchemaFor(jobs.Options{Grouped: req.GetBool("grouped", false)})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var buf bytes.Buffer
	if err := output.NewPrinter(&buf, output.FormatJSON).Print(ctx, jobs.Describe(schema)); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}

func (s *Server) defaultPadding(path string) int {
	if s.padding != nil {
		return *s.padding
	}
	return jobs.PaddingFor(path)
}
