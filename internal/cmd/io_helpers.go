package cmd

import (
	"context"
	"io"
	"os"

	"github.com/salmonumbrella/grid-cli/internal/iocontext"
	"github.com/salmonumbrella/grid-cli/internal/output"
	"github.com/salmonumbrella/grid-cli/internal/ui"
)

func stdoutFromContext(ctx context.Context) io.Writer {
	return iocontext.StdoutOrDefault(ctx, os.Stdout)
}

func stderrFromContext(ctx context.Context) io.Writer {
	return iocontext.StderrOrDefault(ctx, os.Stderr)
}

func stdinFromContext(ctx context.Context) io.Reader {
	return iocontext.StdinOrDefault(ctx, os.Stdin)
}

// printerForContext returns a printer for the context's format. Text output
// is painted with the context's colour mode.
func printerForContext(ctx context.Context) *output.Printer {
	return printerTo(ctx, stdoutFromContext(ctx), output.FormatFromContext(ctx))
}

func printerTo(ctx context.Context, w io.Writer, format output.Format) *output.Printer {
	return output.NewPrinter(w, format).WithPainter(ui.NewPainter(w, ui.FromContext(ctx).Mode()))
}
