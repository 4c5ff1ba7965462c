package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/grid-cli/internal/debug"
	clierrors "github.com/salmonumbrella/grid-cli/internal/errors"
	"github.com/salmonumbrella/grid-cli/internal/jobs"
	"github.com/salmonumbrella/grid-cli/internal/output"
	"github.com/salmonumbrella/grid-cli/internal/ui"
)

func newShowCmd() *cobra.Command {
	var (
		flags   sheetFlags
		noTitle bool
		records bool
		watch   bool
	)

	cmd := &cobra.Command{
		Use:     "show",
		Aliases: []string{"ls"},
		Short:   "Build the job table and render it",
		Long: `Build the job-request table and render it in the selected output format.

Text output prints the breadcrumb and title above an aligned sheet with coloured
status and priority badges and clickable URLs. Structured formats (json, yaml)
emit the full table document: header groups, rows and cells with their keys.`,
		Example: `  grid show
  grid show --file jobs.csv --hide submitter,assigned
  grid show --grouped -o grid
  grid show -o json --query '.rows[].cells[1].display'
  grid show --records -o ndjson
  grid show --file jobs.yaml --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := flags.resolvePath(cmd.Context())
			if watch && (path == "" || path == "-") {
				return clierrors.NewUserError("--watch needs a dataset file", "Pass --file PATH (stdin and the bundled sample cannot change)")
			}

			s, err := flags.loadSheet(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			warnDatasetProblems(ctx, s)

			ctx = output.WithNoTitle(ctx, noTitle)
			ctx = output.WithRecords(ctx, records)
			p := printerForContext(ctx)
			format := output.FormatFromContext(ctx)
			if err := render(ctx, p, format, s); err != nil || !watch {
				return err
			}
			return watchSheet(ctx, cmd, &flags, path, func(s *sheet) error {
				return render(ctx, p, format, s)
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&noTitle, "no-title", false, "Omit the breadcrumb and title line")
	cmd.Flags().BoolVar(&records, "records", false, "Emit one flat record per row (column ID to display text)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Render again whenever the dataset file changes")
	return cmd
}

// watchSheet rebuilds and renders the sheet after each change to path until
// the command is interrupted. Load and build failures are reported and the
// watch continues.
func watchSheet(ctx context.Context, cmd *cobra.Command, flags *sheetFlags, path string, show func(*sheet) error) error {
	fw, err := newFileWatcher(path)
	if err != nil {
		return err
	}
	defer func() { _ = fw.Close() }()

	u := ui.FromContext(ctx)
	if !output.QuietFromContext(ctx) {
		u.Info("Watching %s (Ctrl-C to stop)", path)
	}
	return fw.Run(ctx, watchSettle, func() {
		s, err := flags.loadSheet(cmd)
		if err == nil {
			err = show(s)
		}
		if err != nil {
			u.Error("%v", err)
			return
		}
		if !output.QuietFromContext(ctx) {
			u.Info("Reloaded %s (%d rows)", path, len(s.Model.Rows))
		}
	})
}

func newExportCmd() *cobra.Command {
	var (
		flags   sheetFlags
		to      string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the job table as CSV, JSON, NDJSON or YAML",
		Long: `Build the job-request table and write it in an interchange format.

CSV holds the leaf headers and the display text of every cell. JSON and YAML
hold the full table document; NDJSON holds one flat record per row.`,
		Example: `  grid export > jobs.csv
  grid export --to json --out-file jobs.json
  grid export --file jobs.yaml --to ndjson --pad 0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			format, err := output.ParseFormat(to)
			if err != nil || !(format == output.FormatCSV || format.IsStructured()) {
				return clierrors.NewUserError(fmt.Sprintf("invalid --to %q", to), "Use --to csv, json, ndjson or yaml")
			}

			s, err := flags.loadSheet(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			warnDatasetProblems(ctx, s)

			w := stdoutFromContext(ctx)
			toFile := outPath != "" && outPath != "-"
			if toFile {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", outPath, err)
				}
				defer func() {
					if cerr := f.Close(); err == nil && cerr != nil {
						err = cerr
					}
				}()
				w = f
			}

			if err := render(ctx, printerTo(ctx, w, format), format, s); err != nil {
				return err
			}
			if toFile && !output.QuietFromContext(ctx) {
				ui.FromContext(ctx).Success("Exported %d rows to %s", len(s.Model.Rows), outPath)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&to, "to", "csv", "Export format: csv|json|ndjson|yaml")
	cmd.Flags().StringVar(&outPath, "out-file", "", "Write to this file instead of stdout")
	return cmd
}

func render(ctx context.Context, p *output.Printer, format output.Format, s *sheet) error {
	done := debug.Span(ctx, stderrFromContext(ctx), "render", "format", format)
	err := p.Print(ctx, s.View())
	done(err)
	return err
}

// warnDatasetProblems prints a one-line summary of dataset warnings for
// loaded files. Problems never stop a render.
func warnDatasetProblems(ctx context.Context, s *sheet) {
	if s.Path == "" || output.QuietFromContext(ctx) {
		return
	}
	problems := jobs.Check(s.Dataset)
	if len(problems) == 0 {
		return
	}
	noun := "warnings"
	if len(problems) == 1 {
		noun = "warning"
	}
	file := s.Path
	if strings.ContainsAny(file, " \t") {
		file = fmt.Sprintf("%q", file)
	}
	ui.FromContext(ctx).Warning("%d dataset %s; run 'grid validate --file %s' for details", len(problems), noun, file)
}
