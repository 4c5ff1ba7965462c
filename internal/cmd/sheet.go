package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/grid-cli/internal/cmdutil"
	"github.com/salmonumbrella/grid-cli/internal/dataset"
	"github.com/salmonumbrella/grid-cli/internal/debug"
	clierrors "github.com/salmonumbrella/grid-cli/internal/errors"
	"github.com/salmonumbrella/grid-cli/internal/jobs"
	"github.com/salmonumbrella/grid-cli/internal/output"
	"github.com/salmonumbrella/grid-cli/internal/table"
	"github.com/salmonumbrella/grid-cli/internal/validate"
)

// sheetFlags are the dataset and layout flags shared by show, export and validate.
type sheetFlags struct {
	file    string
	kind    string
	pad     int
	hide    []string
	grouped bool
}

func (f *sheetFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "Dataset file (YAML, JSON, NDJSON or CSV; '-' for stdin). Defaults to the bundled sample")
	cmd.Flags().StringVar(&f.kind, "input-format", "", "Dataset format: yaml|json|ndjson|csv (default: from the file extension)")
	cmd.Flags().IntVar(&f.pad, "pad", 0, "Blank rows appended below the data (default: 16 for the sample, 0 for files)")
	cmd.Flags().StringSliceVar(&f.hide, "hide", nil, "Column IDs to hide (comma-separated or repeated)")
	cmd.Flags().BoolVar(&f.grouped, "grouped", false, "Add the Request/Assignment header row")
	flagAlias(cmd.Flags(), "input-format", "if")
}

// sheet is a loaded dataset and the table built from it.
type sheet struct {
	Path    string
	Dataset table.Dataset
	Model   *table.Model
}

// View wraps the sheet with the job sheet heading.
func (s *sheet) View() *output.View {
	meta := jobs.DefaultSheet()
	return &output.View{Breadcrumb: meta.Breadcrumb(), Title: meta.Title, Model: s.Model}
}

// resolvePath picks --file, then the configured dataset, then the sample ("").
func (f *sheetFlags) resolvePath(ctx context.Context) string {
	if path := strings.TrimSpace(f.file); path != "" {
		return path
	}
	return strings.TrimSpace(ConfigFromContext(ctx).Dataset)
}

func (f *sheetFlags) padding(cmd *cobra.Command, path string) (int, error) {
	n := ConfigFromContext(cmd.Context()).GetPadding(jobs.PaddingFor(path))
	if cmd.Flags().Changed("pad") {
		n = f.pad
	}
	if err := validate.Padding(n); err != nil {
		return 0, clierrors.NewUserError(err.Error(), fmt.Sprintf("Pass --pad between 0 and %d", validate.MaxPadding))
	}
	return n, nil
}

// loadDataset reads and pads the dataset named by the flags.
func (f *sheetFlags) loadDataset(cmd *cobra.Command) (string, table.Dataset, error) {
	ctx := cmd.Context()
	path := f.resolvePath(ctx)

	kind, err := dataset.ParseKind(f.kind)
	if err != nil {
		return "", table.Dataset{}, clierrors.NewUserError(err.Error(), "Use --input-format yaml, json, ndjson or csv")
	}
	if strings.TrimSpace(f.kind) == "" {
		kind = ""
	}

	pad, err := f.padding(cmd, path)
	if err != nil {
		return "", table.Dataset{}, err
	}

	done := debug.Span(ctx, stderrFromContext(ctx), "load", "file", displayPath(path), "pad", pad)
	ds, err := jobs.Open(path, kind, stdinFromContext(ctx))
	done(err)
	if err != nil {
		return "", table.Dataset{}, datasetError(path, err)
	}
	return path, dataset.Pad(ds, pad), nil
}

// loadSheet loads the dataset and builds the table.
func (f *sheetFlags) loadSheet(cmd *cobra.Command) (*sheet, error) {
	ctx := cmd.Context()
	path, ds, err := f.loadDataset(cmd)
	if err != nil {
		return nil, err
	}

	done := debug.Span(ctx, stderrFromContext(ctx), "build", "rows", ds.Len(), "grouped", f.grouped)
	model, err := jobs.Build(ds, jobs.Options{Grouped: f.grouped, Hide: cmdutil.SplitList(f.hide...)})
	done(err)
	if err != nil {
		return nil, clierrors.FromTableError(err)
	}
	return &sheet{Path: path, Dataset: ds, Model: model}, nil
}

func datasetError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return clierrors.WrapUserError(err, fmt.Sprintf("dataset %q not found", path), "Check the --file path, or omit it to use the bundled sample")
	}
	return clierrors.WrapUserError(err, "invalid dataset", "Datasets are a list of records (or a mapping with a \"rows\" list) with scalar values")
}

func displayPath(path string) string {
	if path == "" {
		return "<sample>"
	}
	return path
}
