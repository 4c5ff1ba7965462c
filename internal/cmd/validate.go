package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/grid-cli/internal/display"
	clierrors "github.com/salmonumbrella/grid-cli/internal/errors"
	"github.com/salmonumbrella/grid-cli/internal/jobs"
	"github.com/salmonumbrella/grid-cli/internal/output"
	"github.com/salmonumbrella/grid-cli/internal/ui"
)

type validationReport struct {
	Valid    bool                `json:"valid" yaml:"valid"`
	Rows     int                 `json:"rows" yaml:"rows"`
	Columns  int                 `json:"columns" yaml:"columns"`
	Warnings []validationWarning `json:"warnings" yaml:"warnings"`
}

type validationWarning struct {
	Row     int    `json:"row" yaml:"row"`
	Field   string `json:"field" yaml:"field"`
	Message string `json:"message" yaml:"message"`
}

func newValidateCmd() *cobra.Command {
	var (
		flags  sheetFlags
		strict bool
	)

	cmd := &cobra.Command{
		Use:     "validate",
		Aliases: []string{"check"},
		Short:   "Build the table without rendering and report dataset problems",
		Long: `Build the job-request table to check that every column can read and format
every record, then report data problems: missing or undeclared fields, empty
job names, dates not in DD-MM-YYYY form, malformed URLs and amounts, and
unknown status or priority values.

A build failure exits with code 2. Data problems are warnings unless --strict
is set.`,
		Example: `  grid validate --file jobs.yaml
  grid validate --file jobs.csv --strict -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := flags.loadSheet(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			problems := jobs.Check(s.Dataset)
			report := validationReport{
				Valid:    len(problems) == 0,
				Rows:     len(s.Model.Rows),
				Columns:  len(s.Model.HeaderCells()),
				Warnings: make([]validationWarning, 0, len(problems)),
			}
			for _, p := range problems {
				report.Warnings = append(report.Warnings, validationWarning{Row: p.Row, Field: p.Field, Message: p.Message})
			}

			if output.FormatFromContext(ctx).IsStructured() {
				if err := printerForContext(ctx).Print(ctx, report); err != nil {
					return err
				}
			} else {
				out := stdoutFromContext(ctx)
				painter := ui.NewPainter(out, ui.FromContext(ctx).Mode())
				_, _ = fmt.Fprintf(out, "%s built %d rows × %d columns from %s\n",
					painter.Badge("✓", display.ToneGreen), report.Rows, report.Columns, displayPath(s.Path))
				if len(problems) > 0 {
					_, _ = fmt.Fprintf(out, "%d warning(s):\n%s", len(problems), clierrors.FormatValidationErrors(problems))
				}
			}

			if strict && len(problems) > 0 {
				return clierrors.NewUserError(
					fmt.Sprintf("dataset has %d problem(s)", len(problems)),
					"Fix the records listed above, or drop --strict to treat them as warnings",
				)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit with code 2 when any data problem is found")
	return cmd
}
