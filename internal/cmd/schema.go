package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	clierrors "github.com/salmonumbrella/grid-cli/internal/errors"
	"github.com/salmonumbrella/grid-cli/internal/jobs"
	"github.com/salmonumbrella/grid-cli/internal/output"
	"github.com/salmonumbrella/grid-cli/internal/table"
)

func newSchemaCmd() *cobra.Command {
	var (
		grouped bool
		hide    []string
	)

	cmd := &cobra.Command{
		Use:     "schema",
		Aliases: []string{"columns", "cols"},
		Short:   "List the table columns",
		Long: `List the columns of the job-request table in order, with the accessor each
one reads through, the formatter applied to its values and its header group.

Use the IDs shown here with --hide.`,
		Example: `  grid schema
  grid schema --grouped -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := jobs.SchemaFor(jobs.Options{Grouped: grouped, Hide: hide})
			if err != nil {
				return clierrors.FromTableError(err)
			}
			infos := jobs.Describe(s)

			format := output.FormatFromContext(ctx)
			if format.IsStructured() {
				return printerForContext(ctx).Print(ctx, infos)
			}
			return printerTo(ctx, stdoutFromContext(ctx), output.FormatTable).Print(ctx, schemaTable(infos))
		},
	}

	cmd.Flags().BoolVar(&grouped, "grouped", false, "Describe the grouped schema")
	cmd.Flags().StringSliceVar(&hide, "hide", nil, "Column IDs to leave out")
	return cmd
}

func schemaTable(infos []table.ColumnInfo) output.Table {
	t := output.Table{
		Headers: []string{"POS", "ID", "HEADER", "ACCESSOR", "FORMATTER", "GROUP"},
		Rows:    make([][]string, 0, len(infos)),
	}
	for _, c := range infos {
		accessor := c.Accessor
		if c.Field != "" {
			accessor = "key:" + c.Field
		}
		group := c.Group
		if group == "" {
			group = "-"
		}
		t.Rows = append(t.Rows, []string{strconv.Itoa(c.Position), c.ID, c.Header, accessor, c.Formatter, group})
	}
	return t
}
