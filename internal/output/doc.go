// Package output renders prepared table models and other command results.
//
// It supports output formats:
//   - text: the sheet as an aligned grid with coloured badges (default)
//   - table: plain tab-aligned columns
//   - grid: a boxed table
//   - csv: header row plus display text
//   - json: pretty-printed JSON
//   - ndjson: newline-delimited JSON, one record per row
//   - yaml: YAML format for structured data
//
// # Context-Based Dependency Injection
//
// The output format, jq query, and projection flags are set once in the root
// command's PersistentPreRunE and read back by every subcommand:
//
//	ctx := output.WithFormat(cmd.Context(), format)
//	cmd.SetContext(ctx)
//
// In commands:
//
//	format := output.FormatFromContext(cmd.Context())
//	printer := output.NewPrinter(stdout, format)
//	return printer.Print(cmd.Context(), &output.View{Model: model})
//
// # Views and documents
//
// A *View wraps a built *table.Model. Terminal formats walk the model
// directly. Structured formats (json, yaml) print its Document, which carries
// the binding keys of every header and cell; ndjson and --records print one
// flat record per row keyed by column ID.
//
// Other values (schema listings, validation reports, config) are printed
// generically: JSON/YAML encode them and text prints key-value pairs.
package output
