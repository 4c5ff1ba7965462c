package output

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	clierrors "github.com/salmonumbrella/grid-cli/internal/errors"
	"github.com/salmonumbrella/grid-cli/internal/ui"
)

// Format represents the output format type.
type Format string

const (
	// FormatText is the decorated sheet view (default).
	FormatText Format = "text"
	// FormatTable is plain tab-aligned columns.
	FormatTable Format = "table"
	// FormatGrid is a boxed table.
	FormatGrid Format = "grid"
	// FormatCSV is comma-separated values.
	FormatCSV Format = "csv"
	// FormatJSON is pretty-printed JSON format.
	FormatJSON Format = "json"
	// FormatNDJSON is newline-delimited JSON format.
	FormatNDJSON Format = "ndjson"
	// FormatYAML is YAML format.
	FormatYAML Format = "yaml"
)

// ParseFormat converts a string to a Format type.
// Empty string defaults to FormatText.
// Returns error if the format is invalid.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatText, "":
		return FormatText, nil
	case FormatTable:
		return FormatTable, nil
	case FormatGrid, "box":
		return FormatGrid, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatNDJSON, "jsonl":
		return FormatNDJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", errors.New("invalid --output format (expected text|table|grid|csv|json|ndjson|jsonl|yaml)")
	}
}

// IsStructured reports whether f encodes data rather than drawing it.
func (f Format) IsStructured() bool {
	return f == FormatJSON || f == FormatNDJSON || f == FormatYAML
}

// Printer handles output formatting across different formats.
type Printer struct {
	w       io.Writer
	format  Format
	painter *ui.Painter
}

// NewPrinter creates a new Printer that writes to w in the given format.
// Text output is uncoloured until a painter is attached with WithPainter.
func NewPrinter(w io.Writer, format Format) *Printer {
	return &Printer{
		w:      w,
		format: format,
	}
}

// WithPainter attaches the painter used for badges and links in text output.
func (p *Printer) WithPainter(painter *ui.Painter) *Printer {
	p.painter = painter
	return p
}

// Print outputs data in the configured format.
//
// A *View is drawn directly by the terminal formats and projected to its
// Document (or records) for structured formats and whenever --query,
// --fields or --jsonpath is in effect. Other values are encoded generically.
func (p *Printer) Print(ctx context.Context, data interface{}) error {
	if data == nil {
		return nil
	}

	// columns is the preferred left-to-right order for records drawn as a
	// table: the model's column order, or the --fields order when set.
	var columns []string
	if v, ok := data.(*View); ok {
		if FailEmptyFromContext(ctx) && v.Len() == 0 {
			return clierrors.NewUserError("no results", "Remove --fail-empty to allow empty output")
		}
		if !p.format.IsStructured() && !hasTransforms(ctx) {
			return p.printView(ctx, v)
		}
		data = p.projectView(ctx, v)
		if v.Model != nil {
			columns = v.Model.ColumnIDs()
		}
	}

	updated, err := applyOutputTransforms(ctx, data, p.format)
	if err != nil {
		return err
	}
	data = updated

	// JSON and NDJSON stream query results; every other format draws the
	// collected results.
	if query := QueryFromContext(ctx); query != "" && p.format != FormatJSON && p.format != FormatNDJSON {
		results, err := runQueryRaw(query, data)
		if err != nil {
			return err
		}
		data = collapseResults(results)
	}
	if names := fieldNames(FieldsFromContext(ctx)); len(names) > 0 {
		columns = names
	}
	if FailEmptyFromContext(ctx) && isEmptyResult(data) {
		return clierrors.NewUserError("no results", "Remove --fail-empty to allow empty output")
	}

	switch p.format {
	case FormatJSON:
		return p.printJSON(ctx, data)
	case FormatNDJSON:
		return p.printNDJSON(ctx, data)
	case FormatYAML:
		return p.printYAML(data)
	case FormatTable, FormatGrid, FormatCSV:
		return p.printTable(data, columns)
	case FormatText:
		return p.printText(data, columns)
	default:
		return fmt.Errorf("unsupported format: %s", p.format)
	}
}

func (p *Printer) printView(ctx context.Context, v *View) error {
	if v.Model == nil {
		return nil
	}
	switch p.format {
	case FormatText:
		return p.printViewText(v, !NoTitleFromContext(ctx))
	case FormatTable:
		return p.printViewTable(v)
	case FormatGrid:
		return p.printViewGrid(v)
	case FormatCSV:
		return p.printViewCSV(v)
	default:
		return fmt.Errorf("unsupported format: %s", p.format)
	}
}

// projectView picks the structured form of v: flat records for ndjson,
// --records and non-structured formats, the full document otherwise.
func (p *Printer) projectView(ctx context.Context, v *View) interface{} {
	if p.format == FormatNDJSON || RecordsFromContext(ctx) || !p.format.IsStructured() {
		return v.Records()
	}
	return v.Document()
}

func hasTransforms(ctx context.Context) bool {
	return QueryFromContext(ctx) != "" ||
		strings.TrimSpace(FieldsFromContext(ctx)) != "" ||
		strings.TrimSpace(JSONPathFromContext(ctx)) != ""
}

// printYAML outputs data as YAML.
func (p *Printer) printYAML(data interface{}) error {
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()
	return enc.Encode(data)
}

// collapseResults unwraps a single query result; several results stay a list.
func collapseResults(results []interface{}) interface{} {
	switch len(results) {
	case 0:
		return nil
	case 1:
		return results[0]
	default:
		return results
	}
}

// printText outputs data as human-readable text. Lists of objects render as
// a table, objects as sorted key-value pairs, and scalars directly.
func (p *Printer) printText(data interface{}, columns []string) error {
	normalized, err := normalizeToInterface(data)
	if err != nil {
		return err
	}

	switch v := normalized.(type) {
	case nil:
		return nil
	case map[string]interface{}:
		return p.printTextMap(v, "")
	case []interface{}:
		return p.printTextSlice(v, columns)
	default:
		_, err := fmt.Fprintf(p.w, "%v\n", v)
		return err
	}
}

// printTextMap outputs a map as key-value pairs sorted by key, indenting
// nested objects.
func (p *Printer) printTextMap(m map[string]interface{}, indent string) error {
	for _, key := range sortedKeys(m) {
		switch val := m[key].(type) {
		case map[string]interface{}:
			if len(val) == 0 {
				if _, err := fmt.Fprintf(p.w, "%s%s: {}\n", indent, key); err != nil {
					return err
				}
				continue
			}
			if _, err := fmt.Fprintf(p.w, "%s%s:\n", indent, key); err != nil {
				return err
			}
			if err := p.printTextMap(val, indent+"  "); err != nil {
				return err
			}
		case []interface{}:
			if len(val) == 0 {
				if _, err := fmt.Fprintf(p.w, "%s%s: []\n", indent, key); err != nil {
					return err
				}
				continue
			}
			if isScalarSlice(val) {
				if _, err := fmt.Fprintf(p.w, "%s%s: %s\n", indent, key, formatCompact(val)); err != nil {
					return err
				}
				continue
			}
			if _, err := fmt.Fprintf(p.w, "%s%s:\n", indent, key); err != nil {
				return err
			}
			for _, item := range val {
				if _, err := fmt.Fprintf(p.w, "%s  - %s\n", indent, formatCompact(item)); err != nil {
					return err
				}
			}
		default:
			if _, err := fmt.Fprintf(p.w, "%s%s: %s\n", indent, key, formatCompact(val)); err != nil {
				return err
			}
		}
	}
	return nil
}

// printTextSlice outputs a slice as a table when items are objects,
// or one item per line for scalars.
func (p *Printer) printTextSlice(items []interface{}, columns []string) error {
	if len(items) == 0 {
		return nil
	}
	if _, ok := items[0].(map[string]interface{}); ok {
		return p.printTable(items, columns)
	}
	for _, item := range items {
		if _, err := fmt.Fprintf(p.w, "%s\n", formatCompact(item)); err != nil {
			return err
		}
	}
	return nil
}

// printTable draws a Table, or a list of objects with one column per key,
// in the printer's format. Keys listed in columns come first in that order;
// any others follow sorted. A single object is drawn as a one-row table.
func (p *Printer) printTable(data interface{}, columns []string) error {
	switch v := data.(type) {
	case nil:
		return nil
	case Table:
		return p.writeRows(v.Headers, v.Rows)
	case *Table:
		if v == nil {
			return nil
		}
		return p.writeRows(v.Headers, v.Rows)
	}

	normalized, err := normalizeToInterface(data)
	if err != nil {
		return err
	}
	var items []interface{}
	switch v := normalized.(type) {
	case nil:
		return nil
	case []interface{}:
		items = v
	case map[string]interface{}:
		items = []interface{}{v}
	default:
		return p.notTabular()
	}
	if len(items) == 0 {
		return nil
	}

	keys, ok := recordKeys(items, columns)
	if !ok {
		return p.notTabular()
	}

	missing := "-"
	if p.format == FormatCSV {
		missing = ""
	}
	rows := make([][]string, len(items))
	for i, item := range items {
		m := item.(map[string]interface{})
		row := make([]string, len(keys))
		for j, key := range keys {
			if val, ok := m[key]; ok && val != nil {
				row[j] = formatCompact(val)
			} else {
				row[j] = missing
			}
		}
		rows[i] = row
	}

	headers := keys
	if p.format == FormatTable || p.format == FormatText {
		headers = make([]string, len(keys))
		for i, key := range keys {
			headers[i] = strings.ToUpper(key)
		}
	}
	return p.writeRows(headers, rows)
}

func (p *Printer) notTabular() error {
	return clierrors.NewUserError(
		fmt.Sprintf("%s format requires a list of objects", p.format),
		"Use --output json or text for scalar results",
	)
}

// recordKeys returns the union of keys across items with the preferred keys
// first. It reports false when an item is not an object.
func recordKeys(items []interface{}, preferred []string) ([]string, bool) {
	present := make(map[string]bool)
	for _, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, false
		}
		for k := range m {
			present[k] = true
		}
	}

	keys := make([]string, 0, len(present))
	for _, k := range preferred {
		if present[k] {
			keys = append(keys, k)
			delete(present, k)
		}
	}
	rest := make([]string, 0, len(present))
	for k := range present {
		rest = append(rest, k)
	}
	sort.Strings(rest)
	return append(keys, rest...), true
}

// writeRows draws headers and rows as CSV, a boxed grid, or tab-aligned text.
func (p *Printer) writeRows(headers []string, rows [][]string) error {
	if len(headers) == 0 && len(rows) == 0 {
		return nil
	}

	switch p.format {
	case FormatCSV:
		return writeCSVRows(p.w, headers, rows)
	case FormatGrid:
		tw := newGridWriter(p.w)
		if len(headers) > 0 {
			tw.SetHeader(headers)
		}
		tw.AppendBulk(rows)
		tw.Render()
		return nil
	}

	tw := tabwriter.NewWriter(p.w, 0, 0, columnGap, ' ', 0)
	if len(headers) > 0 {
		_, _ = fmt.Fprintln(tw, strings.Join(headers, "\t"))
	}
	for _, row := range rows {
		_, _ = fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func isScalarSlice(items []interface{}) bool {
	for _, item := range items {
		switch item.(type) {
		case map[string]interface{}, []interface{}:
			return false
		}
	}
	return true
}

// formatCompact formats a normalized value for a single line.
func formatCompact(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return "<nil>"
	case string:
		return x
	case []interface{}:
		if len(x) == 0 {
			return "[]"
		}
		parts := make([]string, len(x))
		for i, item := range x {
			parts[i] = formatCompact(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]interface{}:
		if len(x) == 0 {
			return "{}"
		}
		keys := sortedKeys(x)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ":" + formatCompact(x[k])
		}
		return "map[" + strings.Join(parts, " ") + "]"
	default:
		return fmt.Sprintf("%v", x)
	}
}
