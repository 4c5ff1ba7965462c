// Package dataset loads row records for the table builder from YAML, JSON,
// NDJSON and CSV sources, keeping record order and field order intact.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	clierrors "github.com/salmonumbrella/grid-cli/internal/errors"
	"github.com/salmonumbrella/grid-cli/internal/table"
)

// Kind is a dataset encoding.
type Kind string

const (
	KindYAML   Kind = "yaml"
	KindJSON   Kind = "json"
	KindNDJSON Kind = "ndjson"
	KindCSV    Kind = "csv"
)

// ParseKind converts a string to a Kind. Empty defaults to YAML.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindYAML, "yml", "":
		return KindYAML, nil
	case KindJSON:
		return KindJSON, nil
	case KindNDJSON, "jsonl":
		return KindNDJSON, nil
	case KindCSV:
		return KindCSV, nil
	default:
		return "", fmt.Errorf("invalid dataset format %q (expected yaml|json|ndjson|csv)", s)
	}
}

// KindFromPath guesses the encoding from a file extension. Unknown extensions
// and stdin ("-") are treated as YAML, which also accepts JSON documents.
func KindFromPath(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return KindJSON
	case ".ndjson", ".jsonl":
		return KindNDJSON
	case ".csv":
		return KindCSV
	default:
		return KindYAML
	}
}

// Decode reads a dataset from r.
//
// YAML and JSON documents are either a list of records or a mapping with a
// "rows" list. Field order follows the first appearance of each key.
// NDJSON holds one record object per line. CSV uses the header row as the
// field list.
func Decode(r io.Reader, kind Kind) (table.Dataset, error) {
	switch kind {
	case KindCSV:
		return decodeCSV(r)
	case KindNDJSON:
		return decodeNDJSON(r)
	case KindYAML, KindJSON, "":
		return decodeDocument(r)
	default:
		return table.Dataset{}, fmt.Errorf("unsupported dataset format: %s", kind)
	}
}

func decodeDocument(r io.Reader) (table.Dataset, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return table.Dataset{}, nil
		}
		return table.Dataset{}, fmt.Errorf("invalid dataset: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	if root.Kind == yaml.MappingNode {
		rows := mappingValue(root, "rows")
		if rows == nil {
			return table.Dataset{}, errors.New(`invalid dataset: expected a list of records or a "rows" list`)
		}
		root = rows
	}
	if root.Kind != yaml.SequenceNode {
		return table.Dataset{}, errors.New("invalid dataset: expected a list of records")
	}

	ds := table.Dataset{Rows: make([]table.Row, 0, len(root.Content))}
	seen := map[string]bool{}
	for i, item := range root.Content {
		if err := appendRecord(&ds, seen, i, item); err != nil {
			return table.Dataset{}, err
		}
	}
	return ds, nil
}

// appendRecord adds the mapping node item as record i, extending the field
// list with keys not seen before.
func appendRecord(ds *table.Dataset, seen map[string]bool, i int, item *yaml.Node) error {
	if item.Kind != yaml.MappingNode {
		return fmt.Errorf("invalid dataset: record %d is not a mapping", i)
	}
	row := make(table.Row, len(item.Content)/2)
	for j := 0; j+1 < len(item.Content); j += 2 {
		key, val := item.Content[j].Value, item.Content[j+1]
		if val.Kind != yaml.ScalarNode {
			return fmt.Errorf("invalid dataset: record %d field %q must be a scalar", i, key)
		}
		row[key] = scalarString(val)
		if !seen[key] {
			seen[key] = true
			ds.Fields = append(ds.Fields, key)
		}
	}
	ds.Rows = append(ds.Rows, row)
	return nil
}

func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

// scalarString keeps records string-valued: nulls become "".
func scalarString(n *yaml.Node) string {
	if n.Tag == "!!null" {
		return ""
	}
	return n.Value
}

func decodeCSV(r io.Reader) (table.Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return table.Dataset{}, nil
	}
	if err != nil {
		return table.Dataset{}, fmt.Errorf("invalid csv: %w", err)
	}
	fields := make([]string, len(header))
	for i, h := range header {
		fields[i] = strings.TrimSpace(h)
	}

	ds := table.Dataset{Fields: fields}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return table.Dataset{}, fmt.Errorf("invalid csv: %w", err)
		}
		row := make(table.Row, len(fields))
		for i, f := range fields {
			if i < len(rec) {
				row[f] = rec[i]
			}
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds, nil
}

// Pad returns a copy of ds with n blank records appended. Every known field
// of a blank record is the empty string.
func Pad(ds table.Dataset, n int) table.Dataset {
	out := table.Dataset{
		Fields: append([]string(nil), ds.Fields...),
		Rows:   make([]table.Row, 0, len(ds.Rows)+n),
	}
	out.Rows = append(out.Rows, ds.Rows...)
	for i := 0; i < n; i++ {
		blank := make(table.Row, len(ds.Fields))
		for _, f := range ds.Fields {
			blank[f] = ""
		}
		out.Rows = append(out.Rows, blank)
	}
	return out
}

// Check reports records whose shape drifts from the dataset's field list.
// Problems are returned as warnings; they never block a build.
func Check(ds table.Dataset) []*clierrors.ValidationError {
	var problems []*clierrors.ValidationError
	known := make(map[string]bool, len(ds.Fields))
	for _, f := range ds.Fields {
		known[f] = true
	}
	for i, row := range ds.Rows {
		for _, f := range ds.Fields {
			if _, ok := row[f]; !ok {
				problems = append(problems, &clierrors.ValidationError{Field: f, Row: i, Message: "field is missing"})
			}
		}
		for f := range row {
			if !known[f] {
				problems = append(problems, &clierrors.ValidationError{Field: f, Row: i, Message: "field is not declared"})
			}
		}
	}
	return problems
}
