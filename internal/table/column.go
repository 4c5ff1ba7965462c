// Package table implements a headless table model.
//
// A Schema of Columns and a Dataset of Rows are turned by Build into a Model:
// header groups, ordered rows and per-cell raw/display values. The model knows
// nothing about terminals, markup or colours; view layers walk it and attach
// their own presentation using the stable keys exposed by the *Props methods.
//
//	schema, err := table.NewSchema(
//	    table.Column{ID: "row", Header: "#", Accessor: table.Func(func(_ table.Row, i int) (table.Value, error) {
//	        return i + 1, nil
//	    })},
//	    table.Column{Header: "Job Request", Accessor: table.Key("job")},
//	)
//	if err != nil {
//	    return err
//	}
//	model, err := table.Build(schema, dataset)
package table

import "strings"

// Value is a raw or display cell value. Row records hold strings, but function
// accessors and formatters may produce any value (numbers, badges, links).
type Value = any

// Row is a single record: field name to value.
type Row map[string]Value

// AccessorFunc computes a raw value from a row and its zero-based index.
// It must be pure.
type AccessorFunc func(row Row, index int) (Value, error)

// FormatterFunc turns a raw value into a display value. It must be pure and
// must return nil for empty raw values.
type FormatterFunc func(raw Value, row Row, index int) (Value, error)

// Accessor locates a column's raw value. It is either a field key or a
// function; the zero Accessor is neither and fails schema validation.
type Accessor struct {
	key string
	fn  AccessorFunc
}

// Key returns an accessor that looks up field in the row. Surrounding
// whitespace is not part of the field name.
func Key(field string) Accessor {
	return Accessor{key: strings.TrimSpace(field)}
}

// Func returns an accessor backed by fn.
func Func(fn AccessorFunc) Accessor {
	return Accessor{fn: fn}
}

// IsFunc reports whether the accessor is function-backed.
func (a Accessor) IsFunc() bool { return a.fn != nil }

// FieldKey returns the field key for key accessors and "" otherwise.
func (a Accessor) FieldKey() string {
	if a.fn != nil {
		return ""
	}
	return a.key
}

// Kind is "func", "key" or "none"; used by schema listings.
func (a Accessor) Kind() string {
	switch {
	case a.fn != nil:
		return "func"
	case a.key != "":
		return "key"
	default:
		return "none"
	}
}

// Column describes one column of the table.
type Column struct {
	// ID identifies the column. Defaults to the accessor key.
	ID string
	// Header is the display text for the column header.
	Header string
	// Accessor locates the raw value.
	Accessor Accessor
	// Formatter is optional; nil means display == raw.
	Formatter FormatterFunc
	// Group is an optional label for an outer header spanning adjacent columns.
	Group string
}

// HasFormatter reports whether a custom formatter is declared.
func (c Column) HasFormatter() bool { return c.Formatter != nil }

// IsEmpty reports whether v represents "no value": nil, or a blank string.
func IsEmpty(v Value) bool {
	switch s := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(s) == ""
	case interface{ IsZero() bool }:
		return s.IsZero()
	}
	return false
}

// Text is the identity formatter.
func Text(raw Value, _ Row, _ int) (Value, error) {
	return raw, nil
}

// NonEmpty wraps fn so it only runs on non-empty raw values. Empty values are
// formatted as nil, which view layers render as nothing.
func NonEmpty(fn func(raw Value) (Value, error)) FormatterFunc {
	return func(raw Value, _ Row, _ int) (Value, error) {
		if IsEmpty(raw) {
			return nil, nil
		}
		return fn(raw)
	}
}
