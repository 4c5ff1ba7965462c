package table

import (
	"fmt"
	"log/slog"
)

// Build prepares a Model from schema and dataset. Rows and columns keep their
// order. Any accessor or formatter failure aborts the build and no model is
// returned.
func Build(schema *Schema, dataset Dataset) (*Model, error) {
	return BuildRows(schema, dataset.Rows)
}

// BuildRows is Build for callers holding a bare slice of rows.
func BuildRows(schema *Schema, rows []Row) (*Model, error) {
	if schema == nil {
		return nil, &SchemaError{Position: -1, Err: ErrNoSchema}
	}

	model := &Model{
		HeaderGroups: buildHeaderGroups(schema),
		Rows:         make([]PreparedRow, 0, len(rows)),
	}

	for i, row := range rows {
		prepared, err := prepareRow(schema, row, i)
		if err != nil {
			return nil, err
		}
		model.Rows = append(model.Rows, prepared)
	}

	slog.Debug("table built",
		"columns", schema.Len(),
		"rows", len(model.Rows),
		"header_groups", len(model.HeaderGroups),
	)
	return model, nil
}

func prepareRow(schema *Schema, row Row, index int) (PreparedRow, error) {
	cells := make([]Cell, len(schema.columns))
	for j, col := range schema.columns {
		raw, err := Resolve(col, row, index)
		if err != nil {
			return PreparedRow{}, err
		}
		display, err := Format(col, raw, row, index)
		if err != nil {
			return PreparedRow{}, err
		}
		cells[j] = Cell{
			ColumnID: col.ID,
			Raw:      raw,
			Display:  display,
			rowIndex: index,
		}
	}
	return PreparedRow{Index: index, Cells: cells}, nil
}

func buildHeaderGroups(schema *Schema) []HeaderGroup {
	leaves := make([]HeaderCell, len(schema.columns))
	for i, col := range schema.columns {
		leaves[i] = HeaderCell{
			ColumnID: col.ID,
			Header:   col.Header,
			ColSpan:  1,
			key:      "header_" + col.ID,
		}
	}

	if !schema.grouped() {
		return []HeaderGroup{{Depth: 0, Headers: leaves}}
	}

	// Adjacent columns with the same group label share one spanning cell.
	var outer []HeaderCell
	for i, col := range schema.columns {
		if n := len(outer); n > 0 && col.Group != "" && outer[n-1].Header == col.Group && !outer[n-1].Placeholder {
			outer[n-1].ColSpan++
			continue
		}
		// Keyed by depth and first column position, outside the header_
		// namespace of the leaves.
		outer = append(outer, HeaderCell{
			Header:      col.Group,
			ColSpan:     1,
			Placeholder: col.Group == "",
			key:         fmt.Sprintf("headerGroup_0_%d", i),
		})
	}

	return []HeaderGroup{
		{Depth: 0, Headers: outer},
		{Depth: 1, Headers: leaves},
	}
}
