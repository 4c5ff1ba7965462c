package table

// Dataset is an ordered sequence of rows plus the ordered field names they
// share. Fields is informational; the builder only reads Rows.
type Dataset struct {
	Fields []string
	Rows   []Row
}

// Len returns the number of rows.
func (d Dataset) Len() int { return len(d.Rows) }

// HeaderCell is one cell of a header group. ColumnID is empty for group and
// placeholder cells; ColSpan is the number of leaf columns covered (1 for
// leaf cells). Placeholder marks an empty cell above an ungrouped leaf.
type HeaderCell struct {
	ColumnID    string `json:"column_id,omitempty"`
	Header      string `json:"header"`
	ColSpan     int    `json:"col_span"`
	Placeholder bool   `json:"placeholder,omitempty"`

	key string
}

// HeaderGroup is one row of header cells. Depth 0 is the outermost group.
type HeaderGroup struct {
	Depth   int          `json:"depth"`
	Headers []HeaderCell `json:"headers"`
}

// Cell is a prepared body cell.
type Cell struct {
	ColumnID string `json:"column_id"`
	Raw      Value  `json:"raw"`
	Display  Value  `json:"display"`

	rowIndex int
}

// RowIndex returns the index of the row the cell belongs to.
func (c Cell) RowIndex() int { return c.rowIndex }

// PreparedRow is a prepared body row; Cells align with the leaf header cells.
type PreparedRow struct {
	Index int    `json:"index"`
	Cells []Cell `json:"cells"`
}

// Cell returns the cell for columnID.
func (r PreparedRow) Cell(columnID string) (Cell, bool) {
	for _, c := range r.Cells {
		if c.ColumnID == columnID {
			return c, true
		}
	}
	return Cell{}, false
}

// Model is the prepared, render-ready table. It is never mutated after Build
// returns it.
type Model struct {
	HeaderGroups []HeaderGroup `json:"header_groups"`
	Rows         []PreparedRow `json:"rows"`
}

// HeaderCells returns the leaf header cells, one per column in schema order.
func (m *Model) HeaderCells() []HeaderCell {
	if m == nil || len(m.HeaderGroups) == 0 {
		return nil
	}
	return m.HeaderGroups[len(m.HeaderGroups)-1].Headers
}

// ColumnIDs returns the leaf column IDs in order.
func (m *Model) ColumnIDs() []string {
	cells := m.HeaderCells()
	ids := make([]string, len(cells))
	for i, h := range cells {
		ids[i] = h.ColumnID
	}
	return ids
}

// Grouped reports whether the model has an outer header group.
func (m *Model) Grouped() bool {
	return m != nil && len(m.HeaderGroups) > 1
}
