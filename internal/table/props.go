package table

import "fmt"

// ARIA roles attached to structural elements.
const (
	RoleTable        = "table"
	RoleRowGroup     = "rowgroup"
	RoleRow          = "row"
	RoleColumnHeader = "columnheader"
	RoleCell         = "cell"
)

// TableProps are the attributes of the table element.
type TableProps struct {
	Role string `json:"role"`
}

// BodyProps are the attributes of the table body element.
type BodyProps struct {
	Role string `json:"role"`
}

// HeaderGroupProps are the attributes of a header row.
type HeaderGroupProps struct {
	Key  string `json:"key"`
	Role string `json:"role"`
}

// HeaderProps are the attributes of a header cell.
type HeaderProps struct {
	Key     string `json:"key"`
	ColSpan int    `json:"col_span"`
	Role    string `json:"role"`
}

// RowProps are the attributes of a body row.
type RowProps struct {
	Key   string `json:"key"`
	Index int    `json:"index"`
	Role  string `json:"role"`
}

// CellProps are the attributes of a body cell.
type CellProps struct {
	Key  string `json:"key"`
	Role string `json:"role"`
}

// TableProps returns the table element attributes.
func (m *Model) TableProps() TableProps {
	return TableProps{Role: RoleTable}
}

// BodyProps returns the table body attributes.
func (m *Model) BodyProps() BodyProps {
	return BodyProps{Role: RoleRowGroup}
}

// Props returns the header row attributes, keyed by depth.
func (g HeaderGroup) Props() HeaderGroupProps {
	return HeaderGroupProps{Key: fmt.Sprintf("headerGroup_%d", g.Depth), Role: RoleRow}
}

// Key returns the stable header cell key: header_<columnID> for leaves.
func (h HeaderCell) Key() string {
	if h.key != "" {
		return h.key
	}
	return "header_" + h.ColumnID
}

// Props returns the header cell attributes.
func (h HeaderCell) Props() HeaderProps {
	span := h.ColSpan
	if span < 1 {
		span = 1
	}
	return HeaderProps{Key: h.Key(), ColSpan: span, Role: RoleColumnHeader}
}

// Key returns the stable row key: row_<index>.
func (r PreparedRow) Key() string {
	return fmt.Sprintf("row_%d", r.Index)
}

// Props returns the body row attributes.
func (r PreparedRow) Props() RowProps {
	return RowProps{Key: r.Key(), Index: r.Index, Role: RoleRow}
}

// Key returns the stable cell key: cell_<rowIndex>_<columnID>.
func (c Cell) Key() string {
	return fmt.Sprintf("cell_%d_%s", c.rowIndex, c.ColumnID)
}

// Props returns the body cell attributes.
func (c Cell) Props() CellProps {
	return CellProps{Key: c.Key(), Role: RoleCell}
}
