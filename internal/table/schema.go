package table

import (
	"fmt"
	"strings"
)

// Schema is a validated, immutable, ordered list of columns.
type Schema struct {
	columns []Column
	index   map[string]int
}

// NewSchema validates columns and returns a Schema. Key accessor columns with
// no ID take the key as their ID.
func NewSchema(columns ...Column) (*Schema, error) {
	if len(columns) == 0 {
		return nil, &SchemaError{Position: -1, Err: ErrNoColumns}
	}

	s := &Schema{
		columns: make([]Column, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for i, col := range columns {
		col.ID = strings.TrimSpace(col.ID)

		switch col.Accessor.Kind() {
		case "none":
			return nil, &SchemaError{ColumnID: col.ID, Position: i, Err: ErrMissingAccessor}
		case "func":
			if col.ID == "" {
				return nil, &SchemaError{Position: i, Err: ErrMissingColumnID}
			}
		case "key":
			if col.ID == "" {
				col.ID = col.Accessor.key
			}
		}

		if strings.TrimSpace(col.Header) == "" {
			return nil, &SchemaError{ColumnID: col.ID, Position: i, Err: ErrMissingHeader}
		}
		if _, dup := s.index[col.ID]; dup {
			return nil, &SchemaError{ColumnID: col.ID, Position: i, Err: ErrDuplicateColumnID}
		}

		s.columns[i] = col
		s.index[col.ID] = i
	}
	return s, nil
}

// MustSchema is like NewSchema but panics on error. For static schemas.
func MustSchema(columns ...Column) *Schema {
	s, err := NewSchema(columns...)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of columns.
func (s *Schema) Len() int { return len(s.columns) }

// Columns returns a copy of the columns in order.
func (s *Schema) Columns() []Column {
	out := make([]Column, len(s.columns))
	copy(out, s.columns)
	return out
}

// IDs returns the column IDs in order.
func (s *Schema) IDs() []string {
	ids := make([]string, len(s.columns))
	for i, c := range s.columns {
		ids[i] = c.ID
	}
	return ids
}

// Lookup returns the column with the given ID.
func (s *Schema) Lookup(id string) (Column, bool) {
	i, ok := s.index[id]
	if !ok {
		return Column{}, false
	}
	return s.columns[i], true
}

// Without returns a new schema with the given columns hidden.
func (s *Schema) Without(ids ...string) (*Schema, error) {
	hidden := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := s.index[id]; !ok {
			return nil, &SchemaError{
				ColumnID: id,
				Position: -1,
				Err:      fmt.Errorf("%w (known: %s)", ErrUnknownColumn, strings.Join(s.IDs(), ", ")),
			}
		}
		hidden[id] = true
	}

	kept := make([]Column, 0, len(s.columns))
	for _, c := range s.columns {
		if !hidden[c.ID] {
			kept = append(kept, c)
		}
	}
	return NewSchema(kept...)
}

// grouped reports whether any column declares a header group.
func (s *Schema) grouped() bool {
	for _, c := range s.columns {
		if c.Group != "" {
			return true
		}
	}
	return false
}
