package table

// ColumnInfo is a serializable summary of one column.
type ColumnInfo struct {
	Position  int    `json:"position" yaml:"position"`
	ID        string `json:"id" yaml:"id"`
	Header    string `json:"header" yaml:"header"`
	Accessor  string `json:"accessor" yaml:"accessor"`
	Field     string `json:"field,omitempty" yaml:"field,omitempty"`
	Formatter string `json:"formatter" yaml:"formatter"`
	Group     string `json:"group,omitempty" yaml:"group,omitempty"`
}

// Describe lists the schema's columns in order. Formatter is "custom" when
// the column declares one and "identity" otherwise.
func (s *Schema) Describe() []ColumnInfo {
	out := make([]ColumnInfo, 0, len(s.columns))
	for i, c := range s.columns {
		info := ColumnInfo{
			Position:  i,
			ID:        c.ID,
			Header:    c.Header,
			Accessor:  c.Accessor.Kind(),
			Field:     c.Accessor.FieldKey(),
			Formatter: "identity",
			Group:     c.Group,
		}
		if c.HasFormatter() {
			info.Formatter = "custom"
		}
		out = append(out, info)
	}
	return out
}
