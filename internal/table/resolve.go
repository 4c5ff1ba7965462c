package table

// Resolve computes the raw value of col for row. Missing keys resolve to nil.
// Function accessor failures, including panics, are returned as *AccessorError.
func Resolve(col Column, row Row, index int) (v Value, err error) {
	if !col.Accessor.IsFunc() {
		return row[col.Accessor.key], nil
	}

	defer func() {
		if p := recover(); p != nil {
			v = nil
			err = &AccessorError{ColumnID: col.ID, RowIndex: index, Err: recovered(p)}
		}
	}()

	v, err = col.Accessor.fn(row, index)
	if err != nil {
		return nil, &AccessorError{ColumnID: col.ID, RowIndex: index, Err: err}
	}
	return v, nil
}

// Format computes the display value of col for an already resolved raw value.
// Without a formatter the raw value is returned unchanged. Formatter failures,
// including panics, are returned as *FormatterError.
func Format(col Column, raw Value, row Row, index int) (v Value, err error) {
	if col.Formatter == nil {
		return raw, nil
	}

	defer func() {
		if p := recover(); p != nil {
			v = nil
			err = &FormatterError{ColumnID: col.ID, RowIndex: index, Err: recovered(p)}
		}
	}()

	v, err = col.Formatter(raw, row, index)
	if err != nil {
		return nil, &FormatterError{ColumnID: col.ID, RowIndex: index, Err: err}
	}
	return v, nil
}
