package output

// Table is a plain header and rows listing for output that does not come
// from a built model, such as the column listing of `grid schema`.
type Table struct {
	Headers []string   `json:"headers" yaml:"headers"`
	Rows    [][]string `json:"rows" yaml:"rows"`
}
