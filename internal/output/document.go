package output

import (
	"time"

	"github.com/salmonumbrella/grid-cli/internal/display"
	"github.com/salmonumbrella/grid-cli/internal/table"
)

// View is a built table plus the heading printed above it.
type View struct {
	Breadcrumb string
	Title      string
	Model      *table.Model
}

// Len returns the number of body rows.
func (v *View) Len() int {
	if v == nil || v.Model == nil {
		return 0
	}
	return len(v.Model.Rows)
}

// Document is the structured projection of a View. Every element carries its
// binding key so consumers can diff or address cells without recomputing
// positions.
type Document struct {
	Breadcrumb   string            `json:"breadcrumb,omitempty" yaml:"breadcrumb,omitempty"`
	Title        string            `json:"title,omitempty" yaml:"title,omitempty"`
	HeaderGroups []DocumentHeaders `json:"header_groups" yaml:"header_groups"`
	Rows         []DocumentRow     `json:"rows" yaml:"rows"`
	Meta         DocumentMeta      `json:"_meta" yaml:"_meta"`
}

// DocumentHeaders is one header group.
type DocumentHeaders struct {
	Key     string           `json:"key" yaml:"key"`
	Depth   int              `json:"depth" yaml:"depth"`
	Headers []DocumentHeader `json:"headers" yaml:"headers"`
}

// DocumentHeader is one header cell.
type DocumentHeader struct {
	Key         string `json:"key" yaml:"key"`
	ColumnID    string `json:"column_id,omitempty" yaml:"column_id,omitempty"`
	Header      string `json:"header" yaml:"header"`
	ColSpan     int    `json:"col_span" yaml:"col_span"`
	Placeholder bool   `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
}

// DocumentRow is one body row.
type DocumentRow struct {
	Key   string         `json:"key" yaml:"key"`
	Index int            `json:"index" yaml:"index"`
	Cells []DocumentCell `json:"cells" yaml:"cells"`
}

// DocumentCell is one body cell. Display is the plain text; Kind, Tone and
// Href describe the decoration a view would apply.
type DocumentCell struct {
	Key      string `json:"key" yaml:"key"`
	ColumnID string `json:"column_id" yaml:"column_id"`
	Raw      any    `json:"raw" yaml:"raw"`
	Display  string `json:"display" yaml:"display"`
	Kind     string `json:"kind" yaml:"kind"`
	Tone     string `json:"tone,omitempty" yaml:"tone,omitempty"`
	Href     string `json:"href,omitempty" yaml:"href,omitempty"`
}

// DocumentMeta summarises the document.
type DocumentMeta struct {
	RowCount    int    `json:"row_count" yaml:"row_count"`
	ColumnCount int    `json:"column_count" yaml:"column_count"`
	GeneratedAt string `json:"generated_at" yaml:"generated_at"`
}

// now is replaced in tests.
var now = time.Now

// Document builds the structured projection of v.
func (v *View) Document() Document {
	doc := Document{
		Breadcrumb:   v.Breadcrumb,
		Title:        v.Title,
		HeaderGroups: []DocumentHeaders{},
		Rows:         []DocumentRow{},
	}
	m := v.Model
	if m != nil {
		for _, g := range m.HeaderGroups {
			props := g.Props()
			dg := DocumentHeaders{Key: props.Key, Depth: g.Depth, Headers: make([]DocumentHeader, len(g.Headers))}
			for i, h := range g.Headers {
				hp := h.Props()
				dg.Headers[i] = DocumentHeader{
					Key:         hp.Key,
					ColumnID:    h.ColumnID,
					Header:      h.Header,
					ColSpan:     hp.ColSpan,
					Placeholder: h.Placeholder,
				}
			}
			doc.HeaderGroups = append(doc.HeaderGroups, dg)
		}
		for _, r := range m.Rows {
			dr := DocumentRow{Key: r.Key(), Index: r.Index, Cells: make([]DocumentCell, len(r.Cells))}
			for i, c := range r.Cells {
				dr.Cells[i] = documentCell(c)
			}
			doc.Rows = append(doc.Rows, dr)
		}
	}
	doc.Meta = DocumentMeta{
		RowCount:    len(doc.Rows),
		ColumnCount: len(m.HeaderCells()),
		GeneratedAt: now().UTC().Format(time.RFC3339),
	}
	return doc
}

func documentCell(c table.Cell) DocumentCell {
	dc := DocumentCell{
		Key:      c.Key(),
		ColumnID: c.ColumnID,
		Raw:      c.Raw,
		Display:  display.Text(c.Display),
		Kind:     display.Kind(c.Display),
	}
	switch d := c.Display.(type) {
	case display.Badge:
		if d.Tone != display.ToneNone {
			dc.Tone = d.Tone.String()
		}
	case display.Link:
		dc.Href = d.Href
	}
	return dc
}

// Records flattens v into one map per row, keyed by column ID, holding the
// display text of each cell.
func (v *View) Records() []map[string]any {
	if v == nil || v.Model == nil {
		return []map[string]any{}
	}
	out := make([]map[string]any, 0, len(v.Model.Rows))
	for _, r := range v.Model.Rows {
		rec := make(map[string]any, len(r.Cells))
		for _, c := range r.Cells {
			rec[c.ColumnID] = display.Text(c.Display)
		}
		out = append(out, rec)
	}
	return out
}
