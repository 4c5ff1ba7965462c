package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/olekukonko/tablewriter"

	"github.com/salmonumbrella/grid-cli/internal/display"
	"github.com/salmonumbrella/grid-cli/internal/table"
	"github.com/salmonumbrella/grid-cli/internal/ui"
)

const columnGap = 2

// printViewText renders the sheet heading followed by an aligned grid with
// painted badges and links. Widths are measured on the plain text so escape
// sequences never shift columns.
func (p *Printer) printViewText(v *View, showTitle bool) error {
	painter := p.painter
	if painter == nil {
		painter = ui.NewPainter(p.w, ui.ColorNever)
	}
	m := v.Model

	if showTitle {
		if v.Breadcrumb != "" {
			if _, err := fmt.Fprintf(p.w, "📁 %s\n", v.Breadcrumb); err != nil {
				return err
			}
		}
		if v.Title != "" {
			if _, err := fmt.Fprintln(p.w, painter.Bold(v.Title)); err != nil {
				return err
			}
		}
		if v.Breadcrumb != "" || v.Title != "" {
			if _, err := fmt.Fprintln(p.w); err != nil {
				return err
			}
		}
	}

	leaves := m.HeaderCells()
	widths := make([]int, len(leaves))
	for i, h := range leaves {
		widths[i] = tablewriter.DisplayWidth(h.Header)
	}
	for _, r := range m.Rows {
		for i, c := range r.Cells {
			if w := tablewriter.DisplayWidth(display.Text(c.Display)); w > widths[i] {
				widths[i] = w
			}
		}
	}

	for _, g := range m.HeaderGroups {
		var line strings.Builder
		col := 0
		for _, h := range g.Headers {
			span := h.ColSpan
			if span < 1 {
				span = 1
			}
			width := spanWidth(widths[col : col+span])
			col += span
			writePadded(&line, painter.Bold(h.Header), h.Header, width, col == len(leaves))
		}
		if _, err := fmt.Fprintln(p.w, strings.TrimRight(line.String(), " ")); err != nil {
			return err
		}
	}

	for _, r := range m.Rows {
		var line strings.Builder
		for i, c := range r.Cells {
			plain := display.Text(c.Display)
			writePadded(&line, paintCell(painter, c.Display), plain, widths[i], i == len(r.Cells)-1)
		}
		if _, err := fmt.Fprintln(p.w, strings.TrimRight(line.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}

func spanWidth(widths []int) int {
	total := 0
	for _, w := range widths {
		total += w
	}
	return total + columnGap*(len(widths)-1)
}

func writePadded(b *strings.Builder, painted, plain string, width int, last bool) {
	b.WriteString(painted)
	if last {
		return
	}
	pad := width - tablewriter.DisplayWidth(plain) + columnGap
	if pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}
}

func paintCell(painter *ui.Painter, v table.Value) string {
	switch d := v.(type) {
	case display.Badge:
		return painter.Badge(d.Label, d.Tone)
	case display.Link:
		return painter.Link(d.Label, d.Href)
	default:
		return display.Text(v)
	}
}

// printViewTable renders the leaf headers and display text as tab-aligned
// columns with no decoration.
func (p *Printer) printViewTable(v *View) error {
	tw := tabwriter.NewWriter(p.w, 0, 0, columnGap, ' ', 0)
	m := v.Model

	leaves := m.HeaderCells()
	for i, h := range leaves {
		if i > 0 {
			_, _ = fmt.Fprint(tw, "\t")
		}
		_, _ = fmt.Fprint(tw, strings.ToUpper(h.Header))
	}
	_, _ = fmt.Fprintln(tw)

	for _, r := range m.Rows {
		for i, c := range r.Cells {
			if i > 0 {
				_, _ = fmt.Fprint(tw, "\t")
			}
			_, _ = fmt.Fprint(tw, display.Text(c.Display))
		}
		_, _ = fmt.Fprintln(tw)
	}

	return tw.Flush()
}

// printViewGrid renders a boxed table. Grouped models put the group label on
// the first line of each leaf header.
func (p *Printer) printViewGrid(v *View) error {
	m := v.Model
	tw := newGridWriter(p.w)

	if v.Title != "" {
		tw.SetCaption(true, v.Title)
	}
	tw.SetHeader(gridHeaders(m))

	for _, r := range m.Rows {
		row := make([]string, len(r.Cells))
		for i, c := range r.Cells {
			row[i] = display.Text(c.Display)
		}
		tw.Append(row)
	}
	tw.Render()
	return nil
}

// newGridWriter returns a left-aligned boxed table writer that prints
// headers and cells verbatim.
func newGridWriter(w io.Writer) *tablewriter.Table {
	tw := tablewriter.NewWriter(w)
	tw.SetAutoWrapText(false)
	tw.SetAutoFormatHeaders(false)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	return tw
}

func gridHeaders(m *table.Model) []string {
	leaves := m.HeaderCells()
	headers := make([]string, len(leaves))
	for i, h := range leaves {
		headers[i] = h.Header
	}
	if !m.Grouped() {
		return headers
	}
	col := 0
	for _, g := range m.HeaderGroups[0].Headers {
		for j := 0; j < g.ColSpan && col < len(headers); j++ {
			headers[col] = g.Header + "\n" + headers[col]
			col++
		}
	}
	return headers
}

// printViewCSV writes the leaf headers and display text as CSV.
func (p *Printer) printViewCSV(v *View) error {
	return WriteCSV(p.w, v.Model)
}

// WriteCSV writes m as CSV: one header record then one record per row.
func WriteCSV(w io.Writer, m *table.Model) error {
	leaves := m.HeaderCells()
	header := make([]string, len(leaves))
	for i, h := range leaves {
		header[i] = h.Header
	}
	rows := make([][]string, len(m.Rows))
	for i, r := range m.Rows {
		rec := make([]string, len(r.Cells))
		for j, c := range r.Cells {
			rec[j] = display.Text(c.Display)
		}
		rows[i] = rec
	}
	return writeCSVRows(w, header, rows)
}

func writeCSVRows(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if len(header) > 0 {
		if err := cw.Write(header); err != nil {
			return err
		}
	}
	return cw.WriteAll(rows)
}
