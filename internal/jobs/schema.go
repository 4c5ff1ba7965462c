// Package jobs defines the job-request sheet: its column schema, status and
// priority badges, and the bundled sample records.
package jobs

import (
	"fmt"

	"github.com/salmonumbrella/grid-cli/internal/display"
	"github.com/salmonumbrella/grid-cli/internal/table"
)

// Record field names.
const (
	FieldJob       = "job"
	FieldSubmitted = "submitted"
	FieldStatus    = "status"
	FieldSubmitter = "submitter"
	FieldURL       = "url"
	FieldAssigned  = "assigned"
	FieldPriority  = "priority"
	FieldDue       = "due"
	FieldValue     = "value"
)

// RowNumberID is the ID of the computed "#" column.
const RowNumberID = "row"

// Fields lists the record fields in column order.
var Fields = []string{
	FieldJob, FieldSubmitted, FieldStatus, FieldSubmitter, FieldURL,
	FieldAssigned, FieldPriority, FieldDue, FieldValue,
}

// Header groups used by GroupedSchema.
const (
	GroupRequest    = "Request"
	GroupAssignment = "Assignment"
)

// Sheet is the breadcrumb and title shown above the grid.
type Sheet struct {
	Folder      string `json:"folder" yaml:"folder"`
	Spreadsheet string `json:"spreadsheet" yaml:"spreadsheet"`
	Title       string `json:"title" yaml:"title"`
}

// DefaultSheet describes the bundled sample sheet.
func DefaultSheet() Sheet {
	return Sheet{Folder: "Folder 2", Spreadsheet: "Spreadsheet 3", Title: "Q3 Financial Overview"}
}

// Breadcrumb renders "Folder ▸ Spreadsheet".
func (s Sheet) Breadcrumb() string {
	switch {
	case s.Folder == "":
		return s.Spreadsheet
	case s.Spreadsheet == "":
		return s.Folder
	default:
		return s.Folder + " ▸ " + s.Spreadsheet
	}
}

// Schema returns the job-request column schema.
func Schema() *table.Schema {
	return table.MustSchema(columns("", "")...)
}

// GroupedSchema is Schema with an outer header row that splits the request
// columns from the assignment columns. The "#" column stays ungrouped.
func GroupedSchema() *table.Schema {
	return table.MustSchema(columns(GroupRequest, GroupAssignment)...)
}

func columns(request, assignment string) []table.Column {
	return []table.Column{
		{ID: RowNumberID, Header: "#", Accessor: table.Func(rowNumber)},
		{Header: "Job Request", Accessor: table.Key(FieldJob), Group: request},
		{Header: "Submitted", Accessor: table.Key(FieldSubmitted), Group: request},
		{Header: "Status", Accessor: table.Key(FieldStatus), Formatter: table.NonEmpty(statusBadge), Group: request},
		{Header: "Submitter", Accessor: table.Key(FieldSubmitter), Group: request},
		{Header: "URL", Accessor: table.Key(FieldURL), Formatter: table.NonEmpty(link), Group: request},
		{Header: "Assigned", Accessor: table.Key(FieldAssigned), Group: assignment},
		{Header: "Priority", Accessor: table.Key(FieldPriority), Formatter: table.NonEmpty(priorityBadge), Group: assignment},
		{Header: "Due Date", Accessor: table.Key(FieldDue), Group: assignment},
		{Header: "Est. Value", Accessor: table.Key(FieldValue), Group: assignment},
	}
}

func rowNumber(_ table.Row, index int) (table.Value, error) {
	return index + 1, nil
}

// statusBadge colours known statuses; unknown labels keep their text uncoloured.
func statusBadge(raw table.Value) (table.Value, error) {
	label := display.Text(raw)
	st, ok := ParseStatus(label)
	if !ok {
		return display.Badge{Label: label, Tone: display.ToneNone}, nil
	}
	return display.Badge{Label: st.String(), Tone: st.Tone()}, nil
}

func priorityBadge(raw table.Value) (table.Value, error) {
	label := display.Text(raw)
	p, ok := ParsePriority(label)
	if !ok {
		return display.Badge{Label: label, Tone: display.ToneNone}, nil
	}
	return display.Badge{Label: p.String(), Tone: p.Tone()}, nil
}

func link(raw table.Value) (table.Value, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("expected text, got %T", raw)
	}
	return display.NewLink(s), nil
}
