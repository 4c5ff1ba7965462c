package jobs

import (
	"strings"

	"github.com/salmonumbrella/grid-cli/internal/dataset"
	clierrors "github.com/salmonumbrella/grid-cli/internal/errors"
	"github.com/salmonumbrella/grid-cli/internal/table"
	"github.com/salmonumbrella/grid-cli/internal/validate"
)

// DateLayout is the DD-MM-YYYY layout used by the submitted and due fields.
const DateLayout = "02-01-2006"

// Check validates job-request records on top of dataset.Check. Blank rows
// are padding and are skipped.
func Check(ds table.Dataset) []*clierrors.ValidationError {
	problems := dataset.Check(ds)
	for i, row := range ds.Rows {
		if isBlank(row) {
			continue
		}
		add := func(field string, err error) {
			if err != nil {
				problems = append(problems, &clierrors.ValidationError{Field: field, Row: i, Message: trimField(field, err)})
			}
		}
		add(FieldJob, validate.NonEmpty(FieldJob, text(row, FieldJob)))
		for _, f := range []string{FieldSubmitted, FieldDue} {
			if v := text(row, f); v != "" {
				add(f, validate.Date(f, v, DateLayout))
			}
		}
		if v := text(row, FieldURL); v != "" {
			add(FieldURL, validate.Host(FieldURL, v))
		}
		if v := text(row, FieldValue); v != "" {
			add(FieldValue, validate.Amount(FieldValue, v))
		}
		if v := text(row, FieldStatus); v != "" {
			if _, ok := ParseStatus(v); !ok {
				add(FieldStatus, validate.OneOf(FieldStatus, v, StatusLabels()))
			}
		}
		if v := text(row, FieldPriority); v != "" {
			if _, ok := ParsePriority(v); !ok {
				add(FieldPriority, validate.OneOf(FieldPriority, v, PriorityLabels()))
			}
		}
	}
	return problems
}

func text(row table.Row, field string) string {
	s, _ := row[field].(string)
	return strings.TrimSpace(s)
}

func isBlank(row table.Row) bool {
	for _, v := range row {
		if !table.IsEmpty(v) {
			return false
		}
	}
	return true
}

// trimField drops the "field: " prefix validate puts on its messages.
func trimField(field string, err error) string {
	return strings.TrimPrefix(err.Error(), field+": ")
}
