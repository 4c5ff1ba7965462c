package output

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidateFields(t *testing.T) {
	tests := []struct {
		raw     string
		wantErr bool
	}{
		{raw: ""},
		{raw: "job,status"},
		{raw: "owner=assigned, first=cells[0].display"},
		{raw: `name=["odd key"]`},
		{raw: "=job", wantErr: true},
		{raw: "cells[0", wantErr: true},
		{raw: "cells[x]", wantErr: true},
		{raw: ",,", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			err := ValidateFields(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFields(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
		})
	}
}

func TestPrinter_Fields_View(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithFields(context.Background(), "job,owner=asg")
	if err := NewPrinter(&buf, FormatJSON).Print(WithRecords(ctx, true), sampleView(t, 0)); err != nil {
		t.Fatalf("Print() error = %v", err)
	}

	var got []map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("got %d records", len(got))
	}
	want := map[string]interface{}{"job": "Design new features for the website", "owner": "Tom Wright"}
	if diff := cmp.Diff(want, got[3]); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestPrinter_Fields_TextTable(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithFields(context.Background(), "row,status")
	if err := NewPrinter(&buf, FormatTable).Print(ctx, sampleView(t, 0)); err != nil {
		t.Fatalf("Print() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != "ROW  STATUS" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[5] != "5    Blocked" {
		t.Errorf("last line = %q", lines[5])
	}
}

func TestPrinter_JSONPath_View(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithJSONPath(context.Background(), "rows[1].cells[3].display")
	if err := NewPrinter(&buf, FormatJSON).Print(ctx, sampleView(t, 0)); err != nil {
		t.Fatalf("Print() error = %v", err)
	}
	if strings.TrimSpace(buf.String()) != `"Need to start"` {
		t.Errorf("got %q", buf.String())
	}
}

func TestPrinter_JSONPath_Invalid(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithJSONPath(context.Background(), "$.rows[")
	err := NewPrinter(&buf, FormatJSON).Print(ctx, sampleView(t, 0))
	if err == nil || !strings.Contains(err.Error(), "invalid --jsonpath value") {
		t.Fatalf("expected jsonpath error, got %v", err)
	}
}

func TestPrinter_JSONPath_CSVRejected(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithJSONPath(context.Background(), "$[0]")
	err := NewPrinter(&buf, FormatCSV).Print(ctx, sampleView(t, 0))
	if err == nil || !strings.Contains(err.Error(), "not supported with csv") {
		t.Fatalf("expected csv rejection, got %v", err)
	}
}

func TestNormalizeJSONPath(t *testing.T) {
	tests := map[string]string{
		"":          "",
		"rows[0]":   "$.rows[0]",
		".rs[0]":    "$.rows[0]",
		"[0].job":   "$[0].job",
		"$.hg[0]":   "$.header_groups[0]",
		"@.display": "@.display",
	}
	for in, want := range tests {
		if got := normalizeJSONPath(in); got != want {
			t.Errorf("normalizeJSONPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsEmptyResult(t *testing.T) {
	tests := []struct {
		name string
		data interface{}
		want bool
	}{
		{name: "nil", data: nil, want: true},
		{name: "empty table", data: Table{Headers: []string{"a"}}, want: true},
		{name: "empty document", data: Document{}, want: true},
		{name: "empty records", data: []map[string]any{}, want: true},
		{name: "empty list", data: []interface{}{}, want: true},
		{name: "map without rows", data: map[string]interface{}{"a": 1}, want: false},
		{name: "map with empty rows", data: map[string]interface{}{"rows": []interface{}{}}, want: true},
		{name: "records", data: []interface{}{map[string]interface{}{}}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isEmptyResult(tt.data); got != tt.want {
				t.Errorf("isEmptyResult() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPrinter_Query_CSV(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithQuery(context.Background(), `.[0:2] | map({value, job})`)
	if err := NewPrinter(&buf, FormatCSV).Print(ctx, sampleView(t, 0)); err != nil {
		t.Fatalf("Print() error = %v", err)
	}
	want := "job,value\n" +
		"Launch social media campaign for product,\"6,200,000\"\n" +
		"Update press kit for company redesign,\"3,500,000\"\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("csv mismatch (-want +got):\n%s", diff)
	}
}

func TestPrinter_Query_CSVSlice(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithQuery(context.Background(), `.[0:2]`)
	if err := NewPrinter(&buf, FormatCSV).Print(ctx, sampleView(t, 0)); err != nil {
		t.Fatalf("Print() error = %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header plus 2 rows:\n%s", len(lines), buf.String())
	}
	wantHeader := "row,job,submitted,status,submitter,url,assigned,priority,due,value"
	if lines[0] != wantHeader {
		t.Errorf("header = %q, want %q", lines[0], wantHeader)
	}
	if !strings.HasPrefix(lines[2], "2,Update press kit for company redesign,28-10-2024,") {
		t.Errorf("row 2 = %q", lines[2])
	}
}

func TestPrinter_Query_TableKeepsColumnOrder(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithQuery(context.Background(), `map(select(.status == "Blocked") | {due, url, row})`)
	if err := NewPrinter(&buf, FormatTable).Print(ctx, sampleView(t, 3)); err != nil {
		t.Fatalf("Print() error = %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), buf.String())
	}
	if fields := strings.Fields(lines[0]); !cmp.Equal(fields, []string{"ROW", "URL", "DUE"}) {
		t.Errorf("header = %q", lines[0])
	}
	if fields := strings.Fields(lines[1]); !cmp.Equal(fields, []string{"5", "www.jessicabrown.io", "30-01-2025"}) {
		t.Errorf("row = %q", lines[1])
	}
}

func TestPrinter_Query_GridScalarRejected(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithQuery(context.Background(), `length`)
	err := NewPrinter(&buf, FormatGrid).Print(ctx, sampleView(t, 0))
	if err == nil || !strings.Contains(err.Error(), "grid format requires a list of objects") {
		t.Fatalf("expected list error, got %v", err)
	}
}

func TestPrinter_Query_Grid(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithQuery(context.Background(), `.[4:] | map({submitter, assigned})`)
	if err := NewPrinter(&buf, FormatGrid).Print(ctx, sampleView(t, 0)); err != nil {
		t.Fatalf("Print() error = %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "+") || !strings.Contains(out, "| Jessica Brown") {
		t.Fatalf("expected boxed grid, got:\n%s", out)
	}
	if strings.Index(out, "submitter") > strings.Index(out, "assigned") {
		t.Errorf("submitter should precede assigned:\n%s", out)
	}
	if strings.Contains(out, "Aisha Patel") {
		t.Errorf("query was not applied:\n%s", out)
	}
}

func TestPrinter_Fields_Order(t *testing.T) {
	for _, format := range []Format{FormatTable, FormatGrid, FormatCSV} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			ctx := WithFields(context.Background(), "status,job,assigned")
			if err := NewPrinter(&buf, format).Print(ctx, sampleView(t, 0)); err != nil {
				t.Fatalf("Print() error = %v", err)
			}
			out := strings.ToLower(buf.String())
			s, j, a := strings.Index(out, "status"), strings.Index(out, "job"), strings.Index(out, "assigned")
			if s < 0 || !(s < j && j < a) {
				t.Errorf("columns out of order:\n%s", buf.String())
			}
		})
	}

	t.Run("csv rows", func(t *testing.T) {
		var buf bytes.Buffer
		ctx := WithFields(context.Background(), "status,job")
		if err := NewPrinter(&buf, FormatCSV).Print(ctx, sampleView(t, 0)); err != nil {
			t.Fatalf("Print() error = %v", err)
		}
		lines := strings.Split(buf.String(), "\n")
		if lines[0] != "status,job" || lines[5] != "Blocked,Prepare financial report for Q4" {
			t.Errorf("got %q", buf.String())
		}
	})
}

func TestPrinter_Query_YAML(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithQuery(context.Background(), `.[1].priority`)
	if err := NewPrinter(&buf, FormatYAML).Print(ctx, sampleView(t, 0)); err != nil {
		t.Fatalf("Print() error = %v", err)
	}
	if buf.String() != "High\n" {
		t.Errorf("got %q", buf.String())
	}
}
