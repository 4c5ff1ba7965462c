package output

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/salmonumbrella/grid-cli/internal/jobs"
	"github.com/salmonumbrella/grid-cli/internal/table"
)

func fixedNow(t *testing.T) {
	t.Helper()
	old := now
	now = func() time.Time { return time.Date(2024, 11, 15, 9, 30, 0, 0, time.UTC) }
	t.Cleanup(func() { now = old })
}

func TestViewDocument(t *testing.T) {
	fixedNow(t)
	doc := sampleView(t, 16).Document()

	if doc.Breadcrumb != "Folder 2 ▸ Spreadsheet 3" || doc.Title != "Q3 Financial Overview" {
		t.Errorf("heading = %q / %q", doc.Breadcrumb, doc.Title)
	}
	if diff := cmp.Diff(DocumentMeta{RowCount: 21, ColumnCount: 10, GeneratedAt: "2024-11-15T09:30:00Z"}, doc.Meta); diff != "" {
		t.Errorf("meta mismatch (-want +got):\n%s", diff)
	}

	if len(doc.HeaderGroups) != 1 || doc.HeaderGroups[0].Key != "headerGroup_0" {
		t.Fatalf("header groups = %+v", doc.HeaderGroups)
	}
	wantHeader := DocumentHeader{Key: "header_status", ColumnID: "status", Header: "Status", ColSpan: 1}
	if diff := cmp.Diff(wantHeader, doc.HeaderGroups[0].Headers[3]); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}

	row := doc.Rows[1]
	if row.Key != "row_1" || row.Index != 1 {
		t.Errorf("row = %s/%d", row.Key, row.Index)
	}
	wantStatus := DocumentCell{Key: "cell_1_status", ColumnID: "status", Raw: "Need to start", Display: "Need to start", Kind: "badge", Tone: "blue"}
	if diff := cmp.Diff(wantStatus, row.Cells[3]); diff != "" {
		t.Errorf("status cell mismatch (-want +got):\n%s", diff)
	}
	wantURL := DocumentCell{Key: "cell_1_url", ColumnID: "url", Raw: "www.irfankhanpro.com", Display: "www.irfankhanpro.com", Kind: "link", Href: "https://www.irfankhanpro.com"}
	if diff := cmp.Diff(wantURL, row.Cells[5]); diff != "" {
		t.Errorf("url cell mismatch (-want +got):\n%s", diff)
	}

	blank := doc.Rows[5].Cells[3]
	if blank.Display != "" || blank.Kind != "text" || blank.Tone != "" {
		t.Errorf("blank status cell = %+v", blank)
	}
	if doc.Rows[20].Cells[0].Display != "21" {
		t.Errorf("row 20 number = %q", doc.Rows[20].Cells[0].Display)
	}
}

func TestViewDocument_Grouped(t *testing.T) {
	model, err := table.Build(jobs.GroupedSchema(), table.Dataset{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	doc := (&View{Model: model}).Document()
	if len(doc.HeaderGroups) != 2 {
		t.Fatalf("got %d header groups", len(doc.HeaderGroups))
	}
	outer := doc.HeaderGroups[0].Headers
	if !outer[0].Placeholder || outer[1].Header != "Request" || outer[1].ColSpan != 5 {
		t.Errorf("outer headers = %+v", outer)
	}
	if len(doc.Rows) != 0 || doc.Rows == nil {
		t.Errorf("rows should be an empty list, got %#v", doc.Rows)
	}
}

func TestViewRecords(t *testing.T) {
	recs := sampleView(t, 1).Records()
	if len(recs) != 6 {
		t.Fatalf("got %d records", len(recs))
	}
	if recs[4]["status"] != "Blocked" || recs[4]["row"] != "5" {
		t.Errorf("record 4 = %v", recs[4])
	}
	if recs[5]["job"] != "" {
		t.Errorf("blank record job = %q", recs[5]["job"])
	}
	if got := (*View)(nil).Records(); got == nil || len(got) != 0 {
		t.Errorf("nil view records = %#v", got)
	}
}

func TestPrinter_PrintView_JSON(t *testing.T) {
	fixedNow(t)
	var buf bytes.Buffer
	if err := NewPrinter(&buf, FormatJSON).Print(context.Background(), sampleView(t, 0)); err != nil {
		t.Fatalf("Print() error = %v", err)
	}
	var doc Document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if doc.Meta.RowCount != 5 || doc.Rows[4].Cells[7].Tone != "blue" {
		t.Errorf("unexpected document: %+v", doc.Meta)
	}
}

func TestPrinter_PrintView_NDJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := NewPrinter(&buf, FormatNDJSON).Print(context.Background(), sampleView(t, 0)); err != nil {
		t.Fatalf("Print() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines", len(lines))
	}
	var rec map[string]string
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("invalid JSON line: %v", err)
	}
	if rec["job"] != "Launch social media campaign for product" || rec["value"] != "6,200,000" {
		t.Errorf("record = %v", rec)
	}
}

func TestPrinter_PrintView_YAML(t *testing.T) {
	var buf bytes.Buffer
	if err := NewPrinter(&buf, FormatYAML).Print(context.Background(), sampleView(t, 0)); err != nil {
		t.Fatalf("Print() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"title: Q3 Financial Overview", "header_groups:", "key: cell_0_job", "href: https://www.aishapatel.com"} {
		if !strings.Contains(out, want) {
			t.Errorf("yaml missing %q", want)
		}
	}
}
