package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestShowText(t *testing.T) {
	res := runApp(t, nil, "show", "-o", "text")
	if res.err != nil {
		t.Fatalf("show failed: %v\nstderr=%s", res.err, res.stderr)
	}

	got := lines(res.stdout)
	if got[0] != "📁 Folder 2 ▸ Spreadsheet 3" {
		t.Errorf("breadcrumb = %q", got[0])
	}
	if got[1] != "Q3 Financial Overview" {
		t.Errorf("title = %q", got[1])
	}
	if !strings.HasPrefix(got[3], "#") || !strings.Contains(got[3], "Job Request") || !strings.Contains(got[3], "Est. Value") {
		t.Errorf("header = %q", got[3])
	}
	// heading (3) + header (1) + 5 records + 16 blank rows
	if len(got) != 25 {
		t.Errorf("got %d lines, want 25", len(got))
	}
	if !strings.Contains(got[4], "Launch social media campaign for product") {
		t.Errorf("first row = %q", got[4])
	}
	if strings.TrimSpace(got[24]) != "21" {
		t.Errorf("last row = %q, want row number only", got[24])
	}
}

func TestShowNoTitleGrouped(t *testing.T) {
	res := runApp(t, nil, "show", "-o", "text", "--no-title", "--grouped", "--pad", "0")
	if res.err != nil {
		t.Fatalf("show failed: %v", res.err)
	}
	got := lines(res.stdout)
	if !strings.Contains(got[0], "Request") || !strings.Contains(got[0], "Assignment") {
		t.Errorf("group header = %q", got[0])
	}
	if !strings.HasPrefix(got[1], "#") {
		t.Errorf("leaf header = %q", got[1])
	}
	if len(got) != 7 {
		t.Errorf("got %d lines, want 7", len(got))
	}
}

func TestShowDefaultsToJSONWhenPiped(t *testing.T) {
	res := runApp(t, nil, "show")
	if res.err != nil {
		t.Fatalf("show failed: %v", res.err)
	}

	var doc struct {
		HeaderGroups []json.RawMessage `json:"header_groups"`
		Rows         []struct {
			Key   string `json:"key"`
			Cells []struct {
				ColumnID string `json:"column_id"`
				Display  string `json:"display"`
				Kind     string `json:"kind"`
			} `json:"cells"`
		} `json:"rows"`
		Meta struct {
			RowCount    int `json:"row_count"`
			ColumnCount int `json:"column_count"`
		} `json:"_meta"`
	}
	if err := json.Unmarshal([]byte(res.stdout), &doc); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, res.stdout)
	}
	if doc.Meta.RowCount != 21 || doc.Meta.ColumnCount != 10 {
		t.Errorf("meta = %+v", doc.Meta)
	}
	if len(doc.HeaderGroups) != 1 {
		t.Errorf("got %d header groups, want 1", len(doc.HeaderGroups))
	}
	status := doc.Rows[0].Cells[3]
	if status.ColumnID != "status" || status.Kind != "badge" || status.Display != "In-process" {
		t.Errorf("status cell = %+v", status)
	}
}

func TestShowQuery(t *testing.T) {
	res := runApp(t, nil, "show", "-o", "json", "--query", ".rows | length")
	if res.err != nil {
		t.Fatalf("show failed: %v", res.err)
	}
	if strings.TrimSpace(res.stdout) != "21" {
		t.Errorf("stdout = %q, want 21", res.stdout)
	}
}

func TestShowRecordsNDJSON(t *testing.T) {
	res := runApp(t, nil, "show", "--records", "-o", "ndjson", "--pad", "0")
	if res.err != nil {
		t.Fatalf("show failed: %v", res.err)
	}
	got := lines(res.stdout)
	if len(got) != 5 {
		t.Fatalf("got %d records, want 5", len(got))
	}
	var rec map[string]string
	if err := json.Unmarshal([]byte(got[0]), &rec); err != nil {
		t.Fatalf("record is not JSON: %v", err)
	}
	if rec["job"] != "Launch social media campaign for product" || rec["row"] != "1" {
		t.Errorf("record = %v", rec)
	}
}

func TestShowCSVFile(t *testing.T) {
	path := writeFile(t, "jobs.csv", "job,status,url\nShip it,Complete,example.com\n")
	res := runApp(t, nil, "show", "--file", path, "-o", "csv", "--hide", "submitted,submitter", "--hide", "assigned,priority,due,value")
	if res.err != nil {
		t.Fatalf("show failed: %v\nstderr=%s", res.err, res.stderr)
	}
	want := "#,Job Request,Status,URL\n1,Ship it,Complete,example.com\n"
	if res.stdout != want {
		t.Errorf("csv = %q, want %q", res.stdout, want)
	}
}

func TestShowNDJSONFile(t *testing.T) {
	path := writeFile(t, "jobs.jsonl", "{\"job\": \"Ship it\", \"status\": \"Blocked\"}\n{\"job\": \"Plan\", \"status\": \"In-process\"}\n")
	res := runApp(t, nil, "show", "--file", path, "-o", "csv", "--hide", "submitted,submitter,assigned,priority,due,value,url")
	if res.err != nil {
		t.Fatalf("show failed: %v\nstderr=%s", res.err, res.stderr)
	}
	want := "#,Job Request,Status\n1,Ship it,Blocked\n2,Plan,In-process\n"
	if res.stdout != want {
		t.Errorf("csv = %q, want %q", res.stdout, want)
	}
}

func TestShowStdin(t *testing.T) {
	res := runApp(t, strings.NewReader("job,due\nFrom stdin,01-12-2024\n"), "show", "--file", "-", "--input-format", "csv", "--records", "-o", "json")
	if res.err != nil {
		t.Fatalf("show failed: %v", res.err)
	}
	if !strings.Contains(res.stdout, `"job": "From stdin"`) || !strings.Contains(res.stdout, `"due": "01-12-2024"`) {
		t.Errorf("stdout = %s", res.stdout)
	}
}

func TestShowWarnsAboutDatasetProblems(t *testing.T) {
	path := writeFile(t, "jobs.yaml", "- job: Ship it\n  due: 2024-12-01\n")
	res := runApp(t, nil, "show", "--file", path, "-o", "text")
	if res.err != nil {
		t.Fatalf("show failed: %v", res.err)
	}
	if !strings.Contains(res.stderr, "1 dataset warning;") {
		t.Errorf("stderr = %q, want a warning summary", res.stderr)
	}
}

func TestShowUserErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.yaml")
	bad := writeFile(t, "bad.yaml", "title: not a list\n")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "unknown column", args: []string{"show", "--hide", "nope"}, want: "Hint: Run 'grid schema' to list column ids"},
		{name: "missing file", args: []string{"show", "--file", missing}, want: "not found"},
		{name: "bad dataset", args: []string{"show", "--file", bad}, want: "invalid dataset"},
		{name: "negative pad", args: []string{"show", "--pad", "-1"}, want: "padding: must be at least 0"},
		{name: "bad input format", args: []string{"show", "--input-format", "xml"}, want: "Use --input-format"},
		{name: "bad output", args: []string{"show", "-o", "xml"}, want: "invalid --output format"},
		{name: "unknown flag", args: []string{"show", "--nope"}, want: "invalid flag"},
		{name: "query with fields", args: []string{"show", "-q", ".", "--fields", "job"}, want: "use only one of"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append(tt.args, "--error-format", "text")
			res := runApp(t, nil, args...)
			if res.err == nil {
				t.Fatal("expected an error")
			}
			if code := ExitCode(res.err); code != ExitUser {
				t.Errorf("ExitCode = %d, want %d (err: %v)", code, ExitUser, res.err)
			}
			if !strings.Contains(res.stderr, tt.want) {
				t.Errorf("stderr = %q, want substring %q", res.stderr, tt.want)
			}
		})
	}
}

func TestShowFailEmpty(t *testing.T) {
	path := writeFile(t, "empty.yaml", "")
	res := runApp(t, nil, "show", "--file", path, "--fail-empty", "-o", "json")
	if res.err == nil || !strings.Contains(res.err.Error(), "no results") {
		t.Fatalf("err = %v, want no results", res.err)
	}
	if ExitCode(res.err) != ExitUser {
		t.Errorf("ExitCode = %d, want %d", ExitCode(res.err), ExitUser)
	}
}

func TestShowJSONErrorEnvelope(t *testing.T) {
	res := runApp(t, nil, "show", "--hide", "nope", "-o", "json")
	if res.err == nil {
		t.Fatal("expected an error")
	}
	var env struct {
		Error struct {
			Category string `json:"category"`
			Type     string `json:"type"`
			Column   string `json:"column"`
		} `json:"error"`
	}
	if err := json.Unmarshal([]byte(res.stderr), &env); err != nil {
		t.Fatalf("stderr is not JSON: %v\n%s", err, res.stderr)
	}
	if env.Error.Category != "user" || env.Error.Type != "schema" || env.Error.Column != "nope" {
		t.Errorf("envelope = %+v", env.Error)
	}
}

func TestExportToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "jobs.json")
	res := runApp(t, nil, "export", "--to", "json", "--out-file", out, "--pad", "0")
	if res.err != nil {
		t.Fatalf("export failed: %v", res.err)
	}
	if res.stdout != "" {
		t.Errorf("stdout = %q, want empty", res.stdout)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), `"header_groups"`) || !strings.Contains(string(data), `"row_count": 5`) {
		t.Errorf("export = %s", data)
	}
}

func TestExportCSVToStdout(t *testing.T) {
	res := runApp(t, nil, "export", "--pad", "0")
	if res.err != nil {
		t.Fatalf("export failed: %v", res.err)
	}
	got := lines(res.stdout)
	if got[0] != "#,Job Request,Submitted,Status,Submitter,URL,Assigned,Priority,Due Date,Est. Value" {
		t.Errorf("header = %q", got[0])
	}
	if len(got) != 6 {
		t.Errorf("got %d lines, want 6", len(got))
	}
}

func TestExportRejectsTerminalFormats(t *testing.T) {
	res := runApp(t, nil, "export", "--to", "grid")
	if res.err == nil || ExitCode(res.err) != ExitUser {
		t.Fatalf("err = %v, want user error", res.err)
	}
}
