package cmd

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestValidateSample(t *testing.T) {
	res := runApp(t, nil, "validate", "-o", "text")
	if res.err != nil {
		t.Fatalf("validate failed: %v", res.err)
	}
	want := "✓ built 21 rows × 10 columns from <sample>\n"
	if res.stdout != want {
		t.Errorf("stdout = %q, want %q", res.stdout, want)
	}
}

const badJobs = `- job: ""
  status: Done
  due: 2024-11-20
  value: ""
- job: Update press kit
  status: Complete
  due: 30-10-2024
  value: "3,500,000"
`

func TestValidateReportsWarnings(t *testing.T) {
	path := writeFile(t, "jobs.yaml", badJobs)
	res := runApp(t, nil, "validate", "--file", path, "-o", "json")
	if res.err != nil {
		t.Fatalf("validate failed: %v", res.err)
	}

	var report validationReport
	if err := json.Unmarshal([]byte(res.stdout), &report); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, res.stdout)
	}
	if report.Valid {
		t.Error("report should be invalid")
	}
	if report.Rows != 2 || report.Columns != 10 {
		t.Errorf("rows/columns = %d/%d", report.Rows, report.Columns)
	}
	fields := map[string]bool{}
	for _, w := range report.Warnings {
		if w.Row != 0 {
			t.Errorf("unexpected warning on row %d: %+v", w.Row, w)
		}
		fields[w.Field] = true
	}
	for _, f := range []string{"job", "status", "due"} {
		if !fields[f] {
			t.Errorf("missing warning for %s in %+v", f, report.Warnings)
		}
	}
}

func TestValidateStrict(t *testing.T) {
	path := writeFile(t, "jobs.yaml", badJobs)
	res := runApp(t, nil, "validate", "--file", path, "--strict", "-o", "text")
	if res.err == nil {
		t.Fatal("expected strict validation to fail")
	}
	if ExitCode(res.err) != ExitUser {
		t.Errorf("ExitCode = %d, want %d", ExitCode(res.err), ExitUser)
	}
	if !strings.Contains(res.stdout, "warning(s):") {
		t.Errorf("stdout = %q, want the warning list", res.stdout)
	}
	if !strings.Contains(res.stderr, "drop --strict") {
		t.Errorf("stderr = %q", res.stderr)
	}
}

func TestValidateNumericScalarsBuild(t *testing.T) {
	path := writeFile(t, "jobs.json", `[{"job": "x", "url": 5}]`)
	res := runApp(t, nil, "validate", "--file", path, "-o", "text")
	if res.err != nil {
		t.Fatalf("numeric url should build as text: %v", res.err)
	}
	if !strings.Contains(res.stdout, "built 1 rows") {
		t.Errorf("stdout = %q", res.stdout)
	}
}
