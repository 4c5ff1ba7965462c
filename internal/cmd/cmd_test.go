package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

type runResult struct {
	stdout string
	stderr string
	err    error
}

// runApp executes the CLI against a fresh config file with colour off.
func runApp(t *testing.T, stdin io.Reader, args ...string) runResult {
	t.Helper()
	return runWithConfig(t, filepath.Join(t.TempDir(), "config.yaml"), stdin, args...)
}

// runShared executes the CLI against an existing config file.
func runShared(t *testing.T, configPath string, args ...string) runResult {
	t.Helper()
	return runWithConfig(t, configPath, nil, args...)
}

func runWithConfig(t *testing.T, configPath string, stdin io.Reader, args ...string) runResult {
	t.Helper()
	t.Setenv("GRID_CONFIG", configPath)
	t.Setenv(EnvOutput, "")
	t.Setenv("NO_COLOR", "1")

	if stdin == nil {
		stdin = strings.NewReader("")
	}
	var out, errBuf bytes.Buffer
	app := &App{Stdout: &out, Stderr: &errBuf, Stdin: stdin, Version: "1.2.3", Commit: "abc123", BuildTime: "today"}
	err := app.Execute(context.Background(), args)
	return runResult{stdout: out.String(), stderr: errBuf.String(), err: err}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

// runWithRoot executes a prepared root command with the app's IO.
func runWithRoot(t *testing.T, app *App, root *cobra.Command, args ...string) error {
	t.Helper()
	t.Setenv("GRID_CONFIG", filepath.Join(t.TempDir(), "config.yaml"))
	var out, errBuf bytes.Buffer
	app.Stdout = &out
	app.Stderr = &errBuf
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}
