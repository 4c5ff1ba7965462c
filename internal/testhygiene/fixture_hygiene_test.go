package testhygiene

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	// Prefixes of live credentials that must never land in a fixture.
	tokenPattern = regexp.MustCompile(`\b(ghp_[A-Za-z0-9]{20,}|xox[bp]-[A-Za-z0-9-]{10,}|sk-[A-Za-z0-9]{20,}|AKIA[A-Z0-9]{16})\b`)
	// Datasets embedded in the binary count as fixtures too.
	extraFixtures = map[string]struct{}{
		"internal/jobs/sample.yaml": {},
	}
)

func TestFixtureHygiene_NoIdentifyingContent(t *testing.T) {
	repoRoot := findRepoRoot(t)

	var findings []string
	err := filepath.WalkDir(repoRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel, err := filepath.Rel(repoRoot, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			switch filepath.Base(path) {
			case ".git", ".idea", ".vscode", "_examples":
				return filepath.SkipDir
			}
			return nil
		}

		if !shouldScanFixtureFile(rel) {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		content := string(raw)

		for _, email := range emailPattern.FindAllString(content, -1) {
			if !isAllowedFixtureEmailDomain(emailDomain(email)) {
				findings = append(findings, fmt.Sprintf("%s: contains non-synthetic email %q", rel, email))
			}
		}
		for _, token := range tokenPattern.FindAllString(content, -1) {
			findings = append(findings, fmt.Sprintf("%s: contains credential-like token %q", rel, token[:6]+"..."))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("fixture hygiene scan failed: %v", err)
	}

	if len(findings) > 0 {
		t.Fatalf("fixture hygiene violations:\n%s", strings.Join(findings, "\n"))
	}
}

func TestTokenPattern(t *testing.T) {
	if !tokenPattern.MatchString("key: ghp_" + strings.Repeat("a", 24)) {
		t.Error("expected a GitHub token to match")
	}
	if tokenPattern.MatchString("status: Need to start") {
		t.Error("plain text should not match")
	}
}

func shouldScanFixtureFile(rel string) bool {
	if strings.HasPrefix(rel, "internal/testhygiene/") {
		return false
	}
	if _, ok := extraFixtures[rel]; ok {
		return true
	}
	return strings.HasSuffix(rel, "_test.go") || strings.Contains(rel, "/testdata/")
}

func findRepoRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("could not find repo root from %q", dir)
		}
		dir = parent
	}
}

func emailDomain(email string) string {
	parts := strings.SplitN(strings.ToLower(email), "@", 2)
	if len(parts) != 2 {
		return ""
	}
	return parts[1]
}

func isAllowedFixtureEmailDomain(domain string) bool {
	switch domain {
	case "example.com", "example.org", "example.net", "example.test", "example.invalid", "localhost":
		return true
	default:
		return strings.HasSuffix(domain, ".example.com")
	}
}
