package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// testConfig returns a config scoped to a temp project directory.
func testConfig(projectDirs ...string) Config {
	cfg := defaultConfig()
	cfg.Projects = nil
	for i, dir := range projectDirs {
		cfg.Projects = append(cfg.Projects, ProjectConfig{
			Name: "project-" + string(rune('a'+i)),
			Path: dir,
		})
	}
	return cfg
}

// createTestMarkdownFile creates a markdown file with specified content.
func createTestMarkdownFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create parent dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create test file %s: %v", path, err)
	}
	return path
}

// setModTime pins a file's modification time so sort-order tests are
// deterministic regardless of filesystem timestamp granularity.
func setModTime(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("failed to set mtime on %s: %v", path, err)
	}
}

// assertContains is a helper for checking string containment with clear error messages.
func assertContains(t *testing.T, s, substr string) {
	t.Helper()
	if !strings.Contains(s, substr) {
		t.Errorf("expected string to contain %q, got: %s", substr, s)
	}
}

// assertNotContains is a helper for checking string non-containment.
func assertNotContains(t *testing.T, s, substr string) {
	t.Helper()
	if strings.Contains(s, substr) {
		t.Errorf("expected string NOT to contain %q, but it does", substr)
	}
}

// assertStatusCode checks HTTP status code with clear error message.
func assertStatusCode(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("expected status code %d, got %d", want, got)
	}
}

// recordNames extracts the Name field from records, in order.
func recordNames(records []FileRecord) []string {
	names := make([]string, len(records))
	for i, rec := range records {
		names[i] = rec.Name
	}
	return names
}
