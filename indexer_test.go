package main

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestListMarkdownFilesMissingPath(t *testing.T) {
	files := listMarkdownFiles(filepath.Join(t.TempDir(), "does-not-exist"), true, defaultConfig())
	if files == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(files) != 0 {
		t.Errorf("expected no files, got %d", len(files))
	}
}

func TestListMarkdownFilesRecursive(t *testing.T) {
	dir := t.TempDir()
	createTestMarkdownFile(t, dir, "top.md", "top")
	createTestMarkdownFile(t, dir, "docs/nested.md", "nested")
	createTestMarkdownFile(t, dir, "docs/deep/deeper.md", "deeper")
	createTestMarkdownFile(t, dir, "node_modules/dep.md", "excluded")
	createTestMarkdownFile(t, dir, "docs/node_modules/dep2.md", "excluded nested")
	createTestMarkdownFile(t, dir, "notes.txt.md.bak", "not markdown")
	createTestMarkdownFile(t, dir, "UPPER.MD", "wrong extension case")

	files := listMarkdownFiles(dir, true, defaultConfig())

	names := recordNames(files)
	wantPresent := []string{"top.md", "nested.md", "deeper.md"}
	for _, want := range wantPresent {
		found := false
		for _, name := range names {
			if name == want {
				found = true
			}
		}
		if !found {
			t.Errorf("expected %s in results %v", want, names)
		}
	}
	if len(files) != len(wantPresent) {
		t.Errorf("expected %d files, got %d: %v", len(wantPresent), len(files), names)
	}
}

func TestListMarkdownFilesNonRecursive(t *testing.T) {
	dir := t.TempDir()
	createTestMarkdownFile(t, dir, "top.md", "top")
	createTestMarkdownFile(t, dir, "docs/nested.md", "nested")

	files := listMarkdownFiles(dir, false, defaultConfig())
	if got := recordNames(files); !reflect.DeepEqual(got, []string{"top.md"}) {
		t.Errorf("non-recursive listing = %v, want [top.md]", got)
	}
}

// Excluded directory names match exact path segments only: a directory whose
// name merely contains an excluded name is still walked.
func TestListMarkdownFilesExclusionIsExactSegment(t *testing.T) {
	dir := t.TempDir()
	createTestMarkdownFile(t, dir, "my_node_modules_notes/keep.md", "keep")
	createTestMarkdownFile(t, dir, "node_modules/drop.md", "drop")

	files := listMarkdownFiles(dir, true, defaultConfig())
	names := recordNames(files)
	if !reflect.DeepEqual(names, []string{"keep.md"}) {
		t.Errorf("exclusion results = %v, want [keep.md]", names)
	}
}

// Pins the literal tuple-reverse sort: priority DESCENDING, then modified
// descending. README.md (priority 2, older) sorts BELOW NOTES.md (priority
// 10, newer) because 10 > 2. This inverts the "most important first" reading
// of the priority ranks and is kept deliberately pending a product decision.
func TestListMarkdownFilesSortOrder(t *testing.T) {
	dir := t.TempDir()
	t1 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	t2 := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)

	readme := createTestMarkdownFile(t, dir, "README.md", "readme")
	notes := createTestMarkdownFile(t, dir, "NOTES.md", "notes")
	setModTime(t, readme, t1)
	setModTime(t, notes, t2)

	files := listMarkdownFiles(dir, true, defaultConfig())
	if got := recordNames(files); !reflect.DeepEqual(got, []string{"NOTES.md", "README.md"}) {
		t.Errorf("sort order = %v, want [NOTES.md README.md]", got)
	}

	// Within equal priority, newest first.
	older := createTestMarkdownFile(t, dir, "zebra.md", "z")
	newer := createTestMarkdownFile(t, dir, "alpha.md", "a")
	setModTime(t, older, t1)
	setModTime(t, newer, t2)

	files = listMarkdownFiles(dir, true, defaultConfig())
	got := recordNames(files)
	want := []string{"alpha.md", "zebra.md", "NOTES.md", "README.md"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sort order = %v, want %v", got, want)
	}
}

func TestFileInfo(t *testing.T) {
	dir := t.TempDir()
	mtime := time.Date(2024, 5, 20, 14, 30, 0, 0, time.Local)
	path := createTestMarkdownFile(t, dir, "sub/WEEKLY_REPORT.md", "# Report\n\nAll systems nominal.\n")
	setModTime(t, path, mtime)

	rec, err := fileInfo(path, defaultConfig())
	if err != nil {
		t.Fatalf("fileInfo failed: %v", err)
	}

	if rec.Name != "WEEKLY_REPORT.md" {
		t.Errorf("Name = %q", rec.Name)
	}
	if rec.Path != path {
		t.Errorf("Path = %q, want %q", rec.Path, path)
	}
	if rec.RelativePath != filepath.Join("sub", "WEEKLY_REPORT.md") {
		t.Errorf("RelativePath = %q", rec.RelativePath)
	}
	if rec.Priority != priorityReport {
		t.Errorf("Priority = %d, want %d", rec.Priority, priorityReport)
	}
	if rec.Preview != "All systems nominal." {
		t.Errorf("Preview = %q", rec.Preview)
	}
	if rec.Size == 0 || rec.SizeKB == 0 {
		t.Errorf("Size = %d, SizeKB = %v", rec.Size, rec.SizeKB)
	}
	if !rec.Modified.Equal(mtime) {
		t.Errorf("Modified = %v, want %v", rec.Modified, mtime)
	}
	if rec.ModifiedHuman != "2024/05/20 14:30" {
		t.Errorf("ModifiedHuman = %q", rec.ModifiedHuman)
	}
}

func TestRecentFiles(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()

	oldFile := createTestMarkdownFile(t, dirA, "old.md", "old")
	midFile := createTestMarkdownFile(t, dirB, "mid.md", "mid")
	newFile := createTestMarkdownFile(t, dirA, "new.md", "new")
	setModTime(t, oldFile, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	setModTime(t, midFile, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	setModTime(t, newFile, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	cfg := testConfig(dirA, dirB)
	cfg.RecentFilesCount = 2

	recent := recentFiles(cfg)
	if got := recordNames(recent); !reflect.DeepEqual(got, []string{"new.md", "mid.md"}) {
		t.Fatalf("recentFiles = %v, want [new.md mid.md]", got)
	}
	if recent[0].Project != "project-a" || recent[1].Project != "project-b" {
		t.Errorf("project tags = %q, %q", recent[0].Project, recent[1].Project)
	}
}

func TestRecentFilesMissingProject(t *testing.T) {
	dir := t.TempDir()
	createTestMarkdownFile(t, dir, "only.md", "only")

	cfg := testConfig(dir, filepath.Join(dir, "ghost-project"))
	recent := recentFiles(cfg)
	if got := recordNames(recent); !reflect.DeepEqual(got, []string{"only.md"}) {
		t.Errorf("recentFiles = %v, want [only.md]", got)
	}
}
