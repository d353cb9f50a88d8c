package main

import (
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// FileRecord is the per-file metadata produced on each indexing pass. Records
// are built fresh for every request and discarded with the response; nothing
// is cached between requests.
type FileRecord struct {
	Name          string        `json:"name"`
	Path          string        `json:"path"`
	RelativePath  string        `json:"relative_path"`
	Size          int64         `json:"size"`
	SizeKB        float64       `json:"size_kb"`
	Modified      time.Time     `json:"modified"`
	ModifiedHuman string        `json:"modified_human"`
	Priority      int           `json:"priority"`
	Preview       string        `json:"preview"`
	Project       string        `json:"project,omitempty"`
	Matches       []SearchMatch `json:"matches,omitempty"`
	TotalMatches  int           `json:"total_matches,omitempty"`
}

// fileInfo builds the record for a single file.
func fileInfo(path string, cfg Config) (FileRecord, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileRecord{}, err
	}
	name := filepath.Base(path)
	return FileRecord{
		Name:          name,
		Path:          path,
		RelativePath:  grandparentRelative(path),
		Size:          info.Size(),
		SizeKB:        math.Round(float64(info.Size())/1024*100) / 100,
		Modified:      info.ModTime(),
		ModifiedHuman: info.ModTime().Format("2006/01/02 15:04"),
		Priority:      filePriority(name, cfg),
		Preview:       filePreview(path, previewLineCount),
	}, nil
}

// grandparentRelative renders the path relative to its grandparent directory
// (last directory component plus file name), falling back to the bare name.
func grandparentRelative(path string) string {
	grandparent := filepath.Dir(filepath.Dir(path))
	if _, err := os.Stat(grandparent); err != nil {
		return filepath.Base(path)
	}
	if rel, err := filepath.Rel(grandparent, path); err == nil {
		return rel
	}
	return filepath.Base(path)
}

// listMarkdownFiles walks a project directory for .md files (case-sensitive
// extension) and returns their records. A missing root yields an empty
// result, not an error. Excluded directory names are matched as exact path
// segments; the walk skips those subtrees entirely. Per-file stat or read
// problems drop that file and never abort the pass.
//
// Sort order reproduces the long-standing tuple-reverse sort: priority
// DESCENDING, then modification time descending. Numerically lower priority
// values mean more important, so "normal, newest" files float above
// "important, oldest" ones. Flipping the polarity is a pending product
// decision; see TestListMarkdownFilesSortOrder which pins the current order.
func listMarkdownFiles(root string, recursive bool, cfg Config) []FileRecord {
	if _, err := os.Stat(root); err != nil {
		return []FileRecord{}
	}

	var paths []string
	if recursive {
		paths = walkMarkdownFiles(root, cfg.ExcludedDirs)
	} else {
		paths = directMarkdownFiles(root)
	}

	records := make([]FileRecord, 0, len(paths))
	for _, p := range paths {
		rec, err := fileInfo(p, cfg)
		if err != nil {
			continue
		}
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Priority != records[j].Priority {
			return records[i].Priority > records[j].Priority
		}
		return records[i].Modified.After(records[j].Modified)
	})
	return records
}

// walkMarkdownFiles collects .md paths below root, pruning excluded
// directories. Walk errors on individual entries are skipped.
func walkMarkdownFiles(root string, excludedDirs []string) []string {
	excluded := make(map[string]bool, len(excludedDirs))
	for _, d := range excludedDirs {
		excluded[d] = true
	}

	var paths []string
	filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != root && excluded[info.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(info.Name(), ".md") {
			paths = append(paths, path)
		}
		return nil
	})
	return paths
}

func directMarkdownFiles(root string) []string {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		paths = append(paths, filepath.Join(root, entry.Name()))
	}
	return paths
}

// recentFiles aggregates every configured project recursively, tags each
// record with its project name, and returns the newest files first, capped
// at the configured count.
func recentFiles(cfg Config) []FileRecord {
	all := []FileRecord{}
	for _, project := range cfg.Projects {
		files := listMarkdownFiles(project.Path, true, cfg)
		for i := range files {
			files[i].Project = project.Name
		}
		all = append(all, files...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Modified.After(all[j].Modified)
	})

	count := cfg.RecentFilesCount
	if count < 0 {
		count = 0
	}
	if count > len(all) {
		count = len(all)
	}
	return all[:count]
}
