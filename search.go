package main

import (
	"os"
	"strings"
)

// SearchMatch is a single matching line inside a file.
type SearchMatch struct {
	LineNumber int    `json:"line_number"`
	Line       string `json:"line"`
}

const (
	searchMaxMatchesPerFile = 5
	searchMatchMaxRunes     = 100
)

// searchFiles scans one project tree (or every configured project when
// projectPath is empty) for files whose content contains the query,
// case-insensitively. An empty query returns an empty result immediately.
// Files that cannot be read are silently dropped; the scan never aborts.
// Result order follows directory traversal order, not relevance.
func searchFiles(query, projectPath string, cfg Config) []FileRecord {
	results := []FileRecord{}
	if query == "" {
		return results
	}
	queryLower := strings.ToLower(query)

	var roots []string
	if projectPath != "" {
		roots = []string{projectPath}
	} else {
		for _, project := range cfg.Projects {
			roots = append(roots, project.Path)
		}
	}

	for _, root := range roots {
		if _, err := os.Stat(root); err != nil {
			continue
		}
		for _, path := range walkMarkdownFiles(root, cfg.ExcludedDirs) {
			if rec, ok := searchFile(path, queryLower, cfg); ok {
				results = append(results, rec)
			}
		}
	}
	return results
}

// searchFile reports whether the file matches and, if so, returns its record
// augmented with up to 5 line matches and the total match count.
func searchFile(path, queryLower string, cfg Config) (FileRecord, bool) {
	content, _, err := readTextFile(path)
	if err != nil {
		return FileRecord{}, false
	}
	if !strings.Contains(strings.ToLower(content), queryLower) {
		return FileRecord{}, false
	}

	var matches []SearchMatch
	total := 0
	for i, line := range strings.Split(content, "\n") {
		if !strings.Contains(strings.ToLower(line), queryLower) {
			continue
		}
		total++
		if len(matches) < searchMaxMatchesPerFile {
			matches = append(matches, SearchMatch{
				LineNumber: i + 1,
				Line:       truncateRunes(strings.TrimSpace(line), searchMatchMaxRunes),
			})
		}
	}
	if total == 0 {
		// Query appears only across a line boundary; no line-level match.
		return FileRecord{}, false
	}

	rec, err := fileInfo(path, cfg)
	if err != nil {
		return FileRecord{}, false
	}
	rec.Matches = matches
	rec.TotalMatches = total
	return rec, true
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
