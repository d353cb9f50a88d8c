package main

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Priority ranks assigned by filePriority. Lower means more important.
const (
	priorityImportant = 1
	priorityReadme    = 2
	priorityReport    = 3
	priorityPlan      = 4
	prioritySummary   = 5
	priorityNormal    = 10
)

// filePriority maps a filename to its priority rank. Rules are evaluated in
// order, first match wins, all comparisons case-insensitive.
//
// The legacy "important" pattern test is a deliberate quirk carried over from
// the previous implementation: each pattern has its '*' characters stripped
// and the remainder is checked verbatim as a substring of the UPPERCASED
// filename. The pattern itself is not uppercased, so a pattern with a
// lowercase suffix like "*_REPORT.md" can only ever match on its uppercase
// part. Existing configs depend on this, so the substring mode stays the
// default; StrictPatternGlobs opts into real glob matching.
func filePriority(filename string, cfg Config) int {
	upper := strings.ToUpper(filename)

	for _, pattern := range cfg.FilePatterns.Important {
		if matchesImportant(upper, pattern, cfg.StrictPatternGlobs) {
			return priorityImportant
		}
	}

	switch {
	case upper == "README.MD":
		return priorityReadme
	case strings.Contains(upper, "REPORT"):
		return priorityReport
	case strings.Contains(upper, "PLAN"):
		return priorityPlan
	case strings.Contains(upper, "SUMMARY"):
		return prioritySummary
	}
	return priorityNormal
}

func matchesImportant(upper, pattern string, strict bool) bool {
	if strict {
		matched, err := doublestar.Match(strings.ToUpper(pattern), upper)
		return err == nil && matched
	}
	stripped := strings.ReplaceAll(pattern, "*", "")
	return stripped != "" && strings.Contains(upper, stripped)
}
