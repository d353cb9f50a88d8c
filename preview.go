package main

import (
	"fmt"
	"strings"
)

const (
	previewLineCount = 3
	previewMaxRunes  = 200
)

// filePreview derives a short plain-text summary from a document's leading
// content: up to lineCount non-empty, non-heading lines joined with spaces
// and capped at 200 characters. It reads a few extra lines so documents that
// open with headings still yield a preview. Failures produce a descriptive
// string instead of an error so one unreadable file never aborts an indexing
// pass.
func filePreview(path string, lineCount int) string {
	content, _, err := readTextFile(path)
	if err != nil {
		return fmt.Sprintf("preview unavailable: %v", err)
	}

	lines := strings.Split(content, "\n")
	if len(lines) > lineCount+5 {
		lines = lines[:lineCount+5]
	}

	var kept []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(line, "#") {
			continue
		}
		kept = append(kept, trimmed)
		if len(kept) >= lineCount {
			break
		}
	}

	preview := strings.Join(kept, " ")
	if runes := []rune(preview); len(runes) > previewMaxRunes {
		preview = string(runes[:previewMaxRunes]) + "..."
	}
	return preview
}
