package main

import (
	"crypto/md5"
	"encoding/hex"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// tocEntry is one heading in a document's table of contents.
type tocEntry struct {
	Level  int    `json:"level"`
	Title  string `json:"title"`
	Anchor string `json:"anchor"`
}

// SlugStrategy turns a heading title into a URL-fragment-safe anchor. The
// markdown renderer is configured with the same strategy (see render.go), so
// TOC anchors and the ids emitted in the HTML can never diverge.
type SlugStrategy interface {
	Slug(title string) string
}

var (
	headingPattern = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	nonWordChars   = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	separatorRuns  = regexp.MustCompile(`[-\s]+`)
)

// defaultSlugger implements the anchor scheme used throughout: lowercase,
// NFKD-decompose, drop everything that is not a word character, whitespace,
// or hyphen, then collapse separator runs into single hyphens. Titles that
// strip down to nothing (purely symbolic headings) fall back to a stable
// hash-derived anchor.
type defaultSlugger struct{}

func (defaultSlugger) Slug(title string) string {
	anchor := norm.NFKD.String(strings.ToLower(title))
	anchor = nonWordChars.ReplaceAllString(anchor, "")
	anchor = separatorRuns.ReplaceAllString(anchor, "-")
	anchor = strings.Trim(anchor, "-")
	if anchor == "" {
		sum := md5.Sum([]byte(title))
		anchor = "heading-" + hex.EncodeToString(sum[:4])
	}
	return anchor
}

// buildTOC scans content line by line for ATX headings (1-6 '#' followed by
// whitespace and text) and returns entries in document order. Two headings
// with the same title produce the same anchor; duplicates are intentionally
// not suffixed, so links resolve to the first occurrence.
func buildTOC(content string, slugger SlugStrategy) []tocEntry {
	var toc []tocEntry
	for _, line := range strings.Split(content, "\n") {
		m := headingPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		toc = append(toc, tocEntry{
			Level:  len(m[1]),
			Title:  m[2],
			Anchor: slugger.Slug(m[2]),
		})
	}
	return toc
}
