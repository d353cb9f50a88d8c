package main

import (
	"bytes"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/ianaindex"
)

// readTextFile loads a file and decodes it to a string, trying strategies in
// order: strict UTF-8, then the charset reported by statistical detection,
// then UTF-8 with invalid sequences replaced. Decoding itself never fails;
// the only error condition is I/O (e.g. the path does not exist). The second
// return value names the strategy that produced the content.
func readTextFile(path string) (string, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", path, err)
	}
	content, encodingUsed := decodeText(data)
	return content, encodingUsed, nil
}

// decodeText runs the fallback chain over raw bytes.
func decodeText(data []byte) (string, string) {
	if utf8.Valid(data) {
		return string(data), "utf-8"
	}

	if name := detectCharset(data); name != "" {
		if decoded, ok := decodeAs(data, name); ok {
			return decoded, name
		}
	}

	// Last resort: keep every valid sequence, replace the rest.
	return string(bytes.ToValidUTF8(data, []byte("�"))), "utf-8 (forced)"
}

// detectCharset returns the best-guess charset name, or "" if detection fails.
func detectCharset(data []byte) string {
	result, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || result == nil {
		return ""
	}
	return result.Charset
}

// decodeAs decodes data with the named charset. Returns false if the charset
// is unknown to the IANA registry or the decode does not round out cleanly.
func decodeAs(data []byte, name string) (string, bool) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return "", false
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil || !utf8.Valid(decoded) {
		return "", false
	}
	return string(decoded), true
}
