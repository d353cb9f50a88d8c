package main

import (
	"bytes"
	"fmt"
	"os"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// documentView is the full payload for viewing one document.
type documentView struct {
	Content  string     `json:"content"`
	HTML     string     `json:"html"`
	TOC      []tocEntry `json:"toc"`
	Info     FileRecord `json:"info"`
	Encoding string     `json:"encoding"`
}

// newMarkdownRenderer creates a configured goldmark renderer. GFM covers
// tables, strikethrough, and task lists; fenced code blocks are core
// CommonMark, and CommonMark emphasis rules already leave intra-word
// underscores alone. Auto heading IDs are enabled so headings carry ids; the
// actual id values come from the SlugStrategy wired in per conversion.
func newMarkdownRenderer() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
}

// slugIDs plugs a SlugStrategy into goldmark's heading-ID generation. Using
// the same strategy for the TOC and the renderer keeps anchors and heading
// ids identical by construction, so no post-render injection pass is needed.
// Like the TOC builder it does not deduplicate: identical titles get
// identical ids.
type slugIDs struct {
	slugger SlugStrategy
}

func (s *slugIDs) Generate(value []byte, kind ast.NodeKind) []byte {
	return []byte(s.slugger.Slug(string(value)))
}

func (s *slugIDs) Put(value []byte) {}

// renderMarkdown converts markdown text to HTML with heading ids generated
// by the given strategy.
func renderMarkdown(md goldmark.Markdown, slugger SlugStrategy, content string) (string, error) {
	ctx := parser.NewContext(parser.WithIDs(&slugIDs{slugger: slugger}))
	var buf bytes.Buffer
	if err := md.Convert([]byte(content), &buf, parser.WithContext(ctx)); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// renderDocument composes the document view: raw content through the
// encoding chain, TOC extraction, HTML rendering, and file metadata. Any
// failure is returned as an error value for the caller to surface as data;
// nothing here panics on bad input.
func renderDocument(path string, cfg Config, md goldmark.Markdown, slugger SlugStrategy) (documentView, error) {
	if _, err := os.Stat(path); err != nil {
		return documentView{}, fmt.Errorf("file not found: %s", path)
	}

	content, encodingUsed, err := readTextFile(path)
	if err != nil {
		return documentView{}, err
	}

	toc := buildTOC(content, slugger)
	if toc == nil {
		toc = []tocEntry{}
	}

	htmlContent, err := renderMarkdown(md, slugger, content)
	if err != nil {
		return documentView{}, err
	}

	info, err := fileInfo(path, cfg)
	if err != nil {
		return documentView{}, fmt.Errorf("stat %s: %w", path, err)
	}

	return documentView{
		Content:  content,
		HTML:     htmlContent,
		TOC:      toc,
		Info:     info,
		Encoding: encodingUsed,
	}, nil
}
