package main

import (
	"fmt"
	"html"
	"strings"
	"time"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"
)

// htmlToPDF is the boundary to the external HTML-to-PDF renderer. Tests
// substitute a stub; production uses the wkhtmltopdf-backed implementation.
type htmlToPDF interface {
	Render(htmlPage string) ([]byte, error)
}

// wkhtmlRenderer renders via the wkhtmltopdf binary (must be on PATH).
type wkhtmlRenderer struct{}

func (wkhtmlRenderer) Render(htmlPage string) ([]byte, error) {
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("init pdf generator: %w", err)
	}
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)
	pdfg.MarginTop.Set(20)
	pdfg.MarginBottom.Set(20)
	pdfg.MarginLeft.Set(20)
	pdfg.MarginRight.Set(20)

	page := wkhtmltopdf.NewPageReader(strings.NewReader(htmlPage))
	page.Encoding.Set("utf-8")
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return pdfg.Bytes(), nil
}

// pdfPageTemplate is the fixed page wrapper for PDF export. Placeholders:
// title, generation date, encoding label, rendered document HTML.
const pdfPageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<style>
body {
    font-family: 'Noto Sans CJK JP', 'Hiragino Sans', 'Yu Gothic', sans-serif;
    line-height: 1.8;
    color: #333;
}
h1 {
    color: #2c3e50;
    border-bottom: 2px solid #3498db;
    padding-bottom: 10px;
    margin: 30px 0 20px;
    page-break-after: avoid;
}
h2 {
    color: #34495e;
    border-bottom: 1px solid #bdc3c7;
    padding-bottom: 8px;
    margin: 25px 0 15px;
    page-break-after: avoid;
}
h3 {
    color: #34495e;
    margin: 20px 0 10px;
    page-break-after: avoid;
}
p { margin: 12px 0; text-align: justify; }
code {
    background: #f5f5f5;
    padding: 2px 6px;
    border-radius: 3px;
    font-family: 'Consolas', 'Monaco', monospace;
    font-size: 0.9em;
}
pre {
    background: #f8f8f8;
    border: 1px solid #ddd;
    padding: 15px;
    border-radius: 5px;
    overflow-x: auto;
    page-break-inside: avoid;
    margin: 15px 0;
}
pre code { background: none; padding: 0; }
table {
    border-collapse: collapse;
    width: 100%%;
    margin: 20px 0;
    page-break-inside: avoid;
}
th, td { border: 1px solid #ddd; padding: 10px 15px; text-align: left; }
th { background: #f8f9fa; font-weight: bold; }
tr:nth-child(even) { background: #f9f9f9; }
ul, ol { margin: 15px 0; padding-left: 30px; }
li { margin: 5px 0; }
blockquote {
    border-left: 4px solid #3498db;
    padding-left: 20px;
    margin: 20px 0;
    color: #666;
    font-style: italic;
}
a { color: #3498db; text-decoration: none; }
.header {
    text-align: center;
    margin-bottom: 40px;
    padding-bottom: 20px;
    border-bottom: 2px solid #3498db;
}
.header h1 { border: none; margin: 0; padding: 0; font-size: 2em; }
.metadata { margin-top: 10px; font-size: 0.9em; color: #666; }
.footer {
    margin-top: 50px;
    padding-top: 20px;
    border-top: 1px solid #ddd;
    text-align: center;
    font-size: 0.85em;
    color: #666;
}
</style>
</head>
<body>
<div class="header">
    <h1>%s</h1>
    <div class="metadata">
        Generated: %s<br>
        Encoding: %s
    </div>
</div>
%s
<div class="footer">
    Exported by mdbrowse
</div>
</body>
</html>
`

// pdfPageHTML wraps a rendered document in the fixed export template.
func pdfPageHTML(view documentView) string {
	return fmt.Sprintf(pdfPageTemplate,
		html.EscapeString(view.Info.Name),
		time.Now().Format("2006-01-02 15:04"),
		html.EscapeString(view.Encoding),
		view.HTML,
	)
}
