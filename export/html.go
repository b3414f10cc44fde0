// Package export turns rendered budget reports into standalone documents:
// HTML pages and PDF files.
package export

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/etnz/budget/date"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; margin: 2em; color: #222; }
h1 { border-bottom: 2px solid #444; padding-bottom: .2em; }
table { border-collapse: collapse; margin: 1em 0; }
th, td { border: 1px solid #ccc; padding: .3em .8em; }
th { background: #eee; }
code { font-family: monospace; color: #2a6; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// HTML converts a markdown document to a standalone HTML page.
func HTML(title, md string) ([]byte, error) {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(md), &body); err != nil {
		return nil, fmt.Errorf("convert markdown: %w", err)
	}

	var out bytes.Buffer
	err := page.Execute(&out, struct {
		Title string
		Body  template.HTML
	}{title, template.HTML(body.String())})
	if err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return out.Bytes(), nil
}

// FileName returns the default name of a report on r generated at t, e.g.
// "budget_report_20240105_100000.pdf", or "budget_report_2024-Q1_20240105_100000.pdf"
// when the report is restricted to a range.
func FileName(t time.Time, r date.Range, ext string) string {
	if r.IsZero() {
		return fmt.Sprintf("budget_report_%s.%s", t.Format("20060102_150405"), ext)
	}
	return fmt.Sprintf("budget_report_%s_%s.%s", r.Identifier(), t.Format("20060102_150405"), ext)
}
