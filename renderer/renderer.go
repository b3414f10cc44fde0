package renderer

import (
	"fmt"
	"io/fs"
	"math"
	"strings"
	"text/template"

	"github.com/etnz/budget"
)

// BarWidth is the number of cells of a full chart bar.
const BarWidth = 20

var funcs = template.FuncMap{
	"bar":  bar,
	"cell": cell,
}

// RenderSummary renders the summary report to a markdown string.
func RenderSummary(s *budget.SummaryReport) string {
	partials := map[string]string{
		"summary_title":  "summary_title.md",
		"summary_totals": "summary_totals.md",
	}
	return renderTemplate("summary", "summary.md", partials, s)
}

// RenderCategoryBreakdown renders the expenses per category, with a bar
// chart of their shares, to a markdown string.
func RenderCategoryBreakdown(b *budget.CategoryBreakdown) string {
	partials := map[string]string{
		"categories_title": "categories_title.md",
		"categories_table": "categories_table.md",
	}
	return renderTemplate("categories", "categories.md", partials, b)
}

// RenderEntries renders the income and expense tables, each row carrying the
// position to use for removal.
func RenderEntries(e *Entries) string {
	partials := map[string]string{
		"entries_income":   "entries_income.md",
		"entries_expenses": "entries_expenses.md",
	}
	return renderTemplate("entries", "entries.md", partials, e)
}

// RenderCategoryList renders the configured category set.
func RenderCategoryList(c *budget.Categories) string {
	return renderTemplate("category_list", "category_list.md", nil, c.List())
}

// RenderReport renders the full budget report used for exports.
func RenderReport(r *Report) string {
	partials := map[string]string{
		"report_title":     "report_title.md",
		"report_chart":     "report_chart.md",
		"summary_totals":   "summary_totals.md",
		"categories_table": "categories_table.md",
	}
	return renderTemplate("report", "report.md", partials, r)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}

// bar draws p, a percentage, as a text bar of at most BarWidth cells.
func bar(p budget.Percent) string {
	n := int(math.Round(float64(p) / 100 * BarWidth))
	n = max(0, min(n, BarWidth))
	return strings.Repeat("█", n) + strings.Repeat("░", BarWidth-n)
}

// cell escapes a value for a markdown table cell.
func cell(v any) string {
	s := fmt.Sprint(v)
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
