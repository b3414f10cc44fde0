package cmd

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/etnz/budget"
	"github.com/etnz/budget/export"
	"github.com/etnz/budget/renderer"
	"github.com/google/subcommands"
)

type exportCmd struct {
	format  string
	output  string
	title   string
	period  string
	start   string
	end     string
	timeout time.Duration
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the budget report to PDF or HTML" }
func (*exportCmd) Usage() string {
	return `bgt export [-f pdf|html|md] [-o <file>] [-p <period> | -s <start_date>] [-d <end_date>]

  Writes the budget report (summary, income versus expenses chart, expenses
  by category) to a file. PDF conversion requires a Gotenberg server, see
  ` + EnvPrefix + `_GOTENBERG_URL. The default file name is
  budget_report_YYYYMMDD_HHMMSS.<format>, with the range identifier
  (2024-03, 2024-Q1, 2024-W10...) before the timestamp when a range is
  selected.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "f", "pdf", "Output format: pdf, html or md.")
	f.StringVar(&c.output, "o", "", "Output file. Defaults to a timestamped name.")
	f.StringVar(&c.title, "title", "Personal Budget Report", "Title of the report.")
	f.StringVar(&c.period, "p", "", "Predefined period (day, week, month, quarter, year).")
	f.StringVar(&c.start, "s", "", "The start date for a custom range. Overrides -p.")
	f.StringVar(&c.end, "d", "", "The end date for the range.")
	f.DurationVar(&c.timeout, "timeout", 30*time.Second, "Timeout of the PDF conversion.")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.format != "pdf" && c.format != "html" && c.format != "md" {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", c.format)
		return subcommands.ExitUsageError
	}
	r, err := parseRange(c.period, c.start, c.end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	cfg, ok := loadConfig()
	if !ok {
		return subcommands.ExitFailure
	}
	l, err := OpenLedger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	now := time.Now()
	report := renderer.NewReport(c.title,
		budget.NewSummaryReport(l, budget.Within(r), budget.At(now)),
		budget.NewCategoryBreakdown(l, budget.Within(r), budget.At(now)),
	)
	content, err := c.render(ctx, cfg, renderer.RenderReport(report))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting report: %v\n", err)
		return subcommands.ExitFailure
	}

	output := c.output
	if output == "" {
		output = export.FileName(now, r, c.format)
	}
	if err := os.WriteFile(output, content, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", output, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Report exported to %s\n", output)
	return subcommands.ExitSuccess
}

func (c *exportCmd) render(ctx context.Context, cfg *Config, md string) ([]byte, error) {
	if c.format == "md" {
		return []byte(md), nil
	}
	html, err := export.HTML(c.title, md)
	if err != nil || c.format == "html" {
		return html, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	slog.Debug("converting report to pdf", "gotenberg", cfg.GotenbergURL)
	pdf := &export.PDFExporter{Endpoint: cfg.GotenbergURL, Client: http.DefaultClient}
	return pdf.Render(ctx, html)
}
