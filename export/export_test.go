package export

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/etnz/budget/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const report = `# Budget Report

| Category | Amount |
|:---|---:|
| Food & Dining | $200.00 |
`

func TestHTML(t *testing.T) {
	got, err := HTML("Budget <Report>", report)
	require.NoError(t, err)

	html := string(got)
	assert.Contains(t, html, "<title>Budget &lt;Report&gt;</title>")
	assert.Contains(t, html, "<h1>Budget Report</h1>")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "Food &amp; Dining</td>")
	assert.Contains(t, html, "$200.00</td>")
}

func TestFileName(t *testing.T) {
	at := time.Date(2024, time.January, 5, 10, 0, 7, 0, time.UTC)
	assert.Equal(t, "budget_report_20240105_100007.pdf", FileName(at, date.Range{}, "pdf"))
	assert.Equal(t, "budget_report_20240105_100007.html", FileName(at, date.Range{}, "html"))

	march := date.NewRange(date.New(2024, time.March, 12), date.Monthly)
	assert.Equal(t, "budget_report_2024-03_20240105_100007.pdf", FileName(at, march, "pdf"))
	custom := date.Between(date.New(2024, time.January, 2), date.New(2024, time.January, 9))
	assert.Equal(t, "budget_report_2024-01-02_2024-01-09_20240105_100007.md", FileName(at, custom, "md"))
}

func TestPDFExporter_Render_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forms/chromium/convert/html", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.Header.Get("Content-Type"), "multipart/form-data")

		require.NoError(t, r.ParseMultipartForm(10<<20))
		file, header, err := r.FormFile("files")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "index.html", header.Filename)

		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Contains(t, string(content), "Budget Report")
		assert.Equal(t, "0.5", r.FormValue("marginTop"))

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("MOCK-PDF-CONTENT"))
	}))
	defer srv.Close()

	exporter := &PDFExporter{Endpoint: srv.URL + "/", Client: srv.Client()}
	html, err := HTML("Budget Report", report)
	require.NoError(t, err)

	pdf, err := exporter.Render(context.Background(), html)
	require.NoError(t, err)
	assert.Equal(t, "MOCK-PDF-CONTENT", string(pdf))
}

func TestPDFExporter_Render_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("chromium crashed"))
	}))
	defer srv.Close()

	exporter := &PDFExporter{Endpoint: srv.URL, Client: srv.Client()}
	_, err := exporter.Render(context.Background(), []byte("<html></html>"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "chromium crashed")
}

func TestPDFExporter_Render_NotConfigured(t *testing.T) {
	var nilExporter *PDFExporter
	_, err := nilExporter.Render(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not initialized")

	_, err = (&PDFExporter{}).Render(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "endpoint required")
}

func TestPDFExporter_Render_Canceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach the server")
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := (&PDFExporter{Endpoint: srv.URL}).Render(ctx, []byte("<html></html>"))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
