package report_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Egor213/LogiScan/internal/domain"
	"github.com/Egor213/LogiScan/internal/report"
	"github.com/Egor213/LogiScan/internal/service"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleLog = strings.Join([]string{
	`1.2.3.4 - - [10/Oct/2023:13:55:36] "GET /login HTTP/1.1" 401 100`,
	`1.2.3.4 - - [10/Oct/2023:13:55:37] "GET /login HTTP/1.1" 401 100`,
	`1.2.3.4 - - [10/Oct/2023:13:55:38] "GET /login HTTP/1.1" 401 100`,
	`malformed garbage`,
	`5.6.7.8 - - [10/Oct/2023:13:56:00] "POST /home HTTP/1.1" 200 512`,
	`5.6.7.8 - - [10/Oct/2023:13:56:01] "GET /admin HTTP/1.1" 403 12`,
	`9.9.9.9 - - [10/Oct/2023:13:56:02] "GET /search?q=1;DROP HTTP/1.1" 500 0`,
	`9.9.9.9 - - [10/Oct/2023:13:56:03] "GET /home HTTP/1.1" 304 0`,
}, "\n")

func analyze(t *testing.T, input string) domain.Analysis {
	t.Helper()
	logger, _ := test.NewNullLogger()
	a := service.NewAnalyzer(service.WithLogger(logger))
	require.NoError(t, a.Ingest(context.Background(), strings.NewReader(input)))
	res, err := a.Result()
	require.NoError(t, err)
	return res
}

func render(t *testing.T, f report.RenderFunc, a domain.Analysis) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, f(&buf, a))
	return buf.String()
}

func TestWriteSummary(t *testing.T) {
	want := `SERVER LOG SUMMARY
==================================================

Total Requests: 7
Unique IP Addresses: 3

HTTP Methods:
GET: 6
POST: 1

Top 5 URLs:
/login: 3
/home: 2
/admin: 1
/search?q=1;DROP: 1

Status Codes:
200: 1
304: 1
401: 3
403: 1
500: 1
`
	assert.Equal(t, want, render(t, report.WriteSummary, analyze(t, sampleLog)))
}

func TestWriteSecurity(t *testing.T) {
	want := `SECURITY INCIDENTS
==================================================

Total Incidents: 3

Brute force attempt suspected from 1.2.3.4
Forbidden access attempt: 5.6.7.8 -> /admin
Possible SQL injection attempt from 9.9.9.9
`
	assert.Equal(t, want, render(t, report.WriteSecurity, analyze(t, sampleLog)))
}

func TestWriteErrors(t *testing.T) {
	want := `HTTP ERRORS
==================================================

Total Errors: 5

[10/Oct/2023:13:55:36] 1.2.3.4 - GET /login - Status 401
[10/Oct/2023:13:55:37] 1.2.3.4 - GET /login - Status 401
[10/Oct/2023:13:55:38] 1.2.3.4 - GET /login - Status 401
[10/Oct/2023:13:56:01] 5.6.7.8 - GET /admin - Status 403
[10/Oct/2023:13:56:02] 9.9.9.9 - GET /search?q=1;DROP - Status 500
`
	assert.Equal(t, want, render(t, report.WriteErrors, analyze(t, sampleLog)))
}

func TestReports_Empty(t *testing.T) {
	a := analyze(t, "")

	assert.Equal(t, "SECURITY INCIDENTS\n"+strings.Repeat("=", 50)+"\n\nTotal Incidents: 0\n\n",
		render(t, report.WriteSecurity, a))
	assert.Contains(t, render(t, report.WriteSummary, a), "Total Requests: 0\nUnique IP Addresses: 0\n")
}

func TestReports_TopURLsLimitedToFive(t *testing.T) {
	var lines []string
	for _, u := range []string{"/a", "/b", "/c", "/d", "/e", "/f", "/f"} {
		lines = append(lines, `1.1.1.1 - - [t] "GET `+u+` HTTP/1.1" 200 1`)
	}

	out := render(t, report.WriteSummary, analyze(t, strings.Join(lines, "\n")))

	assert.Contains(t, out, "Top 5 URLs:\n/f: 2\n/a: 1\n/b: 1\n/c: 1\n/d: 1\n\nStatus Codes:")
	assert.NotContains(t, out, "/e: 1")
}

func TestReports_Deterministic(t *testing.T) {
	for _, k := range report.Kinds {
		f, ok := report.Renderer(k)
		require.True(t, ok)
		first := render(t, f, analyze(t, sampleLog))
		second := render(t, f, analyze(t, sampleLog))
		assert.Equal(t, first, second, string(k))
	}
}

func TestWriteAll(t *testing.T) {
	a := analyze(t, sampleLog)

	var buf bytes.Buffer
	require.NoError(t, report.WriteAll(&buf, a))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "SERVER LOG SUMMARY\n"))
	assert.Contains(t, out, "\n\nSECURITY INCIDENTS\n")
	assert.Contains(t, out, "\n\nHTTP ERRORS\n")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRenderers_PropagateWriteErrors(t *testing.T) {
	a := analyze(t, sampleLog)
	for _, k := range report.Kinds {
		f, _ := report.Renderer(k)
		assert.Error(t, f(failingWriter{}, a), string(k))
	}
}

func TestNewDocument(t *testing.T) {
	doc := report.NewDocument(analyze(t, sampleLog))

	assert.Equal(t, 7, doc.Summary.TotalRequests)
	assert.Equal(t, 3, doc.Summary.UniqueIPs)
	assert.Equal(t, []domain.Count[string]{{"GET", 6}, {"POST", 1}}, doc.Summary.Methods)
	assert.Len(t, doc.Summary.TopURLs, 4)
	assert.Equal(t, 200, doc.Summary.StatusCodes[0].Key)
	assert.Len(t, doc.Incidents, 3)
	assert.Len(t, doc.Errors, 5)
	assert.Equal(t, 1, doc.Lines.Malformed)

	empty := report.NewDocument(analyze(t, ""))
	assert.NotNil(t, empty.Incidents)
	assert.NotNil(t, empty.Errors)
}
