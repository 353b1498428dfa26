package report_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Egor213/LogiScan/internal/metrics"
	"github.com/Egor213/LogiScan/internal/report"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultFiles(dir string) report.Files {
	return report.Files{
		Dir:      dir,
		Summary:  report.DefaultSummaryFile,
		Security: report.DefaultSecurityFile,
		Errors:   report.DefaultErrorsFile,
	}
}

func TestFileWriter_WriteAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	logger, _ := test.NewNullLogger()
	files := defaultFiles(dir)

	w := report.NewFileWriter(files, logger, metrics.NewTestCounters())
	require.NoError(t, w.WriteAll(analyze(t, sampleLog)))

	for _, k := range report.Kinds {
		data, err := os.ReadFile(files.Path(k))
		require.NoError(t, err, string(k))
		assert.NotEmpty(t, data)
	}

	summary, err := os.ReadFile(filepath.Join(dir, report.DefaultSummaryFile))
	require.NoError(t, err)
	assert.Contains(t, string(summary), "Total Requests: 7")
}

func TestFileWriter_PartialFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	files := defaultFiles(dir)
	files.Security = filepath.Join(blocker, "security_report.txt")

	logger, hook := test.NewNullLogger()
	w := report.NewFileWriter(files, logger, metrics.NewTestCounters())

	err := w.WriteAll(analyze(t, sampleLog))
	assert.ErrorIs(t, err, report.ErrWriteReport)

	_, err = os.Stat(files.Path(report.Summary))
	assert.NoError(t, err)
	_, err = os.Stat(files.Path(report.Errors))
	assert.NoError(t, err)

	var failed int
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.ErrorLevel {
			failed++
			assert.Equal(t, report.Security, e.Data["report"])
		}
	}
	assert.Equal(t, 1, failed)
}

func TestFiles_Path(t *testing.T) {
	files := report.Files{Dir: "out", Summary: "s.txt", Security: "/abs/sec.txt"}

	assert.Equal(t, filepath.Join("out", "s.txt"), files.Path(report.Summary))
	assert.Equal(t, "/abs/sec.txt", files.Path(report.Security))
	assert.Equal(t, "", files.Path(report.Errors))
}
