package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Egor213/LogiScan/internal/domain"
	"github.com/Egor213/LogiScan/internal/metrics"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultSummaryFile  = "summary_report.txt"
	DefaultSecurityFile = "security_report.txt"
	DefaultErrorsFile   = "error_log.txt"
)

// Files maps each report to its output path. Relative paths are resolved
// against Dir.
type Files struct {
	Dir      string
	Summary  string
	Security string
	Errors   string
}

func (f Files) Path(k Kind) string {
	var name string
	switch k {
	case Summary:
		name = f.Summary
	case Security:
		name = f.Security
	case Errors:
		name = f.Errors
	}
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(f.Dir, name)
}

type FileWriter struct {
	files    Files
	logger   log.FieldLogger
	counters *metrics.Counters
}

func NewFileWriter(files Files, logger log.FieldLogger, counters *metrics.Counters) *FileWriter {
	return &FileWriter{
		files:    files,
		logger:   logger,
		counters: counters,
	}
}

// WriteAll writes the three reports concurrently. A failed report does not
// stop or roll back the others; the first failure is returned.
func (w *FileWriter) WriteAll(a domain.Analysis) error {
	var g errgroup.Group

	for _, k := range Kinds {
		g.Go(func() error {
			path := w.files.Path(k)
			logger := w.logger.WithFields(log.Fields{"report": k, "path": path})

			if err := w.write(k, path, a); err != nil {
				w.counters.Reports.Inc(string(k), "failed")
				logger.Errorf("Report generation failed: %v", err)
				return err
			}

			w.counters.Reports.Inc(string(k), "ok")
			logger.Info("Report generated.")
			return nil
		})
	}

	return g.Wait()
}

func (w *FileWriter) write(k Kind, path string, a domain.Analysis) (err error) {
	render, ok := Renderer(k)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownReport, k)
	}
	if path == "" {
		return fmt.Errorf("%w: %s: empty path", ErrWriteReport, k)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Join(ErrWriteReport, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Join(ErrWriteReport, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Join(ErrWriteReport, cerr)
		}
	}()

	if err := render(f, a); err != nil {
		return errors.Join(ErrWriteReport, err)
	}

	return nil
}
