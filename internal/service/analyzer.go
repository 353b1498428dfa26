package service

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/Egor213/LogiScan/internal/broker"
	"github.com/Egor213/LogiScan/internal/domain"
	"github.com/Egor213/LogiScan/internal/metrics"
	"github.com/Egor213/LogiScan/internal/parser"
	errorsUtils "github.com/Egor213/LogiScan/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	readBufferSize = 64 * 1024
	// Longer lines are drained and counted as malformed.
	maxLineSize = 1024 * 1024
)

const (
	lineParsed     = "parsed"
	lineMalformed  = "malformed"
	lineConversion = "conversion_error"
	lineUnexpected = "unexpected"
)

type LineParser interface {
	Parse(raw string) (domain.LogEntry, error)
}

type phase int

const (
	phaseIngesting phase = iota
	phaseReporting
	phaseFailed
)

type Option func(*Analyzer)

func WithLogger(l log.FieldLogger) Option {
	return func(a *Analyzer) {
		a.logger = l
	}
}

func WithCounters(c *metrics.Counters) Option {
	return func(a *Analyzer) {
		a.counters = c
	}
}

func WithParser(p LineParser) Option {
	return func(a *Analyzer) {
		a.parser = p
	}
}

// WithProducer publishes every incident as JSON, keyed by source IP.
func WithProducer(p broker.Producer) Option {
	return func(a *Analyzer) {
		a.producer = p
	}
}

func WithDetectorOptions(opts ...DetectorOption) Option {
	return func(a *Analyzer) {
		a.detectorOpts = append(a.detectorOpts, opts...)
	}
}

// Analyzer runs one single-pass analysis: it ingests lines in order, then
// exposes the final state for reporting. An Analyzer is not reusable.
type Analyzer struct {
	parser       LineParser
	logger       log.FieldLogger
	counters     *metrics.Counters
	producer     broker.Producer
	detectorOpts []DetectorOption

	stats      *domain.AggregateStats
	security   *domain.SecurityState
	aggregator *StatisticsAggregator
	detector   *SecurityDetector
	lines      domain.LineStats
	phase      phase
}

func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		logger:   log.StandardLogger(),
		stats:    domain.NewAggregateStats(),
		security: domain.NewSecurityState(),
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.parser == nil {
		a.parser = parser.New()
	}
	if a.counters == nil {
		a.counters = metrics.Nop()
	}

	a.aggregator = NewStatisticsAggregator(a.stats)
	a.detector = NewSecurityDetector(a.security, a.detectorOpts...)

	return a
}

// AnalyzeFile opens path and ingests it. A missing or unreadable file is
// reported as ErrInputNotFound or ErrInputPermission and nothing is ingested.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		a.phase = phaseFailed
		logger := a.logger.WithFields(log.Fields{"path": path, "critical": true})
		switch {
		case errors.Is(err, fs.ErrNotExist):
			logger.Error("Log file not found.")
			return fmt.Errorf("%w: %s", ErrInputNotFound, path)
		case errors.Is(err, fs.ErrPermission):
			logger.Error("Permission denied reading log file.")
			return fmt.Errorf("%w: %s", ErrInputPermission, path)
		default:
			logger.Errorf("Cannot open log file: %v", err)
			return errorsUtils.WrapPathErr(errors.Join(ErrReadInput, err))
		}
	}
	defer f.Close()

	return a.Ingest(ctx, f)
}

// Ingest consumes r line by line. Per-line failures are logged and skipped;
// only a failure of r itself is returned.
func (a *Analyzer) Ingest(ctx context.Context, r io.Reader) error {
	if a.phase != phaseIngesting {
		return ErrAlreadyIngested
	}

	br := bufio.NewReaderSize(r, readBufferSize)

	lineNo := 0
	for {
		raw, oversized, err := readLine(br)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			a.phase = phaseFailed
			a.logger.WithField("line", lineNo+1).Errorf("Cannot read log input: %v", err)
			return errorsUtils.WrapPathErr(errors.Join(ErrReadInput, err))
		}

		lineNo++
		a.lines.Read++

		if oversized {
			a.malformed(lineNo)
			continue
		}

		incidents := a.processLine(lineNo, string(raw))
		for _, inc := range incidents {
			a.logger.WithFields(log.Fields{"line": inc.Line, "kind": inc.Kind}).Warn(inc.Message)
			a.counters.Incidents.Inc(string(inc.Kind))
			a.publish(ctx, inc)
		}
	}

	a.phase = phaseReporting
	a.logger.WithFields(log.Fields{
		"lines":   a.lines.Read,
		"parsed":  a.lines.Parsed,
		"skipped": a.lines.Skipped(),
	}).Info("Log analysis completed successfully.")

	return nil
}

// processLine never lets a failure escape past the current line.
func (a *Analyzer) processLine(lineNo int, raw string) (incidents []domain.Incident) {
	defer func() {
		if r := recover(); r != nil {
			a.unexpected(lineNo, fmt.Errorf("%w: %v", ErrUnexpectedLine, r))
			incidents = nil
		}
	}()

	entry, err := a.parser.Parse(raw)
	switch {
	case err == nil:
	case errors.Is(err, parser.ErrMalformedLine):
		a.malformed(lineNo)
		return nil
	case errors.Is(err, parser.ErrConversion):
		a.lines.ConversionErrors++
		a.counters.Lines.Inc(lineConversion)
		a.logger.WithField("line", lineNo).Errorf("Line %d: Data conversion error - %v", lineNo, err)
		return nil
	default:
		a.unexpected(lineNo, fmt.Errorf("%w: %v", ErrUnexpectedLine, err))
		return nil
	}

	// Nothing below the evaluation can fail, so a skipped line leaves the
	// stats and the security state untouched.
	verdict := a.detector.Evaluate(lineNo, entry)
	a.aggregator.Record(entry)
	incidents = a.detector.Commit(verdict)
	a.lines.Parsed++
	a.counters.Lines.Inc(lineParsed)

	return incidents
}

func (a *Analyzer) malformed(lineNo int) {
	a.lines.Malformed++
	a.counters.Lines.Inc(lineMalformed)
	a.logger.WithField("line", lineNo).Warn("Skipping malformed log entry.")
}

func (a *Analyzer) unexpected(lineNo int, err error) {
	a.lines.Unexpected++
	a.counters.Lines.Inc(lineUnexpected)
	a.logger.WithField("line", lineNo).Errorf("Line %d: %v", lineNo, err)
}

func (a *Analyzer) publish(ctx context.Context, inc domain.Incident) {
	if a.producer == nil {
		return
	}

	payload, err := json.Marshal(inc)
	if err != nil {
		a.logger.WithField("line", inc.Line).Errorf("Cannot encode incident: %v", err)
		return
	}

	if err := a.producer.SendMessage(ctx, []byte(inc.IP), payload); err != nil {
		a.logger.WithFields(log.Fields{"line": inc.Line, "kind": inc.Kind}).
			Errorf("Failed to publish incident: %v", err)
	}
}

// readLine returns the next line without its line ending. A line longer
// than maxLineSize is consumed to its end and reported as oversized with
// no content. io.EOF is returned only when no line is left.
func readLine(br *bufio.Reader) (line []byte, oversized bool, err error) {
	started := false
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && started {
				return line, oversized, nil
			}
			return nil, false, err
		}
		started = true

		if !oversized {
			if len(line)+len(chunk) > maxLineSize {
				oversized = true
				line = nil
			} else {
				line = append(line, chunk...)
			}
		}

		if !isPrefix {
			return line, oversized, nil
		}
	}
}

// Result returns the final state once ingestion has finished.
func (a *Analyzer) Result() (domain.Analysis, error) {
	if a.phase != phaseReporting {
		return domain.Analysis{}, ErrNotFinished
	}

	return domain.Analysis{
		Stats:    a.stats,
		Security: a.security,
		Lines:    a.lines,
	}, nil
}
