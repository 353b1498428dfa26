package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	kafkabroker "github.com/Egor213/LogiScan/internal/broker/kafka"
	"github.com/Egor213/LogiScan/internal/config"
	"github.com/Egor213/LogiScan/internal/domain"
	"github.com/Egor213/LogiScan/internal/metrics"
	"github.com/Egor213/LogiScan/internal/report"
	"github.com/Egor213/LogiScan/internal/repo"
	"github.com/Egor213/LogiScan/internal/service"
	errorsUtils "github.com/Egor213/LogiScan/pkg/errors"
	"github.com/Egor213/LogiScan/pkg/postgres"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// analyzerOptions builds the Analyzer options shared by the CLI and the HTTP API.
func analyzerOptions(cfg *config.Config, counters *metrics.Counters) []service.Option {
	return []service.Option{
		service.WithLogger(log.StandardLogger()),
		service.WithCounters(counters),
		service.WithDetectorOptions(
			service.WithBruteForceThreshold(cfg.Detector.BruteForceThreshold),
			service.WithLoginPath(cfg.Detector.LoginPath),
		),
	}
}

func newProducer(cfg *config.Config) *kafkabroker.Producer {
	log.WithFields(log.Fields{
		"brokers": cfg.Kafka.Brokers,
		"topic":   cfg.Kafka.Topic,
	}).Info("Publishing incidents to Kafka")

	return kafkabroker.NewProducer(kafkabroker.ProducerConfig{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
	})
}

// Analyze runs one full pass over cfg.Input.Path: ingest, write the three
// reports, then the optional sinks. User-facing messages go to out.
func Analyze(ctx context.Context, cfg *config.Config, out io.Writer) (domain.Analysis, error) {
	reg := prometheus.NewRegistry()
	counters := metrics.New(reg)

	opts := analyzerOptions(cfg, counters)
	if cfg.Kafka.Enabled {
		producer := newProducer(cfg)
		defer func() {
			if err := producer.Close(); err != nil {
				log.Errorf("Cannot close Kafka producer: %v", err)
			}
		}()
		opts = append(opts, service.WithProducer(producer))
	}

	analyzer := service.NewAnalyzer(opts...)

	startedAt := time.Now()
	log.WithField("path", cfg.Input.Path).Info("Starting log analysis")

	if err := analyzer.AnalyzeFile(ctx, cfg.Input.Path); err != nil {
		switch {
		case errors.Is(err, service.ErrInputNotFound):
			fmt.Fprintf(out, "Error: %s does not exist.\n", cfg.Input.Path)
		case errors.Is(err, service.ErrInputPermission):
			fmt.Fprintf(out, "Error: Cannot access log file %s.\n", cfg.Input.Path)
		default:
			fmt.Fprintf(out, "Error: Cannot read log file %s.\n", cfg.Input.Path)
		}
		return domain.Analysis{}, err
	}

	res, err := analyzer.Result()
	if err != nil {
		return domain.Analysis{}, errorsUtils.WrapPathErr(err)
	}
	finishedAt := time.Now()

	files := report.Files{
		Dir:      cfg.Reports.Dir,
		Summary:  cfg.Reports.Summary,
		Security: cfg.Reports.Security,
		Errors:   cfg.Reports.Errors,
	}
	if err := report.NewFileWriter(files, log.StandardLogger(), counters).WriteAll(res); err != nil {
		fmt.Fprintf(out, "Error: Cannot write reports: %v\n", err)
		return res, err
	}

	if cfg.PG.Enabled {
		run := service.NewRunSummary(cfg.Input.Path, startedAt, finishedAt, res)
		if err := archive(ctx, cfg, run, res.Security.Incidents); err != nil {
			log.WithField("run_id", run.ID).Errorf("Run was not archived: %v", err)
		} else {
			log.WithField("run_id", run.ID).Info("Run archived")
		}
	}

	if cfg.Metrics.Textfile != "" {
		if err := metrics.WriteTextfile(cfg.Metrics.Textfile, reg); err != nil {
			log.WithField("textfile", cfg.Metrics.Textfile).Errorf("Cannot write metrics: %v", err)
		}
	}

	printSummary(out, res)

	return res, nil
}

func archive(ctx context.Context, cfg *config.Config, run domain.RunSummary, incidents []domain.Incident) error {
	if err := Migrate(cfg.PG.URL, cfg.PG.Migrations); err != nil {
		return err
	}

	log.Info("Connecting to DB")
	pg, err := postgres.New(ctx, cfg.PG.URL, postgres.MaxPoolSize(cfg.PG.MaxPoolSize))
	if err != nil {
		return err
	}
	defer pg.Close()

	services := service.NewServices(service.ServicesDependencies{
		Repos: repo.NewRepositories(pg),
	})

	return services.Archive.Save(ctx, run, incidents)
}
