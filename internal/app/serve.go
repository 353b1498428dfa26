package app

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/Egor213/LogiScan/internal/config"
	httpv1 "github.com/Egor213/LogiScan/internal/controller/http/v1"
	"github.com/Egor213/LogiScan/internal/metrics"
	"github.com/Egor213/LogiScan/internal/service"
	errorsUtils "github.com/Egor213/LogiScan/pkg/errors"
	"github.com/Egor213/LogiScan/pkg/httpserver"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// Serve exposes the analysis pipeline over HTTP until SIGINT/SIGTERM.
func Serve(cfg *config.Config) error {
	counters := metrics.New(prometheus.DefaultRegisterer)

	opts := analyzerOptions(cfg, counters)
	if cfg.Kafka.Enabled {
		producer := newProducer(cfg)
		defer producer.Close()
		opts = append(opts, service.WithProducer(producer))
	}

	handler := echo.New()
	handler.HideBanner = true
	metrics.ConfigureRouter(handler)
	httpv1.ConfigureRouter(handler, func() *service.Analyzer {
		return service.NewAnalyzer(opts...)
	}, counters)

	log.Infof("Starting HTTP server...")
	log.Debugf("Server port: %s", cfg.HTTP.Port)
	server := httpserver.New(handler, httpserver.Port(cfg.HTTP.Port))

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("app - Serve - signal: " + s.String())
	case err := <-server.Notify():
		if err != nil {
			return errorsUtils.WrapPathErr(err)
		}
	}

	log.Info("Shutting down...")
	return errorsUtils.WrapPathErr(server.Shutdown())
}
