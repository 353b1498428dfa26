package httpv1

import (
	"github.com/Egor213/LogiScan/internal/metrics"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"
)

func ConfigureRouter(handler *echo.Echo, f AnalyzerFactory, cnt *metrics.Counters) {
	handler.Use(middleware.Recover())
	handler.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.WithFields(log.Fields{
				"method": v.Method,
				"uri":    v.URI,
				"status": v.Status,
			}).Info("Request handled")
			return nil
		},
	}))

	handler.GET("/healthz", Healthz)

	controller := NewAnalyzeController(f, cnt)
	v1 := handler.Group("/api/v1")
	v1.POST("/analyze", controller.Analyze)
}
