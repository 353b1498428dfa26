package httpv1

import (
	"bytes"
	"errors"
	"net/http"

	logginghelper "github.com/Egor213/LogiScan/internal/controller/common/logging"
	"github.com/Egor213/LogiScan/internal/metrics"
	"github.com/Egor213/LogiScan/internal/report"
	"github.com/Egor213/LogiScan/internal/service"
	"github.com/labstack/echo/v4"
)

const MaxBodySize = 10 << 20

const (
	formatJSON = "json"
	formatText = "text"
)

// AnalyzerFactory returns a fresh Analyzer for every request.
type AnalyzerFactory func() *service.Analyzer

type AnalyzeController struct {
	newAnalyzer AnalyzerFactory
	counters    *metrics.Counters
}

func NewAnalyzeController(f AnalyzerFactory, cnt *metrics.Counters) *AnalyzeController {
	return &AnalyzeController{
		newAnalyzer: f,
		counters:    cnt,
	}
}

// Analyze runs the pipeline over the request body and returns all reports.
func (c *AnalyzeController) Analyze(ctx echo.Context) error {
	format := ctx.QueryParam("format")
	if format == "" {
		format = formatJSON
	}
	if format != formatJSON && format != formatText {
		c.counters.Requests.Inc("bad_request")
		return echo.NewHTTPError(http.StatusBadRequest, "format must be json or text")
	}

	remoteIP := ctx.RealIP()
	logginghelper.LogReceived(remoteIP, format, ctx.Request().ContentLength)

	body := http.MaxBytesReader(ctx.Response(), ctx.Request().Body, MaxBodySize)
	a := c.newAnalyzer()

	if err := a.Ingest(ctx.Request().Context(), body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.counters.Requests.Inc("too_large")
			return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "log body exceeds limit")
		}
		c.counters.Requests.Inc("bad_request")
		logginghelper.LogError(remoteIP, err)
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read log body")
	}

	res, err := a.Result()
	if err != nil {
		c.counters.Requests.Inc("failed")
		logginghelper.LogError(remoteIP, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "analysis did not finish")
	}

	c.counters.Requests.Inc("ok")
	logginghelper.LogAnalyzed(remoteIP, res)

	if format == formatText {
		var buf bytes.Buffer
		if err := report.WriteAll(&buf, res); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot render reports")
		}
		return ctx.Blob(http.StatusOK, echo.MIMETextPlainCharsetUTF8, buf.Bytes())
	}

	return ctx.JSON(http.StatusOK, report.NewDocument(res))
}

func Healthz(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
