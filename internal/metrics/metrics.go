package metrics

import (
	errorsUtils "github.com/Egor213/LogiScan/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "logiscan"

type Counter interface {
	Inc(labels ...string)
}

type Counters struct {
	// Lines is labelled by result: parsed, malformed, conversion_error, unexpected.
	Lines Counter

	Incidents Counter

	Reports Counter

	Requests Counter
}

type PrometheusCounter struct {
	counter *prometheus.CounterVec
}

func newCounterVec(name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, labels)
}

func NewPrometheusCounter(reg prometheus.Registerer, name, help string, labels []string) *PrometheusCounter {
	c := &PrometheusCounter{counter: newCounterVec(name, help, labels)}
	reg.MustRegister(c.counter)
	return c
}

func (p *PrometheusCounter) Inc(labels ...string) {
	p.counter.WithLabelValues(labels...).Inc()
}

func New(reg prometheus.Registerer) *Counters {
	return &Counters{
		Lines: NewPrometheusCounter(reg,
			"lines_total",
			"Log lines read, by parse result",
			[]string{"result"},
		),
		Incidents: NewPrometheusCounter(reg,
			"incidents_total",
			"Security incidents detected, by kind",
			[]string{"kind"},
		),
		Reports: NewPrometheusCounter(reg,
			"reports_total",
			"Reports rendered, by report and status",
			[]string{"report", "status"},
		),
		Requests: NewPrometheusCounter(reg,
			"http_analyze_requests_total",
			"Analysis requests served over HTTP, by status",
			[]string{"status"},
		),
	}
}

type nopCounter struct{}

func (nopCounter) Inc(...string) {}

// Nop returns counters that record nothing.
func Nop() *Counters {
	return &Counters{
		Lines:     nopCounter{},
		Incidents: nopCounter{},
		Reports:   nopCounter{},
		Requests:  nopCounter{},
	}
}

func NewTestCounters() *Counters {
	return New(prometheus.NewRegistry())
}

// WriteTextfile dumps everything gathered by g to path in the text exposition
// format, for the node exporter textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return errorsUtils.WrapPathErr(prometheus.WriteToTextfile(path, g))
}
