package monitor

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stellar/go-stellar-sdk/support/log"
)

type prometheusClient struct {
	httpHandler       http.Handler
	summaryVecMetrics map[MetricTag]*prometheus.SummaryVec
	counterVecMetrics map[MetricTag]*prometheus.CounterVec
}

var _ MonitorClient = (*prometheusClient)(nil)

// NewPrometheusClient registers every known metric in a fresh registry, so several clients can live in one process.
func NewPrometheusClient() (*prometheusClient, error) {
	metricsRegistry := prometheus.NewRegistry()
	summaries := newSummaryVecMetrics()
	counters := newCounterVecMetrics()

	var metricTag MetricTag
	for _, tag := range metricTag.ListAll() {
		if summaryVec, ok := summaries[tag]; ok {
			metricsRegistry.MustRegister(summaryVec)
		} else if counterVec, ok := counters[tag]; ok {
			metricsRegistry.MustRegister(counterVec)
		} else {
			return nil, fmt.Errorf("metric not registered in prometheus metrics: %s", tag)
		}
	}

	return &prometheusClient{
		httpHandler:       promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{}),
		summaryVecMetrics: summaries,
		counterVecMetrics: counters,
	}, nil
}

func (p *prometheusClient) GetMetricType() MetricType {
	return MetricTypePrometheus
}

func (p *prometheusClient) GetMetricHttpHandler() http.Handler {
	return p.httpHandler
}

func (p *prometheusClient) MonitorHttpRequestDuration(duration time.Duration, labels HttpRequestLabels) {
	p.MonitorDuration(duration, HttpRequestDurationTag, map[string]string{
		"status": labels.Status,
		"route":  labels.Route,
		"method": labels.Method,
	})
}

func (p *prometheusClient) MonitorCounters(tag MetricTag, labels map[string]string) {
	counterVec, ok := p.counterVecMetrics[tag]
	if !ok {
		log.Errorf("metric not registered in Prometheus CounterVecMetrics: %s", tag)
		return
	}
	counterVec.With(labels).Inc()
}

func (p *prometheusClient) MonitorDuration(duration time.Duration, tag MetricTag, labels map[string]string) {
	summaryVec, ok := p.summaryVecMetrics[tag]
	if !ok {
		log.Errorf("metric not registered in Prometheus SummaryVecMetrics: %s", tag)
		return
	}
	summaryVec.With(labels).Observe(duration.Seconds())
}
