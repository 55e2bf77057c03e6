package monitor

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"
)

type MetricType string

const MetricTypePrometheus MetricType = "PROMETHEUS"

var supportedMetricTypes = []MetricType{MetricTypePrometheus}

func ParseMetricType(metricTypeStr string) (MetricType, error) {
	mType := MetricType(strings.ToUpper(strings.TrimSpace(metricTypeStr)))
	if !slices.Contains(supportedMetricTypes, mType) {
		return "", fmt.Errorf("invalid metric type %q", string(mType))
	}
	return mType, nil
}

type MetricOptions struct {
	MetricType  MetricType
	Environment string
}

// MonitorClient is a metrics backend. Observations on unknown tags are logged and dropped.
type MonitorClient interface {
	GetMetricType() MetricType
	GetMetricHttpHandler() http.Handler
	MonitorHttpRequestDuration(duration time.Duration, labels HttpRequestLabels)
	MonitorCounters(tag MetricTag, labels map[string]string)
	MonitorDuration(duration time.Duration, tag MetricTag, labels map[string]string)
}

func GetClient(opts MetricOptions) (MonitorClient, error) {
	if opts.MetricType == MetricTypePrometheus {
		return NewPrometheusClient()
	}
	return nil, fmt.Errorf("unknown metric type: %q", opts.MetricType)
}
