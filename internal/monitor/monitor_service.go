package monitor

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	ErrClientNotInitialized     = errors.New("client was not initialized")
	ErrClientAlreadyInitialized = errors.New("service already initialized")
)

type MonitorServiceInterface interface {
	Start(opts MetricOptions) error
	GetMetricType() (MetricType, error)
	GetMetricHttpHandler() (http.Handler, error)
	MonitorHttpRequestDuration(duration time.Duration, labels HttpRequestLabels) error
	MonitorCounters(tag MetricTag, labels map[string]string) error
	MonitorDuration(duration time.Duration, tag MetricTag, labels map[string]string) error
}

var _ MonitorServiceInterface = (*MonitorService)(nil)

// MonitorService wraps the configured MonitorClient. Every call fails with ErrClientNotInitialized until Start runs.
type MonitorService struct {
	MonitorClient MonitorClient
}

func (m *MonitorService) Start(opts MetricOptions) error {
	if m.MonitorClient != nil {
		return ErrClientAlreadyInitialized
	}

	client, err := GetClient(opts)
	if err != nil {
		return fmt.Errorf("creating monitor client: %w", err)
	}
	m.MonitorClient = client
	return nil
}

// observe runs fn against the client once it is started.
func (m *MonitorService) observe(fn func(MonitorClient)) error {
	if m.MonitorClient == nil {
		return ErrClientNotInitialized
	}
	fn(m.MonitorClient)
	return nil
}

func (m *MonitorService) GetMetricType() (metricType MetricType, err error) {
	err = m.observe(func(c MonitorClient) { metricType = c.GetMetricType() })
	return metricType, err
}

func (m *MonitorService) GetMetricHttpHandler() (handler http.Handler, err error) {
	err = m.observe(func(c MonitorClient) { handler = c.GetMetricHttpHandler() })
	return handler, err
}

func (m *MonitorService) MonitorHttpRequestDuration(duration time.Duration, labels HttpRequestLabels) error {
	return m.observe(func(c MonitorClient) { c.MonitorHttpRequestDuration(duration, labels) })
}

func (m *MonitorService) MonitorCounters(tag MetricTag, labels map[string]string) error {
	return m.observe(func(c MonitorClient) { c.MonitorCounters(tag, labels) })
}

func (m *MonitorService) MonitorDuration(duration time.Duration, tag MetricTag, labels map[string]string) error {
	return m.observe(func(c MonitorClient) { c.MonitorDuration(duration, tag, labels) })
}
