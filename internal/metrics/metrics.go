package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics for the dashboard. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	AgentRunsTotal          *prometheus.CounterVec
	AgentRunDurationSeconds *prometheus.HistogramVec
	ExternalCallsTotal      *prometheus.CounterVec
	Revenue                 prometheus.Gauge
	RevenueTarget           prometheus.Gauge
	Alerts                  prometheus.Gauge
	HTTPRequestsTotal       *prometheus.CounterVec
	HTTPRequestDurationSecs *prometheus.HistogramVec

	registry *prometheus.Registry
}

// New creates a Metrics instance with every collector registered on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		AgentRunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pulseboard_agent_runs_total",
				Help: "Total number of agent invocations by outcome",
			},
			[]string{"agent", "status"},
		),
		AgentRunDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pulseboard_agent_run_duration_seconds",
				Help:    "Agent invocation duration in seconds",
				Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"agent"},
		),
		ExternalCallsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pulseboard_external_calls_total",
				Help: "Total number of outbound calls to text-generation and commerce APIs",
			},
			[]string{"service", "operation", "outcome"},
		),
		Revenue: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "pulseboard_revenue",
				Help: "Current dashboard revenue",
			},
		),
		RevenueTarget: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "pulseboard_revenue_target",
				Help: "Monthly revenue target",
			},
		),
		Alerts: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "pulseboard_alerts",
				Help: "Number of below-target alerts raised by the analytics agent",
			},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pulseboard_http_requests_total",
				Help: "Total number of HTTP API requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDurationSecs: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pulseboard_http_request_duration_seconds",
				Help:    "HTTP API request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),

		registry: reg,
	}

	reg.MustRegister(
		m.AgentRunsTotal,
		m.AgentRunDurationSeconds,
		m.ExternalCallsTotal,
		m.Revenue,
		m.RevenueTarget,
		m.Alerts,
		m.HTTPRequestsTotal,
		m.HTTPRequestDurationSecs,
	)

	return m
}

// Registry returns the Prometheus registry
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveRun records one agent invocation.
func (m *Metrics) ObserveRun(agent, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.AgentRunsTotal.WithLabelValues(agent, status).Inc()
	m.AgentRunDurationSeconds.WithLabelValues(agent).Observe(d.Seconds())
}

// ObserveCall records one outbound API call. err decides the outcome label.
func (m *Metrics) ObserveCall(service, operation string, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.ExternalCallsTotal.WithLabelValues(service, operation, outcome).Inc()
}

// SetRevenue publishes the revenue figures and alert count.
func (m *Metrics) SetRevenue(revenue, target float64, alerts int) {
	if m == nil {
		return
	}
	m.Revenue.Set(revenue)
	m.RevenueTarget.Set(target)
	m.Alerts.Set(float64(alerts))
}
