package monitor

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	RESULT_OK       = "ok"
	RESULT_REJECTED = "rejected"
)

type Metrics struct {
	ActiveRooms     prometheus.Gauge
	OpenConnections prometheus.Gauge
	ActionsTotal    *prometheus.CounterVec
	ActionLatency   prometheus.Histogram
	TurnTimeouts    prometheus.Counter
	OracleFallbacks *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// NewMetrics 在给定的 registry 上注册指标，测试中使用独立的 registry 避免重复注册
func NewMetrics(namespace string, reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		ActiveRooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_rooms",
			Help:      "Number of active rooms",
		}),
		OpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "open_connections",
			Help:      "Number of open websocket connections",
		}),
		ActionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_total",
			Help:      "Total number of participant actions handled",
		}, []string{"action", "result"}),
		ActionLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "action_latency_seconds",
			Help:      "Participant action processing latency",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
		}),
		TurnTimeouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turn_timeouts_total",
			Help:      "Total number of speaking turns skipped by the turn timer",
		}),
		OracleFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "oracle_fallbacks_total",
			Help:      "Total number of word/hint generation failures recovered locally",
		}, []string{"kind"}),
		gatherer: reg,
	}

	reg.MustRegister(
		m.ActiveRooms,
		m.OpenConnections,
		m.ActionsTotal,
		m.ActionLatency,
		m.TurnTimeouts,
		m.OracleFallbacks,
	)

	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) ActionHandled(action string, err error, elapsed time.Duration) {
	result := RESULT_OK
	if err != nil {
		result = RESULT_REJECTED
	}

	m.ActionsTotal.WithLabelValues(action, result).Inc()
	m.ActionLatency.Observe(elapsed.Seconds())
}

func (m *Metrics) TurnTimedOut() {
	m.TurnTimeouts.Inc()
}

func (m *Metrics) RoomsChanged(count int) {
	m.ActiveRooms.Set(float64(count))
}

func (m *Metrics) OracleFallback(kind string) {
	m.OracleFallbacks.WithLabelValues(kind).Inc()
}

func (m *Metrics) ConnectionOpened() {
	m.OpenConnections.Inc()
}

func (m *Metrics) ConnectionClosed() {
	m.OpenConnections.Dec()
}
