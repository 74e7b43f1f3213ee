// Package metrics exposes the notification pipeline counters through
// Prometheus.
package metrics

import (
	"scout/internal/domain/entity"
	"scout/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type prometheusSink struct {
	matched    *prometheus.CounterVec
	sent       *prometheus.CounterVec
	limited    prometheus.Counter
	queueDepth prometheus.Gauge
}

// NewPrometheusSink registers the pipeline metrics on the registerer.
func NewPrometheusSink(reg prometheus.Registerer) service.MetricsSink {
	factory := promauto.With(reg)

	return &prometheusSink{
		matched: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scout",
			Name:      "notifications_matched_total",
			Help:      "Notifications enqueued after matching, per event kind.",
		}, []string{"kind"}),
		sent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scout",
			Name:      "notifications_sent_total",
			Help:      "Notifications delivered, per event kind.",
		}, []string{"kind"}),
		limited: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "scout",
			Name:      "notifications_limited_total",
			Help:      "Notifications suppressed by the per-subscription rate limit.",
		}),
		queueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "scout",
			Name:      "notification_queue_depth",
			Help:      "Items waiting in the notification queue.",
		}),
	}
}

func (s *prometheusSink) NotificationMatched(kind entity.EventKind) {
	s.matched.WithLabelValues(string(kind)).Inc()
}

func (s *prometheusSink) NotificationSent(kind entity.EventKind) {
	s.sent.WithLabelValues(string(kind)).Inc()
}

func (s *prometheusSink) NotificationLimited() {
	s.limited.Inc()
}

func (s *prometheusSink) QueueDepth(n int) {
	s.queueDepth.Set(float64(n))
}
