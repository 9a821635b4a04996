package notifications

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	scheduled prometheus.Counter
	failed    *prometheus.CounterVec
	cancelled prometheus.Counter
	delivered prometheus.Counter
}

func newMetrics() metrics {
	return metrics{
		scheduled: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "notifications_scheduled_total",
				Help: "How many notifications were scheduled.",
			},
		),
		failed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notifications_failed_total",
				Help: "How many notifications could not be scheduled, partitioned by reason.",
			},
			[]string{"reason"},
		),
		cancelled: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "notifications_cancelled_total",
				Help: "How many cancel requests were sent to the host.",
			},
		),
		delivered: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "notifications_delivered_total",
				Help: "How many notifications were delivered by the host.",
			},
		),
	}
}

// Collectors returns the Prometheus collectors of the scheduler. They are not
// registered with any registry.
func (s *Scheduler) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		s.metrics.scheduled,
		s.metrics.failed,
		s.metrics.cancelled,
		s.metrics.delivered,
	}
}
