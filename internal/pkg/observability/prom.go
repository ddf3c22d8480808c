package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ServiceName = "vilabackend"
)

var (
	BulkSaveDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "locations", "bulk_save_duration_seconds"),
		Help:    "Duration of bulk location saves in seconds, by outcome",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
	}, []string{"outcome"})
	SavedEntities = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "locations", "saved_entities_total"),
		Help: "Entities written by committed location saves, by kind",
	}, []string{"kind"})
	MailDelivery = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "mail", "delivery_total"),
		Help: "Notification mail delivery attempts, by template and outcome",
	}, []string{"template", "outcome"})
	MailConsumeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "mail", "consume_duration_seconds"),
		Help:    "Duration of queued mail consumption in seconds",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
	}, []string{})
	WorkerRunDuration = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: prometheus.BuildFQName(ServiceName, "worker", "run_duration_seconds"),
		Help: "Duration of the last run of a periodic job in seconds",
	}, []string{"job"})
)
