package metrics

import (
	"time"

	"ecodeli/internal/core/logger"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// PrometheusSink implements Sink using the Prometheus client library.
// Registration errors are logged but never propagated.
type PrometheusSink struct {
	validationAttempts   *prometheus.CounterVec
	transactionDuration  *prometheus.HistogramVec
	transactionErrors    *prometheus.CounterVec
	transactionConflicts *prometheus.CounterVec

	deliveryTransitions *prometheus.CounterVec

	notificationsEnqueued prometheus.Counter
	notificationsDropped  prometheus.Counter
	notificationsSent     *prometheus.CounterVec
	notificationDuration  *prometheus.HistogramVec
	notificationQueue     prometheus.Gauge
}

// NewPrometheusSink creates the collectors and registers them on reg.
func NewPrometheusSink(reg prometheus.Registerer) *PrometheusSink {
	s := &PrometheusSink{}
	s.initValidationMetrics(reg)
	s.initNotificationMetrics(reg)
	return s
}

func (s *PrometheusSink) initValidationMetrics(reg prometheus.Registerer) {
	s.validationAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ecodeli_validation_attempts_total",
		Help: "Validation code submissions by outcome.",
	}, []string{"outcome"})

	s.transactionDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ecodeli_store_transaction_duration_seconds",
		Help:    "Duration of store transactions by operation.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 5},
	}, []string{"operation"})

	s.transactionErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ecodeli_store_transaction_errors_total",
		Help: "Store transactions that returned an error, by operation.",
	}, []string{"operation"})

	s.transactionConflicts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ecodeli_store_transaction_conflicts_total",
		Help: "Optimistic transaction conflicts that forced a retry.",
	}, []string{"store"})

	s.deliveryTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ecodeli_delivery_transitions_total",
		Help: "Delivery status transitions.",
	}, []string{"from", "to"})

	s.register(reg, s.validationAttempts, "ecodeli_validation_attempts_total")
	s.register(reg, s.transactionDuration, "ecodeli_store_transaction_duration_seconds")
	s.register(reg, s.transactionErrors, "ecodeli_store_transaction_errors_total")
	s.register(reg, s.transactionConflicts, "ecodeli_store_transaction_conflicts_total")
	s.register(reg, s.deliveryTransitions, "ecodeli_delivery_transitions_total")
}

func (s *PrometheusSink) initNotificationMetrics(reg prometheus.Registerer) {
	s.notificationsEnqueued = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ecodeli_notifications_enqueued_total",
		Help: "Notifications accepted by the queue.",
	})
	s.notificationsDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ecodeli_notifications_dropped_total",
		Help: "Notifications dropped because the queue was full.",
	})
	s.notificationsSent = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ecodeli_notifications_sent_total",
		Help: "Notification send attempts by sender and outcome.",
	}, []string{"sender", "outcome"})
	s.notificationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ecodeli_notification_send_duration_seconds",
		Help:    "Latency of a single sender call (excludes backoff wait).",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"sender"})
	s.notificationQueue = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ecodeli_notification_queue_depth",
		Help: "Notifications waiting in the queue.",
	})

	s.register(reg, s.notificationsEnqueued, "ecodeli_notifications_enqueued_total")
	s.register(reg, s.notificationsDropped, "ecodeli_notifications_dropped_total")
	s.register(reg, s.notificationsSent, "ecodeli_notifications_sent_total")
	s.register(reg, s.notificationDuration, "ecodeli_notification_send_duration_seconds")
	s.register(reg, s.notificationQueue, "ecodeli_notification_queue_depth")
}

// register attempts to register a collector, logging any errors without propagating them.
func (s *PrometheusSink) register(reg prometheus.Registerer, c prometheus.Collector, name string) {
	if err := reg.Register(c); err != nil {
		logger.Named("metrics").Warn("failed to register collector", zap.String("name", name), zap.Error(err))
	}
}

func (s *PrometheusSink) ValidationAttempt(outcome string) {
	s.validationAttempts.WithLabelValues(outcome).Inc()
}

func (s *PrometheusSink) TransactionCompleted(operation string, duration time.Duration, err error) {
	s.transactionDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		s.transactionErrors.WithLabelValues(operation).Inc()
	}
}

func (s *PrometheusSink) TransactionConflict(store string) {
	s.transactionConflicts.WithLabelValues(store).Inc()
}

func (s *PrometheusSink) DeliveryTransition(from, to string) {
	s.deliveryTransitions.WithLabelValues(from, to).Inc()
}

func (s *PrometheusSink) NotificationEnqueued() {
	s.notificationsEnqueued.Inc()
}

func (s *PrometheusSink) NotificationDropped() {
	s.notificationsDropped.Inc()
}

func (s *PrometheusSink) NotificationSent(sender, outcome string, duration time.Duration) {
	s.notificationsSent.WithLabelValues(sender, outcome).Inc()
	s.notificationDuration.WithLabelValues(sender).Observe(duration.Seconds())
}

func (s *PrometheusSink) NotificationQueueDepth(depth int) {
	s.notificationQueue.Set(float64(depth))
}
