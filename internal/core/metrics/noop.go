package metrics

import "time"

// NoopSink is a no-op implementation of Sink.
// Used when metrics are disabled to avoid nil checks.
type NoopSink struct{}

// NewNoopSink returns a no-op metrics sink.
func NewNoopSink() *NoopSink {
	return &NoopSink{}
}

func (n *NoopSink) ValidationAttempt(outcome string)                                  {}
func (n *NoopSink) TransactionCompleted(operation string, d time.Duration, err error) {}
func (n *NoopSink) TransactionConflict(store string)                                  {}
func (n *NoopSink) DeliveryTransition(from, to string)                                {}
func (n *NoopSink) NotificationEnqueued()                                             {}
func (n *NoopSink) NotificationDropped()                                              {}
func (n *NoopSink) NotificationSent(sender, outcome string, d time.Duration)          {}
func (n *NoopSink) NotificationQueueDepth(depth int)                                  {}
