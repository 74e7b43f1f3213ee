package service

import "scout/internal/domain/entity"

// MetricsSink records the core's observability counters.
type MetricsSink interface {
	// NotificationMatched counts a matched notification per event kind.
	NotificationMatched(kind entity.EventKind)

	// NotificationSent counts a delivered notification per event kind.
	NotificationSent(kind entity.EventKind)

	// NotificationLimited counts a rate-limited (suppressed) delivery.
	NotificationLimited()

	// QueueDepth records the current dispatch queue length.
	QueueDepth(n int)
}
