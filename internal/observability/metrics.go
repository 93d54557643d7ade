package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StoreReads counts record store reads by collection.
	StoreReads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "civicpulse_store_reads_total",
		Help: "Total number of record store reads by collection",
	}, []string{"collection"})

	// StoreWrites counts record store writes by collection.
	StoreWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "civicpulse_store_writes_total",
		Help: "Total number of record store writes by collection",
	}, []string{"collection"})

	// StoreErrors counts swallowed store failures by collection and operation.
	StoreErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "civicpulse_store_errors_total",
		Help: "Total number of record store failures by collection and operation",
	}, []string{"collection", "operation"})

	// StoreCorruptRecords counts records skipped because they failed to
	// deserialize.
	StoreCorruptRecords = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "civicpulse_store_corrupt_records_total",
		Help: "Total number of undecodable records skipped during reads",
	}, []string{"collection"})

	// NotificationsEmitted counts notifications created by type.
	NotificationsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "civicpulse_notifications_emitted_total",
		Help: "Total number of notifications emitted by type",
	}, []string{"type"})

	// AIRequests counts AI collaborator calls by capability and outcome.
	AIRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "civicpulse_ai_requests_total",
		Help: "Total number of AI collaborator calls by capability and outcome",
	}, []string{"capability", "outcome"})
)
