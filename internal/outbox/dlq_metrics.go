package outbox

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// Outcomes recorded for DLQ entries.
const (
	dlqOutcomeProcessed   = "processed"
	dlqOutcomeRequeued    = "requeued"
	dlqOutcomeQuarantined = "quarantined"
	dlqOutcomeRetry       = "retry_scheduled"
)

var (
	dlqEntriesCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "neuromate",
		Subsystem: "dlq",
		Name:      "entries_total",
		Help:      "DLQ entries handled by the manager, labeled by topic, event type and outcome.",
	}, []string{"topic", "event_type", "outcome"})

	dlqBacklogGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "neuromate",
		Subsystem: "dlq",
		Name:      "queued_messages",
		Help:      "Current number of non-quarantined entries remaining in the DLQ.",
	})
)

func init() {
	prometheus.MustRegister(dlqEntriesCounter, dlqBacklogGauge)
}

func recordDLQOutcome(entry dlqEntry, outcome string) {
	dlqEntriesCounter.WithLabelValues(entry.Topic, entry.EventType, outcome).Inc()
}

func recordDLQProcessed(entry dlqEntry)   { recordDLQOutcome(entry, dlqOutcomeProcessed) }
func recordDLQRequeued(entry dlqEntry)    { recordDLQOutcome(entry, dlqOutcomeRequeued) }
func recordDLQQuarantined(entry dlqEntry) { recordDLQOutcome(entry, dlqOutcomeQuarantined) }
func recordDLQRetry(entry dlqEntry)       { recordDLQOutcome(entry, dlqOutcomeRetry) }

func updateBacklogGauge(ctx context.Context, pool *pgxpool.Pool) {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM outbox_dlq WHERE quarantined_at IS NULL`).Scan(&count); err != nil {
		return
	}
	dlqBacklogGauge.Set(float64(count))
}
