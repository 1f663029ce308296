//go:build integration

package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"

	"github.com/Navaneeth-Nair/Neuromate/internal/testsupport"
)

func TestDispatcherPublishesMessages(t *testing.T) {
	ctx := context.Background()
	pool, _ := testsupport.StartPostgres(ctx, t)

	userID := uuid.NewString()
	require.NotZero(t, seedOutbox(t, ctx, pool, userID, uuid.NewString(), "activity.recorded"))

	producer := &stubProducer{}
	registry := &stubRegistry{id: 42}
	dispatcher := NewDispatcher(pool, producer, registry, 10*time.Millisecond, 5)

	beforeDelivered := testutil.ToFloat64(deliveredCounter)
	beforeHistogram := histogramSampleCount(t)

	require.NoError(t, dispatcher.processBatch(ctx))

	require.Len(t, producer.writes, 1)
	require.Equal(t, "activity_events", producer.writes[0].topic)
	require.Len(t, producer.writes[0].messages, 1)
	require.Equal(t, userID, headerMap(producer.writes[0].messages[0].Headers)[HeaderUserID])

	require.InDelta(t, beforeDelivered+1, testutil.ToFloat64(deliveredCounter), 0.0001)
	require.Greater(t, histogramSampleCount(t), beforeHistogram)

	var published int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM outbox WHERE published_at IS NOT NULL`).Scan(&published))
	require.Equal(t, 1, published)

	require.NoError(t, dispatcher.processBatch(ctx))
	require.Len(t, producer.writes, 1, "published rows are not claimed again")
}

func TestDispatcherRoutesMessagesToDLQOnFailure(t *testing.T) {
	ctx := context.Background()
	pool, _ := testsupport.StartPostgres(ctx, t)

	userID := uuid.NewString()
	require.NotZero(t, seedOutbox(t, ctx, pool, userID, uuid.NewString(), "post.created"))

	producer := &stubProducer{err: errors.New("kafka write failed")}
	dispatcher := NewDispatcher(pool, producer, &stubRegistry{id: 7}, 10*time.Millisecond, 5)

	beforeFailed := testutil.ToFloat64(failedCounter)
	beforeDLQ := testutil.ToFloat64(dlqCounter.WithLabelValues("activity_events"))

	require.NoError(t, dispatcher.processBatch(ctx))

	require.InDelta(t, beforeFailed+1, testutil.ToFloat64(failedCounter), 0.0001)
	require.InDelta(t, beforeDLQ+1, testutil.ToFloat64(dlqCounter.WithLabelValues("activity_events")), 0.0001)

	var dlqCount int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM outbox_dlq WHERE user_id = $1`, userID).Scan(&dlqCount))
	require.Equal(t, 1, dlqCount)
}

func TestDLQReplayRedeliversEvent(t *testing.T) {
	ctx := context.Background()
	pool, _ := testsupport.StartPostgres(ctx, t)

	userID := uuid.NewString()
	seedOutbox(t, ctx, pool, userID, uuid.NewString(), "activity.recorded")
	registry := &stubRegistry{id: 100}

	failing := NewDispatcher(pool, &stubProducer{err: errors.New("upstream kafka unavailable")}, registry, 5*time.Millisecond, 10)
	require.NoError(t, failing.processBatch(ctx))

	manager := NewDLQManager(pool, 5, time.Second)
	replayed, err := manager.RunOnce(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, 1, replayed)
	require.Zero(t, testutil.ToFloat64(dlqBacklogGauge))

	producer := &stubProducer{}
	healthy := NewDispatcher(pool, producer, registry, 5*time.Millisecond, 10)
	require.NoError(t, healthy.processBatch(ctx))
	require.Len(t, producer.writes, 1)
	require.Len(t, producer.writes[0].messages, 1)
}

func TestDLQManagerQuarantinesExhaustedEntries(t *testing.T) {
	ctx := context.Background()
	pool, _ := testsupport.StartPostgres(ctx, t)

	userID := uuid.NewString()
	_, err := pool.Exec(ctx,
		`INSERT INTO outbox_dlq (user_id, event_id, event_type, topic, payload, reason, aggregate_type, aggregate_id, schema_subject, partition_key, retry_count, next_retry_at)
         VALUES ($1, 1, 'activity.recorded', 'activity_events', '{}', 'boom', 'mood', 'm-1', 'activity_events-value', $1, 3, NOW())`, userID)
	require.NoError(t, err)

	manager := NewDLQManager(pool, 3, time.Second)
	processed, err := manager.RunOnce(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, 1, processed)

	var reason string
	require.NoError(t, pool.QueryRow(ctx, `SELECT quarantine_reason FROM outbox_dlq WHERE user_id = $1 AND quarantined_at IS NOT NULL`, userID).Scan(&reason))
	require.Equal(t, "retry limit reached", reason)
}

func histogramSampleCount(t *testing.T) uint64 {
	t.Helper()

	metric := &dto.Metric{}
	require.NoError(t, batchDuration.Write(metric))
	hist := metric.GetHistogram()
	require.NotNil(t, hist)
	return hist.GetSampleCount()
}

func seedOutbox(t *testing.T, ctx context.Context, pool *pgxpool.Pool, userID, aggregateID, eventType string) int64 {
	t.Helper()

	payload, err := json.Marshal(map[string]any{
		"record_id": aggregateID,
		"user_id":   userID,
	})
	require.NoError(t, err)

	var eventID int64
	err = pool.QueryRow(ctx,
		`INSERT INTO outbox (user_id, aggregate_type, aggregate_id, event_type, topic, schema_subject, partition_key, payload)
         VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
         RETURNING event_id`,
		userID, "task", aggregateID, eventType, "activity_events", "activity_events-value", userID, payload,
	).Scan(&eventID)
	require.NoError(t, err)
	return eventID
}
