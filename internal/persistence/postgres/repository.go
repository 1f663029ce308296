// Package postgres provides the pgx-backed implementation of domain.Repository.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Navaneeth-Nair/Neuromate/internal/domain"
	"github.com/Navaneeth-Nair/Neuromate/internal/observability"
	"github.com/Navaneeth-Nair/Neuromate/pkg/events"
)

const eventVersion = "v1"

const uniqueViolation = "23505"

// Repository provides Postgres-backed persistence for accounts, activities and outbox events.
type Repository struct {
	pool *pgxpool.Pool
}

var _ domain.Repository = (*Repository)(nil)

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// withTx runs fn inside a transaction, committing only when fn succeeds.
func (r *Repository) withTx(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// outboxEnvelope identifies the aggregate an outbox event belongs to.
type outboxEnvelope struct {
	UserID        string
	AggregateType string
	AggregateID   string
}

func (r *Repository) insertOutbox(ctx context.Context, tx pgx.Tx, env outboxEnvelope, eventType string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	meta := eventCatalog[eventType]
	if meta.Topic == "" {
		return fmt.Errorf("unknown event type: %s", eventType)
	}

	partitionKey := meta.PartitionKeyFn(env)
	dedupeKey := fmt.Sprintf("%s:%s", env.AggregateID, eventType)

	const stmt = `INSERT INTO outbox (user_id, aggregate_type, aggregate_id, event_type, topic, schema_subject, partition_key, payload, dedupe_key)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        ON CONFLICT (dedupe_key) DO NOTHING`

	_, err = tx.Exec(ctx, stmt,
		env.UserID,
		env.AggregateType,
		env.AggregateID,
		eventType,
		meta.Topic,
		meta.SchemaSubject,
		partitionKey,
		body,
		dedupeKey,
	)
	return err
}

// recordActivity writes the activity.recorded outbox event for a calendar-countable record.
func (r *Repository) recordActivity(ctx context.Context, tx pgx.Tx, category domain.Category, id, userID, title string, at time.Time) error {
	return r.insertOutbox(ctx, tx, outboxEnvelope{
		UserID:        userID,
		AggregateType: string(category),
		AggregateID:   id,
	}, events.TypeActivityRecorded, events.ActivityRecorded{
		RecordID:   id,
		UserID:     userID,
		Category:   string(category),
		Title:      title,
		OccurredAt: at,
		Version:    eventVersion,
	})
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}

// bound maps an open range bound to SQL NULL.
func bound(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// EventMetadata describes how to route an outbox event.
type EventMetadata struct {
	Topic          string
	SchemaSubject  string
	PartitionKeyFn func(outboxEnvelope) string
}

func byUser(env outboxEnvelope) string {
	return env.UserID
}

var eventCatalog = map[string]EventMetadata{
	events.TypeActivityRecorded: {
		Topic:          "activity_events",
		SchemaSubject:  "activity_events-value",
		PartitionKeyFn: byUser,
	},
	events.TypePostCreated: {
		Topic:          "community_events",
		SchemaSubject:  "community_events-value",
		PartitionKeyFn: byUser,
	},
}

func persisted(category domain.Category, at time.Time) {
	observability.RecordActivityPersisted(string(category), at)
}
