// Package events defines the event payloads NeuroMate publishes to Kafka.
package events

import "time"

// Event types recorded in the outbox.
const (
	TypeActivityRecorded = "activity.recorded"
	TypePostCreated      = "post.created"
)

// ActivityRecorded is emitted whenever a user logs or completes a wellness activity.
type ActivityRecorded struct {
	RecordID   string    `json:"record_id"`
	UserID     string    `json:"user_id"`
	Category   string    `json:"category"`
	Title      string    `json:"title"`
	OccurredAt time.Time `json:"occurred_at"`
	Version    string    `json:"version"`
}

// PostCreated is emitted when a user shares a post with the community feed.
type PostCreated struct {
	PostID    string    `json:"post_id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Version   string    `json:"version"`
}
