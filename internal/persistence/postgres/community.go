package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Navaneeth-Nair/Neuromate/internal/domain"
	"github.com/Navaneeth-Nair/Neuromate/pkg/events"
)

// CreatePost inserts a post and its post.created event.
func (r *Repository) CreatePost(ctx context.Context, post domain.Post) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `INSERT INTO posts (id, user_id, content, created_at) VALUES ($1,$2,$3,$4)`,
			post.ID, post.UserID, post.Content, post.CreatedAt); err != nil {
			return err
		}
		return r.insertOutbox(ctx, tx, outboxEnvelope{
			UserID:        post.UserID,
			AggregateType: "post",
			AggregateID:   post.ID,
		}, events.TypePostCreated, events.PostCreated{
			PostID:    post.ID,
			UserID:    post.UserID,
			Content:   post.Content,
			CreatedAt: post.CreatedAt,
			Version:   eventVersion,
		})
	})
}

// ListPosts returns the feed newest first. A limit of zero returns every post.
func (r *Repository) ListPosts(ctx context.Context, cursor *domain.Cursor, limit int) ([]domain.Post, *domain.Cursor, error) {
	query := `SELECT id, user_id, content, created_at FROM posts`
	args := []any{}

	if cursor != nil {
		query += ` WHERE (created_at, id) < ($1, $2::uuid)`
		args = append(args, cursor.CreatedAt, cursor.ID)
	}
	query += ` ORDER BY created_at DESC, id DESC`
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}
	results, err := pgx.CollectRows(rows, collect(scanPost))
	if err != nil {
		return nil, nil, err
	}

	var nextCursor *domain.Cursor
	if limit > 0 && len(results) == limit {
		last := results[len(results)-1]
		nextCursor = &domain.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}
	}
	return results, nextCursor, nil
}

// ListPostsByUser returns one author's posts newest first.
func (r *Repository) ListPostsByUser(ctx context.Context, userID string) ([]domain.Post, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, user_id, content, created_at FROM posts WHERE user_id=$1 ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, collect(scanPost))
}

// CreateBetaSignup stores an early-access request.
func (r *Repository) CreateBetaSignup(ctx context.Context, signup domain.BetaSignup) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO beta_signups (id, name, email, phone, created_at) VALUES ($1,$2,$3,$4,$5)`,
		signup.ID, signup.Name, signup.Email, signup.Phone, signup.CreatedAt)
	return err
}

// CreateContactMessage stores a contact form submission.
func (r *Repository) CreateContactMessage(ctx context.Context, message domain.ContactMessage) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO contact_messages (id, name, email, message, created_at) VALUES ($1,$2,$3,$4,$5)`,
		message.ID, message.Name, message.Email, message.Message, message.CreatedAt)
	return err
}

func scanPost(row pgx.Row) (domain.Post, error) {
	var p domain.Post
	err := row.Scan(&p.ID, &p.UserID, &p.Content, &p.CreatedAt)
	return p, err
}
