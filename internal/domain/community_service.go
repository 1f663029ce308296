package domain

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// MaxFeedPageSize caps the community feed page length.
const MaxFeedPageSize = 100

// CreatePost shares content with the community feed.
func (s *Service) CreatePost(ctx context.Context, userID, content string) (*Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalid("content is required")
	}
	post := Post{
		ID:        uuid.NewString(),
		UserID:    userID,
		Content:   content,
		CreatedAt: s.now(),
	}
	if err := s.repo.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return &post, nil
}

// ListFeed returns one page of the global feed, newest first.
func (s *Service) ListFeed(ctx context.Context, cursor *Cursor, limit int) ([]Post, *Cursor, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > MaxFeedPageSize {
		limit = MaxFeedPageSize
	}
	return s.repo.ListPosts(ctx, cursor, limit)
}

// ListAllPosts returns the whole global feed, newest first.
func (s *Service) ListAllPosts(ctx context.Context) ([]Post, error) {
	posts, _, err := s.repo.ListPosts(ctx, nil, 0)
	return posts, err
}

// ListPostsByUser returns the caller's own posts, newest first.
func (s *Service) ListPostsByUser(ctx context.Context, userID string) ([]Post, error) {
	return s.repo.ListPostsByUser(ctx, userID)
}

// SubmitBetaSignup records an early-access request.
func (s *Service) SubmitBetaSignup(ctx context.Context, name, email, phone string) (*BetaSignup, error) {
	name, email, phone = strings.TrimSpace(name), strings.TrimSpace(email), strings.TrimSpace(phone)
	if name == "" || email == "" || phone == "" {
		return nil, invalid("name, email, and phone are required")
	}
	signup := BetaSignup{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Phone:     phone,
		CreatedAt: s.now(),
	}
	if err := s.repo.CreateBetaSignup(ctx, signup); err != nil {
		return nil, err
	}
	return &signup, nil
}

// SubmitContactMessage records a contact form submission.
func (s *Service) SubmitContactMessage(ctx context.Context, name, email, message string) (*ContactMessage, error) {
	name, email, message = strings.TrimSpace(name), strings.TrimSpace(email), strings.TrimSpace(message)
	if name == "" || email == "" || message == "" {
		return nil, invalid("name, email, and message are required")
	}
	msg := ContactMessage{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Message:   message,
		CreatedAt: s.now(),
	}
	if err := s.repo.CreateContactMessage(ctx, msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
