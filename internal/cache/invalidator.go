// Package cache holds the in-process calendar memo and its invalidation contract.
package cache

import "context"

// Invalidator defines a cache invalidation contract keyed by user.
type Invalidator interface {
	Invalidate(ctx context.Context, userID string) error
}

// NoopInvalidator is a no-op implementation.
type NoopInvalidator struct{}

// Invalidate performs no action.
func (NoopInvalidator) Invalidate(context.Context, string) error { return nil }
