package calendar

import (
	"context"

	"github.com/Navaneeth-Nair/Neuromate/internal/cache"
	"github.com/Navaneeth-Nair/Neuromate/internal/observability"
)

// Service serves calendars from the memo, building them on a miss.
type Service struct {
	aggregator *Aggregator
	memo       *cache.Memo[*Calendar]
}

// NewService constructs a Service. A nil memo disables memoization.
func NewService(aggregator *Aggregator, memo *cache.Memo[*Calendar]) *Service {
	return &Service{aggregator: aggregator, memo: memo}
}

// Aggregator exposes the underlying aggregator.
func (s *Service) Aggregator() *Aggregator {
	return s.aggregator
}

// Calendar returns the calendar for req. Degraded results are never memoized.
func (s *Service) Calendar(ctx context.Context, req Request) (*Calendar, error) {
	if req.Location == nil {
		req.Location = s.aggregator.Location()
	}
	today := req.Today.In(req.Location)

	if s.memo != nil {
		if cached, ok := s.memo.Get(req.UserID, req.Year, today); ok && cached.Location.String() == req.Location.String() {
			observability.RecordCalendarCache(true)
			return cached, nil
		}
		observability.RecordCalendarCache(false)
	}

	var gen uint64
	if s.memo != nil {
		gen = s.memo.Generation(req.UserID)
	}
	cal, err := s.aggregator.Build(ctx, req)
	if err != nil {
		return nil, err
	}
	// A write that lands mid-build bumps the generation, so the stale
	// result is returned but not memoized.
	if s.memo != nil && len(cal.DegradedCategories) == 0 {
		s.memo.SetIfGeneration(req.UserID, req.Year, gen, today, cal)
	}
	return cal, nil
}
