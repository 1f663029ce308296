package calendar

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Navaneeth-Nair/Neuromate/internal/domain"
	"github.com/Navaneeth-Nair/Neuromate/internal/observability"
)

// Source fetches the raw records of each category for a user.
type Source interface {
	ListTasks(ctx context.Context, userID string, window domain.Range) ([]domain.Task, error)
	ListMoods(ctx context.Context, userID string, window domain.Range) ([]domain.MoodCheckin, error)
	ListFocusSessions(ctx context.Context, userID string, window domain.Range) ([]domain.FocusSession, error)
	ListJournalEntries(ctx context.Context, userID string, window domain.Range) ([]domain.JournalEntry, error)
	ListRoutines(ctx context.Context, userID string, window domain.Range) ([]domain.Routine, error)
	ListMeditations(ctx context.Context, userID string, window domain.Range) ([]domain.MeditationSession, error)
}

// Request identifies the calendar to build. A nil Location uses the aggregator default.
type Request struct {
	UserID   string
	Year     int
	Today    time.Time
	Location *time.Location
}

// Option configures optional Aggregator behaviour.
type Option func(*Aggregator)

// WithLogger overrides the logger used to report degraded categories.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Aggregator) {
		a.logger = logger
	}
}

// WithLocation sets the default location used to resolve calendar days.
func WithLocation(loc *time.Location) Option {
	return func(a *Aggregator) {
		if loc != nil {
			a.location = loc
		}
	}
}

// WithFetchTimeout bounds every category fetch.
func WithFetchTimeout(d time.Duration) Option {
	return func(a *Aggregator) {
		a.fetchTimeout = d
	}
}

// Aggregator fetches all categories concurrently and builds the calendar.
// A failing category contributes no activities; it never fails the build.
type Aggregator struct {
	source       Source
	logger       *zap.Logger
	location     *time.Location
	fetchTimeout time.Duration
}

// NewAggregator constructs an Aggregator over source.
func NewAggregator(source Source, opts ...Option) *Aggregator {
	a := &Aggregator{
		source:   source,
		logger:   zap.NewNop(),
		location: time.UTC,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Location returns the default location.
func (a *Aggregator) Location() *time.Location {
	return a.location
}

// Build fetches, normalizes, bucketizes and lays out the calendar for req.
// It only fails when ctx is done before every fetch has returned.
func (a *Aggregator) Build(ctx context.Context, req Request) (*Calendar, error) {
	started := time.Now()
	loc := req.Location
	if loc == nil {
		loc = a.location
	}
	today := req.Today.In(loc)

	window := domain.Range{
		Start: time.Date(req.Year, time.January, 1, 0, 0, 0, 0, loc),
		End:   time.Date(req.Year+1, time.January, 1, 0, 0, 0, 0, loc).Add(-time.Nanosecond),
	}

	var (
		set      RecordSet
		mu       sync.Mutex
		degraded []domain.Category
		g        errgroup.Group
	)
	fail := func(category domain.Category, err error) {
		a.logger.Warn("calendar category fetch failed",
			zap.String("user_id", req.UserID),
			zap.String("category", string(category)),
			zap.Error(err))
		observability.RecordCategoryFetchFailure(string(category))
		mu.Lock()
		degraded = append(degraded, category)
		mu.Unlock()
	}

	g.Go(fetchInto(ctx, a.fetchTimeout, domain.CategoryTask, &set.Tasks, fail, func(ctx context.Context) ([]domain.Task, error) {
		return a.source.ListTasks(ctx, req.UserID, window)
	}))
	g.Go(fetchInto(ctx, a.fetchTimeout, domain.CategoryMood, &set.Moods, fail, func(ctx context.Context) ([]domain.MoodCheckin, error) {
		return a.source.ListMoods(ctx, req.UserID, window)
	}))
	g.Go(fetchInto(ctx, a.fetchTimeout, domain.CategoryFocus, &set.Focus, fail, func(ctx context.Context) ([]domain.FocusSession, error) {
		return a.source.ListFocusSessions(ctx, req.UserID, window)
	}))
	g.Go(fetchInto(ctx, a.fetchTimeout, domain.CategoryJournal, &set.Journals, fail, func(ctx context.Context) ([]domain.JournalEntry, error) {
		return a.source.ListJournalEntries(ctx, req.UserID, window)
	}))
	g.Go(fetchInto(ctx, a.fetchTimeout, domain.CategoryRoutine, &set.Routines, fail, func(ctx context.Context) ([]domain.Routine, error) {
		return a.source.ListRoutines(ctx, req.UserID, window)
	}))
	g.Go(fetchInto(ctx, a.fetchTimeout, domain.CategoryMeditation, &set.Meditations, fail, func(ctx context.Context) ([]domain.MeditationSession, error) {
		return a.source.ListMeditations(ctx, req.UserID, window)
	}))
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	activities, skipped := Normalize(set, loc)
	for category, n := range skipped {
		observability.RecordSkippedRecords(string(category), n)
	}
	if total := skipped.Total(); total > 0 {
		a.logger.Warn("calendar skipped records without timestamps",
			zap.String("user_id", req.UserID),
			zap.Int("count", total))
	}

	days := Bucketize(activities, req.Year, today, loc)
	sort.Slice(degraded, func(i, j int) bool { return degraded[i].Rank() < degraded[j].Rank() })

	cal := &Calendar{
		Year:               req.Year,
		Location:           loc,
		Today:              today,
		Days:               days,
		Grid:               BuildGrid(days),
		DegradedCategories: degraded,
	}
	observability.ObserveCalendarBuild(time.Since(started))
	return cal, nil
}

// fetchInto runs fetch and stores its result in dst. Errors are reported to
// fail and swallowed so sibling fetches keep running.
func fetchInto[T any](ctx context.Context, timeout time.Duration, category domain.Category, dst *[]T, fail func(domain.Category, error), fetch func(context.Context) ([]T, error)) func() error {
	return func() error {
		fetchCtx := ctx
		if timeout > 0 {
			var cancel context.CancelFunc
			fetchCtx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		records, err := fetch(fetchCtx)
		if err != nil {
			fail(category, err)
			return nil
		}
		*dst = records
		return nil
	}
}
