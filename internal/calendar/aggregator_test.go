package calendar

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Navaneeth-Nair/Neuromate/internal/cache"
	"github.com/Navaneeth-Nair/Neuromate/internal/domain"
)

type stubSource struct {
	tasks       []domain.Task
	moods       []domain.MoodCheckin
	focus       []domain.FocusSession
	journals    []domain.JournalEntry
	routines    []domain.Routine
	meditations []domain.MeditationSession
	failures    map[domain.Category]error
	block       chan struct{}
	calls       atomic.Int32
	windows     chan domain.Range
}

func (s *stubSource) wait(ctx context.Context, category domain.Category, window domain.Range) error {
	s.calls.Add(1)
	if s.windows != nil {
		s.windows <- window
	}
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return s.failures[category]
}

func (s *stubSource) ListTasks(ctx context.Context, _ string, w domain.Range) ([]domain.Task, error) {
	if err := s.wait(ctx, domain.CategoryTask, w); err != nil {
		return nil, err
	}
	return s.tasks, nil
}

func (s *stubSource) ListMoods(ctx context.Context, _ string, w domain.Range) ([]domain.MoodCheckin, error) {
	if err := s.wait(ctx, domain.CategoryMood, w); err != nil {
		return nil, err
	}
	return s.moods, nil
}

func (s *stubSource) ListFocusSessions(ctx context.Context, _ string, w domain.Range) ([]domain.FocusSession, error) {
	if err := s.wait(ctx, domain.CategoryFocus, w); err != nil {
		return nil, err
	}
	return s.focus, nil
}

func (s *stubSource) ListJournalEntries(ctx context.Context, _ string, w domain.Range) ([]domain.JournalEntry, error) {
	if err := s.wait(ctx, domain.CategoryJournal, w); err != nil {
		return nil, err
	}
	return s.journals, nil
}

func (s *stubSource) ListRoutines(ctx context.Context, _ string, w domain.Range) ([]domain.Routine, error) {
	if err := s.wait(ctx, domain.CategoryRoutine, w); err != nil {
		return nil, err
	}
	return s.routines, nil
}

func (s *stubSource) ListMeditations(ctx context.Context, _ string, w domain.Range) ([]domain.MeditationSession, error) {
	if err := s.wait(ctx, domain.CategoryMeditation, w); err != nil {
		return nil, err
	}
	return s.meditations, nil
}

func TestAggregatorBuildsSingleTaskCalendar(t *testing.T) {
	completed := ts(t, "2025-03-10T14:30:00Z")
	source := &stubSource{
		tasks:   []domain.Task{{ID: "t1", Title: "Write report", Completed: true, CompletedAt: &completed}},
		windows: make(chan domain.Range, 6),
	}
	agg := NewAggregator(source, WithLogger(zap.NewNop()))

	cal, err := agg.Build(context.Background(), Request{UserID: "user-1", Year: 2025, Today: ts(t, "2025-03-10T20:00:00Z")})
	require.NoError(t, err)
	require.Equal(t, int32(6), source.calls.Load())
	require.Empty(t, cal.DegradedCategories)

	close(source.windows)
	for window := range source.windows {
		require.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), window.Start)
		require.Equal(t, 2025, window.End.Year())
		require.Equal(t, time.December, window.End.Month())
	}

	require.Equal(t, 1, cal.Grid.TotalActivities)
	last := cal.Days[len(cal.Days)-1]
	require.Equal(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), last.Date)
	require.Equal(t, 1, last.Count)
	require.Equal(t, 1, last.Level)
	require.Equal(t, Activity{
		Category:  domain.CategoryTask,
		Title:     "Write report",
		TimeLabel: "2:30 PM",
		Date:      completed,
	}, last.Activities[0])
}

func TestAggregatorIsolatesFailingCategory(t *testing.T) {
	at := ts(t, "2025-02-01T09:00:00Z")
	source := &stubSource{
		moods:    []domain.MoodCheckin{{MoodLevel: 5, CreatedAt: at}},
		journals: []domain.JournalEntry{{Title: "gratitude", CreatedAt: at}},
		failures: map[domain.Category]error{
			domain.CategoryMood:  errors.New("moods table unavailable"),
			domain.CategoryFocus: errors.New("timeout"),
		},
	}
	agg := NewAggregator(source)

	cal, err := agg.Build(context.Background(), Request{UserID: "user-1", Year: 2025, Today: ts(t, "2025-12-31T00:00:00Z")})
	require.NoError(t, err)
	require.Equal(t, []domain.Category{domain.CategoryMood, domain.CategoryFocus}, cal.DegradedCategories)
	require.Equal(t, 1, cal.Grid.TotalActivities)

	day := cal.Days[at.YearDay()-1]
	require.Equal(t, "gratitude", day.Activities[0].Title)
}

func TestAggregatorAllCategoriesFailingYieldsEmptyCalendar(t *testing.T) {
	boom := errors.New("database down")
	failures := make(map[domain.Category]error)
	for _, c := range domain.Categories {
		failures[c] = boom
	}
	agg := NewAggregator(&stubSource{failures: failures})

	cal, err := agg.Build(context.Background(), Request{UserID: "u", Year: 2024, Today: ts(t, "2025-01-05T00:00:00Z")})
	require.NoError(t, err)
	require.Len(t, cal.Days, 366)
	require.Zero(t, cal.Grid.TotalActivities)
	require.Len(t, cal.DegradedCategories, 6)
}

func TestAggregatorDiscardsResultWhenContextCancelled(t *testing.T) {
	source := &stubSource{block: make(chan struct{})}
	agg := NewAggregator(source)

	ctx, cancel := context.WithCancel(context.Background())
	type result struct {
		cal *Calendar
		err error
	}
	done := make(chan result, 1)
	go func() {
		cal, err := agg.Build(ctx, Request{UserID: "u", Year: 2025, Today: time.Now()})
		done <- result{cal: cal, err: err}
	}()

	cancel()
	select {
	case res := <-done:
		require.ErrorIs(t, res.err, context.Canceled)
		require.Nil(t, res.cal)
	case <-time.After(5 * time.Second):
		t.Fatal("build did not return after cancellation")
	}
}

func TestAggregatorFetchTimeoutDegradesCategory(t *testing.T) {
	source := &stubSource{block: make(chan struct{})}
	agg := NewAggregator(source, WithFetchTimeout(10*time.Millisecond))

	cal, err := agg.Build(context.Background(), Request{UserID: "u", Year: 2025, Today: ts(t, "2025-06-01T00:00:00Z")})
	require.NoError(t, err)
	require.Len(t, cal.DegradedCategories, 6)
}

func TestAggregatorUsesRequestLocation(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	source := &stubSource{
		journals: []domain.JournalEntry{{Title: "new year", CreatedAt: ts(t, "2024-12-31T16:30:00Z")}},
	}
	agg := NewAggregator(source, WithLocation(time.UTC))

	cal, err := agg.Build(context.Background(), Request{UserID: "u", Year: 2025, Today: ts(t, "2025-01-02T00:00:00Z"), Location: loc})
	require.NoError(t, err)
	require.Equal(t, 1, cal.Days[0].Count)
	require.Equal(t, "1:30 AM", cal.Days[0].Activities[0].TimeLabel)
}

func TestServiceMemoizesUntilInvalidated(t *testing.T) {
	source := &stubSource{}
	memo := cache.NewMemo[*Calendar](16, time.Hour)
	svc := NewService(NewAggregator(source), memo)
	req := Request{UserID: "user-1", Year: 2025, Today: time.Now()}

	first, err := svc.Calendar(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Calendar(context.Background(), req)
	require.NoError(t, err)
	require.Same(t, first, second)
	require.Equal(t, int32(6), source.calls.Load())

	require.NoError(t, memo.Invalidate(context.Background(), "user-1"))
	_, err = svc.Calendar(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, int32(12), source.calls.Load())
}

func TestServiceDoesNotMemoizeBuildOverlappingInvalidate(t *testing.T) {
	source := &stubSource{
		block:   make(chan struct{}),
		windows: make(chan domain.Range, 6),
	}
	memo := cache.NewMemo[*Calendar](16, time.Hour)
	svc := NewService(NewAggregator(source), memo)
	req := Request{UserID: "user-1", Year: 2025, Today: time.Now()}

	type result struct {
		cal *Calendar
		err error
	}
	done := make(chan result, 1)
	go func() {
		cal, err := svc.Calendar(context.Background(), req)
		done <- result{cal: cal, err: err}
	}()

	for i := 0; i < 6; i++ {
		<-source.windows
	}
	require.NoError(t, memo.Invalidate(context.Background(), "user-1"))
	close(source.block)

	first := <-done
	require.NoError(t, first.err)
	require.Zero(t, memo.Len(), "build started before the write must not be memoized")

	second, err := svc.Calendar(context.Background(), req)
	require.NoError(t, err)
	require.NotSame(t, first.cal, second)
	require.Equal(t, int32(12), source.calls.Load())
}

func TestServiceDoesNotMemoizeDegradedCalendars(t *testing.T) {
	source := &stubSource{failures: map[domain.Category]error{domain.CategoryTask: errors.New("flaky")}}
	memo := cache.NewMemo[*Calendar](16, time.Hour)
	svc := NewService(NewAggregator(source), memo)
	req := Request{UserID: "user-1", Year: 2025, Today: time.Now()}

	_, err := svc.Calendar(context.Background(), req)
	require.NoError(t, err)
	require.Zero(t, memo.Len())
}
