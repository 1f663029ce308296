package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Navaneeth-Nair/Neuromate/internal/domain"
)

var _ domain.Repository = (*InMemoryRepository)(nil)

func TestListMoodsFiltersByUserAndWindow(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()
	base := time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.CreateMood(ctx, domain.MoodCheckin{ID: "m1", UserID: "u1", MoodLevel: 3, CreatedAt: base}))
	require.NoError(t, repo.CreateMood(ctx, domain.MoodCheckin{ID: "m2", UserID: "u1", MoodLevel: 4, CreatedAt: base.Add(48 * time.Hour)}))
	require.NoError(t, repo.CreateMood(ctx, domain.MoodCheckin{ID: "m3", UserID: "u2", MoodLevel: 5, CreatedAt: base}))
	require.NoError(t, repo.CreateMood(ctx, domain.MoodCheckin{ID: "m4", UserID: "u1", MoodLevel: 1, CreatedAt: base.AddDate(-1, 0, 0)}))

	moods, err := repo.ListMoods(ctx, "u1", domain.Range{Start: base.Add(-time.Hour), End: base.Add(72 * time.Hour)})
	require.NoError(t, err)
	require.Len(t, moods, 2)
	require.Equal(t, "m2", moods[0].ID)
	require.Equal(t, "m1", moods[1].ID)
}

func TestCompleteTaskIsIdempotentAndOwnerScoped(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()
	created := time.Date(2025, time.January, 5, 8, 0, 0, 0, time.UTC)
	require.NoError(t, repo.CreateTask(ctx, domain.Task{ID: "t1", UserID: "u1", Title: "x", CreatedAt: created}))

	missing, err := repo.CompleteTask(ctx, "u2", "t1", created)
	require.NoError(t, err)
	require.Nil(t, missing)

	first := created.Add(time.Hour)
	task, err := repo.CompleteTask(ctx, "u1", "t1", first)
	require.NoError(t, err)
	require.Equal(t, first, *task.CompletedAt)

	task, err = repo.CompleteTask(ctx, "u1", "t1", first.Add(time.Hour))
	require.NoError(t, err)
	require.Equal(t, first, *task.CompletedAt)
}

func TestListPostsPaginates(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()
	base := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"p1", "p2", "p3"} {
		require.NoError(t, repo.CreatePost(ctx, domain.Post{ID: id, UserID: "u1", Content: id, CreatedAt: base.Add(time.Duration(i) * time.Minute)}))
	}

	page, next, err := repo.ListPosts(ctx, nil, 2)
	require.NoError(t, err)
	require.Equal(t, []string{"p3", "p2"}, []string{page[0].ID, page[1].ID})
	require.NotNil(t, next)

	page, next, err = repo.ListPosts(ctx, next, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	require.Equal(t, "p1", page[0].ID)
	require.Nil(t, next)

	all, next, err := repo.ListPosts(ctx, nil, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Nil(t, next)
}

func TestCreateAccountRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()
	user := domain.User{ID: "u1", Email: "a@example.com"}
	require.NoError(t, repo.CreateAccount(ctx, user, domain.Profile{ID: "u1"}))
	require.ErrorIs(t, repo.CreateAccount(ctx, domain.User{ID: "u2", Email: "a@example.com"}, domain.Profile{ID: "u2"}), domain.ErrEmailTaken)
}
