// Package memory provides a process-local repository for local development and tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Navaneeth-Nair/Neuromate/internal/domain"
)

// InMemoryRepository implements domain.Repository with maps guarded by a RWMutex.
type InMemoryRepository struct {
	mu          sync.RWMutex
	users       map[string]domain.User
	emails      map[string]string
	profiles    map[string]domain.Profile
	tasks       map[string]domain.Task
	moods       []domain.MoodCheckin
	focus       []domain.FocusSession
	journals    []domain.JournalEntry
	routines    map[string]domain.Routine
	meditations []domain.MeditationSession
	posts       []domain.Post
	signups     []domain.BetaSignup
	messages    []domain.ContactMessage
}

// NewInMemoryRepository constructs an empty repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		users:    make(map[string]domain.User),
		emails:   make(map[string]string),
		profiles: make(map[string]domain.Profile),
		tasks:    make(map[string]domain.Task),
		routines: make(map[string]domain.Routine),
	}
}

// CreateAccount implements domain.AccountRepository.
func (r *InMemoryRepository) CreateAccount(_ context.Context, user domain.User, profile domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.emails[user.Email]; taken {
		return domain.ErrEmailTaken
	}
	r.users[user.ID] = user
	r.emails[user.Email] = user.ID
	r.profiles[user.ID] = profile
	return nil
}

// FindUserByEmail implements domain.AccountRepository.
func (r *InMemoryRepository) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.emails[email]
	if !ok {
		return nil, nil
	}
	user := r.users[id]
	return &user, nil
}

// UpdatePassword implements domain.AccountRepository.
func (r *InMemoryRepository) UpdatePassword(_ context.Context, userID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	user.PasswordHash = passwordHash
	r.users[userID] = user
	return nil
}

// GetProfile implements domain.AccountRepository.
func (r *InMemoryRepository) GetProfile(_ context.Context, userID string) (*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &profile, nil
}

// UpdateProfile implements domain.AccountRepository.
func (r *InMemoryRepository) UpdateProfile(_ context.Context, userID string, update domain.ProfileUpdate, at time.Time) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.profiles[userID]
	if !ok {
		return nil, nil
	}
	update.Apply(&profile)
	profile.UpdatedAt = at
	r.profiles[userID] = profile
	return &profile, nil
}

// CreateTask implements domain.ActivityRepository.
func (r *InMemoryRepository) CreateTask(_ context.Context, task domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[task.ID] = task
	return nil
}

// CompleteTask implements domain.ActivityRepository.
func (r *InMemoryRepository) CompleteTask(_ context.Context, userID, taskID string, at time.Time) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[taskID]
	if !ok || task.UserID != userID {
		return nil, nil
	}
	if !task.Completed || task.CompletedAt == nil {
		task.Completed = true
		task.CompletedAt = &at
		r.tasks[taskID] = task
	}
	return &task, nil
}

// ListTasks implements domain.ActivityRepository.
func (r *InMemoryRepository) ListTasks(_ context.Context, userID string, window domain.Range) ([]domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Task, 0)
	for _, task := range r.tasks {
		if task.UserID == userID && window.Contains(task.CalendarTime()) {
			out = append(out, task)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CalendarTime().After(out[j].CalendarTime()) })
	return out, nil
}

// CreateMood implements domain.ActivityRepository.
func (r *InMemoryRepository) CreateMood(_ context.Context, mood domain.MoodCheckin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.moods = append(r.moods, mood)
	return nil
}

// ListMoods implements domain.ActivityRepository.
func (r *InMemoryRepository) ListMoods(_ context.Context, userID string, window domain.Range) ([]domain.MoodCheckin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return filterNewestFirst(r.moods, func(m domain.MoodCheckin) (string, time.Time) { return m.UserID, m.CreatedAt }, userID, window), nil
}

// CreateFocusSession implements domain.ActivityRepository.
func (r *InMemoryRepository) CreateFocusSession(_ context.Context, session domain.FocusSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.focus = append(r.focus, session)
	return nil
}

// ListFocusSessions implements domain.ActivityRepository.
func (r *InMemoryRepository) ListFocusSessions(_ context.Context, userID string, window domain.Range) ([]domain.FocusSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return filterNewestFirst(r.focus, func(s domain.FocusSession) (string, time.Time) { return s.UserID, s.StartedAt }, userID, window), nil
}

// CreateJournalEntry implements domain.ActivityRepository.
func (r *InMemoryRepository) CreateJournalEntry(_ context.Context, entry domain.JournalEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.journals = append(r.journals, entry)
	return nil
}

// ListJournalEntries implements domain.ActivityRepository.
func (r *InMemoryRepository) ListJournalEntries(_ context.Context, userID string, window domain.Range) ([]domain.JournalEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return filterNewestFirst(r.journals, func(e domain.JournalEntry) (string, time.Time) { return e.UserID, e.CreatedAt }, userID, window), nil
}

// CreateRoutine implements domain.ActivityRepository.
func (r *InMemoryRepository) CreateRoutine(_ context.Context, routine domain.Routine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routines[routine.ID] = routine
	return nil
}

// CompleteRoutine implements domain.ActivityRepository.
func (r *InMemoryRepository) CompleteRoutine(_ context.Context, userID, routineID string, at time.Time) (*domain.Routine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	routine, ok := r.routines[routineID]
	if !ok || routine.UserID != userID {
		return nil, nil
	}
	if !routine.Completed || routine.CompletedAt == nil {
		routine.Completed = true
		routine.CompletedAt = &at
		r.routines[routineID] = routine
	}
	return &routine, nil
}

// ListRoutines implements domain.ActivityRepository.
func (r *InMemoryRepository) ListRoutines(_ context.Context, userID string, window domain.Range) ([]domain.Routine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Routine, 0)
	for _, routine := range r.routines {
		if routine.UserID == userID && window.Contains(routine.CalendarTime()) {
			out = append(out, routine)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CalendarTime().After(out[j].CalendarTime()) })
	return out, nil
}

// CreateMeditation implements domain.ActivityRepository.
func (r *InMemoryRepository) CreateMeditation(_ context.Context, session domain.MeditationSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.meditations = append(r.meditations, session)
	return nil
}

// ListMeditations implements domain.ActivityRepository.
func (r *InMemoryRepository) ListMeditations(_ context.Context, userID string, window domain.Range) ([]domain.MeditationSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return filterNewestFirst(r.meditations, func(s domain.MeditationSession) (string, time.Time) { return s.UserID, s.StartedAt }, userID, window), nil
}

// CreatePost implements domain.CommunityRepository.
func (r *InMemoryRepository) CreatePost(_ context.Context, post domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posts = append(r.posts, post)
	return nil
}

// ListPosts implements domain.CommunityRepository. A limit of zero returns every post.
func (r *InMemoryRepository) ListPosts(_ context.Context, cursor *domain.Cursor, limit int) ([]domain.Post, *domain.Cursor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sorted := make([]domain.Post, len(r.posts))
	copy(sorted, r.posts)
	sort.Slice(sorted, func(i, j int) bool { return postBefore(sorted[j], sorted[i]) })

	out := make([]domain.Post, 0)
	for _, post := range sorted {
		if cursor != nil && !postBefore(post, domain.Post{CreatedAt: cursor.CreatedAt, ID: cursor.ID}) {
			continue
		}
		out = append(out, post)
		if limit > 0 && len(out) == limit {
			break
		}
	}

	var next *domain.Cursor
	if limit > 0 && len(out) == limit {
		last := out[len(out)-1]
		next = &domain.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}
	}
	return out, next, nil
}

// ListPostsByUser implements domain.CommunityRepository.
func (r *InMemoryRepository) ListPostsByUser(_ context.Context, userID string) ([]domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return filterNewestFirst(r.posts, func(p domain.Post) (string, time.Time) { return p.UserID, p.CreatedAt }, userID, domain.Range{}), nil
}

// CreateBetaSignup implements domain.OutreachRepository.
func (r *InMemoryRepository) CreateBetaSignup(_ context.Context, signup domain.BetaSignup) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.signups = append(r.signups, signup)
	return nil
}

// CreateContactMessage implements domain.OutreachRepository.
func (r *InMemoryRepository) CreateContactMessage(_ context.Context, message domain.ContactMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
	return nil
}

// postBefore orders posts by (created_at, id) ascending.
func postBefore(a, b domain.Post) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

func filterNewestFirst[T any](items []T, key func(T) (string, time.Time), userID string, window domain.Range) []T {
	out := make([]T, 0)
	for _, item := range items {
		owner, at := key(item)
		if owner == userID && window.Contains(at) {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		_, left := key(out[i])
		_, right := key(out[j])
		return left.After(right)
	})
	return out
}
