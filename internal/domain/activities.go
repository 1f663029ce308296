package domain

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// CreateTaskInput captures a new to-do item.
type CreateTaskInput struct {
	UserID      string
	Title       string
	Description string
	Completed   bool
}

// CreateTask stores a task, stamping completed_at when it is created already done.
func (s *Service) CreateTask(ctx context.Context, input CreateTaskInput) (*Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, invalid("title is required")
	}
	now := s.now()
	task := Task{
		ID:          uuid.NewString(),
		UserID:      input.UserID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Completed:   input.Completed,
		CreatedAt:   now,
	}
	if input.Completed {
		task.CompletedAt = &now
	}
	if err := s.repo.CreateTask(ctx, task); err != nil {
		return nil, err
	}
	if err := s.invalidate(ctx, input.UserID); err != nil {
		return nil, err
	}
	return &task, nil
}

// CompleteTask marks a task done. Completing an already completed task is a no-op.
func (s *Service) CompleteTask(ctx context.Context, userID, taskID string) (*Task, error) {
	task, err := s.repo.CompleteTask(ctx, userID, taskID, s.now())
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}
	if err := s.invalidate(ctx, userID); err != nil {
		return nil, err
	}
	return task, nil
}

// ListTasks returns the user's tasks within the window, newest first.
func (s *Service) ListTasks(ctx context.Context, userID string, window Range) ([]Task, error) {
	return s.repo.ListTasks(ctx, userID, window)
}

// RecordMoodInput captures a mood check-in.
type RecordMoodInput struct {
	UserID    string
	MoodLevel int
	MoodType  string
	Notes     string
}

// RecordMood stores a mood check-in.
func (s *Service) RecordMood(ctx context.Context, input RecordMoodInput) (*MoodCheckin, error) {
	if input.MoodLevel < 1 || input.MoodLevel > 5 {
		return nil, invalid("mood_level must be between 1 and 5")
	}
	if strings.TrimSpace(input.MoodType) == "" {
		return nil, invalid("mood_type is required")
	}
	mood := MoodCheckin{
		ID:        uuid.NewString(),
		UserID:    input.UserID,
		MoodLevel: input.MoodLevel,
		MoodType:  strings.TrimSpace(input.MoodType),
		Notes:     input.Notes,
		CreatedAt: s.now(),
	}
	if err := s.repo.CreateMood(ctx, mood); err != nil {
		return nil, err
	}
	if err := s.invalidate(ctx, input.UserID); err != nil {
		return nil, err
	}
	return &mood, nil
}

// ListMoods returns the user's mood check-ins within the window, newest first.
func (s *Service) ListMoods(ctx context.Context, userID string, window Range) ([]MoodCheckin, error) {
	return s.repo.ListMoods(ctx, userID, window)
}

// RecordFocusInput captures a focus session.
type RecordFocusInput struct {
	UserID          string
	Activity        string
	DurationMinutes int
	Notes           string
}

// RecordFocusSession stores a focus session that started now.
func (s *Service) RecordFocusSession(ctx context.Context, input RecordFocusInput) (*FocusSession, error) {
	if strings.TrimSpace(input.Activity) == "" {
		return nil, invalid("activity is required")
	}
	if input.DurationMinutes <= 0 {
		return nil, invalid("duration_minutes must be > 0")
	}
	now := s.now()
	session := FocusSession{
		ID:              uuid.NewString(),
		UserID:          input.UserID,
		Activity:        strings.TrimSpace(input.Activity),
		DurationMinutes: input.DurationMinutes,
		Notes:           input.Notes,
		StartedAt:       now,
		CreatedAt:       now,
	}
	if err := s.repo.CreateFocusSession(ctx, session); err != nil {
		return nil, err
	}
	if err := s.invalidate(ctx, input.UserID); err != nil {
		return nil, err
	}
	return &session, nil
}

// ListFocusSessions returns the user's focus sessions within the window, newest first.
func (s *Service) ListFocusSessions(ctx context.Context, userID string, window Range) ([]FocusSession, error) {
	return s.repo.ListFocusSessions(ctx, userID, window)
}

// WriteJournalInput captures a journal entry.
type WriteJournalInput struct {
	UserID  string
	Title   string
	Content string
	Mood    string
}

// WriteJournalEntry stores a journal entry.
func (s *Service) WriteJournalEntry(ctx context.Context, input WriteJournalInput) (*JournalEntry, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Content) == "" {
		return nil, invalid("title and content are required")
	}
	entry := JournalEntry{
		ID:        uuid.NewString(),
		UserID:    input.UserID,
		Title:     strings.TrimSpace(input.Title),
		Content:   input.Content,
		Mood:      input.Mood,
		CreatedAt: s.now(),
	}
	if err := s.repo.CreateJournalEntry(ctx, entry); err != nil {
		return nil, err
	}
	if err := s.invalidate(ctx, input.UserID); err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListJournalEntries returns the user's journal entries within the window, newest first.
func (s *Service) ListJournalEntries(ctx context.Context, userID string, window Range) ([]JournalEntry, error) {
	return s.repo.ListJournalEntries(ctx, userID, window)
}

// CreateRoutineInput captures a routine.
type CreateRoutineInput struct {
	UserID      string
	Name        string
	Description string
	Completed   bool
}

// CreateRoutine stores a routine, stamping completed_at when it is created already done.
func (s *Service) CreateRoutine(ctx context.Context, input CreateRoutineInput) (*Routine, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, invalid("name is required")
	}
	now := s.now()
	routine := Routine{
		ID:          uuid.NewString(),
		UserID:      input.UserID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Completed:   input.Completed,
		CreatedAt:   now,
	}
	if input.Completed {
		routine.CompletedAt = &now
	}
	if err := s.repo.CreateRoutine(ctx, routine); err != nil {
		return nil, err
	}
	if err := s.invalidate(ctx, input.UserID); err != nil {
		return nil, err
	}
	return &routine, nil
}

// CompleteRoutine marks a routine done. Completing an already completed routine is a no-op.
func (s *Service) CompleteRoutine(ctx context.Context, userID, routineID string) (*Routine, error) {
	routine, err := s.repo.CompleteRoutine(ctx, userID, routineID, s.now())
	if err != nil {
		return nil, err
	}
	if routine == nil {
		return nil, ErrNotFound
	}
	if err := s.invalidate(ctx, userID); err != nil {
		return nil, err
	}
	return routine, nil
}

// ListRoutines returns the user's routines within the window, newest first.
func (s *Service) ListRoutines(ctx context.Context, userID string, window Range) ([]Routine, error) {
	return s.repo.ListRoutines(ctx, userID, window)
}

// RecordMeditationInput captures a meditation session.
type RecordMeditationInput struct {
	UserID          string
	Type            string
	DurationMinutes int
	Notes           string
}

// RecordMeditation stores a meditation session that started now.
func (s *Service) RecordMeditation(ctx context.Context, input RecordMeditationInput) (*MeditationSession, error) {
	if strings.TrimSpace(input.Type) == "" {
		return nil, invalid("type is required")
	}
	if input.DurationMinutes <= 0 {
		return nil, invalid("duration_minutes must be > 0")
	}
	now := s.now()
	session := MeditationSession{
		ID:              uuid.NewString(),
		UserID:          input.UserID,
		Type:            strings.TrimSpace(input.Type),
		DurationMinutes: input.DurationMinutes,
		Notes:           input.Notes,
		StartedAt:       now,
		CreatedAt:       now,
	}
	if err := s.repo.CreateMeditation(ctx, session); err != nil {
		return nil, err
	}
	if err := s.invalidate(ctx, input.UserID); err != nil {
		return nil, err
	}
	return &session, nil
}

// ListMeditations returns the user's meditation sessions within the window, newest first.
func (s *Service) ListMeditations(ctx context.Context, userID string, window Range) ([]MeditationSession, error) {
	return s.repo.ListMeditations(ctx, userID, window)
}
