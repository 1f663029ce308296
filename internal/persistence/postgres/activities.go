package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Navaneeth-Nair/Neuromate/internal/domain"
)

const (
	taskColumns       = `id, user_id, title, COALESCE(description,''), completed, completed_at, created_at`
	moodColumns       = `id, user_id, mood_level, mood_type, COALESCE(notes,''), created_at`
	focusColumns      = `id, user_id, activity, duration_minutes, COALESCE(notes,''), started_at, created_at`
	journalColumns    = `id, user_id, title, content, COALESCE(mood,''), created_at`
	routineColumns    = `id, user_id, name, COALESCE(description,''), completed, completed_at, created_at`
	meditationColumns = `id, user_id, type, duration_minutes, COALESCE(notes,''), started_at, created_at`
)

// windowClause filters column against the optional $2/$3 bounds.
func windowClause(column string) string {
	return `($2::timestamptz IS NULL OR ` + column + ` >= $2) AND ($3::timestamptz IS NULL OR ` + column + ` <= $3)`
}

func (r *Repository) list(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	return r.pool.Query(ctx, query, args...)
}

func collect[T any](scan func(pgx.Row) (T, error)) pgx.RowToFunc[T] {
	return func(row pgx.CollectableRow) (T, error) {
		return scan(row)
	}
}

func listWindow[T any](ctx context.Context, r *Repository, query string, scan func(pgx.Row) (T, error), userID string, window domain.Range) ([]T, error) {
	rows, err := r.list(ctx, query, userID, bound(window.Start), bound(window.End))
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, collect(scan))
}

// CreateTask inserts a task and, when it is already completed, its activity.recorded event.
func (r *Repository) CreateTask(ctx context.Context, task domain.Task) error {
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		const stmt = `INSERT INTO tasks (id, user_id, title, description, completed, completed_at, created_at)
            VALUES ($1,$2,$3,$4,$5,$6,$7)`
		if _, err := tx.Exec(ctx, stmt, task.ID, task.UserID, task.Title, nullIfEmpty(task.Description),
			task.Completed, task.CompletedAt, task.CreatedAt); err != nil {
			return err
		}
		if !task.Completed || task.CompletedAt == nil {
			return nil
		}
		return r.recordActivity(ctx, tx, domain.CategoryTask, task.ID, task.UserID, task.Title, *task.CompletedAt)
	})
	if err != nil {
		return err
	}
	if task.Completed && task.CompletedAt != nil {
		persisted(domain.CategoryTask, *task.CompletedAt)
	}
	return nil
}

// CompleteTask marks a task done. Completing an already completed task keeps the original timestamp.
func (r *Repository) CompleteTask(ctx context.Context, userID, taskID string, at time.Time) (*domain.Task, error) {
	if _, err := uuid.Parse(taskID); err != nil {
		return nil, nil
	}

	var (
		task    *domain.Task
		emitted bool
	)
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id=$1 AND user_id=$2 FOR UPDATE`, taskID, userID)
		current, err := scanTask(row)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		task = &current
		if current.Completed && current.CompletedAt != nil {
			return nil
		}

		if _, err := tx.Exec(ctx, `UPDATE tasks SET completed=TRUE, completed_at=$3 WHERE id=$1 AND user_id=$2`, taskID, userID, at); err != nil {
			return err
		}
		task.Completed = true
		task.CompletedAt = &at
		emitted = true
		return r.recordActivity(ctx, tx, domain.CategoryTask, task.ID, userID, task.Title, at)
	})
	if err != nil {
		return nil, err
	}
	if emitted {
		persisted(domain.CategoryTask, at)
	}
	return task, nil
}

// ListTasks filters on completed_at, falling back to created_at for open tasks.
func (r *Repository) ListTasks(ctx context.Context, userID string, window domain.Range) ([]domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id=$1 AND ` +
		windowClause("COALESCE(completed_at, created_at)") + ` ORDER BY COALESCE(completed_at, created_at) DESC`
	return listWindow(ctx, r, query, scanTask, userID, window)
}

// CreateMood inserts a mood check-in and its event.
func (r *Repository) CreateMood(ctx context.Context, mood domain.MoodCheckin) error {
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		const stmt = `INSERT INTO mood_checkins (id, user_id, mood_level, mood_type, notes, created_at) VALUES ($1,$2,$3,$4,$5,$6)`
		if _, err := tx.Exec(ctx, stmt, mood.ID, mood.UserID, mood.MoodLevel, mood.MoodType, nullIfEmpty(mood.Notes), mood.CreatedAt); err != nil {
			return err
		}
		return r.recordActivity(ctx, tx, domain.CategoryMood, mood.ID, mood.UserID, mood.MoodType, mood.CreatedAt)
	})
	if err != nil {
		return err
	}
	persisted(domain.CategoryMood, mood.CreatedAt)
	return nil
}

// ListMoods filters on created_at.
func (r *Repository) ListMoods(ctx context.Context, userID string, window domain.Range) ([]domain.MoodCheckin, error) {
	query := `SELECT ` + moodColumns + ` FROM mood_checkins WHERE user_id=$1 AND ` + windowClause("created_at") + ` ORDER BY created_at DESC`
	return listWindow(ctx, r, query, scanMood, userID, window)
}

// CreateFocusSession inserts a focus session and its event.
func (r *Repository) CreateFocusSession(ctx context.Context, session domain.FocusSession) error {
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		const stmt = `INSERT INTO focus_sessions (id, user_id, activity, duration_minutes, notes, started_at, created_at)
            VALUES ($1,$2,$3,$4,$5,$6,$7)`
		if _, err := tx.Exec(ctx, stmt, session.ID, session.UserID, session.Activity, session.DurationMinutes,
			nullIfEmpty(session.Notes), session.StartedAt, session.CreatedAt); err != nil {
			return err
		}
		return r.recordActivity(ctx, tx, domain.CategoryFocus, session.ID, session.UserID, session.Activity, session.StartedAt)
	})
	if err != nil {
		return err
	}
	persisted(domain.CategoryFocus, session.StartedAt)
	return nil
}

// ListFocusSessions filters on started_at.
func (r *Repository) ListFocusSessions(ctx context.Context, userID string, window domain.Range) ([]domain.FocusSession, error) {
	query := `SELECT ` + focusColumns + ` FROM focus_sessions WHERE user_id=$1 AND ` + windowClause("started_at") + ` ORDER BY started_at DESC`
	return listWindow(ctx, r, query, scanFocus, userID, window)
}

// CreateJournalEntry inserts a journal entry and its event.
func (r *Repository) CreateJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		const stmt = `INSERT INTO journal_entries (id, user_id, title, content, mood, created_at) VALUES ($1,$2,$3,$4,$5,$6)`
		if _, err := tx.Exec(ctx, stmt, entry.ID, entry.UserID, entry.Title, entry.Content, nullIfEmpty(entry.Mood), entry.CreatedAt); err != nil {
			return err
		}
		return r.recordActivity(ctx, tx, domain.CategoryJournal, entry.ID, entry.UserID, entry.Title, entry.CreatedAt)
	})
	if err != nil {
		return err
	}
	persisted(domain.CategoryJournal, entry.CreatedAt)
	return nil
}

// ListJournalEntries filters on created_at.
func (r *Repository) ListJournalEntries(ctx context.Context, userID string, window domain.Range) ([]domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journal_entries WHERE user_id=$1 AND ` + windowClause("created_at") + ` ORDER BY created_at DESC`
	return listWindow(ctx, r, query, scanJournal, userID, window)
}

// CreateRoutine inserts a routine and, when it is already completed, its event.
func (r *Repository) CreateRoutine(ctx context.Context, routine domain.Routine) error {
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		const stmt = `INSERT INTO routines (id, user_id, name, description, completed, completed_at, created_at)
            VALUES ($1,$2,$3,$4,$5,$6,$7)`
		if _, err := tx.Exec(ctx, stmt, routine.ID, routine.UserID, routine.Name, nullIfEmpty(routine.Description),
			routine.Completed, routine.CompletedAt, routine.CreatedAt); err != nil {
			return err
		}
		if !routine.Completed || routine.CompletedAt == nil {
			return nil
		}
		return r.recordActivity(ctx, tx, domain.CategoryRoutine, routine.ID, routine.UserID, routine.Name, *routine.CompletedAt)
	})
	if err != nil {
		return err
	}
	if routine.Completed && routine.CompletedAt != nil {
		persisted(domain.CategoryRoutine, *routine.CompletedAt)
	}
	return nil
}

// CompleteRoutine marks a routine done for the day it is called.
func (r *Repository) CompleteRoutine(ctx context.Context, userID, routineID string, at time.Time) (*domain.Routine, error) {
	if _, err := uuid.Parse(routineID); err != nil {
		return nil, nil
	}

	var (
		routine *domain.Routine
		emitted bool
	)
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `SELECT `+routineColumns+` FROM routines WHERE id=$1 AND user_id=$2 FOR UPDATE`, routineID, userID)
		current, err := scanRoutine(row)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		routine = &current
		if current.Completed && current.CompletedAt != nil {
			return nil
		}

		if _, err := tx.Exec(ctx, `UPDATE routines SET completed=TRUE, completed_at=$3 WHERE id=$1 AND user_id=$2`, routineID, userID, at); err != nil {
			return err
		}
		routine.Completed = true
		routine.CompletedAt = &at
		emitted = true
		return r.recordActivity(ctx, tx, domain.CategoryRoutine, routine.ID, userID, routine.Name, at)
	})
	if err != nil {
		return nil, err
	}
	if emitted {
		persisted(domain.CategoryRoutine, at)
	}
	return routine, nil
}

// ListRoutines filters on completed_at, falling back to created_at.
func (r *Repository) ListRoutines(ctx context.Context, userID string, window domain.Range) ([]domain.Routine, error) {
	query := `SELECT ` + routineColumns + ` FROM routines WHERE user_id=$1 AND ` +
		windowClause("COALESCE(completed_at, created_at)") + ` ORDER BY COALESCE(completed_at, created_at) DESC`
	return listWindow(ctx, r, query, scanRoutine, userID, window)
}

// CreateMeditation inserts a meditation session and its event.
func (r *Repository) CreateMeditation(ctx context.Context, session domain.MeditationSession) error {
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		const stmt = `INSERT INTO meditation_sessions (id, user_id, type, duration_minutes, notes, started_at, created_at)
            VALUES ($1,$2,$3,$4,$5,$6,$7)`
		if _, err := tx.Exec(ctx, stmt, session.ID, session.UserID, session.Type, session.DurationMinutes,
			nullIfEmpty(session.Notes), session.StartedAt, session.CreatedAt); err != nil {
			return err
		}
		return r.recordActivity(ctx, tx, domain.CategoryMeditation, session.ID, session.UserID, session.Type, session.StartedAt)
	})
	if err != nil {
		return err
	}
	persisted(domain.CategoryMeditation, session.StartedAt)
	return nil
}

// ListMeditations filters on started_at.
func (r *Repository) ListMeditations(ctx context.Context, userID string, window domain.Range) ([]domain.MeditationSession, error) {
	query := `SELECT ` + meditationColumns + ` FROM meditation_sessions WHERE user_id=$1 AND ` + windowClause("started_at") + ` ORDER BY started_at DESC`
	return listWindow(ctx, r, query, scanMeditation, userID, window)
}

func scanTask(row pgx.Row) (domain.Task, error) {
	var t domain.Task
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed, &t.CompletedAt, &t.CreatedAt)
	return t, err
}

func scanMood(row pgx.Row) (domain.MoodCheckin, error) {
	var m domain.MoodCheckin
	err := row.Scan(&m.ID, &m.UserID, &m.MoodLevel, &m.MoodType, &m.Notes, &m.CreatedAt)
	return m, err
}

func scanFocus(row pgx.Row) (domain.FocusSession, error) {
	var s domain.FocusSession
	err := row.Scan(&s.ID, &s.UserID, &s.Activity, &s.DurationMinutes, &s.Notes, &s.StartedAt, &s.CreatedAt)
	return s, err
}

func scanJournal(row pgx.Row) (domain.JournalEntry, error) {
	var e domain.JournalEntry
	err := row.Scan(&e.ID, &e.UserID, &e.Title, &e.Content, &e.Mood, &e.CreatedAt)
	return e, err
}

func scanRoutine(row pgx.Row) (domain.Routine, error) {
	var r domain.Routine
	err := row.Scan(&r.ID, &r.UserID, &r.Name, &r.Description, &r.Completed, &r.CompletedAt, &r.CreatedAt)
	return r, err
}

func scanMeditation(row pgx.Row) (domain.MeditationSession, error) {
	var s domain.MeditationSession
	err := row.Scan(&s.ID, &s.UserID, &s.Type, &s.DurationMinutes, &s.Notes, &s.StartedAt, &s.CreatedAt)
	return s, err
}
