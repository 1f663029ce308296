package domain

import "time"

// Category identifies one of the wellness activity streams.
type Category string

const (
	CategoryTask       Category = "task"
	CategoryMood       Category = "mood"
	CategoryFocus      Category = "focus"
	CategoryJournal    Category = "journal"
	CategoryRoutine    Category = "routine"
	CategoryMeditation Category = "meditation"
)

// Categories lists every activity stream in display order.
var Categories = []Category{
	CategoryTask,
	CategoryMood,
	CategoryFocus,
	CategoryJournal,
	CategoryRoutine,
	CategoryMeditation,
}

// Rank returns the position of the category in Categories, or len(Categories) when unknown.
func (c Category) Rank() int {
	for i, known := range Categories {
		if known == c {
			return i
		}
	}
	return len(Categories)
}

// Range bounds a listing by the category's calendar timestamp. Zero bounds are open.
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether ts falls within the inclusive range.
func (r Range) Contains(ts time.Time) bool {
	if !r.Start.IsZero() && ts.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && ts.After(r.End) {
		return false
	}
	return true
}

// Task is a to-do item. Only completed tasks count toward the contribution calendar.
type Task struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Completed   bool
	CompletedAt *time.Time
	CreatedAt   time.Time
}

// CalendarTime is the timestamp used for range filtering.
func (t Task) CalendarTime() time.Time {
	if t.CompletedAt != nil {
		return *t.CompletedAt
	}
	return t.CreatedAt
}

// MoodCheckin records how the user felt on a 1..5 scale.
type MoodCheckin struct {
	ID        string
	UserID    string
	MoodLevel int
	MoodType  string
	Notes     string
	CreatedAt time.Time
}

// FocusSession is a block of deliberate work.
type FocusSession struct {
	ID              string
	UserID          string
	Activity        string
	DurationMinutes int
	Notes           string
	StartedAt       time.Time
	CreatedAt       time.Time
}

// JournalEntry is a free-form written reflection.
type JournalEntry struct {
	ID        string
	UserID    string
	Title     string
	Content   string
	Mood      string
	CreatedAt time.Time
}

// Routine is a recurring habit the user can tick off.
type Routine struct {
	ID          string
	UserID      string
	Name        string
	Description string
	Completed   bool
	CompletedAt *time.Time
	CreatedAt   time.Time
}

// CalendarTime is the timestamp used for range filtering.
func (r Routine) CalendarTime() time.Time {
	if r.CompletedAt != nil {
		return *r.CompletedAt
	}
	return r.CreatedAt
}

// MeditationSession records a guided or silent meditation.
type MeditationSession struct {
	ID              string
	UserID          string
	Type            string
	DurationMinutes int
	Notes           string
	StartedAt       time.Time
	CreatedAt       time.Time
}
