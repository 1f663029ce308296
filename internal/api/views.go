package api

import (
	"time"

	"github.com/Navaneeth-Nair/Neuromate/internal/calendar"
	"github.com/Navaneeth-Nair/Neuromate/internal/domain"
)

// MessageResponse acknowledges a write that has no richer body.
type MessageResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// SessionResponse is returned by signup and signin.
type SessionResponse struct {
	User      ProfileView `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// ProfileView exposes a user's profile.
type ProfileView struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	Mood        string    `json:"mood,omitempty"`
	Status      string    `json:"status,omitempty"`
	FirstName   string    `json:"first_name,omitempty"`
	LastName    string    `json:"last_name,omitempty"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskView exposes a task.
type TaskView struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// MoodView exposes a mood check-in.
type MoodView struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	MoodLevel int       `json:"mood_level"`
	MoodType  string    `json:"mood_type"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// FocusView exposes a focus session.
type FocusView struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Activity        string    `json:"activity"`
	DurationMinutes int       `json:"duration_minutes"`
	Notes           string    `json:"notes,omitempty"`
	StartedAt       time.Time `json:"started_at"`
	CreatedAt       time.Time `json:"created_at"`
}

// JournalView exposes a journal entry.
type JournalView struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Mood      string    `json:"mood,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// RoutineView exposes a routine.
type RoutineView struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// MeditationView exposes a meditation session.
type MeditationView struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Type            string    `json:"type"`
	DurationMinutes int       `json:"duration_minutes"`
	Notes           string    `json:"notes,omitempty"`
	StartedAt       time.Time `json:"started_at"`
	CreatedAt       time.Time `json:"created_at"`
}

// PostView exposes a community post.
type PostView struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ListResponse packages the records of one activity type.
type ListResponse struct {
	Type  string `json:"type"`
	Items any    `json:"items"`
}

// FeedResponse packages one page of the community feed.
type FeedResponse struct {
	Items      []PostView `json:"items"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

// CalendarResponse is the contribution calendar for one year.
type CalendarResponse struct {
	Year               int              `json:"year"`
	Timezone           string           `json:"timezone"`
	StartDate          string           `json:"start_date"`
	EndDate            string           `json:"end_date"`
	TotalActivities    int              `json:"total_activities"`
	TotalWeeks         int              `json:"total_weeks"`
	PaddingDays        int              `json:"padding_days"`
	MonthLabels        []MonthLabelView `json:"month_labels"`
	Days               []DayView        `json:"days"`
	Weeks              [][7]*string     `json:"weeks"`
	DegradedCategories []string         `json:"degraded_categories"`
}

// MonthLabelView marks the first week column of a month.
type MonthLabelView struct {
	Month     int    `json:"month"`
	Label     string `json:"label"`
	WeekIndex int    `json:"week_index"`
}

// DayView is one cell of the heatmap.
type DayView struct {
	Date       string             `json:"date"`
	Count      int                `json:"count"`
	Level      int                `json:"level"`
	Activities []ActivityItemView `json:"activities"`
}

// ActivityItemView is one contribution listed under a day.
type ActivityItemView struct {
	Category string `json:"category"`
	Title    string `json:"title"`
	Time     string `json:"time"`
	Date     string `json:"date"`
}

func toSessionResponse(s domain.Session) SessionResponse {
	return SessionResponse{User: toProfileView(s.Profile), Token: s.Token, ExpiresAt: s.ExpiresAt}
}

func toProfileView(p domain.Profile) ProfileView {
	return ProfileView{
		ID:          p.ID,
		Email:       p.Email,
		Username:    p.Username,
		AvatarURL:   p.AvatarURL,
		Mood:        p.Mood,
		Status:      p.Status,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		PhoneNumber: p.PhoneNumber,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toTaskView(t domain.Task) TaskView {
	return TaskView{ID: t.ID, UserID: t.UserID, Title: t.Title, Description: t.Description,
		Completed: t.Completed, CompletedAt: t.CompletedAt, CreatedAt: t.CreatedAt}
}

func toMoodView(m domain.MoodCheckin) MoodView {
	return MoodView{ID: m.ID, UserID: m.UserID, MoodLevel: m.MoodLevel, MoodType: m.MoodType, Notes: m.Notes, CreatedAt: m.CreatedAt}
}

func toFocusView(s domain.FocusSession) FocusView {
	return FocusView{ID: s.ID, UserID: s.UserID, Activity: s.Activity, DurationMinutes: s.DurationMinutes,
		Notes: s.Notes, StartedAt: s.StartedAt, CreatedAt: s.CreatedAt}
}

func toJournalView(e domain.JournalEntry) JournalView {
	return JournalView{ID: e.ID, UserID: e.UserID, Title: e.Title, Content: e.Content, Mood: e.Mood, CreatedAt: e.CreatedAt}
}

func toRoutineView(r domain.Routine) RoutineView {
	return RoutineView{ID: r.ID, UserID: r.UserID, Name: r.Name, Description: r.Description,
		Completed: r.Completed, CompletedAt: r.CompletedAt, CreatedAt: r.CreatedAt}
}

func toMeditationView(s domain.MeditationSession) MeditationView {
	return MeditationView{ID: s.ID, UserID: s.UserID, Type: s.Type, DurationMinutes: s.DurationMinutes,
		Notes: s.Notes, StartedAt: s.StartedAt, CreatedAt: s.CreatedAt}
}

func toPostView(p domain.Post) PostView {
	return PostView{ID: p.ID, UserID: p.UserID, Content: p.Content, CreatedAt: p.CreatedAt}
}

func toCalendarResponse(cal *calendar.Calendar) CalendarResponse {
	resp := CalendarResponse{
		Year:               cal.Year,
		Timezone:           cal.Location.String(),
		TotalActivities:    cal.Grid.TotalActivities,
		TotalWeeks:         len(cal.Grid.Weeks),
		PaddingDays:        cal.Grid.PaddingDays,
		MonthLabels:        make([]MonthLabelView, 0, len(cal.Grid.MonthLabels)),
		Days:               make([]DayView, 0, len(cal.Days)),
		Weeks:              make([][7]*string, len(cal.Grid.Weeks)),
		DegradedCategories: make([]string, 0, len(cal.DegradedCategories)),
	}
	if len(cal.Days) > 0 {
		resp.StartDate = cal.Days[0].Date.Format(dateOnly)
		resp.EndDate = cal.Days[len(cal.Days)-1].Date.Format(dateOnly)
	}

	for _, label := range cal.Grid.MonthLabels {
		resp.MonthLabels = append(resp.MonthLabels, MonthLabelView{Month: int(label.Month), Label: label.Label, WeekIndex: label.WeekIndex})
	}

	dates := make([]string, len(cal.Days))
	for i, day := range cal.Days {
		dates[i] = day.Date.Format(dateOnly)
		items := make([]ActivityItemView, 0, len(day.Activities))
		for _, a := range day.Activities {
			items = append(items, ActivityItemView{
				Category: string(a.Category),
				Title:    a.Title,
				Time:     a.TimeLabel,
				Date:     a.Date.In(cal.Location).Format(time.RFC3339),
			})
		}
		resp.Days = append(resp.Days, DayView{Date: dates[i], Count: day.Count, Level: day.Level, Activities: items})
	}

	for w, week := range cal.Grid.Weeks {
		for d, idx := range week {
			if idx != calendar.NoDay {
				resp.Weeks[w][d] = &dates[idx]
			}
		}
	}

	for _, c := range cal.DegradedCategories {
		resp.DegradedCategories = append(resp.DegradedCategories, string(c))
	}
	return resp
}
