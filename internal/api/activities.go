package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Navaneeth-Nair/Neuromate/internal/auth"
	"github.com/Navaneeth-Nair/Neuromate/internal/domain"
)

// Activity kinds accepted in paths and the type query parameter.
const (
	kindTasks       = "tasks"
	kindMoods       = "moods"
	kindFocus       = "focus"
	kindJournals    = "journals"
	kindRoutines    = "routines"
	kindMeditations = "meditations"
	kindPosts       = "posts"
	kindMyPosts     = "my-posts"
)

const dateOnly = "2006-01-02"

// CreateActivityRequest is the union of fields accepted by POST /v1/activities/{kind}.
type CreateActivityRequest struct {
	Title           string `json:"title"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Completed       bool   `json:"completed"`
	MoodLevel       int    `json:"mood_level"`
	MoodType        string `json:"mood_type"`
	Mood            string `json:"mood"`
	Notes           string `json:"notes"`
	Activity        string `json:"activity"`
	Type            string `json:"type"`
	DurationMinutes int    `json:"duration_minutes"`
	Content         string `json:"content"`
}

func (h *Handler) activities(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	claims, ok := authorize(w, r, auth.ScopeActivitiesRead, auth.ScopeActivitiesWrite)
	if !ok {
		return
	}

	kind := strings.TrimSpace(r.URL.Query().Get("type"))
	if kind == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "missing type parameter")
		return
	}
	window, err := parseWindow(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	ctx := r.Context()
	userID := claims.Subject
	var items any
	switch kind {
	case kindTasks:
		items, err = listView(toTaskView)(h.service.ListTasks(ctx, userID, window))
	case kindMoods:
		items, err = listView(toMoodView)(h.service.ListMoods(ctx, userID, window))
	case kindFocus:
		items, err = listView(toFocusView)(h.service.ListFocusSessions(ctx, userID, window))
	case kindJournals:
		items, err = listView(toJournalView)(h.service.ListJournalEntries(ctx, userID, window))
	case kindRoutines:
		items, err = listView(toRoutineView)(h.service.ListRoutines(ctx, userID, window))
	case kindMeditations:
		items, err = listView(toMeditationView)(h.service.ListMeditations(ctx, userID, window))
	case kindPosts:
		items, err = listView(toPostView)(h.service.ListAllPosts(ctx))
	case kindMyPosts:
		items, err = listView(toPostView)(h.service.ListPostsByUser(ctx, userID))
	default:
		writeError(w, http.StatusBadRequest, "validation_failed", "unknown activity type "+kind)
		return
	}
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ListResponse{Type: kind, Items: items})
}

// activityByKind serves POST /v1/activities/{kind} and POST /v1/activities/{kind}/{id}/complete.
func (h *Handler) activityByKind(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/activities/"), "/")
	parts := strings.Split(rest, "/")
	if rest == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "missing activity kind")
		return
	}
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	switch {
	case len(parts) == 1:
		h.createActivity(w, r, parts[0])
	case len(parts) == 3 && parts[2] == "complete":
		h.completeActivity(w, r, parts[0], parts[1])
	default:
		writeError(w, http.StatusNotFound, "not_found", "unknown activity route")
	}
}

func (h *Handler) createActivity(w http.ResponseWriter, r *http.Request, kind string) {
	scope := auth.ScopeActivitiesWrite
	if kind == kindPosts {
		scope = auth.ScopeCommunityWrite
	}
	claims, ok := authorize(w, r, scope)
	if !ok {
		return
	}
	var req CreateActivityRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ctx := r.Context()
	userID := claims.Subject
	var (
		view any
		err  error
	)
	switch kind {
	case kindTasks:
		view, err = single(toTaskView)(h.service.CreateTask(ctx, domain.CreateTaskInput{
			UserID: userID, Title: req.Title, Description: req.Description, Completed: req.Completed,
		}))
	case kindMoods:
		view, err = single(toMoodView)(h.service.RecordMood(ctx, domain.RecordMoodInput{
			UserID: userID, MoodLevel: req.MoodLevel, MoodType: req.MoodType, Notes: req.Notes,
		}))
	case kindFocus:
		view, err = single(toFocusView)(h.service.RecordFocusSession(ctx, domain.RecordFocusInput{
			UserID: userID, Activity: req.Activity, DurationMinutes: req.DurationMinutes, Notes: req.Notes,
		}))
	case kindJournals:
		view, err = single(toJournalView)(h.service.WriteJournalEntry(ctx, domain.WriteJournalInput{
			UserID: userID, Title: req.Title, Content: req.Content, Mood: req.Mood,
		}))
	case kindRoutines:
		view, err = single(toRoutineView)(h.service.CreateRoutine(ctx, domain.CreateRoutineInput{
			UserID: userID, Name: req.Name, Description: req.Description, Completed: req.Completed,
		}))
	case kindMeditations:
		view, err = single(toMeditationView)(h.service.RecordMeditation(ctx, domain.RecordMeditationInput{
			UserID: userID, Type: req.Type, DurationMinutes: req.DurationMinutes, Notes: req.Notes,
		}))
	case kindPosts:
		view, err = single(toPostView)(h.service.CreatePost(ctx, userID, req.Content))
	default:
		writeError(w, http.StatusNotFound, "not_found", "unknown activity kind "+kind)
		return
	}
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (h *Handler) completeActivity(w http.ResponseWriter, r *http.Request, kind, id string) {
	claims, ok := authorize(w, r, auth.ScopeActivitiesWrite)
	if !ok {
		return
	}

	var (
		view any
		err  error
	)
	switch kind {
	case kindTasks:
		view, err = single(toTaskView)(h.service.CompleteTask(r.Context(), claims.Subject, id))
	case kindRoutines:
		view, err = single(toRoutineView)(h.service.CompleteRoutine(r.Context(), claims.Subject, id))
	default:
		writeError(w, http.StatusNotFound, "not_found", "only tasks and routines can be completed")
		return
	}
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// parseWindow reads the inclusive start_date/end_date bounds. Date-only values cover the whole UTC day.
func parseWindow(r *http.Request) (domain.Range, error) {
	var window domain.Range
	q := r.URL.Query()
	if raw := strings.TrimSpace(q.Get("start_date")); raw != "" {
		ts, _, err := parseBound(raw)
		if err != nil {
			return window, errInvalidParam("start_date")
		}
		window.Start = ts
	}
	if raw := strings.TrimSpace(q.Get("end_date")); raw != "" {
		ts, isDate, err := parseBound(raw)
		if err != nil {
			return window, errInvalidParam("end_date")
		}
		if isDate {
			ts = ts.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		window.End = ts
	}
	if !window.Start.IsZero() && !window.End.IsZero() && window.End.Before(window.Start) {
		return window, errInvalidParam("end_date")
	}
	return window, nil
}

func parseBound(raw string) (time.Time, bool, error) {
	if ts, err := time.Parse(dateOnly, raw); err == nil {
		return ts, true, nil
	}
	ts, err := time.Parse(time.RFC3339, raw)
	return ts, false, err
}

func errInvalidParam(name string) error {
	return fmt.Errorf("invalid %s parameter", name)
}

// listView maps a service listing onto its JSON view.
func listView[T, V any](convert func(T) V) func([]T, error) (any, error) {
	return func(items []T, err error) (any, error) {
		if err != nil {
			return nil, err
		}
		out := make([]V, 0, len(items))
		for _, item := range items {
			out = append(out, convert(item))
		}
		return out, nil
	}
}

// single maps one service result onto its JSON view.
func single[T, V any](convert func(T) V) func(*T, error) (any, error) {
	return func(item *T, err error) (any, error) {
		if err != nil {
			return nil, err
		}
		return convert(*item), nil
	}
}
