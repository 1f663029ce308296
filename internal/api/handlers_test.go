package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Navaneeth-Nair/Neuromate/internal/auth"
	"github.com/Navaneeth-Nair/Neuromate/internal/cache"
	"github.com/Navaneeth-Nair/Neuromate/internal/calendar"
	"github.com/Navaneeth-Nair/Neuromate/internal/domain"
	"github.com/Navaneeth-Nair/Neuromate/internal/persistence/memory"
)

// Monday, 10 March 2025.
var fixedNow = time.Date(2025, time.March, 10, 14, 30, 0, 0, time.UTC)

type stubIssuer struct{}

func (stubIssuer) Issue(subject string, now time.Time) (string, time.Time, error) {
	return "token-" + subject, now.Add(time.Hour), nil
}

type testServer struct {
	handler *Handler
	mux     *http.ServeMux
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	clock := func() time.Time { return fixedNow }
	memo := cache.NewMemo[*calendar.Calendar](16, time.Hour)
	service := domain.NewService(memory.NewInMemoryRepository(), memo, stubIssuer{}, domain.WithClock(clock))
	calendars := calendar.NewService(calendar.NewAggregator(service, calendar.WithLocation(time.UTC)), memo)

	h := NewHandler(service, calendars, WithClock(clock))
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return &testServer{handler: h, mux: mux}
}

// do sends a request as subject; an empty subject sends it unauthenticated.
func (s *testServer) do(t *testing.T, method, target, subject string, body any, scopes ...string) *httptest.ResponseRecorder {
	t.Helper()
	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}
	req := httptest.NewRequest(method, target, &payload)
	if subject != "" {
		if len(scopes) == 0 {
			scopes = auth.DefaultScopes
		}
		granted := make(map[string]struct{}, len(scopes))
		for _, scope := range scopes {
			granted[scope] = struct{}{}
		}
		req = req.WithContext(auth.WithClaims(req.Context(), &auth.Claims{
			Subject:   subject,
			Scopes:    granted,
			ExpiresAt: fixedNow.Add(time.Hour),
		}))
	}
	rr := httptest.NewRecorder()
	s.mux.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func (s *testServer) signup(t *testing.T, email string) SessionResponse {
	t.Helper()
	rr := s.do(t, http.MethodPost, "/v1/auth/signup", "", SignupRequest{Email: email, Password: "secret1"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[SessionResponse](t, rr)
}

func TestSignupAndSignin(t *testing.T) {
	srv := newTestServer(t)

	session := srv.signup(t, "ada@example.com")
	require.Equal(t, "ada@example.com", session.User.Email)
	require.Equal(t, "ada", session.User.Username)
	require.Equal(t, "token-"+session.User.ID, session.Token)

	rr := srv.do(t, http.MethodPost, "/v1/auth/signup", "", SignupRequest{Email: "ada@example.com", Password: "secret1"})
	require.Equal(t, http.StatusConflict, rr.Code)

	rr = srv.do(t, http.MethodPost, "/v1/auth/signin", "", SigninRequest{Email: "ada@example.com", Password: "secret1"})
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, session.User.ID, decode[SessionResponse](t, rr).User.ID)

	rr = srv.do(t, http.MethodPost, "/v1/auth/signin", "", SigninRequest{Email: "ada@example.com", Password: "nope-nope"})
	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRequestValidation(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		name   string
		method string
		target string
		body   any
		want   int
	}{
		{"short password", http.MethodPost, "/v1/auth/signup", SignupRequest{Email: "a@b.c", Password: "123"}, http.StatusBadRequest},
		{"wrong method", http.MethodGet, "/v1/auth/signup", nil, http.StatusMethodNotAllowed},
		{"empty body", http.MethodPost, "/v1/contact", nil, http.StatusBadRequest},
		{"incomplete beta signup", http.MethodPost, "/v1/beta/signup", BetaSignupRequest{Name: "Ada"}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := srv.do(t, tc.method, tc.target, "", tc.body)
			require.Equal(t, tc.want, rr.Code, rr.Body.String())
		})
	}
}

func TestAuthorization(t *testing.T) {
	srv := newTestServer(t)

	rr := srv.do(t, http.MethodGet, "/v1/profile", "", nil)
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = srv.do(t, http.MethodPost, "/v1/activities/moods", "user-1", CreateActivityRequest{MoodLevel: 3, MoodType: "calm"}, auth.ScopeActivitiesRead)
	require.Equal(t, http.StatusForbidden, rr.Code)

	rr = srv.do(t, http.MethodGet, "/v1/calendar", "user-1", nil, auth.ScopeProfileRead)
	require.Equal(t, http.StatusForbidden, rr.Code)
}

func TestProfileLifecycle(t *testing.T) {
	srv := newTestServer(t)
	session := srv.signup(t, "grace@example.com")
	userID := session.User.ID

	rr := srv.do(t, http.MethodGet, "/v1/profile", userID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "grace", decode[ProfileView](t, rr).Username)

	mood := "focused"
	rr = srv.do(t, http.MethodPut, "/v1/profile", userID, UpdateProfileRequest{Mood: &mood})
	require.Equal(t, http.StatusOK, rr.Code)
	updated := decode[ProfileView](t, rr)
	require.Equal(t, "focused", updated.Mood)
	require.Equal(t, "grace", updated.Username)

	rr = srv.do(t, http.MethodPut, "/v1/profile", userID, UpdateProfileRequest{})
	require.Equal(t, http.StatusBadRequest, rr.Code)

	rr = srv.do(t, http.MethodPut, "/v1/auth/password", userID, ChangePasswordRequest{NewPassword: "rotated1"})
	require.Equal(t, http.StatusOK, rr.Code)
	rr = srv.do(t, http.MethodPost, "/v1/auth/signin", "", SigninRequest{Email: "grace@example.com", Password: "rotated1"})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = srv.do(t, http.MethodGet, "/v1/profile", "missing-user", nil)
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestActivitiesCreateListAndComplete(t *testing.T) {
	srv := newTestServer(t)
	const user = "user-1"

	rr := srv.do(t, http.MethodPost, "/v1/activities/tasks", user, CreateActivityRequest{Title: "Write report"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	task := decode[TaskView](t, rr)
	require.False(t, task.Completed)
	require.Nil(t, task.CompletedAt)

	rr = srv.do(t, http.MethodPost, "/v1/activities/tasks/"+task.ID+"/complete", user, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	completed := decode[TaskView](t, rr)
	require.True(t, completed.Completed)
	require.NotNil(t, completed.CompletedAt)
	require.True(t, fixedNow.Equal(*completed.CompletedAt))

	rr = srv.do(t, http.MethodPost, "/v1/activities/tasks/"+task.ID+"/complete", "someone-else", nil)
	require.Equal(t, http.StatusNotFound, rr.Code)
	rr = srv.do(t, http.MethodPost, "/v1/activities/moods/"+task.ID+"/complete", user, nil)
	require.Equal(t, http.StatusNotFound, rr.Code)

	rr = srv.do(t, http.MethodPost, "/v1/activities/moods", user, CreateActivityRequest{MoodLevel: 9, MoodType: "wired"})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	rr = srv.do(t, http.MethodPost, "/v1/activities/moods", user, CreateActivityRequest{MoodLevel: 4, MoodType: "happy"})
	require.Equal(t, http.StatusCreated, rr.Code)
	rr = srv.do(t, http.MethodPost, "/v1/activities/meditations", user, CreateActivityRequest{Type: "breathing", DurationMinutes: 10})
	require.Equal(t, http.StatusCreated, rr.Code)
	rr = srv.do(t, http.MethodPost, "/v1/activities/unknown", user, CreateActivityRequest{})
	require.Equal(t, http.StatusNotFound, rr.Code)

	rr = srv.do(t, http.MethodGet, "/v1/activities?type=tasks", user, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	tasks := decode[struct {
		Type  string     `json:"type"`
		Items []TaskView `json:"items"`
	}](t, rr)
	require.Equal(t, kindTasks, tasks.Type)
	require.Len(t, tasks.Items, 1)

	rr = srv.do(t, http.MethodGet, "/v1/activities?type=moods&start_date=2025-03-11", user, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	moods := decode[struct {
		Items []MoodView `json:"items"`
	}](t, rr)
	require.Empty(t, moods.Items)

	rr = srv.do(t, http.MethodGet, "/v1/activities?type=moods&end_date=2025-03-10", user, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	moods = decode[struct {
		Items []MoodView `json:"items"`
	}](t, rr)
	require.Len(t, moods.Items, 1)

	for _, target := range []string{
		"/v1/activities",
		"/v1/activities?type=steps",
		"/v1/activities?type=moods&start_date=yesterday",
		"/v1/activities?type=moods&start_date=2025-03-10&end_date=2025-03-01",
	} {
		rr = srv.do(t, http.MethodGet, target, user, nil)
		require.Equal(t, http.StatusBadRequest, rr.Code, target)
	}
}

func TestFeedPagination(t *testing.T) {
	srv := newTestServer(t)

	for _, content := range []string{"first", "second", "third"} {
		rr := srv.do(t, http.MethodPost, "/v1/activities/posts", "user-1", CreateActivityRequest{Content: content})
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	}

	rr := srv.do(t, http.MethodGet, "/v1/posts?limit=2", "user-2", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	page := decode[FeedResponse](t, rr)
	require.Len(t, page.Items, 2)
	require.NotEmpty(t, page.NextCursor)

	rr = srv.do(t, http.MethodGet, "/v1/posts?limit=2&cursor="+page.NextCursor, "user-2", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	rest := decode[FeedResponse](t, rr)
	require.Len(t, rest.Items, 1)
	require.Empty(t, rest.NextCursor)

	seen := map[string]bool{}
	for _, post := range append(page.Items, rest.Items...) {
		seen[post.ID] = true
	}
	require.Len(t, seen, 3)

	rr = srv.do(t, http.MethodGet, "/v1/posts?cursor=!!!", "user-2", nil)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	rr = srv.do(t, http.MethodGet, "/v1/activities?type=my-posts", "user-2", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	mine := decode[struct {
		Items []PostView `json:"items"`
	}](t, rr)
	require.Empty(t, mine.Items)
}

func TestOutreachSubmissions(t *testing.T) {
	srv := newTestServer(t)

	rr := srv.do(t, http.MethodPost, "/v1/beta/signup", "", BetaSignupRequest{Name: "Ada", Email: "ada@example.com", Phone: "555-0100"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	require.NotEmpty(t, decode[MessageResponse](t, rr).ID)

	rr = srv.do(t, http.MethodPost, "/v1/contact", "", ContactRequest{Name: "Ada", Email: "ada@example.com", Message: "hello"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
}

func TestCalendarView(t *testing.T) {
	srv := newTestServer(t)
	const user = "user-1"

	rr := srv.do(t, http.MethodPost, "/v1/activities/tasks", user, CreateActivityRequest{Title: "Ship it", Completed: true})
	require.Equal(t, http.StatusCreated, rr.Code)
	rr = srv.do(t, http.MethodPost, "/v1/activities/moods", user, CreateActivityRequest{MoodLevel: 5, MoodType: "great"})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = srv.do(t, http.MethodGet, "/v1/calendar", user, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	cal := decode[CalendarResponse](t, rr)

	require.Equal(t, 2025, cal.Year)
	require.Equal(t, "UTC", cal.Timezone)
	require.Equal(t, "2025-01-01", cal.StartDate)
	require.Equal(t, "2025-03-10", cal.EndDate)
	require.Equal(t, 2, cal.TotalActivities)
	require.Equal(t, 2, cal.PaddingDays)
	require.Len(t, cal.Days, 69)
	require.Equal(t, 11, cal.TotalWeeks)
	require.Len(t, cal.Weeks, 11)
	require.Empty(t, cal.DegradedCategories)

	require.Nil(t, cal.Weeks[0][0])
	require.Nil(t, cal.Weeks[0][1])
	require.Equal(t, "2025-01-01", *cal.Weeks[0][2])
	require.Equal(t, "2025-03-10", *cal.Weeks[10][0])
	require.Nil(t, cal.Weeks[10][1])

	require.Equal(t, []MonthLabelView{
		{Month: 1, Label: "Jan", WeekIndex: 0},
		{Month: 2, Label: "Feb", WeekIndex: 4},
		{Month: 3, Label: "Mar", WeekIndex: 8},
	}, cal.MonthLabels)

	today := cal.Days[len(cal.Days)-1]
	require.Equal(t, 2, today.Count)
	require.Equal(t, 1, today.Level)
	require.Len(t, today.Activities, 2)
	for _, item := range today.Activities {
		require.Equal(t, "2:30 PM", item.Time)
		require.Equal(t, "2025-03-10T14:30:00Z", item.Date)
	}

	// Writes invalidate the memoized calendar.
	rr = srv.do(t, http.MethodPost, "/v1/activities/journals", user, CreateActivityRequest{Title: "Day one", Content: "notes"})
	require.Equal(t, http.StatusCreated, rr.Code)
	rr = srv.do(t, http.MethodGet, "/v1/calendar?year=2025", user, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, 3, decode[CalendarResponse](t, rr).TotalActivities)
}

func TestCalendarParameters(t *testing.T) {
	srv := newTestServer(t)

	rr := srv.do(t, http.MethodGet, "/v1/calendar?year=2024", "user-1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	past := decode[CalendarResponse](t, rr)
	require.Len(t, past.Days, 366)
	require.Equal(t, "2024-12-31", past.EndDate)
	require.Zero(t, past.TotalActivities)

	rr = srv.do(t, http.MethodGet, "/v1/calendar?tz=Asia/Tokyo", "user-1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	tokyo := decode[CalendarResponse](t, rr)
	require.Equal(t, "Asia/Tokyo", tokyo.Timezone)
	require.Equal(t, "2025-03-10", tokyo.EndDate)

	for _, target := range []string{
		"/v1/calendar?year=abc",
		"/v1/calendar?year=1800",
		"/v1/calendar?tz=Mars/Olympus",
	} {
		rr = srv.do(t, http.MethodGet, target, "user-1", nil)
		require.Equal(t, http.StatusBadRequest, rr.Code, target)
	}
}
