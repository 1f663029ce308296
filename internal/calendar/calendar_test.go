package calendar

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/require"

	"github.com/Navaneeth-Nair/Neuromate/internal/domain"
)

func ts(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func ptr(v time.Time) *time.Time { return &v }

func TestLevelThresholds(t *testing.T) {
	cases := map[int]int{0: 0, 1: 1, 2: 1, 3: 2, 4: 2, 5: 3, 6: 4, 7: 4, 42: 4}
	for count, want := range cases {
		require.Equalf(t, want, Level(count), "count=%d", count)
	}
}

func TestNormalizeCompletedTask(t *testing.T) {
	set := RecordSet{Tasks: []domain.Task{{
		ID:          "t1",
		Title:       "Write report",
		Completed:   true,
		CompletedAt: ptr(ts(t, "2025-03-10T14:30:00Z")),
	}}}

	activities, skipped := Normalize(set, time.UTC)
	require.Zero(t, skipped.Total())
	require.Len(t, activities, 1)
	require.Equal(t, domain.CategoryTask, activities[0].Category)
	require.Equal(t, "Write report", activities[0].Title)
	require.Equal(t, "2:30 PM", activities[0].TimeLabel)
	require.Equal(t, 10, activities[0].Date.Day())
}

func TestNormalizeTitlesPerCategory(t *testing.T) {
	at := ts(t, "2025-05-01T08:05:00Z")
	set := RecordSet{
		Moods:       []domain.MoodCheckin{{MoodLevel: 4, CreatedAt: at}, {MoodLevel: 9, CreatedAt: at}},
		Focus:       []domain.FocusSession{{Activity: "Deep work", DurationMinutes: 45, StartedAt: at}},
		Journals:    []domain.JournalEntry{{Title: "Morning pages", CreatedAt: at}},
		Routines:    []domain.Routine{{Name: "Stretch", Completed: true, CompletedAt: &at}},
		Meditations: []domain.MeditationSession{{Type: "Breathing", DurationMinutes: 10, StartedAt: at}},
	}

	activities, _ := Normalize(set, time.UTC)
	titles := make([]string, 0, len(activities))
	for _, a := range activities {
		titles = append(titles, a.Title)
		require.Equal(t, "8:05 AM", a.TimeLabel)
	}
	require.Equal(t, []string{
		"Mood: Happy",
		"Mood: Unknown",
		"Focus: Deep work (45m)",
		"Morning pages",
		"Stretch",
		"Breathing meditation (10m)",
	}, titles)
}

func TestNormalizeExcludesIncompleteAndSkipsMissingDates(t *testing.T) {
	at := ts(t, "2025-02-02T10:00:00Z")
	set := RecordSet{
		Tasks: []domain.Task{
			{Title: "open", Completed: false},
			{Title: "flag only", Completed: true},
			{Title: "zero date", Completed: true, CompletedAt: &time.Time{}},
		},
		Routines: []domain.Routine{{Name: "not yet", Completed: false, CompletedAt: &at}},
		Moods:    []domain.MoodCheckin{{MoodLevel: 3}},
		Focus:    []domain.FocusSession{{Activity: "x", DurationMinutes: 5}},
	}

	activities, skipped := Normalize(set, time.UTC)
	require.Empty(t, activities)
	require.Equal(t, 1, skipped[domain.CategoryTask])
	require.Equal(t, 1, skipped[domain.CategoryMood])
	require.Equal(t, 1, skipped[domain.CategoryFocus])
	require.Equal(t, 3, skipped.Total())
}

func TestNormalizeUsesLocationForDayAndTime(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	set := RecordSet{Journals: []domain.JournalEntry{{Title: "late", CreatedAt: ts(t, "2025-03-11T02:15:00Z")}}}

	activities, _ := Normalize(set, loc)
	require.Len(t, activities, 1)
	require.Equal(t, 10, activities[0].Date.Day())
	require.Equal(t, "10:15 PM", activities[0].TimeLabel)
}

func TestBucketizeCurrentYearEndsToday(t *testing.T) {
	today := ts(t, "2025-03-10T18:00:00Z")
	days := Bucketize(nil, 2025, today, time.UTC)

	require.Len(t, days, 31+28+10)
	require.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), days[0].Date)
	require.Equal(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), days[len(days)-1].Date)
}

func TestBucketizePastYearCoversWholeYear(t *testing.T) {
	today := ts(t, "2025-03-10T18:00:00Z")
	days := Bucketize(nil, 2024, today, time.UTC)

	require.Len(t, days, 366)
	require.Equal(t, time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC), days[len(days)-1].Date)
	for i := 1; i < len(days); i++ {
		require.True(t, days[i].Date.After(days[i-1].Date))
	}
}

func TestBucketizeCountsOnlyActivitiesInsideWindow(t *testing.T) {
	today := ts(t, "2025-03-10T12:00:00Z")
	activities := []Activity{
		{Category: domain.CategoryMood, Title: "a", Date: ts(t, "2025-01-01T00:00:00Z")},
		{Category: domain.CategoryMood, Title: "b", Date: ts(t, "2025-03-10T23:59:59Z")},
		{Category: domain.CategoryMood, Title: "c", Date: ts(t, "2025-03-11T00:00:00Z")},
		{Category: domain.CategoryMood, Title: "d", Date: ts(t, "2024-12-31T23:59:59Z")},
		{Category: domain.CategoryMood, Title: "e", Date: ts(t, "2025-02-14T09:00:00Z")},
	}

	days := Bucketize(activities, 2025, today, time.UTC)
	total := 0
	for _, day := range days {
		total += day.Count
		require.Equal(t, len(day.Activities), day.Count)
		require.Equal(t, Level(day.Count), day.Level)
	}
	require.Equal(t, 3, total)
}

func TestBucketizeIsOrderIndependent(t *testing.T) {
	today := ts(t, "2025-12-31T12:00:00Z")
	activities := []Activity{
		{Category: domain.CategoryJournal, Title: "j", Date: ts(t, "2025-06-01T09:00:00Z")},
		{Category: domain.CategoryTask, Title: "t", Date: ts(t, "2025-06-01T09:00:00Z")},
		{Category: domain.CategoryMood, Title: "m", Date: ts(t, "2025-06-01T07:00:00Z")},
		{Category: domain.CategoryFocus, Title: "f", Date: ts(t, "2025-07-04T10:00:00Z")},
	}
	reversed := make([]Activity, len(activities))
	for i, a := range activities {
		reversed[len(activities)-1-i] = a
	}

	first := Bucketize(activities, 2025, today, time.UTC)
	second := Bucketize(activities, 2025, today, time.UTC)
	third := Bucketize(reversed, 2025, today, time.UTC)
	require.Equal(t, first, second)
	require.Equal(t, first, third)

	june1 := first[time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC).YearDay()-1]
	require.Equal(t, []string{"m", "t", "j"}, []string{june1.Activities[0].Title, june1.Activities[1].Title, june1.Activities[2].Title})
}

func TestSixActivitiesOnOneDayReachTopLevel(t *testing.T) {
	today := ts(t, "2025-12-31T12:00:00Z")
	base := ts(t, "2025-04-02T08:00:00Z")
	activities := make([]Activity, 0, 6)
	for i, category := range domain.Categories {
		activities = append(activities, Activity{Category: category, Title: string(category), Date: base.Add(time.Duration(i) * time.Hour)})
	}

	days := Bucketize(activities, 2025, today, time.UTC)
	day := days[base.YearDay()-1]
	require.Equal(t, 6, day.Count)
	require.Equal(t, 4, day.Level)
}

func TestBuildGridPadsToMonday(t *testing.T) {
	today := ts(t, "2026-01-15T00:00:00Z")
	days := Bucketize(nil, 2025, today, time.UTC)
	grid := BuildGrid(days)

	require.Equal(t, time.Wednesday, days[0].Date.Weekday())
	require.Equal(t, 2, grid.PaddingDays)
	require.Equal(t, time.Date(2024, time.December, 30, 0, 0, 0, 0, time.UTC), grid.Start)
	require.Equal(t, NoDay, grid.Weeks[0][0])
	require.Equal(t, NoDay, grid.Weeks[0][1])
	require.Equal(t, 0, grid.Weeks[0][2])
	require.Len(t, grid.Weeks, 53)

	last := grid.Weeks[len(grid.Weeks)-1]
	require.Equal(t, len(days)-1, last[2])
	for d := 3; d < 7; d++ {
		require.Equal(t, NoDay, last[d])
	}

	require.Len(t, grid.MonthLabels, 12)
	require.Equal(t, MonthLabel{Month: time.January, Label: "Jan", WeekIndex: 0}, grid.MonthLabels[0])
	require.Equal(t, MonthLabel{Month: time.February, Label: "Feb", WeekIndex: 4}, grid.MonthLabels[1])
	require.Equal(t, MonthLabel{Month: time.March, Label: "Mar", WeekIndex: 8}, grid.MonthLabels[2])
}

func TestBuildGridAlignment(t *testing.T) {
	today := ts(t, "2030-01-01T00:00:00Z")
	require.Equal(t, 0, BuildGrid(Bucketize(nil, 2024, today, time.UTC)).PaddingDays)
	require.Equal(t, 6, BuildGrid(Bucketize(nil, 2023, today, time.UTC)).PaddingDays)
}

func TestBuildGridTotalsAndLabelsCurrentYear(t *testing.T) {
	today := ts(t, "2025-03-10T20:00:00Z")
	activities := []Activity{
		{Category: domain.CategoryTask, Title: "Write report", Date: ts(t, "2025-03-10T14:30:00Z")},
	}
	days := Bucketize(activities, 2025, today, time.UTC)
	grid := BuildGrid(days)

	require.Equal(t, 1, grid.TotalActivities)
	require.Len(t, grid.MonthLabels, 3)
	require.Equal(t, (2+len(days)+6)/7, len(grid.Weeks))

	cal := &Calendar{Days: days, Grid: grid}
	day := cal.Cell(grid.MonthLabels[2].WeekIndex+1, 0)
	require.NotNil(t, day)
	require.Equal(t, time.March, day.Date.Month())
	require.Nil(t, cal.Cell(0, 0))
	require.Nil(t, cal.Cell(99, 0))
}

func TestBuildGridEmpty(t *testing.T) {
	require.Equal(t, Grid{}, BuildGrid(nil))
}
