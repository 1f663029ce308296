package calendar

import (
	"sort"
	"time"
)

// Level maps a day's activity count to a heatmap intensity in [0, 4].
func Level(count int) int {
	switch {
	case count <= 0:
		return 0
	case count <= 2:
		return 1
	case count <= 4:
		return 2
	case count == 5:
		return 3
	default:
		return 4
	}
}

// Window returns the first and last calendar day shown for year. The window
// ends today when year is the current year and on Dec 31 otherwise.
func Window(year int, today time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	today = today.In(loc)
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, loc)
	if today.Year() == year {
		end = time.Date(year, today.Month(), today.Day(), 0, 0, 0, 0, loc)
	}
	return start, end
}

// Bucketize groups activities into one Day per calendar day of the window,
// ascending. Activities outside the window are ignored.
func Bucketize(activities []Activity, year int, today time.Time, loc *time.Location) []Day {
	if loc == nil {
		loc = time.UTC
	}
	start, end := Window(year, today, loc)
	length := end.YearDay() - start.YearDay() + 1

	days := make([]Day, length)
	for i := range days {
		days[i].Date = time.Date(year, time.January, 1+i, 0, 0, 0, 0, loc)
	}

	for _, activity := range activities {
		local := activity.Date.In(loc)
		if local.Year() != year {
			continue
		}
		idx := local.YearDay() - 1
		if idx >= length {
			continue
		}
		days[idx].Activities = append(days[idx].Activities, activity)
	}

	for i := range days {
		day := &days[i]
		sort.SliceStable(day.Activities, func(a, b int) bool {
			left, right := day.Activities[a], day.Activities[b]
			if !left.Date.Equal(right.Date) {
				return left.Date.Before(right.Date)
			}
			if left.Category != right.Category {
				return left.Category.Rank() < right.Category.Rank()
			}
			return left.Title < right.Title
		})
		day.Count = len(day.Activities)
		day.Level = Level(day.Count)
	}
	return days
}
