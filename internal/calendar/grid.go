package calendar

import "time"

// LeadingPadding returns how many cells precede day in a Monday-first week.
func LeadingPadding(day time.Time) int {
	return (int(day.Weekday()) + 6) % 7
}

// BuildGrid lays days into week columns that start on Monday. days must be
// consecutive and ascending.
func BuildGrid(days []Day) Grid {
	if len(days) == 0 {
		return Grid{}
	}

	padding := LeadingPadding(days[0].Date)
	cells := padding + len(days)
	weeks := make([][7]int, (cells+6)/7)
	for w := range weeks {
		for d := 0; d < 7; d++ {
			idx := w*7 + d - padding
			if idx < 0 || idx >= len(days) {
				weeks[w][d] = NoDay
				continue
			}
			weeks[w][d] = idx
		}
	}

	grid := Grid{
		Start:       days[0].Date.AddDate(0, 0, -padding),
		PaddingDays: padding,
		Weeks:       weeks,
	}

	seen := make(map[time.Month]bool, 12)
	for i, day := range days {
		grid.TotalActivities += day.Count
		month := day.Date.Month()
		if seen[month] {
			continue
		}
		seen[month] = true
		grid.MonthLabels = append(grid.MonthLabels, MonthLabel{
			Month:     month,
			Label:     month.String()[:3],
			WeekIndex: (padding + i) / 7,
		})
	}
	return grid
}
