// Package calendar turns a user's wellness records into a year-long
// contribution heatmap laid out in Monday-first week columns.
package calendar

import (
	"time"

	"github.com/Navaneeth-Nair/Neuromate/internal/domain"
)

// Activity is the uniform view of any record that counts toward the calendar.
type Activity struct {
	Category  domain.Category
	Title     string
	TimeLabel string
	Date      time.Time
}

// RecordSet carries the raw records of every category for one user.
type RecordSet struct {
	Tasks       []domain.Task
	Moods       []domain.MoodCheckin
	Focus       []domain.FocusSession
	Journals    []domain.JournalEntry
	Routines    []domain.Routine
	Meditations []domain.MeditationSession
}

// Day is one calendar day of the window.
type Day struct {
	Date       time.Time
	Count      int
	Level      int
	Activities []Activity
}

// MonthLabel marks the first week column in which a month appears.
type MonthLabel struct {
	Month     time.Month
	Label     string
	WeekIndex int
}

// NoDay marks a grid cell that holds padding or lies past the window.
const NoDay = -1

// Grid is the Monday-first layout of a window of days.
type Grid struct {
	Start           time.Time
	PaddingDays     int
	Weeks           [][7]int
	MonthLabels     []MonthLabel
	TotalActivities int
}

// Calendar is the complete result for one user and year.
type Calendar struct {
	Year               int
	Location           *time.Location
	Today              time.Time
	Days               []Day
	Grid               Grid
	DegradedCategories []domain.Category
}

// Cell returns the day shown at (week, weekday) where weekday 0 is Monday, or nil for empty cells.
func (c *Calendar) Cell(week, weekday int) *Day {
	if week < 0 || week >= len(c.Grid.Weeks) || weekday < 0 || weekday > 6 {
		return nil
	}
	idx := c.Grid.Weeks[week][weekday]
	if idx == NoDay {
		return nil
	}
	return &c.Days[idx]
}
