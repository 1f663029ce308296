package calendar

import (
	"fmt"
	"time"

	"github.com/Navaneeth-Nair/Neuromate/internal/domain"
)

// TimeLayout renders the hour and minute with an AM/PM marker, e.g. "2:30 PM".
const TimeLayout = "3:04 PM"

var moodLabels = map[int]string{
	1: "Very Sad",
	2: "Sad",
	3: "Neutral",
	4: "Happy",
	5: "Very Happy",
}

// MoodLabel maps a 1..5 mood level to its display name.
func MoodLabel(level int) string {
	if label, ok := moodLabels[level]; ok {
		return label
	}
	return "Unknown"
}

// Skipped counts records dropped per category because they had no usable timestamp.
type Skipped map[domain.Category]int

// Total returns the number of skipped records across categories.
func (s Skipped) Total() int {
	total := 0
	for _, n := range s {
		total += n
	}
	return total
}

// Normalize flattens every category of set into activities, dating each in loc.
// Incomplete tasks and routines are excluded. Records whose date is missing are
// skipped and reported.
func Normalize(set RecordSet, loc *time.Location) ([]Activity, Skipped) {
	if loc == nil {
		loc = time.UTC
	}
	skipped := Skipped{}
	out := make([]Activity, 0, len(set.Tasks)+len(set.Moods)+len(set.Focus)+len(set.Journals)+len(set.Routines)+len(set.Meditations))

	add := func(category domain.Category, title string, at time.Time) {
		if at.IsZero() {
			skipped[category]++
			return
		}
		local := at.In(loc)
		out = append(out, Activity{
			Category:  category,
			Title:     title,
			TimeLabel: local.Format(TimeLayout),
			Date:      local,
		})
	}

	for _, task := range set.Tasks {
		if !task.Completed || task.CompletedAt == nil {
			continue
		}
		add(domain.CategoryTask, task.Title, *task.CompletedAt)
	}
	for _, mood := range set.Moods {
		add(domain.CategoryMood, "Mood: "+MoodLabel(mood.MoodLevel), mood.CreatedAt)
	}
	for _, focus := range set.Focus {
		add(domain.CategoryFocus, fmt.Sprintf("Focus: %s (%dm)", focus.Activity, focus.DurationMinutes), focus.StartedAt)
	}
	for _, journal := range set.Journals {
		add(domain.CategoryJournal, journal.Title, journal.CreatedAt)
	}
	for _, routine := range set.Routines {
		if !routine.Completed || routine.CompletedAt == nil {
			continue
		}
		add(domain.CategoryRoutine, routine.Name, *routine.CompletedAt)
	}
	for _, meditation := range set.Meditations {
		add(domain.CategoryMeditation, fmt.Sprintf("%s meditation (%dm)", meditation.Type, meditation.DurationMinutes), meditation.StartedAt)
	}

	return out, skipped
}
