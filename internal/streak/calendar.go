// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package streak builds a GitHub-style activity calendar from a daily count
// series. BuildCalendar is a pure function of its input; no state, no I/O.
package streak

import (
	"time"

	"github.com/unisurveyal/surveyshelf/pkg/types"
)

// Level is the heatmap intensity bucket for one day.
type Level int

const (
	Level0 Level = iota // no activity
	Level1              // 1
	Level2              // 2-3
	Level3              // 4-5
	Level4              // >5
)

// LevelFor maps a daily count to its intensity bucket. Thresholds are fixed
// and monotonic.
func LevelFor(count int) Level {
	switch {
	case count <= 0:
		return Level0
	case count == 1:
		return Level1
	case count <= 3:
		return Level2
	case count <= 5:
		return Level3
	default:
		return Level4
	}
}

// Cell is one day slot in a week column.
type Cell struct {
	Day   types.ActivityDay
	Level Level
}

// Week is one calendar column: seven weekday slots, Sunday first. Slots
// before the series starts or after it ends are nil.
type Week [7]*Cell

// BuildCalendar buckets an ordered, gap-free daily series (oldest first) into
// week columns. The first column carries leading nil cells up to the weekday
// of the first day; the last column may end partially filled.
func BuildCalendar(days []types.ActivityDay) []Week {
	if len(days) == 0 {
		return nil
	}

	offset := weekdayOf(days[0].Date)

	var weeks []Week
	var current Week
	for i, day := range days {
		slot := (offset + i) % 7
		current[slot] = &Cell{Day: day, Level: LevelFor(day.Count)}
		if slot == 6 || i == len(days)-1 {
			weeks = append(weeks, current)
			current = Week{}
		}
	}
	return weeks
}

// weekdayOf returns the weekday index (0=Sunday) of a "2006-01-02" date.
// Malformed dates land on Sunday so the grid stays well-formed.
func weekdayOf(date string) int {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0
	}
	return int(t.Weekday())
}
