// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ActivityDay is one cell of the reading-activity series: a calendar date in
// "2006-01-02" form and a non-negative count of papers opened that day. The
// Survey Service returns an ordered, gap-free series ending at today.
type ActivityDay struct {
	Date  string `json:"date" yaml:"date"`
	Count int    `json:"count" yaml:"count"`
}

// ActivityStreak is the Survey Service's streak payload: the fixed-length
// daily series plus the number of days with any activity.
type ActivityStreak struct {
	Days            []ActivityDay `json:"streak_data"`
	TotalDaysActive int           `json:"total_days_active"`
}
