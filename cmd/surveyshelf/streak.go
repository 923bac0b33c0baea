package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/unisurveyal/surveyshelf/internal/streak"
	"github.com/unisurveyal/surveyshelf/pkg/types"
)

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show the reading activity heatmap",
	Long: `Streak renders your daily reading activity as a heatmap: one column per
week, Sunday at the top, darker marks for busier days. Opening a paper with
'surveyshelf library show' counts as activity.`,
	RunE: runStreak,
}

func init() {
	rootCmd.AddCommand(streakCmd)
}

// levelMarks renders the five intensity buckets.
var levelMarks = [5]string{"·", "░", "▒", "▓", "█"}

func runStreak(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	store, sess, err := requireSession(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	activity, err := surveyClient(cfg, sess).GetActivityStreak(context.Background())
	if err != nil {
		return fmt.Errorf("fetching activity: %w", err)
	}

	printHeatmap(os.Stdout, activity)
	return nil
}

func printHeatmap(w io.Writer, activity types.ActivityStreak) {
	weeks := streak.BuildCalendar(activity.Days)
	if len(weeks) == 0 {
		fmt.Fprintln(w, "No activity recorded yet.")
		return
	}

	weekdays := [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	for slot := 0; slot < 7; slot++ {
		fmt.Fprintf(w, "%s ", weekdays[slot])
		for _, week := range weeks {
			cell := week[slot]
			if cell == nil {
				fmt.Fprint(w, " ")
				continue
			}
			fmt.Fprint(w, levelMarks[cell.Level])
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "\n%d active days in the last %d\n", activity.TotalDaysActive, len(activity.Days))
	fmt.Fprintf(w, "Less %s %s %s %s %s More\n",
		levelMarks[0], levelMarks[1], levelMarks[2], levelMarks[3], levelMarks[4])
}
