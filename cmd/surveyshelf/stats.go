package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show your library statistics",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	store, sess, err := requireSession(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := surveyClient(cfg, sess).GetStats(context.Background())
	if err != nil {
		return fmt.Errorf("fetching stats: %w", err)
	}

	fmt.Printf("Saved:       %d\n", stats.SavedSurveys)
	fmt.Printf("Completed:   %d\n", stats.CompletedSurveys)
	fmt.Printf("Recommended: %d\n", stats.RecommendedSurveys)
	if stats.CanUsePersonalized {
		fmt.Println("Personalized recommendations: unlocked")
	} else {
		fmt.Printf("Personalized recommendations: complete %d papers to unlock\n", cfg.Recommend.MinCompleted)
	}
	return nil
}
