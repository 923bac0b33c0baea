package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/unisurveyal/surveyshelf/internal/api"
	"github.com/unisurveyal/surveyshelf/internal/browse"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Get survey paper recommendations",
	Long: `Recommend fetches survey papers matched to you. Once enough papers are
marked completed, recommendations are similarity-ranked against your library;
until then they come from the interest fields on your profile. The result set
is snapshotted per session like search.`,
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().String("sort", "", "sort key: date, alphabetical, views, relevance")
	recommendCmd.Flags().String("view", "", "layout: grid or list")
	recommendCmd.Flags().Int("page", 0, "page number (1-based)")
	recommendCmd.Flags().Bool("refresh", false, "refetch even when a snapshot exists")
	recommendCmd.Flags().Int("add", 0, "toggle a survey id in or out of the library")
	recommendCmd.Flags().Bool("initial", false, "force interest-field recommendations")

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	store, sess, err := requireSession(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	snaps, err := snapshotStore(store)
	if err != nil {
		return err
	}

	client := surveyClient(cfg, sess)
	screen := browse.NewScreen(browse.ModeRecommend, client, client, snaps, sess.Interests())

	refresh, _ := cmd.Flags().GetBool("refresh")
	if !refresh {
		restored, err := screen.Restore()
		if err != nil {
			return err
		}
		if restored {
			fmt.Fprintln(os.Stderr, "Showing previous recommendations (use --refresh to refetch)")
			return finishScreen(cmd, screen)
		}
	}

	initial, _ := cmd.Flags().GetBool("initial")
	personalized := !initial
	if personalized {
		stats, err := client.GetStats(context.Background())
		if err != nil {
			return fmt.Errorf("fetching stats: %w", err)
		}
		personalized = stats.CanUsePersonalized
		if !personalized {
			fmt.Fprintf(os.Stderr, "Complete %d papers to unlock personalized recommendations; using your interest fields.\n",
				cfg.Recommend.MinCompleted)
		}
	}

	err = screen.Recommend(context.Background(), personalized, cfg.Recommend.TopN)
	if errors.Is(err, api.ErrPersonalizedUnavailable) {
		// The service's floor may be stricter than the local count.
		err = screen.Recommend(context.Background(), false, cfg.Recommend.TopN)
	}
	if err != nil {
		return fmt.Errorf("fetching recommendations: %w", err)
	}
	return finishScreen(cmd, screen)
}
