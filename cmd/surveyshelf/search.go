package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/unisurveyal/surveyshelf/internal/browse"
	"github.com/unisurveyal/surveyshelf/internal/view"
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search the catalog for survey papers",
	Long: `Search queries the Survey Service and renders one page of results. The
result set is snapshotted per session: rerunning search without a query shows
the previous results without refetching. Use --add to save a paper from the
results, or run it again to undo the save.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("sort", "", "sort key: date, alphabetical, views, relevance")
	searchCmd.Flags().String("view", "", "layout: grid or list")
	searchCmd.Flags().Int("page", 0, "page number (1-based)")
	searchCmd.Flags().Bool("refresh", false, "refetch even when a snapshot exists")
	searchCmd.Flags().Int("add", 0, "toggle a survey id in or out of the library")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
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
	screen := browse.NewScreen(browse.ModeSearch, client, client, snaps, sess.Interests())

	query := strings.Join(args, " ")
	refresh, _ := cmd.Flags().GetBool("refresh")

	if !refresh {
		restored, err := screen.Restore()
		if err != nil {
			return err
		}
		// A new query always refetches; otherwise the snapshot stands in for
		// the fetch.
		if restored && (query == "" || query == screen.Query()) {
			fmt.Fprintf(os.Stderr, "Showing results for %q (use --refresh to refetch)\n", screen.Query())
			return finishScreen(cmd, screen)
		}
	}

	if query == "" {
		return fmt.Errorf("provide a search query")
	}
	if err := screen.Search(context.Background(), query, cfg.Search.MaxResults); err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	return finishScreen(cmd, screen)
}

// finishScreen applies the shared presentation flags and the --add toggle,
// then renders the page. Search and recommend share it.
func finishScreen(cmd *cobra.Command, screen *browse.Screen) error {
	if s, _ := cmd.Flags().GetString("sort"); s != "" {
		key, err := parseSortKey(s)
		if err != nil {
			return err
		}
		screen.SetSortKey(key)
	}
	if v, _ := cmd.Flags().GetString("view"); v != "" {
		mode, err := parseViewMode(v)
		if err != nil {
			return err
		}
		screen.SetViewMode(mode)
	}
	if page, _ := cmd.Flags().GetInt("page"); page > 0 {
		screen.SetPage(page)
	}

	if id, _ := cmd.Flags().GetInt("add"); id > 0 {
		selected, err := screen.Toggle(context.Background(), id)
		if err != nil {
			return fmt.Errorf("toggling survey %d: %w", id, err)
		}
		if selected {
			fmt.Fprintf(os.Stderr, "Added survey %d to the library\n", id)
		} else {
			fmt.Fprintf(os.Stderr, "Removed survey %d from the library\n", id)
		}
	}

	page := screen.Render()
	printPage(os.Stdout, page, screen.ViewMode(), screen.IsSelected)
	return nil
}

func parseSortKey(s string) (view.SortKey, error) {
	switch view.SortKey(s) {
	case view.SortDate, view.SortAlphabetical, view.SortViews, view.SortRelevance:
		return view.SortKey(s), nil
	}
	return "", fmt.Errorf("unknown sort key %q: use date, alphabetical, views, or relevance", s)
}

func parseViewMode(s string) (view.Mode, error) {
	switch view.Mode(s) {
	case view.ModeGrid, view.ModeList:
		return view.Mode(s), nil
	}
	return "", fmt.Errorf("unknown view mode %q: use grid or list", s)
}
