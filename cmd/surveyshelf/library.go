// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/unisurveyal/surveyshelf/internal/view"
	"github.com/unisurveyal/surveyshelf/pkg/types"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage your personal survey library",
	Long: `Library manages your saved papers: list with filters and sorts, save and
remove papers, star favorites, and move papers through the reading workflow
(saved, reading, completed).`,
}

// --- list subcommand ---

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the papers in your library",
	RunE:  runLibraryList,
}

func runLibraryList(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	store, sess, err := requireSession(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	client := surveyClient(cfg, sess)
	assocs, err := client.ListLibrary(context.Background())
	if err != nil {
		return fmt.Errorf("fetching library: %w", err)
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(assocs)
	}

	items := make([]view.Item, 0, len(assocs))
	for i := range assocs {
		if assocs[i].Survey == nil {
			continue
		}
		items = append(items, view.Item{Record: *assocs[i].Survey, Assoc: &assocs[i]})
	}

	opts, err := libraryViewOptions(cmd, sess.Interests())
	if err != nil {
		return err
	}

	page := view.Render(items, opts)
	printPage(os.Stdout, page, opts.ViewMode, nil)
	return nil
}

func libraryViewOptions(cmd *cobra.Command, interests []string) (view.Options, error) {
	opts := view.Options{
		SortKey:  view.SortDate,
		ViewMode: view.ModeGrid,
		Page:     1,
	}

	if s, _ := cmd.Flags().GetString("sort"); s != "" {
		key, err := parseSortKey(s)
		if err != nil {
			return view.Options{}, err
		}
		opts.SortKey = key
	}
	if v, _ := cmd.Flags().GetString("view"); v != "" {
		mode, err := parseViewMode(v)
		if err != nil {
			return view.Options{}, err
		}
		opts.ViewMode = mode
	}
	if page, _ := cmd.Flags().GetInt("page"); page > 0 {
		opts.Page = page
	}

	opts.Query, _ = cmd.Flags().GetString("query")
	opts.StarredOnly, _ = cmd.Flags().GetBool("starred")
	opts.InterestOnly, _ = cmd.Flags().GetBool("interests")
	opts.Interests = interests
	return opts, nil
}

// --- show subcommand ---

var libraryShowCmd = &cobra.Command{
	Use:   "show [survey-id]",
	Short: "Show one paper's full record",
	Long: `Show prints a paper's full record, including your association when the
paper is in the library. Viewing a paper counts toward the daily activity
streak.`,
	Args: cobra.ExactArgs(1),
	RunE: runLibraryShow,
}

func runLibraryShow(cmd *cobra.Command, args []string) error {
	surveyID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid survey id %q", args[0])
	}

	cfg := loadConfig()
	store, sess, err := requireSession(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	client := surveyClient(cfg, sess)
	record, assoc, err := client.GetSurvey(context.Background(), surveyID)
	if err != nil {
		return fmt.Errorf("fetching survey %d: %w", surveyID, err)
	}
	if record == nil {
		return fmt.Errorf("survey %d has no record", surveyID)
	}

	client.RecordActivity(context.Background())

	fmt.Printf("%s %s\n", view.CategoryEmoji(record.Categories), record.Title)
	fmt.Printf("Category:  %s\n", view.CategoryName(record.Categories))
	fmt.Printf("Authors:   %s\n", record.Authors)
	fmt.Printf("Published: %s\n", record.PublishedDate)
	fmt.Printf("Views:     %d\n", record.ViewCount)
	if record.PDFURL != "" {
		fmt.Printf("PDF:       %s\n", record.PDFURL)
	}
	if assoc != nil {
		starred := ""
		if assoc.IsStarred {
			starred = " *"
		}
		fmt.Printf("Library:   %s%s (association %d)\n", assoc.Status, starred, assoc.ID)
	}
	if record.Abstract != "" {
		fmt.Printf("\n%s\n", record.Abstract)
	}
	return nil
}

// --- add / remove subcommands ---

var libraryAddCmd = &cobra.Command{
	Use:   "add [survey-id]",
	Short: "Save a paper to the library",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryAdd,
}

func runLibraryAdd(cmd *cobra.Command, args []string) error {
	surveyID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid survey id %q", args[0])
	}
	status, err := parseStatus(cmd)
	if err != nil {
		return err
	}

	cfg := loadConfig()
	store, sess, err := requireSession(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	assoc, err := surveyClient(cfg, sess).AddToLibrary(context.Background(), surveyID, status)
	if err != nil {
		return fmt.Errorf("adding survey %d: %w", surveyID, err)
	}
	fmt.Printf("Saved survey %d as %s (association %d)\n", surveyID, assoc.Status, assoc.ID)
	return nil
}

var libraryRemoveCmd = &cobra.Command{
	Use:   "remove [survey-id]",
	Short: "Remove a paper from the library",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryRemove,
}

func runLibraryRemove(cmd *cobra.Command, args []string) error {
	surveyID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid survey id %q", args[0])
	}

	cfg := loadConfig()
	store, sess, err := requireSession(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := surveyClient(cfg, sess).RemoveFromLibrary(context.Background(), surveyID); err != nil {
		return fmt.Errorf("removing survey %d: %w", surveyID, err)
	}
	fmt.Printf("Removed survey %d\n", surveyID)
	return nil
}

// --- star / status subcommands ---

var libraryStarCmd = &cobra.Command{
	Use:   "star [association-id]",
	Short: "Toggle the star on a library paper",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryStar,
}

func runLibraryStar(cmd *cobra.Command, args []string) error {
	assocID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid association id %q", args[0])
	}

	cfg := loadConfig()
	store, sess, err := requireSession(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := surveyClient(cfg, sess).ToggleStar(context.Background(), assocID); err != nil {
		return fmt.Errorf("toggling star on association %d: %w", assocID, err)
	}
	fmt.Printf("Toggled star on association %d\n", assocID)
	return nil
}

var libraryStatusCmd = &cobra.Command{
	Use:   "status [association-id] [new-status]",
	Short: "Move a paper to a new reading status",
	Long: `Status moves a library paper through the reading workflow. Valid statuses
are saved, recommended, reading, and completed. Completed papers feed the
personalized recommendation gate.`,
	Args: cobra.ExactArgs(2),
	RunE: runLibraryStatus,
}

func runLibraryStatus(cmd *cobra.Command, args []string) error {
	assocID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid association id %q", args[0])
	}
	status := types.SurveyStatus(args[1])
	if !validStatus(status) {
		return fmt.Errorf("unknown status %q: use saved, recommended, reading, or completed", args[1])
	}

	cfg := loadConfig()
	store, sess, err := requireSession(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := surveyClient(cfg, sess).SetStatus(context.Background(), assocID, status); err != nil {
		return fmt.Errorf("setting status on association %d: %w", assocID, err)
	}
	fmt.Printf("Association %d is now %s\n", assocID, status)
	return nil
}

// --- shared helpers ---

func parseStatus(cmd *cobra.Command) (types.SurveyStatus, error) {
	s, _ := cmd.Flags().GetString("status")
	status := types.SurveyStatus(s)
	if !validStatus(status) {
		return "", fmt.Errorf("unknown status %q: use saved, recommended, reading, or completed", s)
	}
	return status, nil
}

func validStatus(s types.SurveyStatus) bool {
	switch s {
	case types.StatusSaved, types.StatusRecommended, types.StatusReading, types.StatusCompleted:
		return true
	}
	return false
}

func init() {
	// List flags.
	libraryListCmd.Flags().String("query", "", "filter by title substring")
	libraryListCmd.Flags().Bool("starred", false, "show only starred papers")
	libraryListCmd.Flags().Bool("interests", false, "show only papers matching your interest fields")
	libraryListCmd.Flags().String("sort", "", "sort key: date, alphabetical, views, relevance")
	libraryListCmd.Flags().String("view", "", "layout: grid or list")
	libraryListCmd.Flags().Int("page", 0, "page number (1-based)")
	libraryListCmd.Flags().Bool("json", false, "output the raw library as JSON")

	// Add flags.
	libraryAddCmd.Flags().String("status", string(types.StatusSaved), "initial status: saved, recommended, reading, completed")

	// Wire subcommands.
	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(libraryShowCmd)
	libraryCmd.AddCommand(libraryAddCmd)
	libraryCmd.AddCommand(libraryRemoveCmd)
	libraryCmd.AddCommand(libraryStarCmd)
	libraryCmd.AddCommand(libraryStatusCmd)

	rootCmd.AddCommand(libraryCmd)
}
