package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/unisurveyal/surveyshelf/internal/view"
)

// printPage renders one page of results. List mode is a compact table; grid
// mode is a block per paper with abstract preview, mirroring the two layouts
// of the web client.
func printPage(w io.Writer, page view.Page, mode view.Mode, selected func(surveyID int) bool) {
	if page.Total == 0 {
		fmt.Fprintln(w, "No papers found.")
		return
	}

	if mode == view.ModeList {
		printList(w, page, selected)
	} else {
		printGrid(w, page, selected)
	}

	fmt.Fprintf(w, "\nPage %d of %d (%d papers)\n", page.Page, page.TotalPages, page.Total)
}

func printList(w io.Writer, page view.Page, selected func(int) bool) {
	fmt.Fprintf(w, "%-3s %-7s %-3s %-55s %-25s %-12s %s\n",
		"", "ID", "", "Title", "Category", "Published", "Views")
	fmt.Fprintln(w, strings.Repeat("-", 112))

	for _, it := range page.Items {
		r := it.Record
		fmt.Fprintf(w, "%-3s %-7d %-3s %-55s %-25s %-12s %d\n",
			marker(it, selected), r.ID, view.CategoryEmoji(r.Categories),
			truncate(r.Title, 55), truncate(view.CategoryName(r.Categories), 25),
			r.PublishedDate, r.ViewCount)
	}
}

func printGrid(w io.Writer, page view.Page, selected func(int) bool) {
	for _, it := range page.Items {
		r := it.Record
		fmt.Fprintf(w, "%s %s [%d] %s\n", marker(it, selected), view.CategoryEmoji(r.Categories), r.ID, r.Title)
		fmt.Fprintf(w, "    %s · %s · %d views\n",
			view.CategoryName(r.Categories), r.PublishedDate, r.ViewCount)
		if it.Assoc != nil {
			fmt.Fprintf(w, "    status: %s\n", it.Assoc.Status)
		}
		if r.Abstract != "" {
			fmt.Fprintf(w, "    %s\n", truncate(r.Abstract, 100))
		}
		fmt.Fprintln(w)
	}
}

// marker shows library membership: a star for starred associations, a check
// for papers selected this session.
func marker(it view.Item, selected func(int) bool) string {
	if it.Assoc != nil && it.Assoc.IsStarred {
		return "*"
	}
	if selected != nil && selected(it.Record.ID) {
		return "+"
	}
	return " "
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
