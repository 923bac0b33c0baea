// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package view turns a raw list of survey records into the filtered, sorted,
// paginated slice a screen renders. Render is a pure function: identical
// inputs always produce identical output.
package view

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/unisurveyal/surveyshelf/pkg/types"
)

// PageSize is the fixed number of items per page.
const PageSize = 20

// Mode selects the rendering layout.
type Mode string

const (
	ModeGrid Mode = "grid"
	ModeList Mode = "list"
)

// SortKey selects the active sort. Exactly one key is active at a time.
type SortKey string

const (
	SortDate         SortKey = "date"
	SortAlphabetical SortKey = "alphabetical"
	SortViews        SortKey = "views"
	SortRelevance    SortKey = "relevance"
)

// Item pairs a record with the user's association when the screen displays
// library contents. Assoc is nil for search and recommendation results.
type Item struct {
	Record types.SurveyRecord
	Assoc  *types.UserSurveyAssociation
}

// Options is the per-screen view state driving Render.
type Options struct {
	// Query filters by case-insensitive substring match on the title.
	Query string

	// SortKey is the active sort.
	SortKey SortKey

	// ViewMode is carried through for the renderer; it does not affect
	// filtering or ordering.
	ViewMode Mode

	// StarredOnly keeps only starred associations. It has no effect on items
	// without association data.
	StarredOnly bool

	// InterestOnly filters by the user's interest phrases. An empty Interests
	// list disables the filter.
	InterestOnly bool

	// Interests is the user's interest-field list (e.g. "Computer Vision").
	Interests []string

	// Page is the 1-based page to render; clamped into range.
	Page int

	// Ranked marks input that is already similarity-ranked (personalized
	// recommendations). Ranked input skips the sort stage entirely.
	Ranked bool
}

// Page is the rendered slice plus the pagination frame around it.
type Page struct {
	Items      []Item
	Page       int
	TotalPages int
	Total      int
}

// collator gives locale-aware, deterministic title ordering independent of
// the host locale.
var collator = collate.New(language.Und, collate.Loose)

// Render filters, sorts, and paginates items according to opts.
func Render(items []Item, opts Options) Page {
	filtered := filter(items, opts)
	if !opts.Ranked {
		sortItems(filtered, opts.SortKey)
	}
	return paginate(filtered, opts.Page)
}

// filter applies the conjoined predicates: starred, title query, interests.
func filter(items []Item, opts Options) []Item {
	query := strings.ToLower(opts.Query)
	phrases := interestPhrases(opts.Interests)

	out := make([]Item, 0, len(items))
	for _, it := range items {
		if opts.StarredOnly && (it.Assoc == nil || !it.Assoc.IsStarred) {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(it.Record.Title), query) {
			continue
		}
		if opts.InterestOnly && len(phrases) > 0 && !matchesAnyInterest(it.Record, phrases) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// interestPhrases splits each interest field into lowercase words, dropping
// empty entries.
func interestPhrases(interests []string) [][]string {
	var phrases [][]string
	for _, field := range interests {
		words := strings.Fields(strings.ToLower(strings.TrimSpace(field)))
		if len(words) > 0 {
			phrases = append(phrases, words)
		}
	}
	return phrases
}

// matchesAnyInterest reports whether at least one phrase has every word
// appearing as a substring in one of title, keywords, abstract, categories.
func matchesAnyInterest(r types.SurveyRecord, phrases [][]string) bool {
	title := strings.ToLower(r.Title)
	keywords := strings.ToLower(r.Keywords)
	abstract := strings.ToLower(r.Abstract)
	categories := strings.ToLower(r.Categories)

	for _, words := range phrases {
		all := true
		for _, w := range words {
			if !strings.Contains(title, w) &&
				!strings.Contains(keywords, w) &&
				!strings.Contains(abstract, w) &&
				!strings.Contains(categories, w) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

func sortItems(items []Item, key SortKey) {
	switch key {
	case SortDate:
		sort.SliceStable(items, func(i, j int) bool {
			// Unparsable dates sort as the oldest possible value.
			ti, _ := items[i].Record.PublishedTime()
			tj, _ := items[j].Record.PublishedTime()
			return ti.After(tj)
		})
	case SortAlphabetical:
		sort.SliceStable(items, func(i, j int) bool {
			a := strings.ToLower(items[i].Record.Title)
			b := strings.ToLower(items[j].Record.Title)
			return collator.CompareString(a, b) < 0
		})
	case SortViews:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Record.ViewCount > items[j].Record.ViewCount
		})
	case SortRelevance:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Record.OriginalIndex < items[j].Record.OriginalIndex
		})
	}
}

func paginate(items []Item, page int) Page {
	total := len(items)
	totalPages := (total + PageSize - 1) / PageSize

	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	if totalPages == 0 {
		page = 1
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Items:      items[start:end],
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
	}
}
