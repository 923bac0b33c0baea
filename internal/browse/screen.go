// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package browse is the screen controller for the two add-paper screens:
// direct search and personalized/initial recommendation. A screen restores
// its snapshot or fetches, runs the view pipeline, and routes user actions
// through the selection manager and back into the snapshot store.
package browse

import (
	"context"

	"github.com/unisurveyal/surveyshelf/internal/selection"
	"github.com/unisurveyal/surveyshelf/internal/snapshot"
	"github.com/unisurveyal/surveyshelf/internal/view"
	"github.com/unisurveyal/surveyshelf/pkg/types"
)

// Mode discriminates the screen and keys its snapshot.
type Mode string

const (
	ModeSearch    Mode = "search"
	ModeRecommend Mode = "recommend"
)

// Fetcher is the Survey Service surface a screen fetches records through.
type Fetcher interface {
	Search(ctx context.Context, q string, maxResults int) ([]types.SurveyRecord, error)
	RecommendPersonalized(ctx context.Context, topN int) ([]types.SurveyRecord, error)
	RecommendInitial(ctx context.Context, fields []string) ([]types.SurveyRecord, error)
}

// Screen owns one mode's working state: the fetched records, the view
// options, and the selection made this session.
type Screen struct {
	mode      Mode
	fetcher   Fetcher
	snaps     snapshot.Store
	sel       *selection.Manager
	interests []string

	// gen counts fetches; a response whose generation no longer matches is
	// discarded instead of clobbering a newer working set.
	gen     uint64
	records []types.SurveyRecord
	opts    view.Options
	loaded  bool
}

// NewScreen wires a screen for mode over the given collaborators.
func NewScreen(mode Mode, fetcher Fetcher, lib selection.Library, snaps snapshot.Store, interests []string) *Screen {
	return &Screen{
		mode:      mode,
		fetcher:   fetcher,
		snaps:     snaps,
		sel:       selection.NewManager(lib),
		interests: interests,
		opts:      defaultOptions(),
	}
}

func defaultOptions() view.Options {
	return view.Options{
		SortKey:  view.SortRelevance,
		ViewMode: view.ModeGrid,
		Page:     1,
	}
}

// Loaded reports whether the screen has a working set, via restore or fetch.
func (s *Screen) Loaded() bool { return s.loaded }

// Query returns the query that produced the working set.
func (s *Screen) Query() string { return s.opts.Query }

// ViewMode returns the active layout.
func (s *Screen) ViewMode() view.Mode { return s.opts.ViewMode }

// Restore applies the mode's snapshot as one atomic replacement of the
// working state. It reports whether a snapshot was present; when it was, the
// caller must not fetch; that is the store's fetch-avoidance contract.
func (s *Screen) Restore() (bool, error) {
	snap, ok, err := s.snaps.Restore(string(s.mode))
	if err != nil || !ok {
		return false, err
	}

	s.gen++
	s.records = snap.Records
	s.opts = defaultOptions()
	s.opts.Query = snap.Query
	s.opts.ViewMode = snap.ViewMode
	s.opts.SortKey = snap.SortKey
	s.sel.Restore(snap.Selected)
	s.loaded = true
	return true, nil
}

// begin opens a fetch generation.
func (s *Screen) begin() uint64 {
	s.gen++
	return s.gen
}

// commit installs a fetch result unless a newer fetch has started since.
// A stale response is dropped wholesale; the snapshot is rewritten only on
// install so it can never go partially stale.
func (s *Screen) commit(gen uint64, records []types.SurveyRecord, query string) bool {
	if gen != s.gen {
		return false
	}

	s.records = records
	s.opts = defaultOptions()
	s.opts.Query = query
	s.sel.Restore(nil)
	s.loaded = true

	s.saveSnapshot()
	return true
}

func (s *Screen) saveSnapshot() {
	_ = s.snaps.Save(string(s.mode), snapshot.Snapshot{
		Records:  s.records,
		Query:    s.opts.Query,
		Selected: s.sel.Selected(),
		ViewMode: s.opts.ViewMode,
		SortKey:  s.opts.SortKey,
	})
}

// Search fetches a fresh working set for the search screen and resets the
// view options; the previous record set is discarded.
func (s *Screen) Search(ctx context.Context, query string, maxResults int) error {
	gen := s.begin()
	records, err := s.fetcher.Search(ctx, query, maxResults)
	if err != nil {
		return err
	}
	s.commit(gen, records, query)
	return nil
}

// Recommend fetches recommendations: similarity-ranked when personalized,
// interest-field-based otherwise.
func (s *Screen) Recommend(ctx context.Context, personalized bool, topN int) error {
	gen := s.begin()

	var records []types.SurveyRecord
	var err error
	if personalized {
		records, err = s.fetcher.RecommendPersonalized(ctx, topN)
	} else {
		records, err = s.fetcher.RecommendInitial(ctx, s.interests)
	}
	if err != nil {
		return err
	}
	s.commit(gen, records, "")
	return nil
}

// Toggle flips a paper's library membership, tagging the add by this
// screen's mode, and keeps the snapshot's selection current.
func (s *Screen) Toggle(ctx context.Context, surveyID int) (bool, error) {
	origin := selection.OriginSearch
	if s.mode == ModeRecommend {
		origin = selection.OriginRecommend
	}

	selected, err := s.sel.ToggleLibrary(ctx, surveyID, origin)
	if err != nil {
		return selected, err
	}

	ids := s.sel.Selected()
	_ = s.snaps.Merge(string(s.mode), snapshot.Patch{Selected: &ids})
	return selected, nil
}

// IsSelected reports a paper's local membership state.
func (s *Screen) IsSelected(surveyID int) bool { return s.sel.IsSelected(surveyID) }

// SetSortKey changes the active sort and merges it into the snapshot.
func (s *Screen) SetSortKey(key view.SortKey) {
	s.opts.SortKey = key
	_ = s.snaps.Merge(string(s.mode), snapshot.Patch{SortKey: &key})
}

// SetViewMode changes the layout and merges it into the snapshot.
func (s *Screen) SetViewMode(mode view.Mode) {
	s.opts.ViewMode = mode
	_ = s.snaps.Merge(string(s.mode), snapshot.Patch{ViewMode: &mode})
}

// SetPage moves to a 1-based page; Render clamps it into range.
func (s *Screen) SetPage(page int) { s.opts.Page = page }

// Render runs the view pipeline over the working set. Recommendation
// screens render ranked input, so their incoming order is preserved
// verbatim.
func (s *Screen) Render() view.Page {
	items := make([]view.Item, len(s.records))
	for i, r := range s.records {
		items[i] = view.Item{Record: r}
	}

	opts := s.opts
	opts.Ranked = s.mode == ModeRecommend
	opts.Interests = s.interests
	// The add-paper screens filter by stored query via the service, not
	// locally; the local query filter belongs to the library screen.
	opts.Query = ""
	return view.Render(items, opts)
}
