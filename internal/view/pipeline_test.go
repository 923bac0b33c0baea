// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package view

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/unisurveyal/surveyshelf/pkg/types"
)

func record(id int, title string) types.SurveyRecord {
	return types.SurveyRecord{ID: id, Title: title}
}

func ids(p Page) []int {
	out := make([]int, 0, len(p.Items))
	for _, it := range p.Items {
		out = append(out, it.Record.ID)
	}
	return out
}

// --- Filter stage ---

func TestFilterTitleQuery(t *testing.T) {
	items := []Item{
		{Record: record(1, "A Survey of Vision Transformers")},
		{Record: record(2, "Deep Reinforcement Learning")},
		{Record: record(3, "VISION and Language Models")},
	}

	p := Render(items, Options{Query: "vision", Page: 1})
	if got, want := ids(p), []int{1, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("ids = %v, want %v", got, want)
	}
}

func TestFilterStarredOnly(t *testing.T) {
	starred := &types.UserSurveyAssociation{ID: 10, SurveyID: 1, IsStarred: true}
	plain := &types.UserSurveyAssociation{ID: 11, SurveyID: 2}

	items := []Item{
		{Record: record(1, "Starred"), Assoc: starred},
		{Record: record(2, "Not starred"), Assoc: plain},
		{Record: record(3, "No association")},
	}

	p := Render(items, Options{StarredOnly: true, Page: 1})
	if got, want := ids(p), []int{1}; !reflect.DeepEqual(got, want) {
		t.Errorf("ids = %v, want %v", got, want)
	}
}

func TestFilterInterest(t *testing.T) {
	tests := []struct {
		name      string
		record    types.SurveyRecord
		interests []string
		want      bool
	}{
		{
			name:      "single word matches title",
			record:    types.SurveyRecord{ID: 1, Title: "A Survey of Vision Transformers"},
			interests: []string{"Vision"},
			want:      true,
		},
		{
			name:      "no field matches",
			record:    types.SurveyRecord{ID: 1, Title: "Graph Neural Networks"},
			interests: []string{"Vision"},
			want:      false,
		},
		{
			name: "every word must appear somewhere",
			record: types.SurveyRecord{
				ID:       1,
				Title:    "A Survey of Vision Transformers",
				Keywords: "computer vision, attention",
			},
			interests: []string{"Computer Vision"},
			want:      true,
		},
		{
			name:      "one missing word fails the phrase",
			record:    types.SurveyRecord{ID: 1, Title: "A Survey of Vision Transformers"},
			interests: []string{"Computer Vision"},
			want:      false,
		},
		{
			name:      "any phrase suffices",
			record:    types.SurveyRecord{ID: 1, Title: "Speech Recognition Methods"},
			interests: []string{"Computer Vision", "Speech"},
			want:      true,
		},
		{
			name:      "empty interest list disables the filter",
			record:    types.SurveyRecord{ID: 1, Title: "Anything"},
			interests: nil,
			want:      true,
		},
		{
			name:      "blank phrases are ignored",
			record:    types.SurveyRecord{ID: 1, Title: "Anything"},
			interests: []string{"  ", ""},
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Render([]Item{{Record: tt.record}}, Options{
				InterestOnly: true,
				Interests:    tt.interests,
				Page:         1,
			})
			if got := len(p.Items) == 1; got != tt.want {
				t.Errorf("included = %v, want %v", got, tt.want)
			}
		})
	}
}

// --- Sort stage ---

func TestSortRelevanceReproducesOriginalOrder(t *testing.T) {
	items := []Item{
		{Record: types.SurveyRecord{ID: 1, OriginalIndex: 2}},
		{Record: types.SurveyRecord{ID: 2, OriginalIndex: 0}},
		{Record: types.SurveyRecord{ID: 3, OriginalIndex: 1}},
	}

	p := Render(items, Options{SortKey: SortRelevance, Page: 1})
	if got, want := ids(p), []int{2, 3, 1}; !reflect.DeepEqual(got, want) {
		t.Errorf("ids = %v, want %v", got, want)
	}
}

func TestSortDateDescending(t *testing.T) {
	items := []Item{
		{Record: types.SurveyRecord{ID: 1, PublishedDate: "2022-03-01"}},
		{Record: types.SurveyRecord{ID: 2, PublishedDate: "2024-01-15"}},
		{Record: types.SurveyRecord{ID: 3, PublishedDate: "not-a-date"}},
		{Record: types.SurveyRecord{ID: 4, PublishedDate: "2023-07-30"}},
	}

	p := Render(items, Options{SortKey: SortDate, Page: 1})
	if got, want := ids(p), []int{2, 4, 1, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("ids = %v, want %v", got, want)
	}
}

func TestSortAlphabetical(t *testing.T) {
	items := []Item{
		{Record: record(1, "zebra networks")},
		{Record: record(2, "Attention Models")},
		{Record: record(3, "bayesian Methods")},
	}

	p := Render(items, Options{SortKey: SortAlphabetical, Page: 1})
	if got, want := ids(p), []int{2, 3, 1}; !reflect.DeepEqual(got, want) {
		t.Errorf("ids = %v, want %v", got, want)
	}
}

func TestSortViewsDescending(t *testing.T) {
	items := []Item{
		{Record: types.SurveyRecord{ID: 1, ViewCount: 5}},
		{Record: types.SurveyRecord{ID: 2}},
		{Record: types.SurveyRecord{ID: 3, ViewCount: 40}},
	}

	p := Render(items, Options{SortKey: SortViews, Page: 1})
	if got, want := ids(p), []int{3, 1, 2}; !reflect.DeepEqual(got, want) {
		t.Errorf("ids = %v, want %v", got, want)
	}
}

func TestRankedInputSkipsSorting(t *testing.T) {
	items := []Item{
		{Record: types.SurveyRecord{ID: 1, PublishedDate: "2020-01-01"}},
		{Record: types.SurveyRecord{ID: 2, PublishedDate: "2024-01-01"}},
		{Record: types.SurveyRecord{ID: 3, PublishedDate: "2022-01-01"}},
	}

	// Date sort would reorder; ranked input must come back verbatim.
	p := Render(items, Options{SortKey: SortDate, Ranked: true, Page: 1})
	if got, want := ids(p), []int{1, 2, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("ids = %v, want %v", got, want)
	}
}

// --- Paginate stage ---

func TestPaginate45Items(t *testing.T) {
	items := make([]Item, 45)
	for i := range items {
		items[i] = Item{Record: record(i+1, fmt.Sprintf("paper %02d", i+1))}
	}

	sizes := []int{20, 20, 5}
	for page := 1; page <= 3; page++ {
		p := Render(items, Options{Page: page})
		if p.TotalPages != 3 {
			t.Fatalf("page %d: TotalPages = %d, want 3", page, p.TotalPages)
		}
		if len(p.Items) != sizes[page-1] {
			t.Errorf("page %d: len = %d, want %d", page, len(p.Items), sizes[page-1])
		}
	}
}

func TestPaginationCompleteness(t *testing.T) {
	items := make([]Item, 45)
	for i := range items {
		items[i] = Item{Record: types.SurveyRecord{ID: i + 1, OriginalIndex: i}}
	}

	opts := Options{SortKey: SortRelevance}
	var union []int
	for page := 1; page <= 3; page++ {
		opts.Page = page
		union = append(union, ids(Render(items, opts))...)
	}

	if len(union) != 45 {
		t.Fatalf("union size = %d, want 45", len(union))
	}
	for i, id := range union {
		if id != i+1 {
			t.Fatalf("union[%d] = %d, want %d", i, id, i+1)
		}
	}
}

func TestPaginateClampsPage(t *testing.T) {
	items := make([]Item, 25)
	for i := range items {
		items[i] = Item{Record: record(i+1, "t")}
	}

	tests := []struct {
		page     int
		wantPage int
		wantLen  int
	}{
		{0, 1, 20},
		{1, 1, 20},
		{2, 2, 5},
		{99, 2, 5},
		{-3, 1, 20},
	}
	for _, tt := range tests {
		p := Render(items, Options{Page: tt.page})
		if p.Page != tt.wantPage || len(p.Items) != tt.wantLen {
			t.Errorf("page %d: got (page=%d, len=%d), want (page=%d, len=%d)",
				tt.page, p.Page, len(p.Items), tt.wantPage, tt.wantLen)
		}
	}
}

func TestPaginateEmpty(t *testing.T) {
	p := Render(nil, Options{Page: 3})
	if p.Page != 1 || p.TotalPages != 0 || len(p.Items) != 0 {
		t.Errorf("got (page=%d, totalPages=%d, len=%d), want (1, 0, 0)",
			p.Page, p.TotalPages, len(p.Items))
	}
}

// --- Determinism ---

func TestRenderIsDeterministic(t *testing.T) {
	items := []Item{
		{Record: types.SurveyRecord{ID: 1, Title: "b", ViewCount: 3, PublishedDate: "2023-01-01"}},
		{Record: types.SurveyRecord{ID: 2, Title: "a", ViewCount: 3, PublishedDate: "2023-01-01"}},
		{Record: types.SurveyRecord{ID: 3, Title: "a", ViewCount: 3, PublishedDate: "2023-01-01"}},
	}

	for _, key := range []SortKey{SortDate, SortAlphabetical, SortViews, SortRelevance} {
		opts := Options{SortKey: key, Page: 1}
		first := Render(items, opts)
		second := Render(items, opts)
		if !reflect.DeepEqual(ids(first), ids(second)) {
			t.Errorf("sort %s: repeated render differs: %v vs %v", key, ids(first), ids(second))
		}
	}
}

// Render must not mutate its input: ties keep input order, and the caller's
// slice stays untouched.
func TestRenderDoesNotMutateInput(t *testing.T) {
	items := []Item{
		{Record: types.SurveyRecord{ID: 1, ViewCount: 9}},
		{Record: types.SurveyRecord{ID: 2, ViewCount: 1}},
	}

	Render(items, Options{SortKey: SortViews, Page: 1})
	if items[0].Record.ID != 1 || items[1].Record.ID != 2 {
		t.Errorf("input slice reordered: %v, %v", items[0].Record.ID, items[1].Record.ID)
	}
}
