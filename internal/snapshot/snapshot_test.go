// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unisurveyal/surveyshelf/internal/view"
	"github.com/unisurveyal/surveyshelf/pkg/types"
)

func sample() Snapshot {
	return Snapshot{
		Records: []types.SurveyRecord{
			{ID: 1, Title: "A Survey of Vision Transformers", PublishedDate: "2023-04-01", OriginalIndex: 0},
			{ID: 2, Title: "Graph Neural Networks: A Review", PublishedDate: "2022-11-15", OriginalIndex: 1},
		},
		Query:    "transformers",
		Selected: []int{2},
		ViewMode: view.ModeList,
		SortKey:  view.SortDate,
	}
}

// stores runs a subtest against both implementations so they stay
// interchangeable.
func stores(t *testing.T) map[string]Store {
	t.Helper()
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   fs,
	}
}

func TestSaveRestoreRoundTrip(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			want := sample()
			require.NoError(t, store.Save("search", want))

			got, ok, err := store.Restore("search")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, want, got)
		})
	}
}

func TestRestoreAbsentKey(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := store.Restore("recommend")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestSaveOverwritesWholesale(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Save("search", sample()))

			replacement := Snapshot{
				Records:  []types.SurveyRecord{{ID: 9, Title: "Diffusion Models Survey"}},
				Query:    "diffusion",
				ViewMode: view.ModeGrid,
				SortKey:  view.SortRelevance,
			}
			require.NoError(t, store.Save("search", replacement))

			got, ok, err := store.Restore("search")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, replacement, got)
		})
	}
}

func TestMergeUpdatesOnlyViewFields(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			original := sample()
			require.NoError(t, store.Save("search", original))

			selected := []int{1, 2}
			mode := view.ModeGrid
			require.NoError(t, store.Merge("search", Patch{
				Selected: &selected,
				ViewMode: &mode,
			}))

			got, ok, err := store.Restore("search")
			require.NoError(t, err)
			require.True(t, ok)

			assert.Equal(t, original.Records, got.Records)
			assert.Equal(t, original.Query, got.Query)
			assert.Equal(t, original.SortKey, got.SortKey)
			assert.Equal(t, []int{1, 2}, got.Selected)
			assert.Equal(t, view.ModeGrid, got.ViewMode)
		})
	}
}

func TestMergeAbsentKeyIsNoOp(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			sortKey := view.SortViews
			require.NoError(t, store.Merge("recommend", Patch{SortKey: &sortKey}))

			_, ok, err := store.Restore("recommend")
			require.NoError(t, err)
			assert.False(t, ok, "merge must not create a partial snapshot")
		})
	}
}

func TestClearAndReset(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Save("search", sample()))
			require.NoError(t, store.Save("recommend", sample()))

			require.NoError(t, store.Clear("search"))
			_, ok, err := store.Restore("search")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, store.Reset())
			_, ok, err = store.Restore("recommend")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestFileStoreSharedAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	first, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Save("search", sample()))

	// A second instance over the same directory sees the snapshot, the way
	// consecutive CLI invocations share one login session.
	second, err := NewFileStore(dir)
	require.NoError(t, err)
	got, ok, err := second.Restore("search")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sample(), got)
}
