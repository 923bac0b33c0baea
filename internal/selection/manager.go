// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package selection keeps the local "is this paper in my library" state in
// sync with the remote library through optimistic, idempotent mutations. The
// remote library is the source of truth; the manager's set is a cache that
// converges to it.
package selection

import (
	"context"
	"errors"
	"sort"

	"github.com/unisurveyal/surveyshelf/internal/api"
	"github.com/unisurveyal/surveyshelf/pkg/types"
)

// Origin identifies which screen triggered an add. Papers discovered through
// recommendation flows are tagged recommended; papers found by direct search
// are tagged saved. Tagging follows the screen, not the paper's actual
// provenance.
type Origin string

const (
	OriginSearch    Origin = "search"
	OriginRecommend Origin = "recommend"
)

// Library is the remote collaborator the manager mutates.
type Library interface {
	AddToLibrary(ctx context.Context, surveyID int, status types.SurveyStatus) (*types.UserSurveyAssociation, error)
	RemoveFromLibrary(ctx context.Context, surveyID int) error
	ToggleStar(ctx context.Context, associationID int) error
}

// Manager tracks the selection set for one screen.
type Manager struct {
	library  Library
	selected map[int]bool
}

// NewManager builds a manager around a remote library.
func NewManager(library Library) *Manager {
	return &Manager{
		library:  library,
		selected: make(map[int]bool),
	}
}

// IsSelected reports whether a survey is currently marked as in the library.
func (m *Manager) IsSelected(surveyID int) bool {
	return m.selected[surveyID]
}

// Selected returns the selection set as a sorted id list, suitable for
// snapshotting.
func (m *Manager) Selected() []int {
	out := make([]int, 0, len(m.selected))
	for id := range m.selected {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// Restore replaces the selection set, used when a session snapshot is
// applied or a library listing seeds the screen.
func (m *Manager) Restore(surveyIDs []int) {
	m.selected = make(map[int]bool, len(surveyIDs))
	for _, id := range surveyIDs {
		m.selected[id] = true
	}
}

// ToggleLibrary flips a survey's library membership against the remote
// library. The operation is idempotent from the caller's perspective: a
// remove answered "not found" and an add answered "duplicate" both count as
// the user's intent already satisfied, so the local state still flips. Only
// a genuine failure leaves the state unchanged and returns an error.
//
// The returned bool is the survey's membership after the call.
func (m *Manager) ToggleLibrary(ctx context.Context, surveyID int, origin Origin) (bool, error) {
	if m.selected[surveyID] {
		err := m.library.RemoveFromLibrary(ctx, surveyID)
		if err != nil && !errors.Is(err, api.ErrNotFound) {
			return true, err
		}
		delete(m.selected, surveyID)
		return false, nil
	}

	status := types.StatusSaved
	if origin == OriginRecommend {
		status = types.StatusRecommended
	}

	_, err := m.library.AddToLibrary(ctx, surveyID, status)
	if err != nil && !errors.Is(err, api.ErrDuplicate) {
		return false, err
	}
	m.selected[surveyID] = true
	return true, nil
}

// ToggleStar flips the starred flag on an association. There is no
// idempotence loophole here: the local flag may flip only on success, so any
// error is surfaced and the caller leaves its state untouched.
func (m *Manager) ToggleStar(ctx context.Context, associationID int) error {
	return m.library.ToggleStar(ctx, associationID)
}
