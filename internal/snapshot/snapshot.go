// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package snapshot persists and restores a screen's working state across
// navigation, keyed by a mode discriminator ("search", "recommend"). A
// present snapshot is the single source of truth for re-entering that mode:
// the screen must skip its normal remote fetch and apply the snapshot as one
// atomic replacement.
package snapshot

import (
	"sync"

	"github.com/unisurveyal/surveyshelf/internal/view"
	"github.com/unisurveyal/surveyshelf/pkg/types"
)

// Snapshot is a screen's full working state at save time.
type Snapshot struct {
	// Records is the working set captured at fetch time.
	Records []types.SurveyRecord `yaml:"records"`

	// Query is the search text that produced Records.
	Query string `yaml:"query"`

	// Selected lists the survey ids toggled into the library this session.
	Selected []int `yaml:"selected"`

	// ViewMode and SortKey are the view options worth carrying back.
	ViewMode view.Mode    `yaml:"view_mode"`
	SortKey  view.SortKey `yaml:"sort_key"`
}

// Patch updates a subset of a snapshot's view fields. Nil fields are left
// untouched; Records and Query never change through a patch.
type Patch struct {
	Selected *[]int
	ViewMode *view.Mode
	SortKey  *view.SortKey
}

// Store is the session-scoped snapshot store. Save is an atomic full
// overwrite; Restore is all-or-nothing; Merge only applies when a snapshot
// already exists for the key.
type Store interface {
	Save(key string, snap Snapshot) error
	Restore(key string) (Snapshot, bool, error)
	Merge(key string, patch Patch) error
	Clear(key string) error
	Reset() error
}

func applyPatch(snap *Snapshot, patch Patch) {
	if patch.Selected != nil {
		snap.Selected = *patch.Selected
	}
	if patch.ViewMode != nil {
		snap.ViewMode = *patch.ViewMode
	}
	if patch.SortKey != nil {
		snap.SortKey = *patch.SortKey
	}
}

// MemoryStore keeps snapshots in process memory. All screen access happens
// on one goroutine, but the mutex keeps the store safe for tests that
// exercise it concurrently.
type MemoryStore struct {
	mu    sync.RWMutex
	snaps map[string]Snapshot
}

// NewMemoryStore builds an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snaps: make(map[string]Snapshot)}
}

// Save overwrites the snapshot for key.
func (s *MemoryStore) Save(key string, snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps[key] = snap
	return nil
}

// Restore returns the snapshot for key, reporting absence via ok.
func (s *MemoryStore) Restore(key string) (Snapshot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snaps[key]
	return snap, ok, nil
}

// Merge patches the view fields of an existing snapshot; absent keys are a
// no-op, so interaction before any fetch never creates a partial snapshot.
func (s *MemoryStore) Merge(key string, patch Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.snaps[key]
	if !ok {
		return nil
	}
	applyPatch(&snap, patch)
	s.snaps[key] = snap
	return nil
}

// Clear removes the snapshot for key.
func (s *MemoryStore) Clear(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snaps, key)
	return nil
}

// Reset drops every snapshot, ending the session.
func (s *MemoryStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps = make(map[string]Snapshot)
	return nil
}
