// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

// FileStore persists snapshots as one YAML file per key under a session
// directory, so consecutive CLI invocations within one login session share
// them. Logout removes the directory, ending the session.
type FileStore struct {
	dir string
}

// NewFileStore creates the session directory if needed and returns a store
// over it.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating snapshot directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".yaml")
}

// Save writes the snapshot atomically: a temp file rename so a crash mid-
// write never leaves a partially stale snapshot behind.
func (s *FileStore) Save(key string, snap Snapshot) error {
	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot %s: %w", key, err)
	}

	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing snapshot %s: %w", key, err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("committing snapshot %s: %w", key, err)
	}
	return nil
}

// Restore reads the snapshot for key; a missing file means absent, not an
// error.
func (s *FileStore) Restore(key string) (Snapshot, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, false, nil
		}
		return Snapshot{}, false, fmt.Errorf("reading snapshot %s: %w", key, err)
	}

	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, false, fmt.Errorf("parsing snapshot %s: %w", key, err)
	}
	return snap, true, nil
}

// Merge patches the view fields of an existing snapshot; absent keys are a
// no-op.
func (s *FileStore) Merge(key string, patch Patch) error {
	snap, ok, err := s.Restore(key)
	if err != nil || !ok {
		return err
	}
	applyPatch(&snap, patch)
	return s.Save(key, snap)
}

// Clear removes the snapshot for key.
func (s *FileStore) Clear(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clearing snapshot %s: %w", key, err)
	}
	return nil
}

// Reset removes every snapshot file in the session directory.
func (s *FileStore) Reset() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading snapshot directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
			return fmt.Errorf("removing snapshot %s: %w", entry.Name(), err)
		}
	}
	return nil
}
