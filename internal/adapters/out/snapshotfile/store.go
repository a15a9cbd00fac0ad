// Package snapshotfile persists the whole order set as one JSON document,
// rewritten wholesale on every mutation. It suits single-station
// deployments where the state is small and a human-readable file beats a
// database.
//
// The store degrades instead of failing: a missing or unparseable document
// loads as empty state (the reconciler then persists a clean rewrite), and
// the engine keeps serving from memory when a write fails.
package snapshotfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"metrology/internal/core/ports"
)

// Store is a whole-document JSON file store implementing ports.OrderStore.
type Store struct {
	path   string
	logger *slog.Logger
}

// NewStore creates a store over the given file path. The file and its
// directory are created on first Save.
func NewStore(path string, logger *slog.Logger) *Store {
	return &Store{
		path:   path,
		logger: logger.With("component", "snapshotfile_store"),
	}
}

// Path returns the document's file path. The backup job copies this file.
func (s *Store) Path() string {
	return s.path
}

// Load reads the whole document. A missing file is a fresh installation and
// an unparseable one is corruption; both yield empty state rather than an
// error, logged for operational visibility.
func (s *Store) Load(ctx context.Context) (ports.StoreState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ports.StoreState{}, nil
		}
		s.logger.WarnContext(ctx, "Snapshot file unreadable, starting empty", "path", s.path, "error", err)
		return ports.StoreState{}, nil
	}

	var state ports.StoreState
	if err = json.Unmarshal(data, &state); err != nil {
		s.logger.WarnContext(ctx, "Snapshot file corrupt, starting empty", "path", s.path, "error", err)
		return ports.StoreState{}, nil
	}

	return state, nil
}

// Save rewrites the whole document. The write goes to a temporary file in
// the same directory followed by a rename, so a crash mid-write leaves the
// previous document intact rather than a truncated one.
func (s *Store) Save(_ context.Context, state ports.StoreState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if err = os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err = os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	if err = os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}

	return nil
}

// CountArchivedByDrawing counts archived orders with the given drawing
// number by scanning the document. The document is the whole state, so a
// scan is the query.
func (s *Store) CountArchivedByDrawing(ctx context.Context, drawingNumber string) (int, error) {
	state, err := s.Load(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, doc := range state.Archived {
		if doc.DrawingNumber == drawingNumber {
			count++
		}
	}
	return count, nil
}

// Close is a no-op; the store holds no open handles between calls.
func (s *Store) Close() error {
	return nil
}
