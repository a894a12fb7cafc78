package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"

	"github.com/claudedesk/claudedesk/internal/conversation"
)

// recordPattern matches conversation record files inside the store directory.
const recordPattern = "*.json"

// FileStore persists one JSON file per conversation in a directory. All
// writes are tmp-then-rename, so a crash mid-write never leaves a
// half-written file readable as valid.
type FileStore struct {
	dir    string
	logger *slog.Logger

	// Serializes saves so the auto-save timer and a manual save racing
	// in-process resolve to last-writer-wins without interleaving.
	mu sync.Mutex
}

// NewFileStore creates a store over the given directory. The directory is
// created if missing.
func NewFileStore(dir string, logger *slog.Logger) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty store directory", ErrStoreUnavailable)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating %s: %v", ErrStoreUnavailable, dir, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

// Dir returns the store directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// List scans the directory for record files and returns their summaries,
// newest-updated-first. Message bodies are not materialized. A malformed
// file is skipped with a warning so one bad record never hides the rest.
func (s *FileStore) List(ctx context.Context) ([]conversation.Summary, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrStoreUnavailable, s.dir, err)
	}

	summaries := make([]conversation.Summary, 0, len(entries))
	for _, entry := range entries {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if entry.IsDir() || !matchRecordName(entry.Name()) {
			continue
		}
		sum, err := s.readSummary(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			s.logger.Warn("skipping unreadable conversation file",
				"file", entry.Name(), "error", err)
			continue
		}
		summaries = append(summaries, sum)
	}

	sortSummaries(summaries)
	return summaries, nil
}

// Load reads and validates the record for id.
func (s *FileStore) Load(ctx context.Context, id string) (*conversation.Record, error) {
	path, err := s.recordPath(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: reading %s: %v", ErrStoreUnavailable, id, err)
	}

	var rec conversation.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, id, err)
	}
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, id, err)
	}
	return &rec, nil
}

// Save atomically replaces the file for the record's id, refreshing
// UpdatedAt. A record without an id, or whose id belongs to a different
// record on disk, gets a fresh id; collisions never silently overwrite.
func (s *FileStore) Save(ctx context.Context, rec *conversation.Record) (string, error) {
	if rec == nil {
		return "", fmt.Errorf("%w: nil record", conversation.ErrInvalidRecord)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if rec.ID == "" {
		rec.ID = conversation.NewID(now)
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	if err := s.ensureUniqueID(rec); err != nil {
		return "", err
	}
	rec.UpdatedAt = now

	if err := rec.Validate(); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling conversation %s: %w", rec.ID, err)
	}

	path, err := s.recordPath(rec.ID)
	if err != nil {
		return "", err
	}
	tmp := path + ".tmp-" + uuid.NewString()[:8]
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("%w: writing %s: %v", ErrStoreUnavailable, rec.ID, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("%w: renaming %s: %v", ErrStoreUnavailable, rec.ID, err)
	}
	return rec.ID, nil
}

// Delete removes the backing file for id.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	path, err := s.recordPath(id)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return fmt.Errorf("%w: deleting %s: %v", ErrStoreUnavailable, id, err)
	}
	return nil
}

// Search loads each record and matches the query against its title and
// message contents. Results come back newest-first; corrupt records are
// skipped the same way List skips them.
func (s *FileStore) Search(ctx context.Context, query string) ([]conversation.Summary, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	summaries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	matches := make([]conversation.Summary, 0, len(summaries))
	for _, sum := range summaries {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		rec, err := s.Load(ctx, sum.ID)
		if err != nil {
			s.logger.Warn("skipping conversation during search",
				"id", sum.ID, "error", err)
			continue
		}
		if rec.Matches(query) {
			matches = append(matches, sum)
		}
	}
	return matches, nil
}

// ensureUniqueID reassigns the record's id while the id on disk belongs to
// a different record. Same CreatedAt means it is this record's own file
// being overwritten, which is the normal save path.
func (s *FileStore) ensureUniqueID(rec *conversation.Record) error {
	for attempt := 0; attempt < 10; attempt++ {
		path, err := s.recordPath(rec.ID)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: checking %s: %v", ErrStoreUnavailable, rec.ID, err)
		}

		var existing conversation.Record
		if json.Unmarshal(data, &existing) == nil && existing.CreatedAt.Equal(rec.CreatedAt) {
			return nil
		}
		// Occupied by another (or unreadable) record. Never overwrite it.
		rec.ID = conversation.UniqueSuffix(rec.ID)
	}
	return fmt.Errorf("%w: could not assign unique id for %q", ErrStoreUnavailable, rec.ID)
}

// readSummary parses only the listing metadata of a record file.
func (s *FileStore) readSummary(path string) (conversation.Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return conversation.Summary{}, err
	}
	var sum conversation.Summary
	if err := json.Unmarshal(data, &sum); err != nil {
		return conversation.Summary{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if sum.ID == "" {
		return conversation.Summary{}, fmt.Errorf("%w: missing id", ErrCorrupt)
	}
	return sum, nil
}

// recordPath maps an id to its backing file, rejecting ids that would
// escape the store directory.
func (s *FileStore) recordPath(id string) (string, error) {
	if id == "" || strings.Contains(id, "..") || strings.ContainsAny(id, "/\\") {
		return "", fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return filepath.Join(s.dir, id+".json"), nil
}

func matchRecordName(name string) bool {
	ok, err := doublestar.Match(recordPattern, name)
	return err == nil && ok
}

func sortSummaries(summaries []conversation.Summary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
	})
}
