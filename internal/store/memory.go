package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/claudedesk/claudedesk/internal/conversation"
)

// MemoryStore is an in-memory implementation of ConversationStore, used by
// tests and as a scratch cache. It mirrors the file store's semantics,
// including collision-safe id assignment.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*conversation.Record
}

// NewMemoryStore creates a new in-memory conversation store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]*conversation.Record),
	}
}

// List returns summaries newest-updated-first.
func (s *MemoryStore) List(ctx context.Context) ([]conversation.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]conversation.Summary, 0, len(s.records))
	for _, rec := range s.records {
		summaries = append(summaries, rec.Summary())
	}
	sortSummaries(summaries)
	return summaries, nil
}

// Load retrieves a record by id.
func (s *MemoryStore) Load(ctx context.Context, id string) (*conversation.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return rec.Clone(), nil
}

// Save stores a copy of the record, assigning a fresh id on collision.
func (s *MemoryStore) Save(ctx context.Context, rec *conversation.Record) (string, error) {
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
	for {
		existing, ok := s.records[rec.ID]
		if !ok || existing.CreatedAt.Equal(rec.CreatedAt) {
			break
		}
		rec.ID = conversation.UniqueSuffix(rec.ID)
	}
	rec.UpdatedAt = now

	if err := rec.Validate(); err != nil {
		return "", err
	}
	s.records[rec.ID] = rec.Clone()
	return rec.ID, nil
}

// Delete removes a record.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.records, id)
	return nil
}

// Search matches the query against titles and message contents.
func (s *MemoryStore) Search(ctx context.Context, query string) ([]conversation.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []conversation.Summary
	for _, rec := range s.records {
		if rec.Matches(query) {
			matches = append(matches, rec.Summary())
		}
	}
	sortSummaries(matches)
	return matches, nil
}

// Len returns the number of records in the store.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
