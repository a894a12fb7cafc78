// Package store provides conversation storage interfaces and implementations.
package store

import (
	"context"
	"errors"

	"github.com/claudedesk/claudedesk/internal/conversation"
)

var (
	// ErrStoreUnavailable indicates the store directory cannot be read or
	// written. Callers may recover by creating the directory.
	ErrStoreUnavailable = errors.New("conversation store unavailable")

	// ErrNotFound indicates no record exists for the given id.
	ErrNotFound = errors.New("conversation not found")

	// ErrCorrupt indicates a record file exists but does not parse as a
	// valid record. Only the offending id is affected; the rest of the
	// store stays usable.
	ErrCorrupt = errors.New("conversation record corrupt")
)

// ConversationStore provides durable CRUD over conversation records.
type ConversationStore interface {
	// List returns summaries of all records, newest-updated-first.
	// Malformed files are skipped, not fatal.
	List(ctx context.Context) ([]conversation.Summary, error)

	// Load retrieves a full record by id.
	Load(ctx context.Context, id string) (*conversation.Record, error)

	// Save persists the record, assigning a fresh id when the record has
	// none or when its id collides with a different record. It refreshes
	// UpdatedAt and returns the (possibly newly assigned) id.
	Save(ctx context.Context, rec *conversation.Record) (string, error)

	// Delete removes the record. Deleting an absent id returns ErrNotFound
	// with no side effect, so retrying callers fail cleanly.
	Delete(ctx context.Context, id string) error

	// Search returns summaries of records whose title or message content
	// contains the query, case-insensitively, newest-first.
	Search(ctx context.Context, query string) ([]conversation.Summary, error)
}
