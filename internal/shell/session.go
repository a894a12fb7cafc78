// Package shell holds the active-conversation session logic the GUI shell
// drives: a working copy of the current record, manual and timed flushes,
// and the local chat path.
package shell

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/claudedesk/claudedesk/internal/conversation"
	"github.com/claudedesk/claudedesk/internal/store"
)

// ErrNoActiveConversation is returned by operations that need an open
// conversation when none is loaded.
var ErrNoActiveConversation = errors.New("no active conversation")

// Completer produces an assistant reply for the local chat path. The
// Claude API client satisfies this; tests plug in fakes.
type Completer interface {
	Complete(ctx context.Context, history []conversation.Message, userMessage string) (string, error)
}

// Session is an explicit handle around the in-memory working copy of the
// active conversation. The store directory stays the sole durable owner;
// the session only flushes its copy there. Multiple independent sessions
// over separate stores can coexist, there is no process-wide state.
type Session struct {
	store     store.ConversationStore
	completer Completer
	logger    *slog.Logger

	mu     sync.Mutex
	active *conversation.Record
	dirty  bool
}

// NewSession creates a session over the given store. completer may be nil
// when no API key is configured; SendMessage then fails cleanly.
func NewSession(st store.ConversationStore, completer Completer, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{store: st, completer: completer, logger: logger}
}

// NewChat creates and persists an empty conversation and makes it active.
func (s *Session) NewChat(ctx context.Context, title string) (*conversation.Record, error) {
	if title == "" {
		title = "New Chat"
	}
	rec := conversation.New(title)
	id, err := s.store.Save(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("creating conversation: %w", err)
	}
	rec.ID = id

	s.mu.Lock()
	s.active = rec
	s.dirty = false
	s.mu.Unlock()

	s.logger.Info("created conversation", "id", id, "title", title)
	return rec.Clone(), nil
}

// Open loads a conversation and makes it the active one. A dirty previous
// conversation is flushed first so no edits are lost.
func (s *Session) Open(ctx context.Context, id string) (*conversation.Record, error) {
	if err := s.Flush(ctx); err != nil {
		return nil, err
	}
	rec, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.active = rec
	s.dirty = false
	s.mu.Unlock()

	return rec.Clone(), nil
}

// Active returns a copy of the active record, or nil when none is open.
func (s *Session) Active() *conversation.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active.Clone()
}

// Append adds a message to the active conversation. The record enforces
// non-decreasing message timestamps.
func (s *Session) Append(role conversation.Role, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return ErrNoActiveConversation
	}
	s.active.Append(conversation.Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	})
	s.dirty = true
	return nil
}

// Rename changes the active conversation's title.
func (s *Session) Rename(title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return ErrNoActiveConversation
	}
	s.active.Title = title
	s.dirty = true
	return nil
}

// ClearMessages drops all messages from the active conversation.
func (s *Session) ClearMessages() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return ErrNoActiveConversation
	}
	s.active.Messages = s.active.Messages[:0]
	s.dirty = true
	return nil
}

// Flush persists the working copy when it has unsaved changes. The store's
// atomic rename makes a flush racing the auto-save timer resolve to
// last-writer-wins with no partial file.
func (s *Session) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushLocked(ctx)
}

func (s *Session) flushLocked(ctx context.Context) error {
	if s.active == nil || !s.dirty {
		return nil
	}
	id, err := s.store.Save(ctx, s.active)
	if err != nil {
		return fmt.Errorf("saving conversation: %w", err)
	}
	s.active.ID = id
	s.dirty = false
	s.logger.Debug("flushed conversation", "id", id)
	return nil
}

// SendMessage runs the local chat path: append the user message, ask the
// completer for a reply, append and persist it.
func (s *Session) SendMessage(ctx context.Context, content string) (string, error) {
	if s.completer == nil {
		return "", errors.New("local chat is not configured, set CLAUDEDESK_ANTHROPIC_API_KEY")
	}

	s.mu.Lock()
	if s.active == nil {
		s.mu.Unlock()
		return "", ErrNoActiveConversation
	}
	history := make([]conversation.Message, len(s.active.Messages))
	copy(history, s.active.Messages)
	s.mu.Unlock()

	reply, err := s.completer.Complete(ctx, history, content)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return "", ErrNoActiveConversation
	}
	now := time.Now().UTC()
	s.active.Append(conversation.Message{Role: conversation.RoleUser, Content: content, Timestamp: now})
	s.active.Append(conversation.Message{Role: conversation.RoleAssistant, Content: reply, Timestamp: time.Now().UTC()})
	s.dirty = true
	return reply, s.flushLocked(ctx)
}

// Close flushes any pending changes and drops the active conversation.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.flushLocked(ctx); err != nil {
		return err
	}
	s.active = nil
	return nil
}
