// Package conversation defines the conversation record model and id scheme.
package conversation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role identifies who authored a message. Unknown roles are preserved
// as-is so future roles round-trip through the store unrejected.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single message in a conversation.
type Message struct {
	Role      Role      `json:"role"`      // "user", "assistant", or a future role
	Content   string    `json:"content"`   // Free-form text, may contain Markdown
	Timestamp time.Time `json:"timestamp"` // When the message was created
}

// Record represents a persisted conversation. The id doubles as the
// filename stem of the backing file.
type Record struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"` // Immutable after creation
	UpdatedAt time.Time `json:"updated_at"` // Refreshed on every save
}

// Summary is the metadata subset of a record used for sidebar listings.
// It deliberately omits message bodies.
type Summary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ErrInvalidRecord indicates a record that fails validation.
var ErrInvalidRecord = errors.New("invalid conversation record")

// idTimeLayout yields ids like 20241212_143022. Second granularity, so two
// records created in the same window would collide without a suffix.
const idTimeLayout = "20060102_150405"

// NewID returns a fresh timestamp-derived id.
func NewID(now time.Time) string {
	return now.Format(idTimeLayout)
}

// UniqueSuffix appends short random material to a colliding id while keeping
// the timestamp prefix, so chronological sorting of ids still holds.
func UniqueSuffix(id string) string {
	return id + "_" + uuid.NewString()[:6]
}

// New creates an empty conversation with the given title. A record with zero
// messages is valid: it is a freshly created, not-yet-used conversation.
func New(title string) *Record {
	now := time.Now().UTC()
	return &Record{
		ID:        NewID(now),
		Title:     title,
		Messages:  []Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks the structural invariants a record must satisfy to be
// loadable. Unknown roles pass; they must round-trip.
func (r *Record) Validate() error {
	if r == nil {
		return fmt.Errorf("%w: nil record", ErrInvalidRecord)
	}
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidRecord)
	}
	if strings.ContainsAny(r.ID, "/\\") {
		return fmt.Errorf("%w: id %q contains path separators", ErrInvalidRecord, r.ID)
	}
	if r.CreatedAt.IsZero() {
		return fmt.Errorf("%w: missing created_at", ErrInvalidRecord)
	}
	for i, msg := range r.Messages {
		if msg.Role == "" {
			return fmt.Errorf("%w: message %d has empty role", ErrInvalidRecord, i)
		}
	}
	return nil
}

// Append adds a message to the end of the conversation, clamping its
// timestamp so the sequence stays monotonically non-decreasing.
func (r *Record) Append(msg Message) {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	if n := len(r.Messages); n > 0 {
		if last := r.Messages[n-1].Timestamp; msg.Timestamp.Before(last) {
			msg.Timestamp = last
		}
	}
	r.Messages = append(r.Messages, msg)
	r.UpdatedAt = msg.Timestamp
}

// Summary returns the listing metadata for the record.
func (r *Record) Summary() Summary {
	return Summary{ID: r.ID, Title: r.Title, UpdatedAt: r.UpdatedAt}
}

// Clone returns a deep copy so callers can mutate a working copy without
// affecting the original.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	cp := &Record{
		ID:        r.ID,
		Title:     r.Title,
		Messages:  make([]Message, len(r.Messages)),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	copy(cp.Messages, r.Messages)
	return cp
}

// Matches reports whether the query occurs in the title or any message
// content, case-insensitively.
func (r *Record) Matches(query string) bool {
	q := strings.ToLower(query)
	if q == "" {
		return false
	}
	if strings.Contains(strings.ToLower(r.Title), q) {
		return true
	}
	for _, msg := range r.Messages {
		if strings.Contains(strings.ToLower(msg.Content), q) {
			return true
		}
	}
	return false
}
