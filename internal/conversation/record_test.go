package conversation

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	rec := New("Kernel questions")

	require.NoError(t, rec.Validate())
	assert.Equal(t, "Kernel questions", rec.Title)
	assert.NotNil(t, rec.Messages)
	assert.Empty(t, rec.Messages, "a fresh conversation has zero messages and is valid")
	assert.Equal(t, rec.CreatedAt, rec.UpdatedAt)
	assert.Len(t, rec.ID, len("20060102_150405"))
}

func TestNewID_ChronologicalOrder(t *testing.T) {
	early := NewID(time.Date(2024, 12, 12, 14, 30, 22, 0, time.UTC))
	late := NewID(time.Date(2024, 12, 12, 14, 30, 23, 0, time.UTC))

	assert.Equal(t, "20241212_143022", early)
	assert.True(t, early < late, "lexical order must follow chronological order")
}

func TestUniqueSuffix(t *testing.T) {
	id := "20241212_143022"
	a := UniqueSuffix(id)
	b := UniqueSuffix(id)

	assert.True(t, strings.HasPrefix(a, id+"_"))
	assert.NotEqual(t, a, b)
	assert.True(t, id < a, "suffixed ids still sort after the bare timestamp")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Record)
		wantErr bool
	}{
		{name: "valid", mutate: func(r *Record) {}},
		{name: "missing id", mutate: func(r *Record) { r.ID = "" }, wantErr: true},
		{name: "id with path separator", mutate: func(r *Record) { r.ID = "../escape" }, wantErr: true},
		{name: "missing created_at", mutate: func(r *Record) { r.CreatedAt = time.Time{} }, wantErr: true},
		{name: "empty role", mutate: func(r *Record) {
			r.Messages = append(r.Messages, Message{Content: "hi", Timestamp: time.Now()})
		}, wantErr: true},
		{name: "unknown role is accepted", mutate: func(r *Record) {
			r.Messages = append(r.Messages, Message{Role: "system", Content: "hi", Timestamp: time.Now()})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := New("t")
			tt.mutate(rec)
			err := rec.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRecord)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAppend_MonotonicTimestamps(t *testing.T) {
	rec := New("t")
	base := time.Date(2024, 12, 12, 14, 30, 22, 0, time.UTC)

	rec.Append(Message{Role: RoleUser, Content: "first", Timestamp: base})
	// A message stamped before its predecessor gets clamped, never reordered.
	rec.Append(Message{Role: RoleAssistant, Content: "second", Timestamp: base.Add(-time.Minute)})
	rec.Append(Message{Role: RoleUser, Content: "third", Timestamp: base.Add(time.Minute)})

	require.Len(t, rec.Messages, 3)
	assert.Equal(t, "first", rec.Messages[0].Content)
	assert.Equal(t, "second", rec.Messages[1].Content)
	assert.Equal(t, base, rec.Messages[1].Timestamp, "clamped to predecessor")
	assert.Equal(t, base.Add(time.Minute), rec.Messages[2].Timestamp)
	assert.Equal(t, rec.Messages[2].Timestamp, rec.UpdatedAt)

	for i := 1; i < len(rec.Messages); i++ {
		assert.False(t, rec.Messages[i].Timestamp.Before(rec.Messages[i-1].Timestamp))
	}
}

func TestUnknownRoleRoundTrips(t *testing.T) {
	rec := New("t")
	rec.Append(Message{Role: "moderator", Content: "heads up"})

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var decoded Record
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.NoError(t, decoded.Validate())
	require.Len(t, decoded.Messages, 1)
	assert.Equal(t, Role("moderator"), decoded.Messages[0].Role)
}

func TestClone(t *testing.T) {
	rec := New("t")
	rec.Append(Message{Role: RoleUser, Content: "hello"})

	cp := rec.Clone()
	cp.Title = "changed"
	cp.Messages[0].Content = "mutated"

	assert.Equal(t, "t", rec.Title)
	assert.Equal(t, "hello", rec.Messages[0].Content)

	var nilRec *Record
	assert.Nil(t, nilRec.Clone())
}

func TestMatches(t *testing.T) {
	rec := New("Trip Planning")
	rec.Append(Message{Role: RoleUser, Content: "What about Lisbon in May?"})

	assert.True(t, rec.Matches("trip"))
	assert.True(t, rec.Matches("LISBON"))
	assert.False(t, rec.Matches("tokyo"))
	assert.False(t, rec.Matches(""))
}
