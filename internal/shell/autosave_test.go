package shell

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claudedesk/claudedesk/internal/conversation"
	"github.com/claudedesk/claudedesk/internal/store"
)

func TestAutoSaverFlushesPeriodically(t *testing.T) {
	st := store.NewMemoryStore()
	s := NewSession(st, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec, err := s.NewChat(ctx, "t")
	require.NoError(t, err)
	require.NoError(t, s.Append(conversation.RoleUser, "pending edit"))

	saver := NewAutoSaver(s, 10*time.Millisecond, nil)
	done := make(chan error, 1)
	go func() { done <- saver.Run(ctx) }()

	require.Eventually(t, func() bool {
		loaded, err := st.Load(context.Background(), rec.ID)
		return err == nil && len(loaded.Messages) == 1
	}, time.Second, 5*time.Millisecond, "tick should flush the pending edit")

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestAutoSaverFinalFlushOnShutdown(t *testing.T) {
	st := store.NewMemoryStore()
	s := NewSession(st, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())

	rec, err := s.NewChat(ctx, "t")
	require.NoError(t, err)

	// A long interval so no tick fires before shutdown.
	saver := NewAutoSaver(s, time.Hour, nil)
	done := make(chan error, 1)
	go func() { done <- saver.Run(ctx) }()

	require.NoError(t, s.Append(conversation.RoleUser, "last words"))
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	loaded, err := st.Load(context.Background(), rec.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Messages, 1)
	assert.Equal(t, "last words", loaded.Messages[0].Content)
}
