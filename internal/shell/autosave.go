package shell

import (
	"context"
	"log/slog"
	"time"
)

// AutoSaver periodically flushes a session's working copy to the store.
// One instance runs per session; the only race is against a manual save,
// which the store's atomic rename already resolves.
type AutoSaver struct {
	session  *Session
	interval time.Duration
	logger   *slog.Logger
}

// NewAutoSaver creates an auto-saver for the session.
func NewAutoSaver(session *Session, interval time.Duration, logger *slog.Logger) *AutoSaver {
	if logger == nil {
		logger = slog.Default()
	}
	return &AutoSaver{session: session, interval: interval, logger: logger}
}

// Run flushes on every tick until the context is cancelled, then performs
// one final flush so shutdown never loses edits.
func (a *AutoSaver) Run(ctx context.Context) error {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// Final flush with a fresh context; the run context is gone.
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := a.session.Flush(flushCtx); err != nil {
				a.logger.Error("final auto-save failed", "error", err)
				return err
			}
			return ctx.Err()
		case <-ticker.C:
			if err := a.session.Flush(ctx); err != nil {
				a.logger.Warn("auto-save failed", "error", err)
			}
		}
	}
}
