// Package profile manages the per-user data directory layout.
package profile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/claudedesk/claudedesk/internal/config"
)

// Profile resolves and prepares the on-disk layout:
//
//	<data dir>/
//	  conversations/   one JSON file per conversation (owned here)
//	  cache/           browser session state (opaque, browser-owned)
type Profile struct {
	dataDir string
}

// New creates a profile rooted at the configured data directory.
func New(cfg *config.Config) (*Profile, error) {
	abs, err := filepath.Abs(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("resolving data dir: %w", err)
	}
	return &Profile{dataDir: abs}, nil
}

// DataDir returns the base directory.
func (p *Profile) DataDir() string {
	return p.dataDir
}

// ConversationsDir returns the directory holding conversation records.
func (p *Profile) ConversationsDir() string {
	return filepath.Join(p.dataDir, "conversations")
}

// CacheDir returns the browser-owned cache directory. This module never
// writes into it.
func (p *Profile) CacheDir() string {
	return filepath.Join(p.dataDir, "cache")
}

// EnsureReady creates the directory layout if missing.
func (p *Profile) EnsureReady() error {
	for _, dir := range []string{p.dataDir, p.ConversationsDir(), p.CacheDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("preparing %s: %w", dir, err)
		}
	}
	return nil
}

// ClearCache wipes the browser cache directory, logging the user out of
// the embedded session. Conversation records are untouched.
func (p *Profile) ClearCache() error {
	cache := p.CacheDir()
	if err := os.RemoveAll(cache); err != nil {
		return fmt.Errorf("clearing cache %s: %w", cache, err)
	}
	if err := os.MkdirAll(cache, 0o755); err != nil {
		return fmt.Errorf("recreating cache %s: %w", cache, err)
	}
	return nil
}
