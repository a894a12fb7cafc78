// Package config provides configuration loading for claudedesk.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	// DataDir is the per-user base directory holding conversations/ and
	// the browser-owned cache/.
	DataDir string

	// BaseURL is the hosted chat site the shell points at.
	BaseURL string

	// Auto-save settings
	AutoSave         bool
	AutoSaveInterval time.Duration

	// Claude settings for the local chat path; optional.
	AnthropicAPIKey string
	AnthropicModel  string

	// ExtraAuthHosts extends the popup router's auth allow-list.
	ExtraAuthHosts []string

	LogLevel string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	v := viper.New()

	// Set prefix for environment variables
	v.SetEnvPrefix("CLAUDEDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("BASE_URL", "https://claude.ai/")
	v.SetDefault("AUTO_SAVE", true)
	v.SetDefault("AUTO_SAVE_INTERVAL", "30s")
	v.SetDefault("LOG_LEVEL", "info")

	dataDir := v.GetString("DATA_DIR")
	if dataDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolving user config dir: %w", err)
		}
		dataDir = filepath.Join(base, "claudedesk")
	}

	cfg := &Config{
		DataDir:          dataDir,
		BaseURL:          v.GetString("BASE_URL"),
		AutoSave:         v.GetBool("AUTO_SAVE"),
		AutoSaveInterval: v.GetDuration("AUTO_SAVE_INTERVAL"),
		AnthropicAPIKey:  v.GetString("ANTHROPIC_API_KEY"),
		AnthropicModel:   v.GetString("ANTHROPIC_MODEL"),
		ExtraAuthHosts:   splitList(v.GetString("EXTRA_AUTH_HOSTS")),
		LogLevel:         v.GetString("LOG_LEVEL"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []string

	if c.DataDir == "" {
		errs = append(errs, "CLAUDEDESK_DATA_DIR must not be empty")
	}

	if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Sprintf("CLAUDEDESK_BASE_URL %q is not an absolute URL", c.BaseURL))
	}

	if c.AutoSave && c.AutoSaveInterval < time.Second {
		errs = append(errs, fmt.Sprintf("CLAUDEDESK_AUTO_SAVE_INTERVAL %s is too short, minimum 1s", c.AutoSaveInterval))
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("invalid log level %q, must be debug, info, warn or error", c.LogLevel))
	}

	if len(errs) > 0 {
		return errors.New("configuration errors:\n  - " + strings.Join(errs, "\n  - "))
	}

	return nil
}

// ConversationsDir is where conversation record files live.
func (c *Config) ConversationsDir() string {
	return filepath.Join(c.DataDir, "conversations")
}

// CacheDir is owned entirely by the embedded browser surface and is opaque
// to this module; users may delete it to reset session state.
func (c *Config) CacheDir() string {
	return filepath.Join(c.DataDir, "cache")
}

// splitList parses a comma-separated environment value.
func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
