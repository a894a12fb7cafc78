package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CLAUDEDESK_DATA_DIR", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://claude.ai/", cfg.BaseURL)
	assert.True(t, cfg.AutoSave)
	assert.Equal(t, 30*time.Second, cfg.AutoSaveInterval)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.AnthropicAPIKey)
	assert.Empty(t, cfg.ExtraAuthHosts)
}

func TestLoadFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CLAUDEDESK_DATA_DIR", dir)
	t.Setenv("CLAUDEDESK_BASE_URL", "https://chat.example.com/")
	t.Setenv("CLAUDEDESK_AUTO_SAVE", "false")
	t.Setenv("CLAUDEDESK_AUTO_SAVE_INTERVAL", "2m")
	t.Setenv("CLAUDEDESK_ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("CLAUDEDESK_EXTRA_AUTH_HOSTS", "auth.corp.example, idp.example.org ,")
	t.Setenv("CLAUDEDESK_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, "https://chat.example.com/", cfg.BaseURL)
	assert.False(t, cfg.AutoSave)
	assert.Equal(t, 2*time.Minute, cfg.AutoSaveInterval)
	assert.Equal(t, "sk-test", cfg.AnthropicAPIKey)
	assert.Equal(t, []string{"auth.corp.example", "idp.example.org"}, cfg.ExtraAuthHosts)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestDirDerivation(t *testing.T) {
	cfg := &Config{DataDir: "/data/claudedesk"}

	assert.Equal(t, "/data/claudedesk/conversations", cfg.ConversationsDir())
	assert.Equal(t, "/data/claudedesk/cache", cfg.CacheDir())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			DataDir:          "/tmp/x",
			BaseURL:          "https://claude.ai/",
			AutoSave:         true,
			AutoSaveInterval: 30 * time.Second,
			LogLevel:         "info",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "empty data dir",
			mutate:  func(c *Config) { c.DataDir = "" },
			wantErr: "CLAUDEDESK_DATA_DIR",
		},
		{
			name:    "relative base url",
			mutate:  func(c *Config) { c.BaseURL = "claude.ai/chat" },
			wantErr: "CLAUDEDESK_BASE_URL",
		},
		{
			name:    "interval too short",
			mutate:  func(c *Config) { c.AutoSaveInterval = 200 * time.Millisecond },
			wantErr: "CLAUDEDESK_AUTO_SAVE_INTERVAL",
		},
		{
			name: "short interval ok when auto-save disabled",
			mutate: func(c *Config) {
				c.AutoSave = false
				c.AutoSaveInterval = 0
			},
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.LogLevel = "verbose" },
			wantErr: "log level",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Nil(t, splitList("  "))
	assert.Equal(t, []string{"a"}, splitList("a"))
	assert.Equal(t, []string{"a", "b"}, splitList(" a , b ,,"))
}
