// Package main is the entry point for the claudedesk CLI, the companion to
// the desktop shell: it manages the local conversation store, exports, and
// navigation routing decisions.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/claudedesk/claudedesk/internal/config"
	"github.com/claudedesk/claudedesk/internal/profile"
	"github.com/claudedesk/claudedesk/internal/store"
)

// app holds the wiring shared by all commands, built in rootCmd's
// PersistentPreRunE.
type app struct {
	cfg     *config.Config
	profile *profile.Profile
	store   *store.FileStore
	logger  *slog.Logger
}

var current *app

var rootCmd = &cobra.Command{
	Use:   "claudedesk",
	Short: "Local conversation companion for the Claude desktop shell",
	Long: `claudedesk manages the local conversation history the desktop shell
shows in its sidebar: listing, exporting, searching and deleting saved
conversations, plus the navigation decisions for login pop-ups.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		logLevel := slog.LevelInfo
		if cfg.LogLevel == "debug" {
			logLevel = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)

		prof, err := profile.New(cfg)
		if err != nil {
			return err
		}
		if err := prof.EnsureReady(); err != nil {
			return err
		}

		st, err := store.NewFileStore(prof.ConversationsDir(), logger)
		if err != nil {
			return err
		}

		current = &app{cfg: cfg, profile: prof, store: st, logger: logger}
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
