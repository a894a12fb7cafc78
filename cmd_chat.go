package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/claudedesk/claudedesk/internal/claude"
	"github.com/claudedesk/claudedesk/internal/shell"
)

var chatMessage string

var chatCmd = &cobra.Command{
	Use:   "chat <id>",
	Short: "Chat locally in a saved conversation via the Anthropic API",
	Long: `Chat appends to a saved conversation using the Anthropic API directly,
without the embedded browser. Requires CLAUDEDESK_ANTHROPIC_API_KEY.
With --message a single exchange runs; otherwise an interactive prompt
reads lines until EOF.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if current.cfg.AnthropicAPIKey == "" {
			return fmt.Errorf("local chat requires CLAUDEDESK_ANTHROPIC_API_KEY")
		}
		client := claude.NewClient(current.cfg.AnthropicAPIKey, current.cfg.AnthropicModel)
		session := shell.NewSession(current.store, client, current.logger)

		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if _, err := session.Open(ctx, args[0]); err != nil {
			return err
		}
		defer session.Close(context.Background())

		// Auto-save covers the interactive loop; one-shot sends flush
		// themselves inside SendMessage.
		if current.cfg.AutoSave {
			go func() {
				saver := shell.NewAutoSaver(session, current.cfg.AutoSaveInterval, current.logger)
				_ = saver.Run(ctx)
			}()
		}

		if chatMessage != "" {
			return sendAndPrint(ctx, session, chatMessage)
		}

		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		fmt.Println("Type a message and press Enter. Ctrl+D ends the chat.")
		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				break
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if err := sendAndPrint(ctx, session, line); err != nil {
				return err
			}
		}
		return scanner.Err()
	},
}

func sendAndPrint(ctx context.Context, session *shell.Session, message string) error {
	reply, err := session.SendMessage(ctx, message)
	if err != nil {
		return err
	}
	fmt.Println(reply)
	return nil
}

func init() {
	chatCmd.Flags().StringVarP(&chatMessage, "message", "m", "", "send a single message instead of starting an interactive chat")
	rootCmd.AddCommand(chatCmd)
}
