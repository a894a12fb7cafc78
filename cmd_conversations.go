package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/claudedesk/claudedesk/internal/conversation"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	idStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	timeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	roleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved conversations, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		summaries, err := current.store.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(summaries) == 0 {
			fmt.Println("No saved conversations.")
			return nil
		}
		printSummaries(summaries)
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a conversation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := current.store.Load(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Println(titleStyle.Render(rec.Title))
		fmt.Println(idStyle.Render(rec.ID), timeStyle.Render(rec.UpdatedAt.Local().Format("2006-01-02 15:04")))
		for _, msg := range rec.Messages {
			fmt.Println()
			fmt.Printf("%s %s\n", roleStyle.Render(string(msg.Role)+":"),
				timeStyle.Render(msg.Timestamp.Local().Format("15:04:05")))
			fmt.Println(msg.Content)
		}
		return nil
	},
}

var newCmd = &cobra.Command{
	Use:   "new [title]",
	Short: "Create a new empty conversation",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := "New Chat"
		if len(args) > 0 {
			title = args[0]
		}
		rec := conversation.New(title)
		id, err := current.store.Save(cmd.Context(), rec)
		if err != nil {
			return err
		}
		fmt.Println(id)
		return nil
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename <id> <title>",
	Short: "Rename a conversation",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := current.store.Load(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		rec.Title = args[1]
		if _, err := current.store.Save(cmd.Context(), rec); err != nil {
			return err
		}
		fmt.Printf("Renamed %s to %q\n", rec.ID, rec.Title)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a conversation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.store.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search conversation titles and contents",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		matches, err := current.store.Search(cmd.Context(), query)
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			fmt.Printf("No conversations match %q.\n", query)
			return nil
		}
		printSummaries(matches)
		return nil
	},
}

var clearCacheCmd = &cobra.Command{
	Use:   "clear-cache",
	Short: "Wipe the embedded browser cache (logs the session out)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.profile.ClearCache(); err != nil {
			return err
		}
		fmt.Println("Browser cache cleared. The next shell start requires a fresh login.")
		return nil
	},
}

func printSummaries(summaries []conversation.Summary) {
	for _, sum := range summaries {
		fmt.Printf("%s  %s  %s\n",
			idStyle.Render(sum.ID),
			timeStyle.Render(sum.UpdatedAt.Local().Format("2006-01-02 15:04")),
			titleStyle.Render(sum.Title),
		)
	}
}

func init() {
	rootCmd.AddCommand(listCmd, showCmd, newCmd, renameCmd, deleteCmd, searchCmd, clearCacheCmd)
}
