package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/claudedesk/claudedesk/internal/export"
)

var (
	exportFormat    string
	exportOut       string
	exportAllFormat string
	exportDir       string
)

var exportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a conversation as txt, md or json",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := current.store.Load(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		var format export.Format
		if exportFormat == "" {
			format = export.FormatForPath(exportOut)
		} else {
			format, err = export.ParseFormat(exportFormat)
			if err != nil {
				return err
			}
		}

		text, err := export.Render(rec, format)
		if err != nil {
			return err
		}

		if exportOut == "" {
			fmt.Print(text)
			return nil
		}
		if err := os.WriteFile(exportOut, []byte(text), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", exportOut, err)
		}
		fmt.Printf("Exported %s to %s\n", rec.ID, exportOut)
		return nil
	},
}

var exportAllCmd = &cobra.Command{
	Use:   "export-all",
	Short: "Export every conversation into a directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := export.ParseFormat(exportAllFormat)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(exportDir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", exportDir, err)
		}

		summaries, err := current.store.List(cmd.Context())
		if err != nil {
			return err
		}

		exported := 0
		for _, sum := range summaries {
			rec, err := current.store.Load(cmd.Context(), sum.ID)
			if err != nil {
				current.logger.Warn("skipping conversation during export",
					"id", sum.ID, "error", err)
				continue
			}
			text, err := export.Render(rec, format)
			if err != nil {
				return err
			}
			path := filepath.Join(exportDir, rec.ID+"."+string(format))
			if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			exported++
		}
		fmt.Printf("Exported %d conversation(s) to %s\n", exported, exportDir)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "export format: txt, md or json (default: from --out extension)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default: stdout)")
	exportAllCmd.Flags().StringVarP(&exportAllFormat, "format", "f", "md", "export format: txt, md or json")
	exportAllCmd.Flags().StringVarP(&exportDir, "dir", "d", "claudedesk-export", "output directory")
	rootCmd.AddCommand(exportCmd, exportAllCmd)
}
