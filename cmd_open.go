package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/claudedesk/claudedesk/internal/browser"
	"github.com/claudedesk/claudedesk/internal/navigation"
)

var openPopup bool

var openCmd = &cobra.Command{
	Use:   "open <url>",
	Short: "Route a navigation request the way the shell would",
	Long: `Open classifies a URL with the navigation router: authentication flows
are reported as in-app auxiliary windows (with their session partition),
the chat site's own domains stay in place, and everything else is handed
to the system default browser.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		router := navigation.NewRouter(current.cfg.ExtraAuthHosts...)

		var decision navigation.Decision
		if openPopup {
			decision = router.RoutePopup(args[0])
		} else {
			decision = router.RouteNavigation(args[0])
		}

		switch decision.Action {
		case navigation.OpenAuxiliary:
			fmt.Printf("auxiliary window (partition %s): %s\n", decision.Partition, args[0])
		case navigation.OpenInPlace:
			fmt.Printf("in-place: %s\n", args[0])
		default:
			fmt.Printf("system browser: %s\n", args[0])
			return browser.NewOpener().Open(cmd.Context(), args[0])
		}
		return nil
	},
}

func init() {
	openCmd.Flags().BoolVar(&openPopup, "popup", false, "classify as a new-window request instead of a main-frame navigation")
	rootCmd.AddCommand(openCmd)
}
