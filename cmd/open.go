package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"eventify-cli/tui"
)

func newOpenCmd(c *cli) *cobra.Command {
	var eventID string
	names := make([]string, 0, len(tui.Pages))
	for _, p := range tui.Pages {
		names = append(names, string(p))
	}

	cmd := &cobra.Command{
		Use:       "open [page]",
		Short:     "Open the interactive client on a page",
		Long:      "Open the interactive client on one of: " + strings.Join(names, ", ") + ".",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			page := tui.PageHome
			if c.cfg.StartPage != "" {
				page = tui.Page(c.cfg.StartPage)
			}
			if len(args) == 1 {
				page = tui.Page(args[0])
			}
			if eventID != "" && len(args) == 0 {
				page = tui.PageEventDetail
			}
			return c.openUI(page, eventID)
		},
	}
	cmd.Flags().StringVar(&eventID, "id", "", "event id for the event-detail page")
	return cmd
}
