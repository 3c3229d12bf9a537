package cmd

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"eventify-cli/catalog"
	"eventify-cli/render"
	"eventify-cli/store"
)

func newEventsCmd(c *cli) *cobra.Command {
	var query, filter, htmlPath string
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List events",
		Long:  `List every event, optionally narrowed by a search query and an availability filter.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := catalog.ParseFilterMode(filter)
			if err != nil {
				return err
			}
			events, err := c.client.ListEvents(cmd.Context())
			if err != nil {
				return err
			}
			visible := catalog.Filter(events, query, mode)

			if htmlPath == "" {
				render.EventTable(cmd.OutOrStdout(), visible)
				return nil
			}
			f, err := os.Create(htmlPath)
			if err != nil {
				return errors.Wrap(err, "create html file")
			}
			defer f.Close()
			if err := render.HTMLCatalog(f, "Events • "+mode.Label(), visible); err != nil {
				return errors.Wrap(err, "write html file")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d events to %s\n", len(visible), htmlPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "case-insensitive text to look for in title or description")
	cmd.Flags().StringVarP(&filter, "filter", "f", "all", "all, available or full")
	cmd.Flags().StringVar(&htmlPath, "html", "", "write an HTML catalog to this file instead of printing a table")
	return cmd
}

func newEventCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "event ID",
		Short: "Show one event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			event, err := c.client.GetEvent(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := store.RememberEvent(event); err != nil {
				c.log.WithField("error", err.Error()).Warn("remember event")
			}
			render.EventDetail(cmd.OutOrStdout(), event)
			return nil
		},
	}
}
