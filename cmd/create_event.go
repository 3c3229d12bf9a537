package cmd

import (
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"eventify-cli/catalog"
	"eventify-cli/model"
)

func newCreateEventCmd(c *cli) *cobra.Command {
	var title, description, date string
	var capacity int
	cmd := &cobra.Command{
		Use:   "create-event",
		Short: "Publish a new event (organizers only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.requireSession()
			if err != nil {
				return err
			}
			if !s.IsOrganizer() {
				return errors.New("only organizers can create events")
			}

			name, err := promptText("Title", title, false)
			if err != nil {
				return err
			}
			when, err := promptText("Date ("+model.EventDateLayout+")", date, false)
			if err != nil {
				return err
			}
			seats := ""
			if capacity > 0 {
				seats = strconv.Itoa(capacity)
			}
			if seats, err = promptText("Capacity", seats, false); err != nil {
				return err
			}
			req, err := model.ParseCreateEventRequest(name, description, seats, when)
			if err != nil {
				return err
			}

			event, err := c.client.CreateEvent(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Event %q created successfully! ID: %s\n", catalog.CleanText(event.Title), event.Id)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "event title")
	cmd.Flags().StringVar(&description, "description", "", "event description")
	cmd.Flags().IntVar(&capacity, "capacity", 0, "number of seats")
	cmd.Flags().StringVar(&date, "date", "", "local date and time as "+model.EventDateLayout)
	return cmd
}
