package cmd

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"eventify-cli/catalog"
	"eventify-cli/render"
	"eventify-cli/service"
)

const bookedText = "You're booked! Seat reserved successfully."

func newBookCmd(c *cli) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "book ID",
		Short: "Reserve one seat of an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := c.requireSession(); err != nil {
				return err
			}
			event, err := c.client.GetEvent(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if catalog.Seats(event) == 0 {
				return errors.Newf("%s is sold out", catalog.CleanText(event.Title))
			}
			if !yes {
				ok, err := promptConfirm(fmt.Sprintf("Book %s? This cannot be undone", catalog.CleanText(event.Title)))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
					return nil
				}
			}

			res, err := c.client.BookEvent(cmd.Context(), event.Id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "🎟️ "+bookedText)
			if res.Registration != nil {
				fmt.Fprintln(out, "Booking ID: "+catalog.ShortID(res.Registration.Id))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newTicketsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "tickets",
		Short: "List your bookings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := c.requireSession(); err != nil {
				return err
			}
			regs, err := c.client.MyRegistrations(cmd.Context())
			if err != nil {
				return err
			}
			service.HydrateRegistrations(cmd.Context(), c.client, regs)
			render.TicketTable(cmd.OutOrStdout(), regs)
			return nil
		},
	}
}
