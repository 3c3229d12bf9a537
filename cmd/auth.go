package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"eventify-cli/catalog"
	"eventify-cli/model"
	"eventify-cli/session"
)

func newLoginCmd(c *cli) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			address, err := promptText("Email", email, false)
			if err != nil {
				return err
			}
			secret, err := promptText("Password", password, true)
			if err != nil {
				return err
			}
			s, err := c.session.Login(cmd.Context(), address, secret)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome back, %s!\n", catalog.CleanText(s.User.Name))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when empty)")
	return cmd
}

func newRegisterCmd(c *cli) *cobra.Command {
	var name, email, password, role string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			req := model.RegisterRequest{}
			if req.Name, err = promptText("Name", name, false); err != nil {
				return err
			}
			if req.Email, err = promptText("Email", email, false); err != nil {
				return err
			}
			if req.Password, err = promptText("Password", password, true); err != nil {
				return err
			}
			if req.Role, err = promptSelect("Role", role, []string{model.RoleAttendee, model.RoleOrganizer}); err != nil {
				return err
			}
			s, err := c.session.Register(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s! You are signed in as %s.\n", catalog.CleanText(s.User.Name), s.User.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when empty)")
	cmd.Flags().StringVar(&role, "role", "", "attendee or organizer")
	return cmd
}

func newLogoutCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.session.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func newWhoamiCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed in user",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), describeSession(c.session.Current()))
		},
	}
}

func describeSession(s session.Session) string {
	if !s.LoggedIn() {
		return "Not signed in"
	}
	line := fmt.Sprintf("%s %s (%s)", s.Initial(), catalog.CleanText(s.User.Name), s.User.Role)
	if s.User.Email != "" {
		line += " <" + catalog.CleanText(s.User.Email) + ">"
	}
	return line
}
