package cmd

import (
	"fmt"
	"io"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"eventify-cli/config"
	"eventify-cli/logging"
	"eventify-cli/service"
	"eventify-cli/session"
	"eventify-cli/tui"
)

const appName = "eventify-cli"

var (
	version = "dev"
	commit  = "none"
)

// SetVersion records the build information printed by "eventify version".
func SetVersion(v string, c string) {
	if v != "" {
		version = v
	}
	if c != "" {
		commit = c
	}
}

// cli is what every subcommand runs against. It is built once the flags
// are parsed.
type cli struct {
	apiURL string

	cfg     *config.Config
	log     logging.Logger
	closer  io.Closer
	client  *service.Client
	session *session.Manager

	// runProgram starts the interactive UI; tests replace it.
	runProgram func(m tea.Model) error
}

func (c *cli) setup(cmd *cobra.Command, args []string) error {
	c.cfg = config.Load()
	if c.apiURL != "" {
		c.cfg.APIURL = c.apiURL
	}

	c.log = logging.Discard()
	if c.cfg.Debug {
		if path, err := logging.DefaultPath(); err == nil {
			if log, closer, err := logging.New(path); err == nil {
				c.log, c.closer = log, closer
			}
		}
	}

	service.UserAgent = appName + "/" + version
	c.client = service.NewClient(c.cfg.APIURL, &http.Client{Timeout: c.cfg.Timeout})
	c.client.SetLogger(c.log)

	c.session = session.NewManager(c.client, c.log)
	if err := c.session.Load(); err != nil {
		c.log.WithField("error", err.Error()).Warn("load session")
	}
	c.client.SetTokenSource(c.session)

	c.log.WithFields(map[string]interface{}{
		"command": cmd.Name(),
		"api_url": c.cfg.APIURL,
	}).Debug("start")
	return nil
}

func (c *cli) teardown(cmd *cobra.Command, args []string) {
	if c.closer != nil {
		_ = c.closer.Close()
	}
}

func (c *cli) openUI(page tui.Page, eventID string) error {
	m := tui.New(c.client, c.session, tui.Options{Page: page, EventID: eventID, Log: c.log})
	return c.runProgram(m)
}

func (c *cli) requireSession() (session.Session, error) {
	s := c.session.Current()
	if !s.LoggedIn() {
		return s, errors.New("not signed in, run \"eventify login\" first")
	}
	return s, nil
}

func runProgram(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "eventify",
		Short: "Eventify CLI",
		Long:  `Browse, search and book Eventify events from the terminal :)`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			page := tui.PageHome
			if c.cfg.StartPage != "" {
				page = tui.Page(c.cfg.StartPage)
			}
			return c.openUI(page, "")
		},
		PersistentPreRunE: c.setup,
		PersistentPostRun: c.teardown,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
	root.PersistentFlags().StringVar(&c.apiURL, "api-url", "", "Eventify API base url (default $EVENTIFY_API_URL or "+config.DefaultAPIURL+")")

	root.AddCommand(
		newOpenCmd(c),
		newLoginCmd(c),
		newRegisterCmd(c),
		newLogoutCmd(c),
		newWhoamiCmd(c),
		newEventsCmd(c),
		newEventCmd(c),
		newBookCmd(c),
		newTicketsCmd(c),
		newCreateEventCmd(c),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of Eventify CLI",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s", appName, version)
			if commit != "none" && commit != "" {
				fmt.Fprintf(out, " (%s)", commit)
			}
			fmt.Fprintln(out)
		},
	}
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	c := &cli{runProgram: runProgram}
	if err := newRootCmd(c).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", service.Message(err))
		os.Exit(1)
	}
}
