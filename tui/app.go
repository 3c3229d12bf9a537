package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"eventify-cli/catalog"
	"eventify-cli/logging"
	"eventify-cli/model"
	"eventify-cli/service"
	"eventify-cli/session"
)

// Page identifies one screen of the client.
type Page string

const (
	PageHome        Page = "home"
	PageEventDetail Page = "event-detail"
	PageTickets     Page = "tickets"
	PageLogin       Page = "login"
	PageRegister    Page = "register"
	PageCreateEvent Page = "create-event"
)

var Pages = []Page{PageHome, PageEventDetail, PageTickets, PageLogin, PageRegister, PageCreateEvent}

const toastDuration = 3500 * time.Millisecond

// API is the subset of the Eventify client the pages use.
type API interface {
	ListEvents(ctx context.Context) ([]model.Event, error)
	GetEvent(ctx context.Context, eventID string) (model.Event, error)
	CreateEvent(ctx context.Context, req model.CreateEventRequest) (model.Event, error)
	BookEvent(ctx context.Context, eventID string) (model.BookingResponse, error)
	MyRegistrations(ctx context.Context) ([]model.Registration, error)
}

// Auth is implemented by session.Manager.
type Auth interface {
	Current() session.Session
	Login(ctx context.Context, email string, password string) (session.Session, error)
	Register(ctx context.Context, req model.RegisterRequest) (session.Session, error)
	Logout() error
}

type Options struct {
	Page    Page
	EventID string
	Log     logging.Logger
}

type toastKind int

const (
	toastInfo toastKind = iota
	toastSuccess
	toastError
)

type toast struct {
	id   int
	kind toastKind
	text string
}

type appModel struct {
	api  API
	auth Auth
	log  logging.Logger

	page    Page
	eventID string
	loading bool
	pageErr error
	pending tea.Cmd

	width  int
	height int

	events    []model.Event
	recent    map[string]bool
	search    textinput.Model
	filter    catalog.FilterMode
	eventList list.Model

	event      *model.Event
	confirming bool
	booking    bool
	seatBar    progress.Model

	tickets    []model.Registration
	ticketList list.Model

	form       form
	submitting bool

	toasts   []toast
	toastSeq int
	spinner  spinner.Model
}

type eventsMsg struct {
	events []model.Event
	recent map[string]bool
	err    error
}

type eventMsg struct {
	eventID string
	event   model.Event
	err     error
}

type ticketsMsg struct {
	registrations []model.Registration
	err           error
}

type bookedMsg struct {
	eventID string
	res     model.BookingResponse
	err     error
}

type authMsg struct {
	session session.Session
	err     error
}

type createdMsg struct {
	event model.Event
	err   error
}

type toastExpiredMsg struct {
	id int
}

func New(api API, auth Auth, opts Options) tea.Model {
	log := opts.Log
	if log == nil {
		log = logging.Discard()
	}
	m := appModel{
		api:    api,
		auth:   auth,
		log:    log,
		filter: catalog.FilterAll,
	}

	m.search = textinput.New()
	m.search.Placeholder = "Search events..."
	m.search.Prompt = "🔍 "
	m.search.CharLimit = 120

	m.eventList = newList("Events")
	m.eventList.SetDelegate(cardDelegate())
	m.ticketList = newList("My Tickets")
	m.seatBar = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	m.spinner = sp

	page := opts.Page
	if page == "" {
		page = PageHome
	}
	m.pending = m.route(page, opts.EventID)
	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.pending, m.spinner.Tick)
}

// route switches to page and returns the initializer that loads it. An
// unknown page runs no initializer and leaves only the nav bar on screen.
func (m *appModel) route(page Page, eventID string) tea.Cmd {
	m.page = page
	m.pageErr = nil
	m.loading = false
	m.confirming = false
	m.log.WithFields(map[string]interface{}{"page": string(page), "event_id": eventID}).Debug("route")

	switch page {
	case PageHome:
		return m.initHome()
	case PageEventDetail:
		return m.initEventDetail(eventID)
	case PageTickets:
		return m.initTickets()
	case PageLogin, PageRegister, PageCreateEvent:
		return m.initForm(page)
	default:
		return nil
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case toastExpiredMsg:
		var kept []toast
		for _, t := range m.toasts {
			if t.id != msg.id {
				kept = append(kept, t)
			}
		}
		m.toasts = kept
		return m, nil

	case eventsMsg:
		if m.page != PageHome {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.pageErr = msg.err
			return m, nil
		}
		m.events = msg.events
		m.recent = msg.recent
		m.applyFilter()
		return m, nil

	case eventMsg:
		if m.page != PageEventDetail || msg.eventID != m.eventID {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.pageErr = msg.err
			return m, nil
		}
		event := msg.event
		m.event = &event
		return m, nil

	case ticketsMsg:
		if m.page != PageTickets {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.pageErr = msg.err
			return m, nil
		}
		m.tickets = msg.registrations
		m.ticketList.SetItems(buildTicketItems(msg.registrations))
		return m, nil

	case bookedMsg:
		return m.handleBooked(msg)

	case authMsg:
		m.submitting = false
		if msg.err != nil {
			cmd := m.notify(toastError, service.Message(msg.err))
			return m, cmd
		}
		name := ""
		if msg.session.User != nil {
			name = catalog.CleanText(msg.session.User.Name)
		}
		cmd := tea.Batch(m.notify(toastSuccess, fmt.Sprintf("Welcome, %s!", name)), m.route(PageHome, ""))
		return m, cmd

	case createdMsg:
		m.submitting = false
		if msg.err != nil {
			cmd := m.notify(toastError, service.Message(msg.err))
			return m, cmd
		}
		text := fmt.Sprintf("Event %q created successfully!", catalog.CleanText(msg.event.Title))
		cmd := tea.Batch(m.notify(toastSuccess, text), m.route(PageEventDetail, msg.event.Id))
		return m, cmd
	}

	cmd := m.updateFocusedInput(msg)
	return m, cmd
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.confirming {
		return m.handleConfirmKey(msg)
	}
	if cmd, ok := m.handleNavKey(msg); ok {
		return m, cmd
	}
	if m.pageErr != nil {
		return m.handleErrorKey(msg)
	}

	switch m.page {
	case PageHome:
		return m.handleHomeKey(msg)
	case PageEventDetail:
		return m.handleDetailKey(msg)
	case PageTickets:
		return m.handleTicketsKey(msg)
	case PageLogin, PageRegister, PageCreateEvent:
		return m.handleFormKey(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		cmd := m.route(PageHome, "")
		return m, cmd
	}
	return m, nil
}

// handleErrorKey serves a page that failed to load: r retries the same page,
// esc goes home.
func (m appModel) handleErrorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "r":
		cmd := m.route(m.page, m.eventID)
		return m, cmd
	case "esc":
		cmd := m.route(PageHome, "")
		return m, cmd
	}
	return m, nil
}

// handleNavKey serves the nav bar shortcuts. Actions the current session is
// not allowed to take are ignored.
func (m *appModel) handleNavKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	s := m.auth.Current()
	switch msg.String() {
	case "ctrl+e":
		return m.route(PageHome, ""), true
	case "ctrl+t":
		if s.LoggedIn() {
			return m.route(PageTickets, ""), true
		}
	case "ctrl+l":
		if !s.LoggedIn() {
			return m.route(PageLogin, ""), true
		}
	case "ctrl+r":
		if !s.LoggedIn() {
			return m.route(PageRegister, ""), true
		}
	case "ctrl+n":
		if s.IsOrganizer() {
			return m.route(PageCreateEvent, ""), true
		}
	case "ctrl+o":
		if s.LoggedIn() {
			return m.logout(), true
		}
	}
	return nil, false
}

func (m *appModel) logout() tea.Cmd {
	if err := m.auth.Logout(); err != nil {
		m.log.WithField("error", err.Error()).Warn("logout")
	}
	return tea.Batch(m.notify(toastInfo, "Signed out"), m.route(PageHome, ""))
}

// notify queues a transient notification and schedules its removal.
func (m *appModel) notify(kind toastKind, text string) tea.Cmd {
	m.toastSeq++
	id := m.toastSeq
	m.toasts = append(m.toasts, toast{id: id, kind: kind, text: text})
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

func (m appModel) busy() bool {
	return m.loading || m.booking || m.submitting
}

// load marks the page as loading and keeps the spinner running until cmd
// reports back.
func (m *appModel) load(cmd tea.Cmd) tea.Cmd {
	m.loading = true
	return tea.Batch(cmd, m.spinner.Tick)
}

func (m *appModel) updateFocusedInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.page {
	case PageHome:
		m.search, cmd = m.search.Update(msg)
	case PageLogin, PageRegister, PageCreateEvent:
		cmd = m.form.update(msg)
	}
	return cmd
}

func (m *appModel) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := m.height - 10
	if h < 6 {
		h = 6
	}
	m.eventList.SetSize(m.width, h)
	m.ticketList.SetSize(m.width, h)
	bar := m.width - 8
	if bar > 60 {
		bar = 60
	}
	if bar < 10 {
		bar = 10
	}
	m.seatBar.Width = bar
	m.search.Width = bar
}

func (m appModel) View() string {
	var b strings.Builder
	b.WriteString(m.navView())
	b.WriteString("\n\n")
	b.WriteString(m.contentView())
	if toasts := m.toastView(); toasts != "" {
		b.WriteString("\n\n")
		b.WriteString(toasts)
	}
	return b.String()
}

func (m appModel) contentView() string {
	if m.loading {
		return fmt.Sprintf("%s Loading\n\n%s", m.spinner.View(), hint("Fetching data..."))
	}
	if m.pageErr != nil {
		return mutedStyle.Render(service.Message(m.pageErr)) + "\n\n" + hint("r retry • esc home • q quit")
	}
	switch m.page {
	case PageHome:
		return m.homeView()
	case PageEventDetail:
		return m.detailView()
	case PageTickets:
		return m.ticketsView()
	case PageLogin, PageRegister, PageCreateEvent:
		return m.formView()
	default:
		return ""
	}
}

func (m appModel) navView() string {
	brand := brandStyle.Render("🎟  Eventify")
	s := m.auth.Current()

	var actions []string
	if !s.LoggedIn() {
		actions = append(actions, "ctrl+l log in", "ctrl+r sign up")
		return brand + "  " + hint("Guest") + "\n" + hint(strings.Join(append([]string{"ctrl+e events"}, actions...), " • "))
	}

	user := chipStyle.Render(s.Initial()) + " " + catalog.CleanText(s.User.Name) + " " + hint("("+s.User.Role+")")
	actions = append(actions, "ctrl+e events", "ctrl+t my tickets")
	if s.IsOrganizer() {
		actions = append(actions, "ctrl+n create event")
	}
	actions = append(actions, "ctrl+o log out")
	return brand + "  " + user + "\n" + hint(strings.Join(actions, " • "))
}

func (m appModel) toastView() string {
	if len(m.toasts) == 0 {
		return ""
	}
	icons := map[toastKind]string{toastInfo: "ℹ️", toastSuccess: "✅", toastError: "❌"}
	lines := make([]string, 0, len(m.toasts))
	for _, t := range m.toasts {
		lines = append(lines, toastStyles[t.kind].Render(icons[t.kind]+" "+t.text))
	}
	return strings.Join(lines, "\n")
}

// cardDelegate renders event cards as a title line plus a description and a
// meta line.
func cardDelegate() list.DefaultDelegate {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	delegate.SetHeight(3)
	return delegate
}

func newList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return l
}
