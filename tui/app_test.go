package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"eventify-cli/model"
	"eventify-cli/service"
	"eventify-cli/session"
	"eventify-cli/store"
)

type fakeAPI struct {
	mu     sync.Mutex
	events map[string]model.Event
	regs   []model.Registration
	booked int
}

func (f *fakeAPI) ListEvents(ctx context.Context) ([]model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Event, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeAPI) GetEvent(ctx context.Context, eventID string) (model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[eventID]
	if !ok {
		return model.Event{}, &service.APIError{StatusCode: 404, Message: "event not found"}
	}
	return e, nil
}

func (f *fakeAPI) CreateEvent(ctx context.Context, req model.CreateEventRequest) (model.Event, error) {
	return model.Event{Id: "new-1", Title: req.Title, Capacity: req.Capacity, EventDate: req.EventDate}, nil
}

func (f *fakeAPI) BookEvent(ctx context.Context, eventID string) (model.BookingResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.booked++
	return model.BookingResponse{Message: "Seat reserved successfully"}, nil
}

func (f *fakeAPI) MyRegistrations(ctx context.Context) ([]model.Registration, error) {
	return f.regs, nil
}

type fakeAuth struct {
	current session.Session
}

func (f *fakeAuth) Current() session.Session { return f.current }

func (f *fakeAuth) Login(ctx context.Context, email string, password string) (session.Session, error) {
	return session.Session{}, errors.New("invalid credentials")
}

func (f *fakeAuth) Register(ctx context.Context, req model.RegisterRequest) (session.Session, error) {
	return session.Session{}, errors.New("email already registered")
}

func (f *fakeAuth) Logout() error {
	f.current = session.Session{}
	return nil
}

func intPtr(v int) *int { return &v }

func guest() *fakeAuth { return &fakeAuth{} }

func attendee() *fakeAuth {
	return &fakeAuth{current: session.Session{Token: "tok", User: &model.User{Id: "u1", Name: "ada", Role: model.RoleAttendee}}}
}

func organizer() *fakeAuth {
	return &fakeAuth{current: session.Session{Token: "tok", User: &model.User{Id: "u2", Name: "Grace", Role: model.RoleOrganizer}}}
}

func sampleEvents() []model.Event {
	return []model.Event{
		{Id: "e1", Title: "Jazz Night", Capacity: 10, Registered: 10},
		{Id: "e2", Title: "Art Expo", Description: "modern jazz paintings", Capacity: 20, Registered: 3},
		{Id: "e3", Title: "Go Meetup", Capacity: 30, Registered: 1, AvailableSeats: intPtr(29)},
	}
}

func newModel(t *testing.T, api API, auth Auth, page Page, eventID string) appModel {
	t.Helper()
	m := New(api, auth, Options{Page: page, EventID: eventID}).(appModel)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(appModel)
}

func update(t *testing.T, m appModel, msg tea.Msg) (appModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(appModel), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func titles(events []model.Event) string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.Title)
	}
	return strings.Join(out, ",")
}

func TestRoute_UnknownPageRunsNoInitializer(t *testing.T) {
	m := newModel(t, &fakeAPI{}, guest(), Page("bogus"), "")
	if m.pending != nil {
		t.Fatal("expected no initializer for an unknown page")
	}
	if m.loading {
		t.Fatal("expected no loading state")
	}
	view := m.View()
	if !strings.Contains(view, "Eventify") || !strings.Contains(view, "ctrl+l log in") {
		t.Fatalf("expected nav bar, got:\n%s", view)
	}
}

func TestRoute_KnownPagesRunTheirInitializer(t *testing.T) {
	for _, page := range []Page{PageHome, PageEventDetail, PageTickets, PageLogin, PageRegister, PageCreateEvent} {
		m := newModel(t, &fakeAPI{}, organizer(), page, "e1")
		if m.page != page {
			t.Fatalf("%s: routed to %s", page, m.page)
		}
		if m.pending == nil {
			t.Fatalf("%s: expected an initializer", page)
		}
	}
}

func TestRoute_DetailWithoutIDFallsBackHome(t *testing.T) {
	m := newModel(t, &fakeAPI{}, guest(), PageEventDetail, "  ")
	if m.page != PageHome || !m.loading {
		t.Fatalf("expected loading home, got page %s loading %v", m.page, m.loading)
	}
}

func TestRoute_TicketsRequireSession(t *testing.T) {
	m := newModel(t, &fakeAPI{}, guest(), PageTickets, "")
	if m.page != PageLogin {
		t.Fatalf("expected login page, got %s", m.page)
	}

	m = newModel(t, &fakeAPI{}, attendee(), PageTickets, "")
	if m.page != PageTickets || !m.loading {
		t.Fatalf("expected loading tickets, got page %s loading %v", m.page, m.loading)
	}
}

func TestHome_SearchAndFilterTabs(t *testing.T) {
	m := newModel(t, &fakeAPI{}, guest(), PageHome, "")
	m, _ = update(t, m, eventsMsg{events: sampleEvents()})
	if got := titles(m.visibleEvents()); got != "Jazz Night,Art Expo,Go Meetup" {
		t.Fatalf("unexpected initial order: %s", got)
	}

	m, _ = update(t, m, runes("JAZZ"))
	if got := titles(m.visibleEvents()); got != "Jazz Night,Art Expo" {
		t.Fatalf("unexpected search result: %s", got)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.filter != "available" {
		t.Fatalf("expected available tab, got %s", m.filter)
	}
	if got := titles(m.visibleEvents()); got != "Art Expo" {
		t.Fatalf("unexpected available result: %s", got)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if got := titles(m.visibleEvents()); got != "Jazz Night" {
		t.Fatalf("unexpected sold out result: %s", got)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if got := titles(m.visibleEvents()); got != "Jazz Night,Art Expo,Go Meetup" {
		t.Fatalf("expected everything after clearing, got %s", got)
	}
}

func TestHome_EmptyState(t *testing.T) {
	m := newModel(t, &fakeAPI{}, guest(), PageHome, "")
	m, _ = update(t, m, eventsMsg{events: sampleEvents()})
	m, _ = update(t, m, runes("zzz"))
	if !strings.Contains(m.View(), "No events found") {
		t.Fatalf("expected empty state, got:\n%s", m.View())
	}
}

func TestHome_ErrorIsShownInPlace(t *testing.T) {
	m := newModel(t, &fakeAPI{}, guest(), PageHome, "")
	m, _ = update(t, m, eventsMsg{err: &service.APIError{StatusCode: 502, Message: "Request failed (502)"}})
	if m.loading {
		t.Fatal("expected loading to stop")
	}
	if !strings.Contains(m.View(), "Request failed (502)") {
		t.Fatalf("expected page error, got:\n%s", m.View())
	}
}

func TestHome_StaleResponseIsIgnored(t *testing.T) {
	m := newModel(t, &fakeAPI{}, guest(), PageHome, "")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	if m.page != PageLogin {
		t.Fatalf("expected login page, got %s", m.page)
	}
	m, _ = update(t, m, eventsMsg{events: sampleEvents()})
	if len(m.events) != 0 {
		t.Fatalf("expected stale events to be dropped, got %d", len(m.events))
	}
}

func TestHome_EnterOpensDetail(t *testing.T) {
	m := newModel(t, &fakeAPI{}, guest(), PageHome, "")
	m, _ = update(t, m, eventsMsg{events: sampleEvents()})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.page != PageEventDetail || m.eventID != "e2" || cmd == nil {
		t.Fatalf("expected detail of e2, got page %s id %s", m.page, m.eventID)
	}
}

func detailModel(t *testing.T, auth Auth, event model.Event) appModel {
	t.Helper()
	m := newModel(t, &fakeAPI{}, auth, PageEventDetail, event.Id)
	m, _ = update(t, m, eventMsg{eventID: event.Id, event: event})
	if m.event == nil {
		t.Fatal("expected event to be loaded")
	}
	return m
}

func TestDetail_GuestIsSentToLogin(t *testing.T) {
	m := detailModel(t, guest(), sampleEvents()[1])
	if !strings.Contains(m.View(), "Log in to Book") {
		t.Fatalf("expected guest action, got:\n%s", m.View())
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.page != PageLogin {
		t.Fatalf("expected login page, got %s", m.page)
	}
}

func TestDetail_SoldOutCannotBeBooked(t *testing.T) {
	m := detailModel(t, attendee(), sampleEvents()[0])
	if !strings.Contains(m.View(), "Sold Out") {
		t.Fatalf("expected sold out control, got:\n%s", m.View())
	}
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.confirming || cmd != nil {
		t.Fatal("expected sold out event to ignore the booking action")
	}
}

func TestDetail_ConfirmIgnoredWhileBooking(t *testing.T) {
	m := detailModel(t, attendee(), sampleEvents()[1])

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.confirming {
		t.Fatal("expected confirmation dialog")
	}
	m, cmd := update(t, m, runes("y"))
	if !m.booking || cmd == nil {
		t.Fatal("expected booking to start")
	}
	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil || !m.booking {
		t.Fatal("expected second confirm to be ignored")
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.confirming {
		t.Fatal("expected dialog to stay open while booking")
	}
}

func TestDetail_BookingSuccessReloads(t *testing.T) {
	m := detailModel(t, attendee(), sampleEvents()[1])
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, cmd := update(t, m, bookedMsg{eventID: "e2", res: model.BookingResponse{Message: "ok"}})
	if m.booking || m.confirming {
		t.Fatal("expected dialog closed and booking finished")
	}
	if cmd == nil || !m.loading || m.event != nil {
		t.Fatal("expected the event to be fetched again")
	}
	if len(m.toasts) != 1 || m.toasts[0].kind != toastSuccess {
		t.Fatalf("expected success notification, got %+v", m.toasts)
	}
}

func TestDetail_BookingFailureClosesDialogAndNotifies(t *testing.T) {
	m := detailModel(t, attendee(), sampleEvents()[1])
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, _ = update(t, m, bookedMsg{eventID: "e2", err: &service.APIError{StatusCode: 409, Message: "already registered"}})
	if m.booking || m.confirming {
		t.Fatal("expected dialog closed")
	}
	if m.event == nil || m.page != PageEventDetail {
		t.Fatal("expected to stay on the loaded event")
	}
	if len(m.toasts) != 1 || m.toasts[0].kind != toastError || m.toasts[0].text != "already registered" {
		t.Fatalf("unexpected notifications: %+v", m.toasts)
	}
	if !strings.Contains(m.View(), "already registered") {
		t.Fatalf("expected notification in view, got:\n%s", m.View())
	}
}

func TestBookCmd_CallsAPI(t *testing.T) {
	api := &fakeAPI{}
	m := newModel(t, api, attendee(), PageHome, "")
	msg, ok := m.bookCmd("e2")().(bookedMsg)
	if !ok || msg.err != nil || msg.eventID != "e2" {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if api.booked != 1 {
		t.Fatalf("expected one booking, got %d", api.booked)
	}
}

func TestFetchEventCmd_RemembersEvent(t *testing.T) {
	root := t.TempDir()
	t.Setenv("HOME", root)
	t.Setenv("XDG_CONFIG_HOME", root)

	api := &fakeAPI{events: map[string]model.Event{"e1": {Id: "e1", Title: "Jazz Night"}}}
	m := newModel(t, api, guest(), PageHome, "")
	msg := m.fetchEventCmd("e1")().(eventMsg)
	if msg.err != nil || msg.event.Title != "Jazz Night" {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if !store.RecentEventIDs()["e1"] {
		t.Fatal("expected event in recent history")
	}

	msg = m.fetchEventCmd("missing")().(eventMsg)
	if !service.IsNotFound(msg.err) {
		t.Fatalf("expected not found, got %v", msg.err)
	}
}

func TestToast_ExpiresByID(t *testing.T) {
	m := newModel(t, &fakeAPI{}, guest(), PageHome, "")
	_ = m.notify(toastInfo, "first")
	_ = m.notify(toastError, "second")
	m, _ = update(t, m, toastExpiredMsg{id: 1})
	if len(m.toasts) != 1 || m.toasts[0].text != "second" {
		t.Fatalf("unexpected notifications: %+v", m.toasts)
	}
}

func TestFetchTicketsCmd_Hydrates(t *testing.T) {
	api := &fakeAPI{
		events: map[string]model.Event{"e1": {Id: "e1", Title: "Jazz Night"}},
		regs: []model.Registration{
			{Id: "r1", EventId: "e1", Status: model.StatusConfirmed},
			{Id: "r2", EventId: "gone", Status: model.StatusConfirmed},
		},
	}
	m := newModel(t, api, attendee(), PageTickets, "")
	msg := m.fetchTicketsCmd()().(ticketsMsg)
	if msg.err != nil || len(msg.registrations) != 2 {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if msg.registrations[0].Event == nil || msg.registrations[1].Event != nil {
		t.Fatalf("unexpected hydration: %+v", msg.registrations)
	}
}

func TestTickets_EmptyAndFallbackLabels(t *testing.T) {
	m := newModel(t, &fakeAPI{}, attendee(), PageTickets, "")
	m, _ = update(t, m, ticketsMsg{})
	if !strings.Contains(m.View(), "No tickets yet") {
		t.Fatalf("expected empty state, got:\n%s", m.View())
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	m, _ = update(t, m, ticketsMsg{registrations: []model.Registration{{Id: "0123456789", EventId: "e9", Status: model.StatusConfirmed}}})
	view := m.View()
	for _, want := range []string{"Event", "—", "Booking ID: 01234567…", "confirmed"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestForm_SubmitDisabledWhileInFlight(t *testing.T) {
	m := newModel(t, &fakeAPI{}, guest(), PageLogin, "")
	m, _ = update(t, m, runes("ada@example.com"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = update(t, m, runes("wrong"))

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.submitting || cmd == nil {
		t.Fatal("expected submit to start")
	}
	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("expected second submit to be ignored")
	}

	m, _ = update(t, m, authMsg{err: errors.New("invalid credentials")})
	if m.submitting || m.page != PageLogin {
		t.Fatalf("expected to stay on login, got page %s", m.page)
	}
	if m.form.value("Email") != "ada@example.com" || m.form.value("Password") != "wrong" {
		t.Fatalf("expected form intact, got %q %q", m.form.value("Email"), m.form.value("Password"))
	}
	if len(m.toasts) != 1 || m.toasts[0].text != "invalid credentials" {
		t.Fatalf("unexpected notifications: %+v", m.toasts)
	}
}

func TestForm_LoginSuccessRoutesHome(t *testing.T) {
	m := newModel(t, &fakeAPI{}, guest(), PageLogin, "")
	s := session.Session{Token: "tok", User: &model.User{Name: "Ada"}}
	m, _ = update(t, m, authMsg{session: s})
	if m.page != PageHome {
		t.Fatalf("expected home, got %s", m.page)
	}
	if len(m.toasts) != 1 || m.toasts[0].text != "Welcome, Ada!" {
		t.Fatalf("unexpected notifications: %+v", m.toasts)
	}
}

func TestForm_RegisterRoleToggle(t *testing.T) {
	m := newModel(t, &fakeAPI{}, guest(), PageRegister, "")
	if m.form.value("Role") != model.RoleAttendee {
		t.Fatalf("expected attendee default, got %s", m.form.value("Role"))
	}
	for i := 0; i < 3; i++ {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.form.value("Role") != model.RoleOrganizer {
		t.Fatalf("expected organizer, got %s", m.form.value("Role"))
	}
}

func TestForm_CreateEventValidation(t *testing.T) {
	m := newModel(t, &fakeAPI{}, organizer(), PageCreateEvent, "")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.submitting || cmd == nil {
		t.Fatal("expected validation notification without submitting")
	}
	if len(m.toasts) != 1 || m.toasts[0].text != "title is required" {
		t.Fatalf("unexpected notifications: %+v", m.toasts)
	}

	m, _ = update(t, m, createdMsg{event: model.Event{Id: "new-1", Title: "Launch"}})
	if m.page != PageEventDetail || m.eventID != "new-1" {
		t.Fatalf("expected new event detail, got %s %s", m.page, m.eventID)
	}
}

func TestForm_CreateEventForAttendee(t *testing.T) {
	m := newModel(t, &fakeAPI{}, attendee(), PageCreateEvent, "")
	if !strings.Contains(m.View(), "only organizers can create events") {
		t.Fatalf("expected page error, got:\n%s", m.View())
	}
	m = newModel(t, &fakeAPI{}, guest(), PageCreateEvent, "")
	if m.page != PageLogin {
		t.Fatalf("expected login page, got %s", m.page)
	}
}

func TestNav_ActionsFollowRole(t *testing.T) {
	m := newModel(t, &fakeAPI{}, attendee(), Page("none"), "")
	view := m.View()
	if !strings.Contains(view, "ctrl+t my tickets") || strings.Contains(view, "create event") {
		t.Fatalf("unexpected attendee nav:\n%s", view)
	}
	if !strings.Contains(view, "A") || !strings.Contains(view, "attendee") {
		t.Fatalf("expected initial and role:\n%s", view)
	}

	m = newModel(t, &fakeAPI{}, organizer(), Page("none"), "")
	if !strings.Contains(m.View(), "ctrl+n create event") {
		t.Fatalf("expected organizer action:\n%s", m.View())
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
	if m.page != PageCreateEvent {
		t.Fatalf("expected create event page, got %s", m.page)
	}
}

func TestNav_LogoutClearsSession(t *testing.T) {
	auth := attendee()
	m := newModel(t, &fakeAPI{}, auth, PageTickets, "")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	if auth.current.LoggedIn() || m.page != PageHome {
		t.Fatalf("expected signed out on home, got %s", m.page)
	}
	if !strings.Contains(m.View(), "Guest") {
		t.Fatalf("expected guest nav:\n%s", m.View())
	}
}

func TestHome_FilterStateResetsWhenReopened(t *testing.T) {
	m := newModel(t, &fakeAPI{}, guest(), PageHome, "")
	m, _ = update(t, m, eventsMsg{events: sampleEvents()})
	m, _ = update(t, m, runes("jazz"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.page != PageEventDetail || m.eventID != "e2" {
		t.Fatalf("expected detail of e2, got page %s id %s", m.page, m.eventID)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.page != PageHome {
		t.Fatalf("expected home page, got %s", m.page)
	}
	if m.filter != "all" || m.search.Value() != "" {
		t.Fatalf("expected reset filter state, got mode %s query %q", m.filter, m.search.Value())
	}
	m, _ = update(t, m, eventsMsg{events: sampleEvents()})
	if got := titles(m.visibleEvents()); got != "Jazz Night,Art Expo,Go Meetup" {
		t.Fatalf("expected every event after reopening, got %s", got)
	}
}

func TestHome_CardsShowDescription(t *testing.T) {
	m := newModel(t, &fakeAPI{}, guest(), PageHome, "")
	m, _ = update(t, m, eventsMsg{events: sampleEvents()})
	view := m.View()
	for _, want := range []string{"modern jazz paintings", "No description provided."} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view, got:\n%s", want, view)
		}
	}
}

func TestPageError_RetryAndEscape(t *testing.T) {
	m := newModel(t, &fakeAPI{}, guest(), PageHome, "")
	m, _ = update(t, m, eventsMsg{err: &service.APIError{StatusCode: 502, Message: "Request failed (502)"}})
	if !strings.Contains(m.View(), "r retry") {
		t.Fatalf("expected retry hint, got:\n%s", m.View())
	}

	m, cmd := update(t, m, runes("r"))
	if m.page != PageHome || !m.loading || m.pageErr != nil || cmd == nil {
		t.Fatalf("expected home reload, got page %s loading %v err %v", m.page, m.loading, m.pageErr)
	}

	m = newModel(t, &fakeAPI{}, guest(), PageEventDetail, "e9")
	m, _ = update(t, m, eventMsg{eventID: "e9", err: &service.APIError{StatusCode: 404, Message: "event not found"}})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.page != PageHome || m.pageErr != nil {
		t.Fatalf("expected home after esc, got page %s err %v", m.page, m.pageErr)
	}
}
