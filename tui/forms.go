package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"

	"eventify-cli/model"
)

type formField struct {
	label   string
	input   textinput.Model
	choices []string
	choice  int
}

func (f formField) value() string {
	if len(f.choices) > 0 {
		return f.choices[f.choice]
	}
	return f.input.Value()
}

type form struct {
	title  string
	submit string
	fields []formField
	focus  int
}

func newInput(label string, placeholder string, secret bool) formField {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 256
	in.Width = 40
	if secret {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '•'
	}
	return formField{label: label, input: in}
}

func newChoice(label string, choices ...string) formField {
	return formField{label: label, choices: choices}
}

func newLoginForm() form {
	f := form{
		title:  "Welcome back",
		submit: "Log in",
		fields: []formField{
			newInput("Email", "you@example.com", false),
			newInput("Password", "••••••••", true),
		},
	}
	f.setFocus(0)
	return f
}

func newRegisterForm() form {
	f := form{
		title:  "Create your account",
		submit: "Create account",
		fields: []formField{
			newInput("Name", "Jane Doe", false),
			newInput("Email", "you@example.com", false),
			newInput("Password", "at least 6 characters", true),
			newChoice("Role", model.RoleAttendee, model.RoleOrganizer),
		},
	}
	f.setFocus(0)
	return f
}

func newCreateEventForm() form {
	f := form{
		title:  "Create an event",
		submit: "Create event",
		fields: []formField{
			newInput("Title", "Go Meetup", false),
			newInput("Description", "optional", false),
			newInput("Capacity", "50", false),
			newInput("Date", time.Now().Add(7*24*time.Hour).Format(model.EventDateLayout), false),
		},
	}
	f.setFocus(0)
	return f
}

func (f *form) setFocus(i int) {
	if len(f.fields) == 0 {
		return
	}
	f.focus = (i + len(f.fields)) % len(f.fields)
	for j := range f.fields {
		if j == f.focus && len(f.fields[j].choices) == 0 {
			f.fields[j].input.Focus()
			continue
		}
		f.fields[j].input.Blur()
	}
}

func (f *form) focused() *formField {
	if f.focus < 0 || f.focus >= len(f.fields) {
		return nil
	}
	return &f.fields[f.focus]
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	field := f.focused()
	if field == nil || len(field.choices) > 0 {
		return nil
	}
	var cmd tea.Cmd
	field.input, cmd = field.input.Update(msg)
	return cmd
}

func (f form) value(label string) string {
	for _, field := range f.fields {
		if field.label == label {
			return field.value()
		}
	}
	return ""
}

func (m *appModel) initForm(page Page) tea.Cmd {
	m.search.Blur()
	m.submitting = false
	switch page {
	case PageLogin:
		m.form = newLoginForm()
	case PageRegister:
		m.form = newRegisterForm()
	case PageCreateEvent:
		s := m.auth.Current()
		if !s.LoggedIn() {
			return m.route(PageLogin, "")
		}
		if !s.IsOrganizer() {
			m.form = form{}
			m.pageErr = errors.New("only organizers can create events")
			return nil
		}
		m.form = newCreateEventForm()
	}
	return textinput.Blink
}

func (m appModel) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		cmd := m.route(PageHome, "")
		return m, cmd
	case "tab", "down":
		m.form.setFocus(m.form.focus + 1)
		return m, nil
	case "shift+tab", "up":
		m.form.setFocus(m.form.focus - 1)
		return m, nil
	case "enter":
		return m.submitForm()
	case "left", "right", " ":
		if field := m.form.focused(); field != nil && len(field.choices) > 0 {
			step := 1
			if msg.String() == "left" {
				step = len(field.choices) - 1
			}
			field.choice = (field.choice + step) % len(field.choices)
			return m, nil
		}
	}
	cmd := m.form.update(msg)
	return m, cmd
}

// submitForm sends the current form. The submit control stays disabled
// until the request reports back, and a failure keeps every field intact.
func (m appModel) submitForm() (tea.Model, tea.Cmd) {
	if m.submitting || len(m.form.fields) == 0 {
		return m, nil
	}
	cmd, err := m.formRequest()
	if err != nil {
		cmd = m.notify(toastError, err.Error())
		return m, cmd
	}
	m.submitting = true
	return m, tea.Batch(cmd, m.spinner.Tick)
}

func (m appModel) formRequest() (tea.Cmd, error) {
	f := m.form
	switch m.page {
	case PageLogin:
		email, password := f.value("Email"), f.value("Password")
		return func() tea.Msg {
			s, err := m.auth.Login(context.Background(), email, password)
			return authMsg{session: s, err: err}
		}, nil

	case PageRegister:
		req := model.RegisterRequest{
			Name:     f.value("Name"),
			Email:    f.value("Email"),
			Password: f.value("Password"),
			Role:     f.value("Role"),
		}
		return func() tea.Msg {
			s, err := m.auth.Register(context.Background(), req)
			return authMsg{session: s, err: err}
		}, nil

	case PageCreateEvent:
		req, err := model.ParseCreateEventRequest(f.value("Title"), f.value("Description"), f.value("Capacity"), f.value("Date"))
		if err != nil {
			return nil, err
		}
		return func() tea.Msg {
			event, err := m.api.CreateEvent(context.Background(), req)
			return createdMsg{event: event, err: err}
		}, nil
	}
	return nil, errors.Newf("nothing to submit on %s", m.page)
}

func (m appModel) formView() string {
	if len(m.form.fields) == 0 {
		return ""
	}
	lines := []string{brandStyle.Render(m.form.title), ""}
	for i, field := range m.form.fields {
		label := labelStyle.Render(field.label)
		if i == m.form.focus {
			label = labelStyle.Foreground(accent).Render("› " + field.label)
		}
		if len(field.choices) == 0 {
			lines = append(lines, label+field.input.View())
			continue
		}
		var opts []string
		for j, choice := range field.choices {
			style := tabStyle
			if j == field.choice {
				style = activeTabStyle
			}
			opts = append(opts, style.Render(choice))
		}
		lines = append(lines, label+strings.Join(opts, " "))
	}

	lines = append(lines, "")
	if m.submitting {
		lines = append(lines, disabledButtonStyle.Render(m.spinner.View()+" "+m.form.submit))
	} else {
		lines = append(lines, buttonStyle.Render(m.form.submit))
	}

	help := "tab next field • enter submit • esc back"
	switch m.page {
	case PageLogin:
		help += " • ctrl+r sign up instead"
	case PageRegister:
		help += " • ←/→ pick role • ctrl+l log in instead"
	case PageCreateEvent:
		help += " • date as " + model.EventDateLayout
	}
	lines = append(lines, "", hint(help))
	return strings.Join(lines, "\n")
}
