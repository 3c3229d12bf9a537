// Package session holds the signed-in identity for the lifetime of the
// process and keeps it in step with the persisted session keys.
package session

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/golang-jwt/jwt/v5"

	"eventify-cli/logging"
	"eventify-cli/model"
	"eventify-cli/store"
)

// Session is a snapshot of the current identity. Token and User are both
// set or both empty.
type Session struct {
	Token string
	User  *model.User
}

func (s Session) LoggedIn() bool {
	return s.Token != "" && s.User != nil
}

func (s Session) IsOrganizer() bool {
	return s.LoggedIn() && s.User.Role == model.RoleOrganizer
}

// Initial is the upper-cased first letter of the user's name.
func (s Session) Initial() string {
	if !s.LoggedIn() {
		return ""
	}
	name := strings.TrimSpace(s.User.Name)
	if name == "" {
		return "?"
	}
	r, _ := utf8.DecodeRuneInString(name)
	return strings.ToUpper(string(r))
}

type AuthAPI interface {
	Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error)
	Register(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, error)
}

// Backend persists the two session keys.
type Backend interface {
	LoadSession() (string, *model.User, error)
	SaveSession(token string, user *model.User) error
	ClearSession() error
}

type fileBackend struct{}

func (fileBackend) LoadSession() (string, *model.User, error) { return store.LoadSession() }
func (fileBackend) SaveSession(token string, user *model.User) error { return store.SaveSession(token, user) }
func (fileBackend) ClearSession() error { return store.ClearSession() }

type Manager struct {
	mu    sync.RWMutex
	token string
	user  *model.User

	api     AuthAPI
	backend Backend
	log     logging.Logger
	now     func() time.Time
}

// NewManager returns a signed-out manager persisting to the user config
// directory. Call Load to restore a saved session.
func NewManager(api AuthAPI, log logging.Logger) *Manager {
	return NewManagerWithBackend(api, fileBackend{}, log)
}

func NewManagerWithBackend(api AuthAPI, backend Backend, log logging.Logger) *Manager {
	if log == nil {
		log = logging.Discard()
	}
	return &Manager{
		api:     api,
		backend: backend,
		log:     log,
		now:     time.Now,
	}
}

// Load restores the persisted session. A half-stored session or an expired
// token is cleared so the process starts signed out.
func (m *Manager) Load() error {
	token, user, err := m.backend.LoadSession()
	if err != nil {
		m.log.WithField("error", err.Error()).Warn("discarding stored session")
		m.clear()
		return m.backend.ClearSession()
	}
	if token == "" || user == nil {
		m.clear()
		return nil
	}
	if tokenExpired(token, m.now()) {
		m.log.WithField("user", user.Name).Info("stored session expired")
		m.clear()
		return m.backend.ClearSession()
	}

	m.mu.Lock()
	m.token = token
	m.user = user
	m.mu.Unlock()
	return nil
}

func (m *Manager) Login(ctx context.Context, email string, password string) (Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return Session{}, errors.New("email and password are required")
	}
	res, err := m.api.Login(ctx, model.LoginRequest{Email: email, Password: password})
	if err != nil {
		return Session{}, err
	}
	return m.establish(res)
}

func (m *Manager) Register(ctx context.Context, req model.RegisterRequest) (Session, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Role == "" {
		req.Role = model.RoleAttendee
	}
	if req.Role != model.RoleAttendee && req.Role != model.RoleOrganizer {
		return Session{}, errors.Newf("unknown role %q", req.Role)
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return Session{}, errors.New("name, email and password are required")
	}
	res, err := m.api.Register(ctx, req)
	if err != nil {
		return Session{}, err
	}
	return m.establish(res)
}

// Logout forgets the session in memory and on disk.
func (m *Manager) Logout() error {
	m.clear()
	m.log.Info("signed out")
	return m.backend.ClearSession()
}

func (m *Manager) Current() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return Session{Token: m.token}
	}
	user := *m.user
	return Session{Token: m.token, User: &user}
}

// Token implements service.TokenSource.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

func (m *Manager) LoggedIn() bool {
	return m.Current().LoggedIn()
}

func (m *Manager) establish(res model.AuthResponse) (Session, error) {
	if strings.TrimSpace(res.Token) == "" || res.User == nil {
		return Session{}, errors.New("server returned an incomplete session")
	}
	if err := m.backend.SaveSession(res.Token, res.User); err != nil {
		return Session{}, errors.Wrap(err, "save session")
	}

	user := *res.User
	m.mu.Lock()
	m.token = res.Token
	m.user = &user
	m.mu.Unlock()

	m.log.WithFields(map[string]interface{}{"user": user.Name, "role": user.Role}).Info("signed in")
	return m.Current(), nil
}

func (m *Manager) clear() {
	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.mu.Unlock()
}

// tokenExpired peeks at the exp claim of a JWT without verifying it. Opaque
// tokens never expire client-side.
func tokenExpired(token string, now time.Time) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	return claims.ExpiresAt != nil && !claims.ExpiresAt.After(now)
}
