package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"eventify-cli/model"
)

const (
	appDir           = "eventify-cli"
	sessionFile      = "session.json"
	recentEventsFile = "recent_events.json"
	maxRecentEvents  = 8

	tokenKey = "token"
	userKey  = "user"
)

// ErrPartialSession is returned when only one of the two session keys is
// stored. Callers must treat it as a signed-out state.
var ErrPartialSession = errors.New("stored session is incomplete")

type RecentEvent struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	ViewedAt time.Time `json:"viewed_at"`
}

type recentEvents struct {
	Events []RecentEvent `json:"events"`
}

// LoadSession returns the persisted token and user. Both are empty when
// nothing is stored.
func LoadSession() (string, *model.User, error) {
	path, err := configPath(sessionFile)
	if err != nil {
		return "", nil, err
	}
	keys, err := loadJSON[map[string]json.RawMessage](path)
	if err != nil {
		return "", nil, errors.Wrap(err, "invalid session format")
	}

	var token string
	if raw, ok := keys[tokenKey]; ok {
		if err := json.Unmarshal(raw, &token); err != nil {
			return "", nil, errors.Wrap(err, "invalid session token")
		}
	}
	var user *model.User
	if raw, ok := keys[userKey]; ok {
		if err := json.Unmarshal(raw, &user); err != nil {
			return "", nil, errors.Wrap(err, "invalid session user")
		}
	}

	switch {
	case token == "" && user == nil:
		return "", nil, nil
	case token == "" || user == nil:
		return "", nil, ErrPartialSession
	}
	return token, user, nil
}

// SaveSession writes both session keys in one file replacement.
func SaveSession(token string, user *model.User) error {
	if strings.TrimSpace(token) == "" || user == nil {
		return errors.New("token and user are required")
	}
	path, err := configPath(sessionFile)
	if err != nil {
		return err
	}
	rawToken, err := json.Marshal(token)
	if err != nil {
		return err
	}
	rawUser, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return saveJSON(path, map[string]json.RawMessage{
		tokenKey: rawToken,
		userKey:  rawUser,
	}, 0o600)
}

// ClearSession removes both session keys.
func ClearSession() error {
	path, err := configPath(sessionFile)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func LoadRecentEvents() ([]RecentEvent, error) {
	path, err := configPath(recentEventsFile)
	if err != nil {
		return nil, err
	}
	history, err := loadJSON[recentEvents](path)
	if err != nil {
		return nil, errors.Wrap(err, "invalid recent events format")
	}
	return history.Events, nil
}

// RememberEvent moves event to the front of the recently viewed list.
func RememberEvent(event model.Event) error {
	if strings.TrimSpace(event.Id) == "" {
		return errors.New("event id is required")
	}
	history, _ := LoadRecentEvents()
	next := []RecentEvent{{ID: event.Id, Title: event.Title, ViewedAt: time.Now()}}

	for _, existing := range history {
		if existing.ID == event.Id {
			continue
		}
		next = append(next, existing)
		if len(next) >= maxRecentEvents {
			break
		}
	}

	path, err := configPath(recentEventsFile)
	if err != nil {
		return err
	}
	return saveJSON(path, recentEvents{Events: next}, 0o644)
}

// RecentEventIDs returns the recently viewed ids as a set.
func RecentEventIDs() map[string]bool {
	history, _ := LoadRecentEvents()
	ids := make(map[string]bool, len(history))
	for _, e := range history {
		if e.ID != "" {
			ids[e.ID] = true
		}
	}
	return ids
}

func loadJSON[T any](path string) (T, error) {
	var out T
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, err
	}
	return out, nil
}

func saveJSON[T any](path string, data T, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, payload, perm); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func configPath(name string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDir, name), nil
}
