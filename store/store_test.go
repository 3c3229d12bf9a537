package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"eventify-cli/model"
)

func setTestConfigDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("HOME", root)
	t.Setenv("XDG_CONFIG_HOME", root)
	return root
}

func TestSession_RoundTrip(t *testing.T) {
	setTestConfigDir(t)

	token, user, err := LoadSession()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if token != "" || user != nil {
		t.Fatalf("expected empty session, got %q %+v", token, user)
	}

	if err := SaveSession("tok-1", &model.User{Id: "u1", Name: "Ada", Role: model.RoleOrganizer}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	token, user, err = LoadSession()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if token != "tok-1" || user == nil || user.Name != "Ada" || user.Role != model.RoleOrganizer {
		t.Fatalf("unexpected session: %q %+v", token, user)
	}

	if err := ClearSession(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	token, user, err = LoadSession()
	if err != nil || token != "" || user != nil {
		t.Fatalf("expected cleared session, got %q %+v %v", token, user, err)
	}
}

func TestSaveSession_RequiresBothKeys(t *testing.T) {
	setTestConfigDir(t)

	if err := SaveSession("", &model.User{Name: "Ada"}); err == nil {
		t.Fatal("expected error for empty token")
	}
	if err := SaveSession("tok", nil); err == nil {
		t.Fatal("expected error for nil user")
	}
}

func TestLoadSession_PartialIsRejected(t *testing.T) {
	root := setTestConfigDir(t)
	path := filepath.Join(root, appDir, sessionFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(`{"token":"tok-only"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	token, user, err := LoadSession()
	if !errors.Is(err, ErrPartialSession) {
		t.Fatalf("expected partial session error, got %v", err)
	}
	if token != "" || user != nil {
		t.Fatalf("expected empty values, got %q %+v", token, user)
	}
}

func TestClearSession_MissingFile(t *testing.T) {
	setTestConfigDir(t)
	if err := ClearSession(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestRememberEvent_MovesToFrontAndCaps(t *testing.T) {
	setTestConfigDir(t)

	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"} {
		if err := RememberEvent(model.Event{Id: id, Title: "Event " + id}); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	}
	if err := RememberEvent(model.Event{Id: "c", Title: "Event c"}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	recents, err := LoadRecentEvents()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(recents) != maxRecentEvents {
		t.Fatalf("expected %d recents, got %d", maxRecentEvents, len(recents))
	}
	if recents[0].ID != "c" || recents[1].ID != "i" {
		t.Fatalf("unexpected order: %+v", recents)
	}
	if !RecentEventIDs()["c"] || RecentEventIDs()["a"] {
		t.Fatalf("unexpected recent set: %+v", RecentEventIDs())
	}
}

func TestRememberEvent_InvalidInput(t *testing.T) {
	setTestConfigDir(t)
	if err := RememberEvent(model.Event{}); err == nil {
		t.Fatal("expected error for empty event id")
	}
}

func TestLoadRecentEvents_KeepsDecodeCause(t *testing.T) {
	root := setTestConfigDir(t)
	path := filepath.Join(root, appDir, recentEventsFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadRecentEvents()
	if err == nil {
		t.Fatal("expected error")
	}
	var syntaxErr *json.SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected decode cause, got %v", err)
	}
	if !strings.Contains(err.Error(), "invalid recent events format") {
		t.Fatalf("unexpected message: %v", err)
	}
}
