package session

import (
	"testing"

	"github.com/gdwatch/console/internal/testutil"
)

func openStore(t *testing.T, dir string) *Store {
	t.Helper()

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("failed to open session store: %v", err)
	}
	return s
}

func TestStore_EmptyDirRejected(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Error("Expected error for empty data directory")
	}
}

func TestStore_LoginStoresCredentialAndName(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	s := openStore(t, dir)
	defer s.Close()

	if s.IsAuthenticated() {
		t.Error("Expected unauthenticated fresh store")
	}

	if err := s.Login("admin", "YWRtaW46cHc="); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if !s.IsAuthenticated() {
		t.Error("Expected authenticated after login")
	}
	if s.Credential() != "YWRtaW46cHc=" {
		t.Errorf("Expected stored credential, got %q", s.Credential())
	}
	if s.DisplayName() != "admin" {
		t.Errorf("Expected display name admin, got %q", s.DisplayName())
	}
}

func TestStore_LoginRejectsEmptyCredential(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	s := openStore(t, dir)
	defer s.Close()

	if err := s.Login("admin", ""); err == nil {
		t.Error("Expected error for empty credential")
	}
}

func TestStore_SessionSurvivesReopen(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	s := openStore(t, dir)
	if err := s.Login("admin", "cred"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetLocale("zh-TW"); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s2 := openStore(t, dir)
	defer s2.Close()

	if !s2.IsAuthenticated() {
		t.Error("Expected session to survive reopen")
	}
	if s2.Locale() != "zh-TW" {
		t.Errorf("Expected locale persisted, got %q", s2.Locale())
	}
}

func TestStore_LogoutClearsStateAndSetsMarker(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	s := openStore(t, dir)
	defer s.Close()

	if err := s.Login("admin", "cred"); err != nil {
		t.Fatal(err)
	}
	if err := s.Logout(); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	if s.IsAuthenticated() {
		t.Error("Expected unauthenticated after logout")
	}
	if s.Credential() != "" || s.DisplayName() != "" {
		t.Error("Expected credential and display name cleared")
	}

	fired, err := s.ConsumeJustLoggedOut()
	if err != nil {
		t.Fatalf("ConsumeJustLoggedOut failed: %v", err)
	}
	if !fired {
		t.Error("Expected logout marker set")
	}
}

func TestStore_LogoutMarkerConsumedOnce(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	s := openStore(t, dir)
	defer s.Close()

	if err := s.Login("admin", "cred"); err != nil {
		t.Fatal(err)
	}
	if err := s.Logout(); err != nil {
		t.Fatal(err)
	}

	first, err := s.ConsumeJustLoggedOut()
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.ConsumeJustLoggedOut()
	if err != nil {
		t.Fatal(err)
	}

	if !first {
		t.Error("Expected first consume to fire")
	}
	if second {
		t.Error("Expected marker consumed exactly once")
	}
}

func TestStore_LocaleDefaultsEmpty(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	s := openStore(t, dir)
	defer s.Close()

	if s.Locale() != "" {
		t.Errorf("Expected empty locale before any selection, got %q", s.Locale())
	}
}
