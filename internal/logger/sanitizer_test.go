package logger

import (
	"errors"
	"testing"
)

func TestSanitize_Patterns(t *testing.T) {
	s := NewSanitizer()

	tests := []struct {
		input    string
		expected string
	}{
		{"login with password=hunter2 ok", "login with password=*** ok"},
		{"oauth client_secret=GOCSPX-abc123", "oauth client_secret=***"},
		{"header Authorization: Basic YWRtaW4=", "header Authorization: basic ***"},
		{"header Authorization: Bearer ya29.abc", "header Authorization: bearer ***"},
		{"refresh token=1//0abc rest", "refresh token=*** rest"},
		{"nothing sensitive here", "nothing sensitive here"},
	}

	for _, tt := range tests {
		if got := s.Sanitize(tt.input); got != tt.expected {
			t.Errorf("Sanitize(%q): Expected %q, got %q", tt.input, tt.expected, got)
		}
	}
}

func TestSanitizeArgs_MasksSensitiveKeys(t *testing.T) {
	s := NewSanitizer()

	args := s.SanitizeArgs([]any{
		"user", "admin",
		"password", "supersecretvalue",
		"credential", "YWRtaW46c2VjcmV0",
	})

	if args[1] != "admin" {
		t.Errorf("Expected non-sensitive value untouched, got %v", args[1])
	}
	if args[3] != "s***e" {
		t.Errorf("Expected masked password, got %v", args[3])
	}
	if args[5] != "Y***0" {
		t.Errorf("Expected masked credential, got %v", args[5])
	}
}

func TestSanitizeArgs_ErrorValues(t *testing.T) {
	s := NewSanitizer()

	args := s.SanitizeArgs([]any{"token", errors.New("bad token value")})
	if args[1] != "b***e" {
		t.Errorf("Expected masked error text, got %v", args[1])
	}
}

func TestSanitizeArgs_ShortValues(t *testing.T) {
	s := NewSanitizer()

	args := s.SanitizeArgs([]any{"password", "ab", "secret", "shortpw"})
	if args[1] != "***" {
		t.Errorf("Expected *** for tiny value, got %v", args[1])
	}
	if args[3] != "s***" {
		t.Errorf("Expected single-char prefix mask, got %v", args[3])
	}
}

func TestSanitizeArgs_DoesNotMutateInput(t *testing.T) {
	s := NewSanitizer()

	original := []any{"password", "hunter2000"}
	s.SanitizeArgs(original)
	if original[1] != "hunter2000" {
		t.Errorf("Expected input slice untouched, got %v", original[1])
	}
}
