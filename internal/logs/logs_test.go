package logs

import (
	"testing"
)

func TestParse_BracketFormat(t *testing.T) {
	entry := Parse("[2026-08-29 10:00:00] INFO: watcher started")

	if entry.Time != "2026-08-29 10:00:00" {
		t.Errorf("Expected timestamp preserved, got %v", entry.Time)
	}
	if entry.Level != LevelInfo {
		t.Errorf("Expected info, got %v", entry.Level)
	}
	if entry.Content != "watcher started" {
		t.Errorf("Expected content without prefix, got %v", entry.Content)
	}
}

func TestParse_LevelClassification(t *testing.T) {
	tests := []struct {
		line  string
		level string
	}{
		{"[10:00:00] ERROR: disk full", LevelError},
		{"[10:00:00] ERR: disk full", LevelError},
		{"[10:00:00] WARN: quota near limit", LevelWarn},
		{"[10:00:00] WARNING: quota near limit", LevelWarn},
		{"[10:00:00] DEBUG: poll tick", LevelDebug},
		{"[10:00:00] DBG: poll tick", LevelDebug},
		{"[10:00:00] INFO: sync done", LevelInfo},
		{"[10:00:00] NOTICE: sync done", LevelInfo},
	}

	for _, tt := range tests {
		entry := Parse(tt.line)
		if entry.Level != tt.level {
			t.Errorf("Parse(%q): Expected level %v, got %v", tt.line, tt.level, entry.Level)
		}
	}
}

func TestParse_FailurePromotion(t *testing.T) {
	// A failure reported under an info tag still shows up as an error.
	entry := Parse("[10:00:00] INFO: upload failed for movie.mkv")
	if entry.Level != LevelError {
		t.Errorf("Expected promotion to error, got %v", entry.Level)
	}

	entry = Parse("[10:00:00] DEBUG: error count reset")
	if entry.Level != LevelError {
		t.Errorf("Expected promotion to error, got %v", entry.Level)
	}
}

func TestParse_MissingLevelTag(t *testing.T) {
	entry := Parse("[10:00:00] sync cycle complete")
	if entry.Level != LevelInfo {
		t.Errorf("Expected info for untagged line, got %v", entry.Level)
	}
	if entry.Time != "10:00:00" {
		t.Errorf("Expected timestamp preserved, got %v", entry.Time)
	}
}

func TestParse_UnstructuredLine(t *testing.T) {
	entry := Parse("plain text without brackets")

	if entry.Level != LevelInfo {
		t.Errorf("Expected info, got %v", entry.Level)
	}
	if entry.Content != "plain text without brackets" {
		t.Errorf("Expected whole line as content, got %v", entry.Content)
	}
	if entry.Time == "" {
		t.Error("Expected a synthesized timestamp")
	}
}

func TestParse_EmptyContentKeepsLine(t *testing.T) {
	entry := Parse("[10:00:00]")
	if entry.Content != "[10:00:00]" {
		t.Errorf("Expected full line as content fallback, got %v", entry.Content)
	}
}
