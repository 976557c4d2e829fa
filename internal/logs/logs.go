// Package logs fetches and classifies the backend's log lines for
// display.
package logs

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/gdwatch/console/internal/api"
)

// Entry levels
const (
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
	LevelDebug = "debug"
)

// Entry is one classified log line
type Entry struct {
	Time    string
	Level   string
	Content string
}

// Backend lines look like "[TIME] LEVEL: MESSAGE"; level and colon are
// optional.
var linePattern = regexp.MustCompile(`^\[([^\]]+)\]\s*(\w+)?:?\s*(.*)$`)

// Parse classifies a single log line. Lines that do not match the
// bracket format come back as info with the whole line as content.
func Parse(line string) Entry {
	m := linePattern.FindStringSubmatch(line)
	if m == nil {
		return Entry{
			Time:    time.Now().Format("15:04:05"),
			Level:   LevelInfo,
			Content: line,
		}
	}

	timestamp, level, content := m[1], m[2], m[3]
	entry := Entry{
		Time:    timestamp,
		Level:   classifyLevel(level),
		Content: content,
	}
	if entry.Content == "" {
		entry.Content = line
	}

	// Lines reporting a failure are promoted regardless of their level
	// tag.
	lower := strings.ToLower(content)
	if strings.Contains(lower, "error") || strings.Contains(lower, "failed") {
		entry.Level = LevelError
	}

	return entry
}

func classifyLevel(level string) string {
	lower := strings.ToLower(level)
	switch {
	case strings.Contains(lower, "error"), strings.Contains(lower, "err"):
		return LevelError
	case strings.Contains(lower, "warn"):
		return LevelWarn
	case strings.Contains(lower, "debug"), strings.Contains(lower, "dbg"):
		return LevelDebug
	default:
		return LevelInfo
	}
}

// Service reads and clears backend logs through the transport client
type Service struct {
	client *api.Client
}

// NewService creates a log service
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// Fetch retrieves and classifies the backend's current log lines
func (s *Service) Fetch(ctx context.Context) ([]Entry, error) {
	resp, err := s.client.FetchLogs(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(resp.Logs))
	for _, line := range resp.Logs {
		entries = append(entries, Parse(line))
	}
	return entries, nil
}

// ClearMemory clears the backend's in-memory log buffer
func (s *Service) ClearMemory(ctx context.Context) error {
	return s.client.ClearMemoryLogs(ctx)
}

// ClearFiles deletes the backend's persisted log files
func (s *Service) ClearFiles(ctx context.Context) error {
	return s.client.ClearLogFiles(ctx)
}
