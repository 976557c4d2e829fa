package logger

import (
	"fmt"
	"regexp"
	"strings"
)

// Sanitizer masks credentials before they reach a log line. The watcher
// configuration carries passwords, OAuth secrets and basic-auth tokens,
// all of which pass through the console.
//
// Only values of sensitive keys are masked; a secret embedded in the
// value of a non-sensitive key (such as a URL query string) is covered by
// the pattern rules below but nothing else.
type Sanitizer struct {
	patterns []sanitizeRule
}

type sanitizeRule struct {
	pattern     *regexp.Regexp
	replacement string
}

// NewSanitizer builds a sanitizer with the default rules
func NewSanitizer() *Sanitizer {
	return &Sanitizer{
		patterns: []sanitizeRule{
			{regexp.MustCompile(`(?i)password=\S+`), "password=***"},
			{regexp.MustCompile(`(?i)client_secret=\S+`), "client_secret=***"},
			{regexp.MustCompile(`(?i)basic\s+\S+`), "basic ***"},
			{regexp.MustCompile(`(?i)bearer\s+\S+`), "bearer ***"},
			{regexp.MustCompile(`(?i)token=\S+`), "token=***"},
		},
	}
}

// Sanitize applies all pattern rules to a message
func (s *Sanitizer) Sanitize(input string) string {
	result := input
	for _, rule := range s.patterns {
		result = rule.pattern.ReplaceAllString(result, rule.replacement)
	}
	return result
}

// SanitizeArgs masks values of sensitive keys in key-value argument pairs
func (s *Sanitizer) SanitizeArgs(args []any) []any {
	if len(args) == 0 {
		return args
	}

	result := make([]any, len(args))
	copy(result, args)

	for i := 0; i < len(result)-1; i += 2 {
		key, ok := result[i].(string)
		if !ok || !isSensitiveKey(key) {
			continue
		}

		switch v := result[i+1].(type) {
		case string:
			result[i+1] = maskValue(v)
		case error:
			result[i+1] = maskValue(v.Error())
		}
	}

	return result
}

func isSensitiveKey(key string) bool {
	lowerKey := strings.ToLower(key)
	for _, sk := range []string{
		"password", "secret", "token", "credential", "authorization",
	} {
		if strings.Contains(lowerKey, sk) {
			return true
		}
	}
	return false
}

// maskValue keeps at most the first and last character
func maskValue(value string) string {
	if len(value) <= 2 {
		return "***"
	}
	if len(value) <= 8 {
		return fmt.Sprintf("%s***", string(value[0]))
	}
	return fmt.Sprintf("%s***%s", string(value[0]), string(value[len(value)-1]))
}
