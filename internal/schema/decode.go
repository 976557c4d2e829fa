package schema

import (
	"bytes"
	"encoding/json"

	"github.com/gdwatch/console/internal/domain"
)

// Backend defaults applied when a wire field is absent or empty.
const (
	defaultDebounceSeconds = 5
	defaultLogDir          = "./logs"
	defaultLogLevel        = 1
	defaultRetentionDays   = 7
	defaultCleanupCron     = "0 0 3 * * ?"
	defaultListenPort      = 8448
	defaultWebhookPath     = "/gd-webhook"
	defaultRateLimitQPS    = 5
	defaultListDelayMs     = 1000
	defaultBatchSleep      = 300
)

// Decode converts a wire document into the canonical configuration.
// The result is total: every canonical field holds either the wire value
// or its default, so callers never see an unresolved field.
func Decode(w Wire) domain.Config {
	cfg := domain.Config{
		Auth: domain.AuthConfig{
			Username: w.Auth.Username,
			Password: w.Auth.Password,
		},
		Advanced: decodeAdvanced(w.Advanced),
		Server:   decodeServer(w.Server),
		Google:   decodeGoogle(w.Google),
		Rclone:   decodeRclone(w.Rclone),
		Symedia:  decodeSymedia(w.Symedia, w.PathMapping),
	}

	if w.OAuthConfig != nil {
		cfg.OAuth = domain.OAuthConfig{
			ClientID:     w.OAuthConfig.ClientID,
			ClientSecret: w.OAuthConfig.ClientSecret,
			RedirectURI:  w.OAuthConfig.RedirectURI,
		}
	}

	return cfg
}

func decodeAdvanced(w WireAdvanced) domain.AdvancedConfig {
	return domain.AdvancedConfig{
		DebounceSeconds: intOr(w.DebounceSeconds, defaultDebounceSeconds),
		LogDir:          stringOr(w.LogDir, defaultLogDir),
		LogLevel:        intOr(w.LogLevel, defaultLogLevel),
		// Saving is on unless the backend explicitly turned it off.
		LogSaveEnabled: w.LogSaveEnabled == nil || *w.LogSaveEnabled,
		LogCleanup: domain.LogCleanup{
			// Retention and schedule are resolved even when cleanup is
			// disabled, so the values are ready if the user enables it.
			Enabled:       w.LogCleanupEnabled != nil && *w.LogCleanupEnabled,
			RetentionDays: intOr(w.LogRetentionDays, defaultRetentionDays),
			Cron:          stringOr(w.LogCleanupCron, defaultCleanupCron),
		},
	}
}

func decodeServer(w WireServer) domain.ServerConfig {
	cfg := domain.ServerConfig{
		Port:        intOr(w.ListenPort, defaultListenPort),
		PublicURL:   w.PublicURL,
		WebhookPath: stringOr(w.WebhookPath, defaultWebhookPath),
	}
	if w.SSL != nil {
		cfg.TLS = domain.TLSConfig{
			Enabled:  w.SSL.Enabled,
			CertPath: w.SSL.CertPath,
			KeyPath:  w.SSL.KeyPath,
		}
	}
	return cfg
}

func decodeGoogle(w WireGoogle) domain.GoogleConfig {
	// Primary field wins over the legacy alias; first non-empty value.
	driveName := w.PersonalDriveName
	if driveName == "" {
		driveName = w.MyDriveName
	}

	ids := w.TargetDriveIDs
	if ids == nil {
		ids = []string{}
	}

	return domain.GoogleConfig{
		QPS:                intOr(w.RateLimitQPS, defaultRateLimitQPS),
		PersonalDriveName:  driveName,
		TargetDriveIDs:     ids,
		ListDelay:          intOr(w.ListDelay, defaultListDelayMs),
		BatchSleepInterval: intOr(w.BatchSleepInterval, defaultBatchSleep),
	}
}

func decodeRclone(instances []WireRcloneInstance) domain.RcloneConfig {
	cfg := domain.RcloneConfig{
		Instances:    make([]domain.RcloneInstance, 0, len(instances)),
		PathMappings: []domain.MappingRule{},
	}

	for _, inst := range instances {
		cfg.Instances = append(cfg.Instances, domain.RcloneInstance{
			Host:     inst.Host,
			Endpoint: inst.Endpoint,
			// The wire wait_for_data flag is not read; the console always
			// waits for data before notifying. See DESIGN.md.
			WaitForData: true,
		})

		// Per-instance rule lists collapse into one shared list, wire
		// order preserved, duplicates kept.
		for _, m := range inst.Mapping {
			cfg.PathMappings = append(cfg.PathMappings, domain.MappingRule{
				Regex:       m.Regex,
				Replacement: m.Replacement,
			})
		}
	}

	return cfg
}

func decodeSymedia(w *WireSymedia, pathMapping []WireMapping) domain.SymediaConfig {
	// Symedia rewrite rules come from the top-level path_mapping list,
	// not from the symedia object itself.
	rules := make([]domain.MappingRule, 0, len(pathMapping))
	for _, m := range pathMapping {
		rules = append(rules, domain.MappingRule{
			Regex:       m.Regex,
			Replacement: m.Replacement,
		})
	}

	cfg := domain.SymediaConfig{
		PathMappings: rules,
		Headers:      map[string]string{},
	}
	if w == nil {
		return cfg
	}

	cfg.Host = w.Host
	cfg.Endpoint = w.Endpoint
	cfg.NotifyUnmatched = w.NotifyUnmatched != nil && *w.NotifyUnmatched
	cfg.BodyTemplate = decodeBodyTemplate(w.BodyTemplate)
	if w.Headers != nil {
		cfg.Headers = w.Headers
	}
	return cfg
}

// decodeBodyTemplate flattens the wire body template into a single
// editable string: string values pass through, structured values are
// serialized, absent becomes empty.
func decodeBodyTemplate(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func stringOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
