package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gdwatch/console/internal/domain"
)

// Encode converts a canonical configuration back into the wire document
// the backend persists. Encoding is lossy for wire-only fields (instance
// names, the legacy drive-name alias); those are regenerated or dropped.
//
// The only failure mode is a body template that is not valid JSON, which
// returns domain.ErrMalformedTemplate.
func Encode(c domain.Config) (Wire, error) {
	body, err := encodeBodyTemplate(c.Symedia.BodyTemplate)
	if err != nil {
		return Wire{}, err
	}

	w := Wire{
		Auth: WireAuth{
			Username: c.Auth.Username,
			Password: c.Auth.Password,
		},
		OAuthConfig: &WireOAuth{
			ClientID:     c.OAuth.ClientID,
			ClientSecret: c.OAuth.ClientSecret,
			RedirectURI:  c.OAuth.RedirectURI,
		},
		Advanced: encodeAdvanced(c.Advanced),
		Server:   encodeServer(c.Server),
		Google:   encodeGoogle(c.Google),
		Rclone:   encodeRclone(c.Rclone),
		Symedia: &WireSymedia{
			Host:            c.Symedia.Host,
			Endpoint:        c.Symedia.Endpoint,
			NotifyUnmatched: boolPtr(c.Symedia.NotifyUnmatched),
			Headers:         headersOrEmpty(c.Symedia.Headers),
			BodyTemplate:    body,
		},
		PathMapping: encodeMappings(c.Symedia.PathMappings),
	}

	return w, nil
}

func encodeAdvanced(a domain.AdvancedConfig) WireAdvanced {
	retention := a.LogCleanup.RetentionDays
	if retention <= 0 {
		retention = defaultRetentionDays
	}
	cron := a.LogCleanup.Cron
	if cron == "" {
		cron = defaultCleanupCron
	}

	return WireAdvanced{
		LogLevel:          intPtr(a.LogLevel),
		LogSaveEnabled:    boolPtr(a.LogSaveEnabled),
		LogDir:            a.LogDir,
		DebounceSeconds:   intPtr(a.DebounceSeconds),
		LogCleanupEnabled: boolPtr(a.LogCleanup.Enabled),
		LogRetentionDays:  intPtr(retention),
		LogCleanupCron:    cron,
	}
}

func encodeServer(s domain.ServerConfig) WireServer {
	return WireServer{
		ListenPort:  intPtr(s.Port),
		PublicURL:   s.PublicURL,
		WebhookPath: s.WebhookPath,
		SSL: &WireSSL{
			Enabled:  s.TLS.Enabled,
			CertPath: s.TLS.CertPath,
			KeyPath:  s.TLS.KeyPath,
			// Not tracked canonically; the backend treats it as off.
			RestrictToDomain: false,
		},
	}
}

func encodeGoogle(g domain.GoogleConfig) WireGoogle {
	listDelay := g.ListDelay
	if listDelay <= 0 {
		listDelay = defaultListDelayMs
	}
	batchSleep := g.BatchSleepInterval
	if batchSleep <= 0 {
		batchSleep = defaultBatchSleep
	}

	ids := g.TargetDriveIDs
	if ids == nil {
		ids = []string{}
	}

	return WireGoogle{
		RateLimitQPS:       intPtr(g.QPS),
		PersonalDriveName:  g.PersonalDriveName,
		TargetDriveIDs:     ids,
		ListDelay:          intPtr(listDelay),
		BatchSleepInterval: intPtr(batchSleep),
	}
}

// encodeRclone fans the shared rule list back out: every instance gets a
// generated positional name and a full copy of the list. Which rules
// originally belonged to which instance is not recoverable.
func encodeRclone(r domain.RcloneConfig) []WireRcloneInstance {
	out := make([]WireRcloneInstance, 0, len(r.Instances))
	for i, inst := range r.Instances {
		out = append(out, WireRcloneInstance{
			Name:        fmt.Sprintf("instance_%d", i),
			Host:        inst.Host,
			Endpoint:    inst.Endpoint,
			WaitForData: boolPtr(inst.WaitForData),
			Mapping:     encodeMappings(r.PathMappings),
		})
	}
	return out
}

func encodeMappings(rules []domain.MappingRule) []WireMapping {
	out := make([]WireMapping, 0, len(rules))
	for _, r := range rules {
		out = append(out, WireMapping{
			Regex:       r.Regex,
			Replacement: r.Replacement,
		})
	}
	return out
}

// encodeBodyTemplate parses the canonical template string back into
// structured JSON. An empty string becomes an empty object placeholder.
func encodeBodyTemplate(tmpl string) (json.RawMessage, error) {
	if tmpl == "" {
		return json.RawMessage("{}"), nil
	}

	if !json.Valid([]byte(tmpl)) {
		return nil, fmt.Errorf("%w: %q", domain.ErrMalformedTemplate, tmpl)
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(tmpl)); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedTemplate, err)
	}
	return json.RawMessage(buf.Bytes()), nil
}

func headersOrEmpty(h map[string]string) map[string]string {
	if h == nil {
		return map[string]string{}
	}
	return h
}

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }
