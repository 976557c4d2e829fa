// Package schema converts between the backend's persisted configuration
// document and the canonical form the console works with. Both directions
// are pure: no I/O, no shared state.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gdwatch/console/internal/domain"
)

// Wire mirrors the backend's JSON configuration document. Optional fields
// are pointers so that an absent field is distinguishable from a present
// zero value.
type Wire struct {
	Auth        WireAuth             `json:"auth"`
	OAuthConfig *WireOAuth           `json:"oauth_config,omitempty"`
	Advanced    WireAdvanced         `json:"advanced"`
	Server      WireServer           `json:"server"`
	Google      WireGoogle           `json:"google"`
	Rclone      []WireRcloneInstance `json:"rclone,omitempty"`
	Symedia     *WireSymedia         `json:"symedia,omitempty"`
	PathMapping []WireMapping        `json:"path_mapping,omitempty"`
}

// WireAuth is the backend login credential pair
type WireAuth struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// WireOAuth is the nested oauth_config object
type WireOAuth struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RedirectURI  string `json:"redirect_uri"`
}

// WireAdvanced is the backend's advanced section
type WireAdvanced struct {
	LogLevel          *int   `json:"log_level,omitempty"`
	LogSaveEnabled    *bool  `json:"log_save_enabled,omitempty"`
	LogDir            string `json:"log_dir,omitempty"`
	LogMaxSizeMB      *int   `json:"log_max_size_mb,omitempty"`
	DebounceSeconds   *int   `json:"debounce_seconds,omitempty"`
	RcloneWaitSeconds *int   `json:"rclone_wait_seconds,omitempty"`
	LogCleanupEnabled *bool  `json:"log_cleanup_enabled,omitempty"`
	LogRetentionDays  *int   `json:"log_retention_days,omitempty"`
	LogCleanupCron    string `json:"log_cleanup_cron,omitempty"`
}

// WireServer is the backend's server section, with TLS nested under ssl
type WireServer struct {
	ListenPort  *int     `json:"listen_port,omitempty"`
	PublicURL   string   `json:"public_url,omitempty"`
	WebhookPath string   `json:"webhook_path,omitempty"`
	SSL         *WireSSL `json:"ssl,omitempty"`
}

// WireSSL is the nested server.ssl object
type WireSSL struct {
	Enabled          bool   `json:"enabled"`
	CertPath         string `json:"cert_path"`
	KeyPath          string `json:"key_path"`
	RestrictToDomain bool   `json:"restrict_to_domain"`
}

// WireGoogle is the backend's google section. MyDriveName is a legacy
// alias for PersonalDriveName kept by older backends.
type WireGoogle struct {
	RateLimitQPS       *int     `json:"rate_limit_qps,omitempty"`
	PersonalDriveName  string   `json:"personal_drive_name,omitempty"`
	MyDriveName        string   `json:"my_drive_name,omitempty"`
	TargetDriveIDs     []string `json:"target_drive_ids,omitempty"`
	ListDelay          *int     `json:"list_delay,omitempty"`
	BatchSleepInterval *int     `json:"batch_sleep_interval,omitempty"`
}

// WireRcloneInstance carries its own rewrite-rule list on the wire,
// unlike the canonical form where all instances share one list.
type WireRcloneInstance struct {
	Name        string        `json:"name,omitempty"`
	Host        string        `json:"host"`
	Endpoint    string        `json:"endpoint"`
	WaitForData *bool         `json:"wait_for_data,omitempty"`
	Mapping     []WireMapping `json:"mapping,omitempty"`
}

// WireSymedia is the backend's symedia section. BodyTemplate may be a
// JSON object or, from older backends, a JSON string.
type WireSymedia struct {
	Host            string            `json:"host"`
	Endpoint        string            `json:"endpoint"`
	NotifyUnmatched *bool             `json:"notify_unmatched,omitempty"`
	Headers         map[string]string `json:"headers,omitempty"`
	BodyTemplate    json.RawMessage   `json:"body_template,omitempty"`
}

// WireMapping is a path-rewrite rule on the wire
type WireMapping struct {
	Regex       string `json:"regex"`
	Replacement string `json:"replacement"`
}

// ParseWire unmarshals a backend configuration document. Some backend
// builds double-encode the document as a JSON string; both forms are
// accepted.
func ParseWire(data []byte) (Wire, error) {
	data = bytes.TrimSpace(data)

	var inner string
	if err := json.Unmarshal(data, &inner); err == nil {
		data = []byte(inner)
	}

	var w Wire
	if err := json.Unmarshal(data, &w); err != nil {
		return Wire{}, fmt.Errorf("%w: %v", domain.ErrConfigInvalid, err)
	}
	return w, nil
}
