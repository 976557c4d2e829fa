package domain

// Config is the canonical, fully-populated view of the watcher's
// configuration. Every field carries a resolved value after decoding;
// consumers never have to distinguish "absent" from "default".
type Config struct {
	Auth     AuthConfig     `json:"auth"`
	OAuth    OAuthConfig    `json:"oauth"`
	Advanced AdvancedConfig `json:"advanced"`
	Server   ServerConfig   `json:"server"`
	Google   GoogleConfig   `json:"google"`
	Rclone   RcloneConfig   `json:"rclone"`
	Symedia  SymediaConfig  `json:"symedia"`
}

// AuthConfig holds the console login credential pair
type AuthConfig struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// OAuthConfig holds the Google OAuth client settings
type OAuthConfig struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RedirectURI  string `json:"redirect_uri"`
}

// AdvancedConfig holds watcher tuning and logging settings
type AdvancedConfig struct {
	DebounceSeconds int        `json:"debounce_seconds"`
	LogDir          string     `json:"log_dir"`
	LogLevel        int        `json:"log_level"`
	LogSaveEnabled  bool       `json:"log_save_enabled"`
	LogCleanup      LogCleanup `json:"log_cleanup"`
}

// LogCleanup describes the scheduled log retention policy.
// Retention and schedule are always populated, even when disabled,
// so a form can pre-fill them before the user enables the feature.
type LogCleanup struct {
	Enabled       bool   `json:"enabled"`
	RetentionDays int    `json:"retention_days"`
	Cron          string `json:"cron"`
}

// ServerConfig holds the watcher's listen settings
type ServerConfig struct {
	Port        int       `json:"port"`
	PublicURL   string    `json:"public_url"`
	WebhookPath string    `json:"webhook_path"`
	TLS         TLSConfig `json:"tls"`
}

// TLSConfig holds the optional HTTPS settings
type TLSConfig struct {
	Enabled  bool   `json:"enabled"`
	CertPath string `json:"cert_path"`
	KeyPath  string `json:"key_path"`
}

// GoogleConfig holds Drive API quota and target settings
type GoogleConfig struct {
	QPS                int      `json:"qps"`
	PersonalDriveName  string   `json:"personal_drive_name"`
	TargetDriveIDs     []string `json:"target_drive_ids"`
	ListDelay          int      `json:"list_delay"`
	BatchSleepInterval int      `json:"batch_sleep_interval"`
}

// RcloneConfig holds the rclone notification targets and the rewrite
// rules shared across all of them
type RcloneConfig struct {
	Instances    []RcloneInstance `json:"instances"`
	PathMappings []MappingRule    `json:"path_mappings"`
}

// RcloneInstance is a single rclone remote-control endpoint
type RcloneInstance struct {
	Host        string `json:"host"`
	Endpoint    string `json:"endpoint"`
	WaitForData bool   `json:"wait_for_data"`
}

// SymediaConfig holds the media-library notification settings
type SymediaConfig struct {
	Host            string            `json:"host"`
	Endpoint        string            `json:"endpoint"`
	BodyTemplate    string            `json:"body_template"`
	PathMappings    []MappingRule     `json:"path_mappings"`
	NotifyUnmatched bool              `json:"notify_unmatched"`
	Headers         map[string]string `json:"headers"`
}

// MappingRule rewrites a file path: Regex is the search pattern,
// Replacement the substitution text. Neither side is validated here.
type MappingRule struct {
	Regex       string `json:"regex"`
	Replacement string `json:"replacement"`
}

// Clone returns a deep copy. Mutating the copy never affects the
// original, including nested slices and maps.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	out := *c
	out.Google.TargetDriveIDs = cloneStrings(c.Google.TargetDriveIDs)
	out.Rclone.Instances = cloneInstances(c.Rclone.Instances)
	out.Rclone.PathMappings = cloneRules(c.Rclone.PathMappings)
	out.Symedia.PathMappings = cloneRules(c.Symedia.PathMappings)
	out.Symedia.Headers = cloneHeaders(c.Symedia.Headers)
	return &out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneInstances(in []RcloneInstance) []RcloneInstance {
	if in == nil {
		return nil
	}
	out := make([]RcloneInstance, len(in))
	copy(out, in)
	return out
}

func cloneRules(in []MappingRule) []MappingRule {
	if in == nil {
		return nil
	}
	out := make([]MappingRule, len(in))
	copy(out, in)
	return out
}

func cloneHeaders(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
