package store

import "github.com/gdwatch/console/internal/domain"

// Update is one member of the closed set of configuration mutations.
// Each variant replaces exactly one section or nested leaf of the
// aggregate; the store applies it to a fresh clone before publishing.
type Update interface {
	apply(c *domain.Config)
}

// Whole-section replacements, one per top-level field.

// SetAuth replaces the auth section
type SetAuth struct{ Value domain.AuthConfig }

func (u SetAuth) apply(c *domain.Config) { c.Auth = u.Value }

// SetOAuth replaces the oauth section
type SetOAuth struct{ Value domain.OAuthConfig }

func (u SetOAuth) apply(c *domain.Config) { c.OAuth = u.Value }

// SetAdvanced replaces the advanced section
type SetAdvanced struct{ Value domain.AdvancedConfig }

func (u SetAdvanced) apply(c *domain.Config) { c.Advanced = u.Value }

// SetServer replaces the server section
type SetServer struct{ Value domain.ServerConfig }

func (u SetServer) apply(c *domain.Config) { c.Server = u.Value }

// SetGoogle replaces the google section
type SetGoogle struct{ Value domain.GoogleConfig }

func (u SetGoogle) apply(c *domain.Config) { c.Google = u.Value }

// SetRclone replaces the rclone section
type SetRclone struct{ Value domain.RcloneConfig }

func (u SetRclone) apply(c *domain.Config) { c.Rclone = u.Value }

// SetSymedia replaces the symedia section
type SetSymedia struct{ Value domain.SymediaConfig }

func (u SetSymedia) apply(c *domain.Config) { c.Symedia = u.Value }

// Nested-leaf updates for the fields the forms edit individually.

// SetLogCleanup replaces the log retention policy
type SetLogCleanup struct{ Value domain.LogCleanup }

func (u SetLogCleanup) apply(c *domain.Config) { c.Advanced.LogCleanup = u.Value }

// SetLogCleanupEnabled toggles the log retention policy without touching
// its pre-filled retention and schedule values
type SetLogCleanupEnabled struct{ Value bool }

func (u SetLogCleanupEnabled) apply(c *domain.Config) { c.Advanced.LogCleanup.Enabled = u.Value }

// SetTLS replaces the server TLS block
type SetTLS struct{ Value domain.TLSConfig }

func (u SetTLS) apply(c *domain.Config) { c.Server.TLS = u.Value }

// SetBodyTemplate replaces the symedia body template string
type SetBodyTemplate struct{ Value string }

func (u SetBodyTemplate) apply(c *domain.Config) { c.Symedia.BodyTemplate = u.Value }

// SetRcloneInstances replaces the rclone instance list, keeping the
// shared rewrite rules
type SetRcloneInstances struct{ Value []domain.RcloneInstance }

func (u SetRcloneInstances) apply(c *domain.Config) { c.Rclone.Instances = u.Value }

// SetRclonePathMappings replaces the shared rclone rewrite-rule list
type SetRclonePathMappings struct{ Value []domain.MappingRule }

func (u SetRclonePathMappings) apply(c *domain.Config) { c.Rclone.PathMappings = u.Value }

// SetSymediaPathMappings replaces the symedia rewrite-rule list
type SetSymediaPathMappings struct{ Value []domain.MappingRule }

func (u SetSymediaPathMappings) apply(c *domain.Config) { c.Symedia.PathMappings = u.Value }

// SetTargetDriveIDs replaces the google target drive list
type SetTargetDriveIDs struct{ Value []string }

func (u SetTargetDriveIDs) apply(c *domain.Config) { c.Google.TargetDriveIDs = u.Value }
