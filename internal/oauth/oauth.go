// Package oauth produces the Google consent URL used to authorize the
// watcher's Drive access. The backend normally builds the URL itself;
// older builds without that endpoint get a locally constructed one.
package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/gdwatch/console/internal/api"
	"github.com/gdwatch/console/internal/domain"
)

// DriveScope grants full Drive access; the watcher needs to see every
// change, not just files it created.
const DriveScope = "https://www.googleapis.com/auth/drive"

// ConsentURL returns the Google consent URL, preferring the backend's
// own answer and falling back to a locally built URL when the endpoint
// is missing. An auth rejection is never papered over.
func ConsentURL(ctx context.Context, client *api.Client, cfg domain.OAuthConfig) (string, error) {
	url, err := client.OAuthLoginURL(ctx)
	if err == nil && url != "" {
		return url, nil
	}
	if errors.Is(err, domain.ErrUnauthorized) {
		return "", err
	}

	return BuildConsentURL(cfg)
}

// BuildConsentURL constructs the consent URL from the canonical oauth
// section.
func BuildConsentURL(cfg domain.OAuthConfig) (string, error) {
	if cfg.ClientID == "" {
		return "", fmt.Errorf("%w: oauth client_id is not configured", domain.ErrConfigInvalid)
	}

	oc := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURI,
		Scopes:       []string{DriveScope},
		Endpoint:     google.Endpoint,
	}

	state, err := generateRandomState()
	if err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}

	return oc.AuthCodeURL(state, oauth2.AccessTypeOffline), nil
}

// generateRandomState generates a cryptographically secure random state
// string for CSRF protection
func generateRandomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
