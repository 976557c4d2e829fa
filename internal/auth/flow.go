// Package auth implements the console login flow: a structured login
// call first, then a credential-probe fallback for backends that only do
// endpoint-level credential checking.
package auth

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/gdwatch/console/internal/api"
	"github.com/gdwatch/console/internal/domain"
	"github.com/gdwatch/console/internal/logger"
	"github.com/gdwatch/console/internal/session"
)

// BasicCredential derives the reusable backend credential from an
// identity pair.
func BasicCredential(username, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
}

// Flow is the two-step login strategy. Each step succeeds or fails on
// its own: the primary structured call, then the fallback probe.
type Flow struct {
	client  *api.Client
	session *session.Store
	log     logger.Logger
}

// NewFlow creates a login flow bound to a client and session store
func NewFlow(client *api.Client, sess *session.Store, log logger.Logger) *Flow {
	if log == nil {
		log = &logger.NullLogger{}
	}
	return &Flow{client: client, session: sess, log: log}
}

// Login authenticates against the backend and stores the derived
// credential on success. The caller sees domain.ErrAuthFailed when both
// steps reject the identity pair.
func (f *Flow) Login(ctx context.Context, username, password string) error {
	credential := BasicCredential(username, password)

	ok, err := f.primaryLogin(ctx, username, password)
	if err == nil {
		if !ok {
			return domain.ErrAuthFailed
		}
		return f.establish(username, credential)
	}

	// The backend may not implement a login endpoint at all; probe the
	// config endpoint with the derived credential before giving up.
	f.log.Debug("structured login failed, probing config endpoint", "error", err)
	if probeErr := f.fallbackProbe(ctx, credential); probeErr != nil {
		return fmt.Errorf("%w: %v", domain.ErrAuthFailed, probeErr)
	}
	return f.establish(username, credential)
}

// primaryLogin is the structured login call. The bool is the backend's
// verdict; the error is a transport-level failure.
func (f *Flow) primaryLogin(ctx context.Context, username, password string) (bool, error) {
	result, err := f.client.Login(ctx, username, password)
	if err != nil {
		return false, err
	}
	return result.OK(), nil
}

// fallbackProbe tests the derived credential against the protected
// configuration endpoint.
func (f *Flow) fallbackProbe(ctx context.Context, credential string) error {
	return f.client.ProbeConfig(ctx, credential)
}

func (f *Flow) establish(username, credential string) error {
	if err := f.session.Login(username, credential); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	f.log.Info("logged in", "user", username)
	return nil
}
