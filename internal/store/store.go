// Package store owns the single in-memory canonical configuration and
// its load/save lifecycle. All mutation goes through the store; published
// values are snapshots and are never mutated in place.
package store

import (
	"context"
	"sync"

	"github.com/gdwatch/console/internal/domain"
	"github.com/gdwatch/console/internal/logger"
	"github.com/gdwatch/console/internal/schema"
)

// Transport is the slice of the backend client the store needs
type Transport interface {
	FetchConfig(ctx context.Context) ([]byte, error)
	UpdateConfig(ctx context.Context, w schema.Wire) error
}

// Store mediates reads, writes and mutation of the canonical
// configuration. Create one per console session and drop it on exit.
//
// Load and Save deliberately apply no mutual exclusion against each
// other: two racing calls resolve last-write-wins on the published
// value, which can discard the slower caller's result. Callers that care
// must serialize at their own layer. See DESIGN.md.
type Store struct {
	mu        sync.Mutex
	transport Transport
	log       logger.Logger

	value   *domain.Config
	loading bool
	saving  bool
	lastErr string
}

// New creates an empty store; no configuration is loaded yet
func New(transport Transport, log logger.Logger) *Store {
	if log == nil {
		log = &logger.NullLogger{}
	}
	return &Store{transport: transport, log: log}
}

// Load fetches, parses and decodes the backend configuration and
// publishes it. A failed load keeps the previously loaded value; the
// error is both recorded and returned.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	data, err := s.transport.FetchConfig(ctx)
	if err != nil {
		return s.finishLoad(nil, err)
	}

	wire, err := schema.ParseWire(data)
	if err != nil {
		return s.finishLoad(nil, err)
	}

	cfg := schema.Decode(wire)
	return s.finishLoad(&cfg, nil)
}

func (s *Store) finishLoad(cfg *domain.Config, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = false
	if err != nil {
		s.lastErr = err.Error()
		s.log.Error("failed to load configuration", "error", err)
		return err
	}

	s.value = cfg
	return nil
}

// Save encodes the current value and writes it to the backend as one
// full document. Local edits survive a failed save; the error is both
// recorded and returned so the caller can react.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	if s.value == nil {
		s.mu.Unlock()
		return nil
	}
	s.saving = true
	s.lastErr = ""
	snapshot := s.value.Clone()
	s.mu.Unlock()

	wire, err := schema.Encode(*snapshot)
	if err != nil {
		return s.finishSave(err)
	}

	return s.finishSave(s.transport.UpdateConfig(ctx, wire))
}

func (s *Store) finishSave(err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.saving = false
	if err != nil {
		s.lastErr = err.Error()
		s.log.Error("failed to save configuration", "error", err)
		return err
	}
	return nil
}

// Apply runs one typed update against a clone of the current value and
// publishes the clone. No-op when nothing is loaded.
func (s *Store) Apply(u Update) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.value == nil {
		return
	}

	next := s.value.Clone()
	u.apply(next)
	s.value = next
}

// Value returns a snapshot of the current configuration, or nil when
// nothing is loaded. Mutating the snapshot does not affect the store.
func (s *Store) Value() *domain.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value.Clone()
}

// Loaded reports whether a configuration has been fetched
func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value != nil
}

// Loading reports whether a load is in flight
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Saving reports whether a save is in flight
func (s *Store) Saving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saving
}

// LastError returns the most recent load/save failure message, cleared
// at the start of each load and save.
func (s *Store) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Reset drops the loaded configuration, returning the store to its
// initial state. Used on logout and on navigation away.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = nil
	s.lastErr = ""
}
