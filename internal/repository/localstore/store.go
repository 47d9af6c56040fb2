// Package localstore persists the portal's state as one JSON document per
// key, reproducing the browser-local layout the demo data uses
// (payments, payment_session, offline_actions, error_reports).
package localstore

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

const (
	KeyPayments       = "payments"
	KeySession        = "payment_session"
	KeyOfflineActions = "offline_actions"
	KeyErrorReports   = "error_reports"
)

type Store struct {
	mu  sync.Mutex
	dir string
	log *slog.Logger
}

func Open(dir string, log *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir, log: log}, nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Load decodes the document stored under key into v. Missing documents and
// unparseable ones both report false; corrupt data is treated as absent.
func (s *Store) Load(key string, v any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := os.ReadFile(s.path(key))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Warn("localstore read failed", "key", key, "err", err)
		}
		return false
	}
	if err := json.Unmarshal(b, v); err != nil {
		s.log.Warn("localstore corrupt document", "key", key, "err", err)
		return false
	}
	return true
}

// Save re-serializes the full document under key. Failures are swallowed
// after a warning; callers keep their in-memory copy authoritative.
func (s *Store) Save(key string, v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := json.Marshal(v)
	if err != nil {
		s.log.Warn("localstore encode failed", "key", key, "err", err)
		return
	}
	if err := os.WriteFile(s.path(key), b, 0o644); err != nil {
		s.log.Warn("localstore write failed, continuing in memory", "key", key, "err", err)
	}
}

// Remove deletes the document under key. Best-effort.
func (s *Store) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.log.Warn("localstore remove failed", "key", key, "err", err)
	}
}
