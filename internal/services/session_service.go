package services

import (
	"log/slog"
	"time"

	"github.com/elcoders/payment-portal/internal/models"
	repo "github.com/elcoders/payment-portal/internal/repository"
)

const sessionExpiry = 24 * time.Hour

// SessionService keeps the single-slot checkout snapshot that survives page
// reloads. Snapshots are untrusted on load: expired, empty or corrupt ones
// are discarded instead of restored.
type SessionService struct {
	repo repo.Sessions
	now  func() time.Time
	log  *slog.Logger
}

func NewSessionService(r repo.Sessions, log *slog.Logger) *SessionService {
	return &SessionService{repo: r, now: time.Now, log: log}
}

// Save overwrites the stored snapshot with a fresh timestamp. Persistence
// failures are non-fatal.
func (s *SessionService) Save(snap models.SessionSnapshot) {
	snap.Timestamp = s.now().UnixMilli()
	if err := s.repo.Put(snap); err != nil {
		s.log.Warn("session save failed", "err", err)
	}
}

// Recover returns the stored snapshot only if it exists, is younger than 24
// hours and holds meaningful data. Anything else is deleted and dropped.
func (s *SessionService) Recover() (models.SessionSnapshot, bool) {
	snap, ok, err := s.repo.Get()
	if err != nil {
		s.log.Warn("session recover failed", "err", err)
		return models.SessionSnapshot{}, false
	}
	if !ok {
		return models.SessionSnapshot{}, false
	}
	age := s.now().UnixMilli() - snap.Timestamp
	if age > sessionExpiry.Milliseconds() {
		_ = s.repo.Delete()
		return models.SessionSnapshot{}, false
	}
	if !snap.Meaningful() {
		return models.SessionSnapshot{}, false
	}
	return snap, true
}

// Clear removes the snapshot, called on successful verification and on
// countdown expiry.
func (s *SessionService) Clear() {
	if err := s.repo.Delete(); err != nil {
		s.log.Warn("session clear failed", "err", err)
	}
}

func (s *SessionService) Has() bool {
	_, ok := s.Recover()
	return ok
}
