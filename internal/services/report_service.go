package services

import (
	"log/slog"
	"time"

	"github.com/elcoders/payment-portal/internal/models"
	repo "github.com/elcoders/payment-portal/internal/repository"
)

// ReportService is the client-side error log, capped at the most recent 50
// entries. Storage failures degrade to logging only.
type ReportService struct {
	repo repo.ErrorReports
	now  func() time.Time
	log  *slog.Logger
}

func NewReportService(r repo.ErrorReports, log *slog.Logger) *ReportService {
	return &ReportService{repo: r, now: time.Now, log: log}
}

func (s *ReportService) Report(rep models.ErrorReport) {
	if rep.Timestamp == 0 {
		rep.Timestamp = s.now().UnixMilli()
	}
	s.log.Error("error reported", "message", rep.Message, "url", rep.URL)

	existing, err := s.repo.List()
	if err != nil {
		s.log.Warn("error report load failed", "err", err)
		existing = nil
	}
	updated := append(existing, rep)
	if len(updated) > models.MaxErrorReports {
		updated = updated[len(updated)-models.MaxErrorReports:]
	}
	if err := s.repo.ReplaceAll(updated); err != nil {
		s.log.Warn("error report store failed", "err", err)
	}
}

func (s *ReportService) List() []models.ErrorReport {
	reports, err := s.repo.List()
	if err != nil {
		s.log.Warn("error report load failed", "err", err)
		return nil
	}
	return reports
}

func (s *ReportService) Clear() {
	if err := s.repo.Clear(); err != nil {
		s.log.Warn("error report clear failed", "err", err)
	}
}
